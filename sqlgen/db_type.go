package sqlgen

import (
	"math/rand"
)

type State struct {
	ctrl     *ControlOption
	adapter  Adapter
	hooks    []FnEvaluateHook
	replacer *FnHookReplacer
	weight   map[string]int
	repeat   map[string]Interval

	Tables    Tables
	env       *Env
	alloc     IDAllocator
	lastQuery *QueryState
}

type Table struct {
	ID      int
	Name    string
	Columns Columns

	Values [][]string
}

type Column struct {
	ID   int
	Name string
	Tp   ColumnType

	arg1      int
	arg2      int
	isNotNull bool
}

type Tables []*Table

type Columns []*Column

// BoundRef is a table reference placed in the query being generated.
type BoundRef struct {
	Ref   TableReference
	Table *Table
}

type QueryState struct {
	Tracker *AliasTracker
	// Refs are resolved by the tracker, in emission order.
	Refs  []BoundRef
	Joins []*JoinClause
	// Fragments were built before the tracker and are emitted after Joins.
	Fragments    []StringJoin
	FragmentRefs []BoundRef

	FieldNumHint int
}

func NewState(opts ...func(ctl *ControlOption)) *State {
	s := &State{
		ctrl:   DefaultControlOption(),
		weight: make(map[string]int),
		repeat: make(map[string]Interval),
		env:    &Env{Elem: &Elem{}},
	}
	for _, opt := range opts {
		opt(s.ctrl)
	}
	adapter, err := AdapterByName(s.ctrl.Adapter)
	Assert(err == nil, err)
	s.adapter = adapter
	s.replacer = NewFnHookReplacer()
	s.AppendHook(s.replacer)
	s.AppendHook(NewFnHookScope(s))
	return s
}

// NewStateWithConfig builds a state from an already loaded ControlOption.
func NewStateWithConfig(ctrl *ControlOption) *State {
	return NewState(func(ctl *ControlOption) {
		*ctl = *ctrl
		cloneWeight := *ctrl.Weight
		ctl.Weight = &cloneWeight
	})
}

func (s *State) Env() *Env {
	return s.env
}

func (s *State) Config() *ControlOption {
	return s.ctrl
}

func (s *State) Adapter() Adapter {
	return s.adapter
}

// LastQuery returns the query state of the latest generated SELECT.
func (s *State) LastQuery() *QueryState {
	return s.lastQuery
}

func (s *State) AppendHook(hook FnEvaluateHook) {
	s.hooks = append(s.hooks, hook)
}

func (s *State) ReplaceRule(fn Fn, newFn Fn) {
	s.replacer.Replace(fn, newFn)
}

func (s *State) SetWeight(fn Fn, weight int) {
	Assert(weight >= 0)
	s.weight[fn.Info] = weight
}

func (s *State) GetWeight(fn Fn) int {
	if w, ok := s.weight[fn.Info]; ok {
		return w
	}
	return fn.Weight
}

func (s *State) SetRepeat(fn Fn, lower int, upper int) {
	Assert(lower <= upper)
	s.repeat[fn.Info] = Interval{lower: lower, upper: upper}
}

func (s *State) GetRepeat(fn Fn) (lower int, upper int, ok bool) {
	if w, ok := s.repeat[fn.Info]; ok {
		return w.lower, w.upper, true
	}
	return 0, 0, false
}

// Roll returns true with the given probability, expressed in percent.
func (s *State) Roll(ratio int) bool {
	return rand.Intn(ProbabilityMax) < ratio
}

// NewTracker starts an alias tracker bound to the state's adapter.
func (s *State) NewTracker(joins ExistingJoins) *AliasTracker {
	return NewAliasTracker(s.adapter, joins)
}

// Bind resolves the next reference to tbl and records it.
func (q *QueryState) Bind(tbl *Table, preferredAlias ...string) BoundRef {
	ref := BoundRef{
		Ref:   q.Tracker.AliasedTableFor(tbl.Name, preferredAlias...),
		Table: tbl,
	}
	q.Refs = append(q.Refs, ref)
	return ref
}

// AllRefs returns the tracked references followed by the fragment ones.
func (q *QueryState) AllRefs() []BoundRef {
	result := make([]BoundRef, 0, len(q.Refs)+len(q.FragmentRefs))
	result = append(result, q.Refs...)
	return append(result, q.FragmentRefs...)
}

// AliasAssignments lists every reference of the query as "table -> ident".
func (q *QueryState) AliasAssignments() []string {
	all := q.AllRefs()
	result := make([]string, 0, len(all))
	for _, r := range all {
		result = append(result, r.Ref.Table()+" -> "+r.Ref.Ident())
	}
	return result
}

// UsedTables returns the distinct tables referenced so far, in order,
// including the ones joined by fragments.
func (q *QueryState) UsedTables() Tables {
	var result Tables
	seen := make(map[int]struct{}, len(q.Refs))
	for _, r := range q.AllRefs() {
		if _, ok := seen[r.Table.ID]; ok {
			continue
		}
		seen[r.Table.ID] = struct{}{}
		result = append(result, r.Table)
	}
	return result
}

func (q *QueryState) RandRef() BoundRef {
	return q.Refs[rand.Intn(len(q.Refs))]
}

func (q *QueryState) RandAnyRef() BoundRef {
	all := q.AllRefs()
	return all[rand.Intn(len(all))]
}
