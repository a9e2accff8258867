package sqlgen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cznic/mathutil"
)

var Query = NewFn(func(state *State) Fn {
	w := state.ctrl.Weight
	return Or(
		SingleSelect.W(w.SingleSelect),
		JoinSelect.W(w.JoinSelect),
	)
}).P(HasTables)

// SingleSelect queries one table; its tracker never scans anything.
var SingleSelect = NewFn(func(state *State) Fn {
	qs := &QueryState{Tracker: state.NewTracker(SingleTable())}
	qs.Bind(state.Tables.Rand())
	state.env.QState = qs
	state.lastQuery = qs
	return CommonSelect
}).P(HasTables)

// JoinSelect joins the base table with up to MaxJoinCount references, some of
// them repeating a table already in the query. Hand written fragments may
// already join other tables before any name is handed out; the tracker is
// seeded with them.
var JoinSelect = NewFn(func(state *State) Fn {
	base := state.Tables.Rand()
	qs := &QueryState{}
	if len(state.Tables) > 1 && state.Roll(state.ctrl.Weight.StringJoinRatio) {
		buildStringJoins(state, qs, base)
	}
	existing := SingleTable()
	if len(qs.Fragments) > 0 {
		fragments := make([]JoinFragment, 0, len(qs.Fragments))
		for _, f := range qs.Fragments {
			fragments = append(fragments, f)
		}
		existing = JoinFragments(fragments...)
	}
	qs.Tracker = state.NewTracker(existing)
	baseRef := qs.Bind(base)
	Assert(!baseRef.Ref.IsAliased(), "string joins must not join the base table", qs.Fragments)

	joinCount := 1 + rand.Intn(mathutil.Min(state.ctrl.MaxJoinCount, 2*len(state.Tables)))
	for i := 0; i < joinCount; i++ {
		var tbl *Table
		if state.Roll(state.ctrl.Weight.SelfJoinRatio) {
			tbl = qs.UsedTables().Rand()
		} else {
			tbl = state.Tables.Rand()
		}
		parent := qs.RandRef()
		var preferred string
		if state.Roll(state.ctrl.Weight.ComposedAliasRatio) {
			preferred = tbl.Name + "_" + parent.Table.Name
		}
		ref := qs.Bind(tbl, preferred)
		clause := &JoinClause{
			Tp:      JoinType(rand.Intn(int(JoinTypeMax))),
			Ref:     ref.Ref,
			Adapter: state.adapter,
		}
		if clause.Tp.NeedOn() {
			l, r := RandColumnPair(parent.Table.Columns, tbl.Columns)
			clause.On = PrintQualifiedColumn(state.adapter, parent.Ref, l) + " = " +
				PrintQualifiedColumn(state.adapter, ref.Ref, r)
		}
		qs.Joins = append(qs.Joins, clause)
	}
	state.env.QState = qs
	state.lastQuery = qs
	return CommonSelect
}).P(HasTables)

// buildStringJoins writes one or two joins to other tables by their bare
// names, the way a caller would hand them over as raw SQL.
func buildStringJoins(state *State, qs *QueryState, base *Table) {
	others := state.Tables.Filter(func(t *Table) bool { return t.ID != base.ID })
	perm := rand.Perm(len(others))
	cnt := 1 + rand.Intn(mathutil.Min(2, len(others)))
	baseRef := Bare(base.Name)
	for _, idx := range perm[:cnt] {
		tbl := others[idx]
		ref := Bare(tbl.Name)
		l, r := RandColumnPair(base.Columns, tbl.Columns)
		tp := JoinTypeInner
		if RandomBool() {
			tp = JoinTypeLeft
		}
		text := fmt.Sprintf("%s %s on %s = %s", strings.ToUpper(tp.String()),
			state.adapter.QuoteIdentifier(tbl.Name),
			PrintQualifiedColumn(state.adapter, baseRef, l),
			PrintQualifiedColumn(state.adapter, ref, r))
		qs.Fragments = append(qs.Fragments, StringJoin(text))
		qs.FragmentRefs = append(qs.FragmentRefs, BoundRef{Ref: ref, Table: tbl})
	}
}

var CommonSelect = NewFn(func(state *State) Fn {
	return And(
		Str("select"), SelectFields,
		Str("from"), TableReferences,
		WhereClause, OrderByLimit,
	)
}).P(HasQueryState)

var SelectFields = NewFn(func(state *State) Fn {
	qs := state.env.QState
	if qs.FieldNumHint == 0 {
		qs.FieldNumHint = 1 + rand.Intn(5)
	}
	fields := make([]string, 0, qs.FieldNumHint)
	for i := 0; i < qs.FieldNumHint; i++ {
		ref := qs.RandAnyRef()
		col := ref.Table.Columns.Rand()
		fields = append(fields, fmt.Sprintf("%s as %s%d",
			PrintQualifiedColumn(state.adapter, ref.Ref, col), fieldNamePrefix, i))
	}
	return Str(strings.Join(fields, ", "))
})

var TableReferences = NewFn(func(state *State) Fn {
	qs := state.env.QState
	parts := make([]string, 0, 1+len(qs.Joins)+len(qs.Fragments))
	parts = append(parts, qs.Refs[0].Ref.SQL(state.adapter))
	for _, j := range qs.Joins {
		parts = append(parts, j.LeftText())
	}
	for _, f := range qs.Fragments {
		parts = append(parts, f.LeftText())
	}
	return Str(strings.Join(parts, " "))
})

var WhereClause = NewFn(func(state *State) Fn {
	return Or(
		Empty,
		And(Str("where"), Predicates).W(3),
	)
})

var Predicates = NewFn(func(state *State) Fn {
	return Repeat(Predicate.R(1, 3), AndOr)
})

var AndOr = NewFn(func(state *State) Fn {
	return Or(
		Str("and").W(3),
		Str("or"),
	)
})

var Predicate = NewFn(func(state *State) Fn {
	ref := state.env.QState.RandAnyRef()
	col := ref.Table.Columns.Rand()
	name := PrintQualifiedColumn(state.adapter, ref.Ref, col)
	val := func() string { return ref.Table.GetRandRowVal(col) }
	return Or(
		Strs(name, "=", val()).W(2),
		Strs(name, "in", "(", val(), ",", val(), ")"),
		Strs(name, "is null"),
		Strs("not(", name, "<=>", val(), ")"),
	)
})

var OrderByLimit = NewFn(func(state *State) Fn {
	qs := state.env.QState
	return And(
		Strs("order by", PrintFieldNames(qs.FieldNumHint)),
		Opt(Strs("limit", RandomNum(1, 100))),
	)
})
