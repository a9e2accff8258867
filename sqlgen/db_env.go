package sqlgen

import "strings"

// Env is the stack of rule-local values. Every rule evaluation pushes a copy
// of the current Elem and restores it when the rule returns.
type Env struct {
	prev []*Elem
	*Elem
}

type Elem struct {
	Table  *Table
	Column *Column
	Ref    BoundRef
	QState *QueryState
	FnInfo string
}

func (e *Env) Enter(fnInfo string) {
	if e.Elem == nil {
		e.Elem = &Elem{}
	}
	saved := *e.Elem
	e.prev = append(e.prev, &saved)
	e.FnInfo = fnInfo
}

func (e *Env) Leave() {
	if len(e.prev) == 0 {
		return
	}
	last := e.prev[len(e.prev)-1]
	*e.Elem = *last
	e.prev = e.prev[:len(e.prev)-1]
}

func (e *Env) Clean() {
	e.Elem = &Elem{}
	e.prev = nil
}

func (e *Env) Depth() int {
	return len(e.prev)
}

// Stack returns the names of the rules being evaluated, outermost first.
func (e *Env) Stack() []string {
	if len(e.prev) == 0 {
		return nil
	}
	stack := make([]string, 0, len(e.prev))
	for _, p := range e.prev[1:] {
		stack = append(stack, p.FnInfo)
	}
	return append(stack, e.FnInfo)
}

func (e *Env) GetCurrentStack() string {
	return "'" + strings.Join(e.Stack(), "'-'") + "'"
}

func (e *Env) IsIn(fn Fn) bool {
	for _, p := range e.prev {
		if fn.Info == p.FnInfo {
			return true
		}
	}
	return e.Elem != nil && fn.Info == e.FnInfo
}
