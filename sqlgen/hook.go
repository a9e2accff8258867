package sqlgen

// FnEvaluateHook observes or rewrites rules around their evaluation.
// AfterEvaluate runs for every BeforeEvaluate, in reverse hook order, even
// when the rule fails.
type FnEvaluateHook interface {
	Info() string
	BeforeEvaluate(state *State, fn Fn) Fn
	AfterEvaluate(state *State, fn Fn, res string) string
}

var _ FnEvaluateHook = (*FnHookDefault)(nil)

type FnHookDefault struct {
	info string
}

func (s FnHookDefault) BeforeEvaluate(_ *State, fn Fn) Fn {
	return fn
}

func (s FnHookDefault) AfterEvaluate(_ *State, _ Fn, res string) string {
	return res
}

func (s FnHookDefault) Info() string {
	return s.info
}

func NewFnHookDefault(info string) FnHookDefault {
	return FnHookDefault{info: info}
}
