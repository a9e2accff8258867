package sqlgen

var _ FnEvaluateHook = (*FnHookScope)(nil)

// FnHookScope keeps State.Env in step with the named rules being evaluated.
type FnHookScope struct {
	FnHookDefault
}

func (s *FnHookScope) BeforeEvaluate(state *State, fn Fn) Fn {
	if fn.Info != "" {
		state.Env().Enter(fn.Info)
	}
	return fn
}

func (s *FnHookScope) AfterEvaluate(state *State, fn Fn, result string) string {
	if fn.Info != "" {
		state.Env().Leave()
	}
	return result
}

func NewFnHookScope(_ *State) *FnHookScope {
	return &FnHookScope{
		FnHookDefault: NewFnHookDefault("scope"),
	}
}
