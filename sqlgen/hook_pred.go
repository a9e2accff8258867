package sqlgen

var _ FnEvaluateHook = (*FnHookPred)(nil)

// FnHookPred records whether any of the given rules was evaluated.
type FnHookPred struct {
	FnHookDefault
	toMatchFns []Fn
	matched    bool
}

func (d *FnHookPred) AfterEvaluate(_ *State, fn Fn, result string) string {
	for _, mf := range d.toMatchFns {
		if mf.Equal(fn) {
			d.matched = true
			break
		}
	}
	return result
}

func (d *FnHookPred) ResetMatched() {
	d.matched = false
}

func (d *FnHookPred) Matched() bool {
	return d.matched
}

func (d *FnHookPred) AddMatchFn(fns ...Fn) *FnHookPred {
	d.toMatchFns = append(d.toMatchFns, fns...)
	return d
}

func NewFnHookPred() *FnHookPred {
	return &FnHookPred{FnHookDefault: NewFnHookDefault("pred")}
}
