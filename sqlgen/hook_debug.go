package sqlgen

import (
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

var _ FnEvaluateHook = (*FnHookDebug)(nil)

// FnHookDebug logs every named rule at debug level.
type FnHookDebug struct {
	FnHookDefault
	parentFn []string
}

func (d *FnHookDebug) BeforeEvaluate(_ *State, fn Fn) Fn {
	if fn.Info == "" {
		return fn
	}
	d.parentFn = append(d.parentFn, fn.Info)
	log.Debug("evaluating", zap.Strings("stack", d.parentFn))
	return fn
}

func (d *FnHookDebug) AfterEvaluate(_ *State, fn Fn, result string) string {
	if fn.Info == "" {
		return result
	}
	d.parentFn = d.parentFn[:len(d.parentFn)-1]
	log.Debug("evaluated", zap.String("fn", fn.Info), zap.String("result", result))
	return result
}

func NewFnHookDebug() *FnHookDebug {
	return &FnHookDebug{FnHookDefault: NewFnHookDefault("debug")}
}
