package sqlgen

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

var _ FnEvaluateHook = (*FnHookSQLFile)(nil)

// FnHookSQLFile writes every statement produced by a top level rule,
// terminated by ";". It must be appended after the scope hook.
type FnHookSQLFile struct {
	FnHookDefault
	w   io.Writer
	err error
}

func (s *FnHookSQLFile) AfterEvaluate(state *State, fn Fn, result string) string {
	if s.err != nil || result == "" || fn.Info == "" || state.Env().Depth() != 1 {
		return result
	}
	if _, err := fmt.Fprintf(s.w, "%s;\n", result); err != nil {
		s.err = errors.Wrap(err, "write sql file")
	}
	return result
}

// Err returns the first write error.
func (s *FnHookSQLFile) Err() error {
	return s.err
}

func NewFnHookSQLFile(w io.Writer) *FnHookSQLFile {
	return &FnHookSQLFile{
		FnHookDefault: NewFnHookDefault("sqlfile"),
		w:             w,
	}
}
