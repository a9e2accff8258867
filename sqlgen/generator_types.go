// Copyright 2019 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package sqlgen

import (
	"runtime"

	"github.com/pkg/errors"
)

type Fn struct {
	Gen    func(state *State) (string, error)
	Info   string
	Weight int
	Repeat Interval
	Preds  []func(state *State) bool
}

func defaultFn() Fn {
	return Fn{
		Weight: 1,
		Repeat: Interval{1, 3},
	}
}

// NewFn declares a rule. The rule name is taken from the variable it is
// assigned to.
func NewFn(fn func(state *State) Fn) Fn {
	_, filePath, line, _ := runtime.Caller(1)
	ret := defaultFn()
	ret.Info = constructFnInfo(filePath, line)
	ret.Gen = func(state *State) (string, error) {
		return fn(state).Eval(state)
	}
	return ret
}

func (f Fn) Equal(other Fn) bool {
	if f.Info == "" || other.Info == "" {
		return false
	}
	return f.Info == other.Info
}

// W overrides the weight.
func (f Fn) W(weight int) Fn {
	newFn := f
	newFn.Weight = weight
	return newFn
}

// R overrides the repeat interval used by Repeat.
func (f Fn) R(low, high int) Fn {
	newFn := f
	newFn.Repeat = Interval{lower: low, upper: high}
	return newFn
}

// P appends prerequisites. A rule whose prerequisites fail is never chosen
// by Or, and fails when evaluated directly.
func (f Fn) P(preds ...func(state *State) bool) Fn {
	newFn := f
	newFn.Preds = make([]func(state *State) bool, 0, len(f.Preds)+len(preds))
	newFn.Preds = append(newFn.Preds, f.Preds...)
	newFn.Preds = append(newFn.Preds, preds...)
	return newFn
}

func (f Fn) available(state *State) bool {
	if state.GetWeight(f) == 0 {
		return false
	}
	for _, p := range f.Preds {
		if !p(state) {
			return false
		}
	}
	return true
}

func (f Fn) Eval(state *State) (string, error) {
	newFn := f
	for _, l := range state.hooks {
		newFn = l.BeforeEvaluate(state, newFn)
	}
	var (
		res string
		err error
	)
	switch {
	case state.GetWeight(newFn) == 0:
	case !newFn.available(state):
		err = errors.Errorf("rule %s: prerequisites not satisfied", newFn.Info)
	default:
		res, err = newFn.Gen(state)
	}
	for i := len(state.hooks) - 1; i >= 0; i-- {
		res = state.hooks[i].AfterEvaluate(state, newFn, res)
	}
	return res, err
}
