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
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var Empty = Fn{
	Info:   "Empty",
	Weight: 1,
	Gen: func(state *State) (string, error) {
		return "", nil
	},
}

func Str(str string) Fn {
	return Fn{Weight: 1, Gen: func(state *State) (string, error) {
		return str, nil
	}}
}

func Strs(strs ...string) Fn {
	return Str(strings.Join(strs, " "))
}

// None is a rule that cannot be generated.
func None(reason string) Fn {
	return NoneBecauseOf(errors.New(reason))
}

func NoneBecauseOf(err error) Fn {
	return Fn{Weight: 1, Gen: func(state *State) (string, error) {
		return "", err
	}}
}

func And(fns ...Fn) Fn {
	return Fn{Weight: 1, Gen: func(state *State) (string, error) {
		return collectResult(state, fns...)
	}}
}

func Opt(fn Fn) Fn {
	return Fn{Weight: 1, Gen: func(state *State) (string, error) {
		if RandomBool() {
			return fn.Eval(state)
		}
		return "", nil
	}}
}

func Or(fns ...Fn) Fn {
	return Fn{Weight: 1, Gen: func(state *State) (string, error) {
		candidates := make([]Fn, 0, len(fns))
		for _, f := range fns {
			if f.available(state) {
				candidates = append(candidates, f)
			}
		}
		if len(candidates) == 0 {
			return "", errors.Errorf("no available branch in %s", state.Env().GetCurrentStack())
		}
		chosen := candidates[randomSelectByFactor(candidates, state.GetWeight)]
		return chosen.Eval(state)
	}}
}

// Repeat evaluates fn a number of times drawn from its repeat interval.
func Repeat(fn Fn, sep Fn) Fn {
	return Fn{Weight: 1, Gen: func(state *State) (string, error) {
		cnt := randGenRepeatCount(state, fn)
		fns := make([]Fn, 0, 2*cnt)
		for i := 0; i < cnt; i++ {
			if i != 0 {
				fns = append(fns, sep)
			}
			fns = append(fns, fn)
		}
		return collectResult(state, fns...)
	}}
}

func Join(sep Fn, fns ...Fn) Fn {
	newFns := make([]Fn, 0, len(fns)*2)
	for i, f := range fns {
		if i != 0 {
			newFns = append(newFns, sep)
		}
		newFns = append(newFns, f)
	}
	return And(newFns...)
}

func RandomNum(low, high int64) string {
	num := rand.Int63n(high - low + 1)
	return strconv.FormatInt(num+low, 10)
}

func RandomBool() bool {
	return rand.Intn(2) == 0
}

func collectResult(state *State, fns ...Fn) (string, error) {
	var resStr strings.Builder
	for _, f := range fns {
		res, err := f.Eval(state)
		if err != nil {
			return "", err
		}
		res = strings.Trim(res, " ")
		if len(res) == 0 {
			continue
		}
		if resStr.Len() > 0 {
			resStr.WriteString(" ")
		}
		resStr.WriteString(res)
	}
	return resStr.String(), nil
}
