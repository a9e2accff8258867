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

import "strings"

// JoinFragment is a piece of join text built outside of the AliasTracker.
type JoinFragment interface {
	LeftText() string
}

var (
	_ JoinFragment = StringJoin("")
	_ JoinFragment = (*JoinClause)(nil)
)

// StringJoin is a hand written join, kept verbatim.
type StringJoin string

func (j StringJoin) LeftText() string {
	return string(j)
}

// JoinClause is a join rendered by the generator.
type JoinClause struct {
	Tp      JoinType
	Ref     TableReference
	On      string
	Adapter Adapter
}

func (j *JoinClause) LeftText() string {
	adapter := j.Adapter
	if adapter == nil {
		adapter = MySQLAdapter
	}
	parts := []string{j.Tp.String(), j.Ref.SQL(adapter)}
	if j.On != "" {
		parts = append(parts, "on", j.On)
	}
	return strings.Join(parts, " ")
}

// ExistingJoins is what an AliasTracker scans before handing out names:
// either a single base table with nothing to scan, or a list of fragments.
type ExistingJoins struct {
	singleTable bool
	fragments   []JoinFragment
}

// SingleTable means the query has no joins built before the tracker.
func SingleTable() ExistingJoins {
	return ExistingJoins{singleTable: true}
}

// JoinFragments captures the given fragments in order.
func JoinFragments(fragments ...JoinFragment) ExistingJoins {
	cp := make([]JoinFragment, len(fragments))
	copy(cp, fragments)
	return ExistingJoins{fragments: cp}
}

func (e ExistingJoins) IsSingleTable() bool {
	return e.singleTable
}

func (e ExistingJoins) Fragments() []JoinFragment {
	cp := make([]JoinFragment, len(e.fragments))
	copy(cp, e.fragments)
	return cp
}
