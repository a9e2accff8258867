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
	"regexp"
	"strconv"
	"strings"
)

// AliasTracker hands out table names and aliases for a single query build,
// taking into account the tables already joined by existing fragments.
//
// The order of calls decides which reference keeps the bare name, so callers
// must ask in the order the references are emitted. An AliasTracker is not
// safe for concurrent use.
//
// Suffixed aliases are pre-shortened by two characters only. Once a count
// reaches 10 the result can exceed MaxIdentifierLength; the adapter limit is
// not checked again after suffixing.
type AliasTracker struct {
	adapter Adapter
	joins   ExistingJoins
	counts  map[string]int
}

func NewAliasTracker(adapter Adapter, joins ExistingJoins) *AliasTracker {
	if adapter == nil {
		adapter = MySQLAdapter
	}
	return &AliasTracker{
		adapter: adapter,
		joins:   joins,
		counts:  make(map[string]int),
	}
}

// AliasedTableFor returns a bare reference when the table name is still free,
// otherwise a reference aliased by AliasedNameFor.
func (t *AliasTracker) AliasedTableFor(tableName string, preferredAlias ...string) TableReference {
	alias := t.AliasedNameFor(tableName, preferredAlias...)
	if alias == tableName {
		return Bare(tableName)
	}
	return Aliased(tableName, alias)
}

// AliasedNameFor reserves a name for tableName. The first reference gets the
// table name itself; later ones get the normalized preferred alias, suffixed
// with its count when that alias is taken too. The preferred alias defaults to
// the table name.
func (t *AliasTracker) AliasedNameFor(tableName string, preferredAlias ...string) string {
	alias := tableName
	if len(preferredAlias) > 0 && preferredAlias[0] != "" {
		alias = preferredAlias[0]
	}

	if t.count(tableName) == 0 {
		t.counts[tableName] = 1
		return tableName
	}

	alias = t.adapter.NormalizeAliasCandidate(alias)
	n := t.count(alias) + 1
	t.counts[alias] = n
	if n > 1 {
		return t.truncate(alias) + "_" + strconv.Itoa(n)
	}
	return alias
}

// Count returns the current usage count of name, seeding it on first use.
func (t *AliasTracker) Count(name string) int {
	return t.count(name)
}

// InitialCount is the number of existing joins that already reference name,
// either directly or through an alias token in front of it.
func (t *AliasTracker) InitialCount(name string) int {
	if t.joins.IsSingleTable() {
		return 0
	}
	quoted := strings.ToLower(t.adapter.QuoteIdentifier(name))
	pattern := regexp.MustCompile(`(?i)join(?:\s+\w+)?\s+(?:\S+\s+)?` + regexp.QuoteMeta(quoted) + `\son`)
	total := 0
	for _, f := range t.joins.fragments {
		total += len(pattern.FindAllStringIndex(strings.ToLower(f.LeftText()), -1))
	}
	return total
}

func (t *AliasTracker) count(name string) int {
	if n, ok := t.counts[name]; ok {
		return n
	}
	n := t.InitialCount(name)
	t.counts[name] = n
	return n
}

func (t *AliasTracker) truncate(name string) string {
	return truncateRunes(name, t.adapter.MaxIdentifierLength()-2)
}
