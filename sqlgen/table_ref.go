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

// TableReference is a table as it appears in a FROM or JOIN clause,
// either bare or aliased.
type TableReference struct {
	table string
	alias string
}

func Bare(table string) TableReference {
	return TableReference{table: table}
}

func Aliased(table, alias string) TableReference {
	return TableReference{table: table, alias: alias}
}

func (r TableReference) Table() string {
	return r.table
}

// Alias is empty for a bare reference.
func (r TableReference) Alias() string {
	return r.alias
}

func (r TableReference) IsAliased() bool {
	return r.alias != ""
}

// Ident is the name other clauses use to qualify columns of this reference.
func (r TableReference) Ident() string {
	if r.IsAliased() {
		return r.alias
	}
	return r.table
}

// SQL renders the reference. The alias follows the table without AS, so the
// rendered text is recognized when scanned as an existing join.
func (r TableReference) SQL(adapter Adapter) string {
	if !r.IsAliased() {
		return adapter.QuoteIdentifier(r.table)
	}
	return adapter.QuoteIdentifier(r.table) + " " + adapter.QuoteIdentifier(r.alias)
}

func (r TableReference) String() string {
	return r.SQL(MySQLAdapter)
}
