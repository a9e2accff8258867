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
	"strings"

	"github.com/pkg/errors"
)

// Adapter supplies the database specific identifier rules the AliasTracker
// depends on.
type Adapter interface {
	// Name returns the adapter name, as accepted by AdapterByName.
	Name() string
	// QuoteIdentifier quotes a table name or an alias.
	QuoteIdentifier(name string) string
	// NormalizeAliasCandidate returns the canonical form of a proposed alias.
	NormalizeAliasCandidate(name string) string
	// MaxIdentifierLength is the longest identifier the database accepts.
	MaxIdentifierLength() int
}

const (
	AdapterMySQL    = "mysql"
	AdapterTiDB     = "tidb"
	AdapterPostgres = "postgres"
)

var (
	_ Adapter = quotingAdapter{}

	// MySQLAdapter is used for both MySQL and TiDB.
	MySQLAdapter Adapter = quotingAdapter{name: AdapterMySQL, quote: "`", maxLen: 64}
	// PostgresAdapter follows NAMEDATALEN-1.
	PostgresAdapter Adapter = quotingAdapter{name: AdapterPostgres, quote: `"`, maxLen: 63}
)

// AdapterByName looks up a builtin adapter.
func AdapterByName(name string) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AdapterMySQL, AdapterTiDB:
		return MySQLAdapter, nil
	case AdapterPostgres, "postgresql", "pg":
		return PostgresAdapter, nil
	}
	return nil, errors.Errorf("unknown adapter %q", name)
}

type quotingAdapter struct {
	name   string
	quote  string
	maxLen int
}

func (a quotingAdapter) Name() string {
	return a.name
}

func (a quotingAdapter) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, a.quote, a.quote+a.quote)
	return a.quote + escaped + a.quote
}

func (a quotingAdapter) NormalizeAliasCandidate(name string) string {
	return strings.ReplaceAll(truncateRunes(name, a.maxLen), ".", "_")
}

func (a quotingAdapter) MaxIdentifierLength() int {
	return a.maxLen
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}
