package sqlgen_test

import (
	"strings"
	"testing"

	"github.com/PingCAP-QE/join-alias-rand-test/sqlgen"
	"github.com/stretchr/testify/require"
)

func prepareTables(t *testing.T, state *sqlgen.State, count int) {
	for i := 0; i < count; i++ {
		_, err := sqlgen.CreateTable.Eval(state)
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			_, err = sqlgen.InsertInto.Eval(state)
			require.NoError(t, err)
		}
	}
}

// requireUniqueIdents checks that no two references of the last query share
// an identifier and that none exceeds the adapter limit.
func requireUniqueIdents(t *testing.T, state *sqlgen.State, query string) {
	qs := state.LastQuery()
	require.NotNil(t, qs)
	limit := state.Adapter().MaxIdentifierLength()
	seen := make(map[string]struct{})
	for _, r := range qs.AllRefs() {
		ident := r.Ref.Ident()
		_, dup := seen[ident]
		require.False(t, dup, "%s\n%v", query, qs.AliasAssignments())
		seen[ident] = struct{}{}
		require.LessOrEqual(t, len([]rune(ident)), limit, ident)
		require.Contains(t, query, r.Ref.SQL(state.Adapter()))
	}
	require.False(t, qs.Refs[0].Ref.IsAliased(), query)
}

func TestStart(t *testing.T) {
	state := sqlgen.NewState()
	defer state.CheckIntegrity()
	for i := 0; i < 300; i++ {
		res, err := sqlgen.Start.Eval(state)
		require.NoError(t, err)
		require.Greater(t, len(res), 0, i)
	}
	require.Equal(t, state.Env().Depth(), 0)
}

func TestCreateTable(t *testing.T) {
	state := sqlgen.NewState()
	defer state.CheckIntegrity()
	for i := 0; i < 50; i++ {
		res, err := sqlgen.CreateTable.Eval(state)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(res, "create table `tbl_"), res)
		require.Equal(t, state.Config().InitColCount, strings.Count(res, "`col_"), res)
	}
	require.Len(t, state.Tables, 50)
}

func TestInsertInto(t *testing.T) {
	state := sqlgen.NewState()
	defer state.CheckIntegrity()
	_, err := sqlgen.InsertInto.Eval(state)
	require.Error(t, err)

	prepareTables(t, state, 2)
	total := 0
	for _, tbl := range state.Tables {
		total += len(tbl.Values)
	}
	require.Equal(t, 6, total)
}

func TestSingleSelect(t *testing.T) {
	state := sqlgen.NewState()
	defer state.CheckIntegrity()
	_, err := sqlgen.SingleSelect.Eval(state)
	require.Error(t, err)

	prepareTables(t, state, 3)
	for i := 0; i < 100; i++ {
		res, err := sqlgen.SingleSelect.Eval(state)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(res, "select "), res)
		qs := state.LastQuery()
		require.Len(t, qs.Refs, 1)
		require.Empty(t, qs.Joins)
		require.NotContains(t, res, " join ")
		requireUniqueIdents(t, state, res)
	}
}

func TestJoinSelect(t *testing.T) {
	state := sqlgen.NewState()
	defer state.CheckIntegrity()
	prepareTables(t, state, 4)

	aliased, fragments := 0, 0
	for i := 0; i < 500; i++ {
		res, err := sqlgen.JoinSelect.Eval(state)
		require.NoError(t, err)
		requireUniqueIdents(t, state, res)

		qs := state.LastQuery()
		require.NotEmpty(t, qs.Joins)
		require.LessOrEqual(t, len(qs.Joins), state.Config().MaxJoinCount)
		fragmentTables := make(map[string]struct{})
		for _, f := range qs.FragmentRefs {
			fragmentTables[f.Table.Name] = struct{}{}
		}
		fragments += len(qs.Fragments)
		for _, r := range qs.Refs {
			if _, ok := fragmentTables[r.Table.Name]; ok {
				require.True(t, r.Ref.IsAliased(), "%s\n%v", res, qs.AliasAssignments())
			}
			if r.Ref.IsAliased() {
				aliased++
			}
		}
	}
	require.Greater(t, aliased, 0)
	require.Greater(t, fragments, 0)
}

func TestJoinSelectSelfJoin(t *testing.T) {
	state := sqlgen.NewState(func(ctl *sqlgen.ControlOption) {
		ctl.Weight.SelfJoinRatio = 100
		ctl.Weight.StringJoinRatio = 0
		ctl.MaxJoinCount = 6
	})
	defer state.CheckIntegrity()
	prepareTables(t, state, 1)
	tbl := state.Tables[0]

	for i := 0; i < 100; i++ {
		res, err := sqlgen.JoinSelect.Eval(state)
		require.NoError(t, err)
		requireUniqueIdents(t, state, res)
		qs := state.LastQuery()
		require.Empty(t, qs.Fragments)
		for j, r := range qs.Refs {
			require.Equal(t, tbl.Name, r.Table.Name)
			require.Equal(t, j > 0, r.Ref.IsAliased())
		}
	}
}

func TestJoinSelectLongTableNames(t *testing.T) {
	for _, adapter := range []string{sqlgen.AdapterMySQL, sqlgen.AdapterPostgres} {
		state := sqlgen.NewState(func(ctl *sqlgen.ControlOption) {
			ctl.Adapter = adapter
			ctl.Weight.LongTableNameRatio = 100
			ctl.Weight.ComposedAliasRatio = 50
			ctl.MaxJoinCount = 6
		})
		prepareTables(t, state, 2)
		for _, tbl := range state.Tables {
			require.Len(t, tbl.Name, state.Adapter().MaxIdentifierLength())
		}
		for i := 0; i < 200; i++ {
			res, err := sqlgen.JoinSelect.Eval(state)
			require.NoError(t, err)
			requireUniqueIdents(t, state, res)
		}
		state.CheckIntegrity()
	}
}

func TestPostgresQuoting(t *testing.T) {
	state := sqlgen.NewState(func(ctl *sqlgen.ControlOption) {
		ctl.Adapter = sqlgen.AdapterPostgres
	})
	defer state.CheckIntegrity()
	prepareTables(t, state, 3)
	for i := 0; i < 100; i++ {
		res, err := sqlgen.Query.Eval(state)
		require.NoError(t, err)
		require.NotContains(t, res, "`")
		require.Contains(t, res, `"tbl_`)
		requireUniqueIdents(t, state, res)
	}
}

func TestSetWeight(t *testing.T) {
	state := sqlgen.NewState()
	defer state.CheckIntegrity()
	prepareTables(t, state, 3)
	state.SetWeight(sqlgen.JoinSelect, 0)
	for i := 0; i < 100; i++ {
		_, err := sqlgen.Query.Eval(state)
		require.NoError(t, err)
		require.Empty(t, state.LastQuery().Joins)
	}
}

func TestSetRepeat(t *testing.T) {
	state := sqlgen.NewState()
	defer state.CheckIntegrity()
	prepareTables(t, state, 2)
	state.SetRepeat(sqlgen.Predicate, 4, 4)
	state.ReplaceRule(sqlgen.WhereClause, sqlgen.And(sqlgen.Str("where"), sqlgen.Predicates))
	for i := 0; i < 50; i++ {
		res, err := sqlgen.SingleSelect.Eval(state)
		require.NoError(t, err)
		where := res[strings.Index(res, " where "):strings.Index(res, " order by ")]
		require.Equal(t, 3, strings.Count(where, " and ")+strings.Count(where, " or "), res)
	}
}
