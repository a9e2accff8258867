package sqlgen_test

import (
	"strings"
	"testing"

	"github.com/PingCAP-QE/join-alias-rand-test/sqlgen"
	"github.com/stretchr/testify/require"
)

// identityAdapter keeps candidates untouched so that only the suffix
// truncation shortens them.
type identityAdapter struct {
	maxLen int
}

func (a identityAdapter) Name() string                               { return "identity" }
func (a identityAdapter) QuoteIdentifier(name string) string         { return `"` + name + `"` }
func (a identityAdapter) NormalizeAliasCandidate(name string) string { return name }
func (a identityAdapter) MaxIdentifierLength() int                   { return a.maxLen }

func TestAliasTrackerFirstReferenceIsBare(t *testing.T) {
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.SingleTable())
	ref := tracker.AliasedTableFor("users")
	require.False(t, ref.IsAliased())
	require.Equal(t, "users", ref.Table())
	require.Equal(t, "users", ref.Ident())
	require.Equal(t, "`users`", ref.SQL(sqlgen.MySQLAdapter))
	require.Equal(t, 1, tracker.Count("users"))
}

func TestAliasTrackerSelfJoin(t *testing.T) {
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.SingleTable())
	require.Equal(t, "users", tracker.AliasedNameFor("users"))
	require.Equal(t, "users_2", tracker.AliasedNameFor("users"))
	require.Equal(t, "users_3", tracker.AliasedNameFor("users"))

	ref := tracker.AliasedTableFor("users")
	require.True(t, ref.IsAliased())
	require.Equal(t, "users", ref.Table())
	require.Equal(t, "users_4", ref.Alias())
	require.Equal(t, "`users` `users_4`", ref.SQL(sqlgen.MySQLAdapter))
}

func TestAliasTrackerPreferredAlias(t *testing.T) {
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.SingleTable())
	// The table name wins while it is free.
	require.Equal(t, "posts", tracker.AliasedNameFor("posts", "posts_users"))
	require.Equal(t, "posts_users", tracker.AliasedNameFor("posts", "posts_users"))
	require.Equal(t, "posts_users_2", tracker.AliasedNameFor("posts", "posts_users"))
	// An empty preference falls back to the table name.
	require.Equal(t, "posts_2", tracker.AliasedNameFor("posts", ""))
}

func TestAliasTrackerNormalizesCandidate(t *testing.T) {
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.SingleTable())
	require.Equal(t, "s.t", tracker.AliasedNameFor("s.t"))
	require.Equal(t, "s_t", tracker.AliasedNameFor("s.t"))
	require.Equal(t, "s_t_2", tracker.AliasedNameFor("s.t"))
}

func TestAliasTrackerTablesAreIndependent(t *testing.T) {
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.SingleTable())
	require.Equal(t, "a", tracker.AliasedNameFor("a"))
	require.Equal(t, "b", tracker.AliasedNameFor("b"))
	require.Equal(t, "a_2", tracker.AliasedNameFor("a"))
	require.Equal(t, "b_2", tracker.AliasedNameFor("b"))
	require.Equal(t, 2, tracker.Count("a"))
	require.Equal(t, 2, tracker.Count("b"))
	require.Equal(t, 0, tracker.Count("c"))

	other := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.SingleTable())
	require.Equal(t, "a", other.AliasedNameFor("a"))
}

func TestAliasTrackerNamesAreUnique(t *testing.T) {
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.SingleTable())
	seen := make(map[string]struct{})
	for i := 0; i < 9; i++ {
		for _, tbl := range []string{"users", "posts"} {
			name := tracker.AliasedNameFor(tbl)
			_, dup := seen[name]
			require.False(t, dup, name)
			seen[name] = struct{}{}
		}
	}
	require.Equal(t, 9, tracker.Count("users"))
	require.Equal(t, 9, tracker.Count("posts"))
}

func TestAliasTrackerSeededByStringJoins(t *testing.T) {
	joins := sqlgen.JoinFragments(sqlgen.StringJoin(`JOIN "users" ON "users"."id" = "posts"."user_id"`))
	tracker := sqlgen.NewAliasTracker(sqlgen.PostgresAdapter, joins)
	require.Equal(t, 1, tracker.InitialCount("users"))
	require.Equal(t, 0, tracker.InitialCount("posts"))

	ref := tracker.AliasedTableFor("users")
	require.True(t, ref.IsAliased())
	require.Equal(t, "users_2", ref.Alias())
	require.Equal(t, `"users" "users_2"`, ref.SQL(sqlgen.PostgresAdapter))

	require.Equal(t, "posts", tracker.AliasedNameFor("posts"))
}

func TestAliasTrackerInitialCount(t *testing.T) {
	joins := sqlgen.JoinFragments(
		sqlgen.StringJoin("INNER JOIN `users` on `users`.`id` = `posts`.`uid`"),
		sqlgen.StringJoin("left outer join `users` on `users`.`id` = `c`.`uid`"),
		sqlgen.StringJoin("join `users` `u` on `u`.`id` = `c`.`uid`"),
		sqlgen.StringJoin("JOIN `account_users` on 1 = 1"),
		sqlgen.StringJoin("JOIN `users`\ton 1 = 1"),
	)
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, joins)
	require.Equal(t, 3, tracker.InitialCount("users"))
	require.Equal(t, 1, tracker.InitialCount("u"))
	require.Equal(t, 1, tracker.InitialCount("account_users"))
	require.Equal(t, 0, tracker.InitialCount("posts"))
	require.Equal(t, 0, tracker.InitialCount("c"))
}

func TestAliasTrackerInitialCountIsCaseInsensitive(t *testing.T) {
	joins := sqlgen.JoinFragments(sqlgen.StringJoin("JOIN `Users` ON 1 = 1"))
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, joins)
	require.Equal(t, 1, tracker.InitialCount("users"))
	require.Equal(t, 1, tracker.InitialCount("USERS"))
}

func TestAliasTrackerInitialCountEscapesName(t *testing.T) {
	joins := sqlgen.JoinFragments(sqlgen.StringJoin("JOIN `axb` on 1 = 1"))
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, joins)
	require.Equal(t, 0, tracker.InitialCount("a.b"))
	require.Equal(t, 1, tracker.InitialCount("axb"))
}

func TestAliasTrackerSingleTableNeverScans(t *testing.T) {
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.SingleTable())
	require.Equal(t, 0, tracker.InitialCount("users"))

	empty := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.JoinFragments())
	require.Equal(t, 0, empty.InitialCount("users"))
}

func TestAliasTrackerSeededByJoinClauses(t *testing.T) {
	clause := &sqlgen.JoinClause{
		Tp:      sqlgen.JoinTypeLeft,
		Ref:     sqlgen.Aliased("users", "users_2"),
		On:      "`users`.`id` = `users_2`.`id`",
		Adapter: sqlgen.MySQLAdapter,
	}
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.JoinFragments(clause))
	require.Equal(t, 1, tracker.InitialCount("users_2"))
	require.Equal(t, 0, tracker.InitialCount("users"))
	require.Equal(t, "users", tracker.AliasedNameFor("users"))
}

func TestAliasTrackerTruncatesBeforeSuffix(t *testing.T) {
	tracker := sqlgen.NewAliasTracker(identityAdapter{maxLen: 10}, sqlgen.SingleTable())
	require.Equal(t, "t", tracker.AliasedNameFor("t"))
	require.Equal(t, "abcdefghijkl", tracker.AliasedNameFor("t", "abcdefghijkl"))
	name := tracker.AliasedNameFor("t", "abcdefghijkl")
	require.Equal(t, "abcdefgh_2", name)
	require.Len(t, name, 10)
}

func TestAliasTrackerLongNames(t *testing.T) {
	long := strings.Repeat("x", 64)
	tracker := sqlgen.NewAliasTracker(sqlgen.MySQLAdapter, sqlgen.SingleTable())
	require.Equal(t, long, tracker.AliasedNameFor(long))
	name := tracker.AliasedNameFor(long, long+"_parent")
	require.Equal(t, strings.Repeat("x", 62)+"_2", name)
	require.Len(t, name, sqlgen.MySQLAdapter.MaxIdentifierLength())

	pg := sqlgen.NewAliasTracker(sqlgen.PostgresAdapter, sqlgen.SingleTable())
	require.Equal(t, long, pg.AliasedNameFor(long))
	require.Equal(t, strings.Repeat("x", 63), pg.AliasedNameFor(long))
	require.Equal(t, strings.Repeat("x", 61)+"_2", pg.AliasedNameFor(long))
}

func TestAliasTrackerDefaultsToMySQL(t *testing.T) {
	joins := sqlgen.JoinFragments(sqlgen.StringJoin("JOIN `users` ON 1 = 1"))
	tracker := sqlgen.NewAliasTracker(nil, joins)
	require.Equal(t, 1, tracker.InitialCount("users"))
	require.Equal(t, "users_2", tracker.AliasedNameFor("users"))
}
