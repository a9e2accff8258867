package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PingCAP-QE/join-alias-rand-test/cases"
	"github.com/PingCAP-QE/join-alias-rand-test/sqlgen"
	"github.com/go-sql-driver/mysql"
	"github.com/pingcap/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	. "github.com/zyguan/just"
	"github.com/zyguan/sqlz"
	"github.com/zyguan/sqlz/resultset"
	"go.uber.org/zap"
)

const (
	errSyntax         = 1064
	errNonUniqueTable = 1066
)

type stateOptions struct {
	configPath string
	adapter    string
	caseName   string
}

func rootCmd() *cobra.Command {
	var (
		logLevel string
		opts     stateOptions
	)
	cmd := &cobra.Command{
		Use: "sqlgen",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger(logLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML file overriding the control options")
	cmd.PersistentFlags().StringVar(&opts.adapter, "adapter", "", "database adapter: mysql, tidb or postgres")
	cmd.PersistentFlags().StringVar(&opts.caseName, "case", "", "preset: self-join, long-name or string-join")
	cmd.AddCommand(printCmd(&opts))
	cmd.AddCommand(aliasesCmd(&opts))
	cmd.AddCommand(checkSyntaxCmd(&opts))
	cmd.AddCommand(abtestCmd(&opts))

	return cmd
}

func initLogger(level string) error {
	lg, props, err := log.InitLogger(&log.Config{Level: level, Format: "text"})
	if err != nil {
		return errors.Wrap(err, "init logger")
	}
	log.ReplaceGlobals(lg, props)
	return nil
}

func newState(opts *stateOptions) (*sqlgen.State, error) {
	ctrl, err := sqlgen.LoadControlOption(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.adapter != "" {
		ctrl.Adapter = opts.adapter
	}
	if err := ctrl.Validate(); err != nil {
		return nil, err
	}
	if opts.caseName == "" {
		return sqlgen.NewStateWithConfig(ctrl), nil
	}
	state := cases.ByName(opts.caseName, func(ctl *sqlgen.ControlOption) {
		*ctl = *ctrl
		cloneWeight := *ctrl.Weight
		ctl.Weight = &cloneWeight
	})
	if state == nil {
		return nil, errors.Errorf("unknown case %q", opts.caseName)
	}
	return state, nil
}

func printCmd(opts *stateOptions) *cobra.Command {
	var (
		count int
		seed  string
	)
	cmd := &cobra.Command{
		Use:           "print",
		Short:         "Print the schema statements followed by join queries",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parseAndSetSeed(seed)
			state, err := newState(opts)
			if err != nil {
				return err
			}
			queries, err := generateInitialSQLs(state)
			if err != nil {
				return err
			}
			more, err := generateSQLs(state, sqlgen.JoinSelect, count)
			if err != nil {
				return err
			}
			for _, q := range append(queries, more...) {
				fmt.Printf("%s;\n", q)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of SQLs")
	cmd.Flags().StringVar(&seed, "seed", "1", "random seed")
	return cmd
}

func aliasesCmd(opts *stateOptions) *cobra.Command {
	var (
		count int
		seed  string
	)
	cmd := &cobra.Command{
		Use:           "aliases",
		Short:         "Print join queries with the table name or alias given to each reference",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parseAndSetSeed(seed)
			state, err := newState(opts)
			if err != nil {
				return err
			}
			if _, err := generateInitialSQLs(state); err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				query, err := sqlgen.JoinSelect.Eval(state)
				if err != nil {
					return err
				}
				printAliases(os.Stdout, i, query, state.LastQuery())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of queries")
	cmd.Flags().StringVar(&seed, "seed", "1", "random seed")
	return cmd
}

func printAliases(w io.Writer, seq int, query string, qs *sqlgen.QueryState) {
	fmt.Fprintf(w, "/* %d */ %s;\n", seq, query)
	for _, a := range qs.AliasAssignments() {
		fmt.Fprintf(w, "--   %s\n", a)
	}
}

func checkSyntaxCmd(opts *stateOptions) *cobra.Command {
	var (
		stmtCount  int
		seed       string
		debug      bool
		dsn        string
		failfast   bool
		outputFile string
	)
	cmd := &cobra.Command{
		Use:           "check-syntax",
		Short:         "Run syntax check test",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parseAndSetSeed(seed)
			state, err := newState(opts)
			if err != nil {
				return err
			}
			if state.Adapter().Name() != sqlgen.AdapterMySQL {
				return errors.Errorf("check-syntax runs on MySQL compatible servers, got adapter %s", state.Adapter().Name())
			}
			if debug {
				state.AppendHook(sqlgen.NewFnHookDebug())
			}
			var sqlFile *sqlgen.FnHookSQLFile
			if outputFile != "" {
				f, err := os.OpenFile(outputFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
				if err != nil {
					return errors.Wrap(err, "open output file")
				}
				defer f.Close()
				sqlFile = sqlgen.NewFnHookSQLFile(f)
				state.AppendHook(sqlFile)
			}
			conn := setUpDatabaseConnection(dsn)
			defer conn.Close()

			queries, err := generateInitialSQLs(state)
			if err != nil {
				return err
			}
			more, err := generateSQLs(state, sqlgen.Start, stmtCount)
			if err != nil {
				return err
			}
			queries = append(queries, more...)
			if sqlFile != nil && sqlFile.Err() != nil {
				return sqlFile.Err()
			}

			for i, query := range queries {
				log.Debug("execute", zap.Int("seq", i), zap.String("query", query))
				_, err := executeQuery(conn, query)
				if err == nil {
					continue
				}
				if isFatalError(err) {
					return errors.Wrapf(err, "statement %d: %s", i, query)
				}
				fmt.Println(colorizeErrorMsg(err))
				if failfast {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "dsn for database")
	cmd.Flags().IntVar(&stmtCount, "count", 100, "number of statements to run")
	cmd.Flags().StringVar(&seed, "seed", "1", "random seed")
	cmd.Flags().BoolVar(&debug, "debug", false, "log every evaluated rule")
	cmd.Flags().BoolVar(&failfast, "failfast", false, "fail on any error")
	cmd.Flags().StringVar(&outputFile, "out", "", "the file path to put the generated SQLs")
	return cmd
}

// isFatalError reports a syntax error or a duplicated table alias. Both mean
// the generator produced a statement that can never run.
func isFatalError(err error) bool {
	if myErr, ok := errors.Cause(err).(*mysql.MySQLError); ok {
		return myErr.Number == errSyntax || myErr.Number == errNonUniqueTable
	}
	return false
}

func colorizeErrorMsg(msg error) string {
	if msg == nil {
		return ""
	}
	return fmt.Sprintf("\u001B[31m%s\u001B[0m", msg.Error())
}

func parseAndSetSeed(seed string) int64 {
	var seedInt int64
	if seed == "now" {
		seedInt = time.Now().Unix()
	} else {
		seedInt = int64(Try(strconv.Atoi(seed)).(int))
	}
	rand.Seed(seedInt)
	log.Info("current seed", zap.Int64("seed", seedInt))
	return seedInt
}

func abtestCmd(opts *stateOptions) *cobra.Command {
	var (
		stmtCount int
		dsn1      string
		dsn2      string
		seed      string
		debug     bool
	)
	cmd := &cobra.Command{
		Use:           "abtest",
		Short:         "Run AB test",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedSeed := parseAndSetSeed(seed)
			state, err := newState(opts)
			if err != nil {
				return err
			}

			conn1 := setUpDatabaseConnection(dsn1)
			defer conn1.Close()
			conn2 := setUpDatabaseConnection(dsn2)
			defer conn2.Close()

			queries, err := generateInitialSQLs(state)
			if err != nil {
				return err
			}
			more, err := generateSQLs(state, sqlgen.Start, stmtCount)
			if err != nil {
				return err
			}
			queries = append(queries, more...)

			for _, query := range queries {
				if debug {
					fmt.Println(query + ";")
				}
				rs1, err1 := executeQuery(conn1, query)
				rs2, err2 := executeQuery(conn2, query)
				if debug {
					fmt.Println(colorizeErrorMsg(err1))
					fmt.Println(colorizeErrorMsg(err2))
				}
				if !ValidateErrs(err1, err2) {
					return errors.Errorf("error mismatch: %v != %v\nseed: %d\nquery: %s", err1, err2, parsedSeed, query)
				}
				if rs1 == nil || rs2 == nil {
					continue
				}
				if debug {
					fmt.Println(rs1.String())
					fmt.Println(rs2.String())
				}
				if err := compareResult(rs1, rs2, query); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&stmtCount, "count", 100, "number of statements to run")
	cmd.Flags().StringVar(&dsn1, "dsn1", "", "dsn for 1st database")
	cmd.Flags().StringVar(&dsn2, "dsn2", "", "dsn for 2nd database")
	cmd.Flags().StringVar(&seed, "seed", "1", "random seed")
	cmd.Flags().BoolVar(&debug, "debug", false, "print generated SQLs")
	return cmd
}

func setUpDatabaseConnection(dsn string) *sql.Conn {
	ctx := context.Background()
	db := Try(sql.Open("mysql", dsn)).(*sql.DB)
	dbName := "sqlgen_test"
	conn := Try(sqlz.Connect(ctx, db)).(*sql.Conn)
	Try(conn.ExecContext(ctx, "drop database if exists "+dbName))
	Try(conn.ExecContext(ctx, "create database "+dbName))
	Try(conn.ExecContext(ctx, "use "+dbName))
	return conn
}

func executeQuery(conn *sql.Conn, query string) (*resultset.ResultSet, error) {
	ctx := context.Background()
	Try(conn.PingContext(ctx))
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return resultset.ReadFromRows(rows)
}

// generateInitialSQLs creates the configured tables and fills each of them
// with the configured number of rows.
func generateInitialSQLs(state *sqlgen.State) ([]string, error) {
	ctrl := state.Config()
	sqls := make([]string, 0, ctrl.InitTableCount*(1+ctrl.InitRowCount))
	for i := 0; i < ctrl.InitTableCount; i++ {
		query, err := sqlgen.CreateTable.Eval(state)
		if err != nil {
			return nil, err
		}
		sqls = append(sqls, query)
	}
	for _, tb := range state.Tables {
		state.Env().Table = tb
		for i := 0; i < ctrl.InitRowCount; i++ {
			query, err := sqlgen.InsertInto.Eval(state)
			if err != nil {
				return nil, err
			}
			sqls = append(sqls, query)
		}
	}
	state.Env().Table = nil
	return sqls, nil
}

func generateSQLs(state *sqlgen.State, root sqlgen.Fn, count int) ([]string, error) {
	sqls := make([]string, 0, count)
	for i := 0; i < count; i++ {
		query, err := root.Eval(state)
		if err != nil {
			return nil, err
		}
		sqls = append(sqls, query)
	}
	return sqls, nil
}

func compareResult(rs1, rs2 *resultset.ResultSet, query string) error {
	h1, h2 := rs1.OrderedDigest(resultset.DigestOptions{}), rs2.OrderedDigest(resultset.DigestOptions{})
	if h1 != h2 {
		var b1, b2 bytes.Buffer
		rs1.PrettyPrint(&b1)
		rs2.PrettyPrint(&b2)
		return errors.Errorf("result digests mismatch: %s != %s %q\n%s\n%s", h1, h2, query, b1.String(), b2.String())
	}
	if rs1.IsExecResult() && rs1.ExecResult().RowsAffected != rs2.ExecResult().RowsAffected {
		return errors.Errorf("rows affected mismatch: %d != %d %q",
			rs1.ExecResult().RowsAffected, rs2.ExecResult().RowsAffected, query)
	}
	return nil
}

// ValidateErrs reports whether both servers agree on the outcome.
func ValidateErrs(err1 error, err2 error) bool {
	ignoreErrMsgs := []string{
		"Unknown system variable",
	}
	for _, msg := range ignoreErrMsgs {
		if OneOfContains(err1, err2, msg) {
			return true
		}
	}
	return (err1 == nil && err2 == nil) || (err1 != nil && err2 != nil)
}

func OneOfContains(err1, err2 error, msg string) bool {
	c1 := err1 != nil && strings.Contains(err1.Error(), msg) && err2 == nil
	c2 := err2 != nil && strings.Contains(err2.Error(), msg) && err1 == nil
	return c1 || c2
}
