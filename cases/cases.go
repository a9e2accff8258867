package cases

import "github.com/PingCAP-QE/join-alias-rand-test/sqlgen"

// NewSelfJoinState generates join queries only, most of them joining a table
// already present in the query.
func NewSelfJoinState(opts ...func(ctl *sqlgen.ControlOption)) *sqlgen.State {
	opts = append(opts, func(ctl *sqlgen.ControlOption) {
		ctl.Weight.SelfJoinRatio = 90
		ctl.MaxJoinCount = 6
	})
	state := sqlgen.NewState(opts...)
	state.SetWeight(sqlgen.SingleSelect, 0)
	return state
}

// NewLongNameState makes every table name as long as the adapter allows, so
// each alias handed out for a second reference has to be truncated.
func NewLongNameState(opts ...func(ctl *sqlgen.ControlOption)) *sqlgen.State {
	opts = append(opts, func(ctl *sqlgen.ControlOption) {
		ctl.Weight.LongTableNameRatio = 100
		ctl.Weight.ComposedAliasRatio = 60
		ctl.Weight.SelfJoinRatio = 60
	})
	state := sqlgen.NewState(opts...)
	state.SetWeight(sqlgen.SingleSelect, 0)
	return state
}

// NewStringJoinState attaches hand written join fragments to every join
// query whenever there is more than one table.
func NewStringJoinState(opts ...func(ctl *sqlgen.ControlOption)) *sqlgen.State {
	opts = append(opts, func(ctl *sqlgen.ControlOption) {
		ctl.Weight.StringJoinRatio = 100
		ctl.Weight.SelfJoinRatio = 50
	})
	state := sqlgen.NewState(opts...)
	state.SetWeight(sqlgen.SingleSelect, 0)
	return state
}

// ByName returns the preset state registered under name, or nil.
func ByName(name string, opts ...func(ctl *sqlgen.ControlOption)) *sqlgen.State {
	switch name {
	case "self-join":
		return NewSelfJoinState(opts...)
	case "long-name":
		return NewLongNameState(opts...)
	case "string-join":
		return NewStringJoinState(opts...)
	}
	return nil
}
