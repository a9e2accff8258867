package sqlgen

var ColumnDefinitions = NewFn(func(state *State) Fn {
	n := state.ctrl.InitColCount
	return Repeat(ColumnDefinition.R(n, n), Str(","))
}).P(HasTableInEnv)

var ColumnDefinition = NewFn(func(state *State) Fn {
	tbl := state.env.Table
	col := state.GenNewColumn()
	tbl.AppendColumn(col)
	return Strs(state.adapter.QuoteIdentifier(col.Name), PrintColumnType(col))
})
