package sqlgen

var Start = NewFn(func(state *State) Fn {
	w := state.ctrl.Weight
	return Or(
		CreateTable.W(w.CreateTable).P(NoTooMuchTables),
		InsertInto.W(w.InsertInto).P(HasTables),
		Query.W(w.SingleSelect+w.JoinSelect).P(HasTables),
	)
})

var CreateTable = NewFn(func(state *State) Fn {
	tbl := state.GenNewTable()
	state.env.Table = tbl
	colDefs, err := ColumnDefinitions.Eval(state)
	if err != nil {
		return NoneBecauseOf(err)
	}
	state.AppendTable(tbl)
	return Strs("create table", state.adapter.QuoteIdentifier(tbl.Name), "(", colDefs, ")")
})

// InsertInto inserts a row into the table of the env, or a random one.
var InsertInto = NewFn(func(state *State) Fn {
	tbl := state.env.Table
	if tbl == nil || !state.Tables.Contain(tbl) {
		tbl = state.Tables.Rand()
	}
	vals := tbl.GenRandValues()
	tbl.AppendRow(vals)
	return Strs(
		"insert into", state.adapter.QuoteIdentifier(tbl.Name),
		"values", "(", PrintRandValues(vals), ")",
	)
}).P(HasTables)
