package sqlgen

func (s *State) AppendTable(tbl *Table) {
	s.Tables = append(s.Tables, tbl)
}

func (t *Table) AppendColumn(c *Column) {
	t.Columns = append(t.Columns, c)
	for i := range t.Values {
		t.Values[i] = append(t.Values[i], "null")
	}
}

func (t *Table) AppendRow(row []string) {
	Assert(len(row) == len(t.Columns), t.Name, row)
	t.Values = append(t.Values, row)
}
