package sqlgen

// CheckIntegrity asserts that the schema model is consistent and that no rule
// left the env stack unbalanced.
func (s *State) CheckIntegrity() {
	names := make(map[string]struct{}, len(s.Tables))
	for _, t := range s.Tables {
		_, dup := names[t.Name]
		Assert(!dup, "duplicate table name", t.Name)
		names[t.Name] = struct{}{}
		Assert(len(t.Columns) > 0, "table without columns", t.Name)
		Assert(len([]rune(t.Name)) <= s.adapter.MaxIdentifierLength(), "table name too long", t.Name)
		for _, row := range t.Values {
			Assert(len(row) == len(t.Columns), "row width mismatch", t.Name, row)
		}
	}
	Assert(s.env.Depth() == 0, "unbalanced env", s.env.GetCurrentStack())
}
