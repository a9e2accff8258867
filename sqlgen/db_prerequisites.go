package sqlgen

var HasTables = func(s *State) bool {
	return len(s.Tables) >= 1
}

var NoTooMuchTables = func(s *State) bool {
	return len(s.Tables) < s.ctrl.MaxTableNum
}

var HasTableInEnv = func(s *State) bool {
	return s.env.Table != nil
}

var HasQueryState = func(s *State) bool {
	return s.env.QState != nil && len(s.env.QState.Refs) > 0
}
