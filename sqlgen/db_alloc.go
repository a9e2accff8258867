package sqlgen

type IDAllocator struct {
	tableID  int
	columnID int
}

func (a *IDAllocator) AllocTableID() int {
	a.tableID++
	return a.tableID
}

func (a *IDAllocator) AllocColumnID() int {
	a.columnID++
	return a.columnID
}
