package sqlgen

import (
	"fmt"
	"math/rand"
	"strings"
)

// GenNewTable allocates a table. With LongTableNameRatio the name is padded
// up to the adapter's identifier limit, so aliases derived from it have to be
// truncated.
func (s *State) GenNewTable() *Table {
	id := s.alloc.AllocTableID()
	name := fmt.Sprintf("%s%d", tableNamePrefix, id)
	if s.Roll(s.ctrl.Weight.LongTableNameRatio) {
		name = padName(name+"_", s.adapter.MaxIdentifierLength())
	}
	return &Table{ID: id, Name: name}
}

func (s *State) GenNewColumn() *Column {
	id := s.alloc.AllocColumnID()
	col := &Column{ID: id, Name: fmt.Sprintf("%s%d", columnNamePrefix, id)}
	col.Tp = ColumnTypeAllTypes[rand.Intn(len(ColumnTypeAllTypes))]
	switch col.Tp {
	case ColumnTypeDecimal:
		col.arg1 = 10 + rand.Intn(10)
		col.arg2 = rand.Intn(5)
	case ColumnTypeChar:
		col.arg1 = 1 + rand.Intn(32)
	case ColumnTypeVarchar:
		col.arg1 = 1 + rand.Intn(128)
	}
	col.isNotNull = rand.Intn(3) == 0
	return col
}

func padName(prefix string, length int) string {
	if len(prefix) >= length {
		return prefix[:length]
	}
	return prefix + strings.Repeat("x", length-len(prefix))
}

func (t *Table) GenRandValues() []string {
	vals := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		vals = append(vals, c.RandomValue())
	}
	return vals
}

func (c *Column) RandomValue() string {
	if !c.isNotNull && rand.Intn(10) == 0 {
		return "null"
	}
	switch c.Tp {
	case ColumnTypeInt:
		return RandomNum(-100, 100)
	case ColumnTypeBigInt:
		return RandomNum(-1000000, 1000000)
	case ColumnTypeDecimal:
		intPart := RandomNum(0, 99)
		if c.arg2 == 0 {
			return intPart
		}
		return intPart + "." + RandNumRunes(c.arg2)
	case ColumnTypeChar, ColumnTypeVarchar:
		n := c.arg1
		if n > 8 {
			n = 8
		}
		return "'" + RandStringRunes(1+rand.Intn(n)) + "'"
	}
	panic(fmt.Sprintf("unknown column type %d", c.Tp))
}

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func RandStringRunes(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}

var numRunes = []rune("0123456789")

func RandNumRunes(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = numRunes[rand.Intn(len(numRunes))]
	}
	return string(b)
}
