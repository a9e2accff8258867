package sqlgen

import (
	"math/rand"
)

func (ts Tables) Rand() *Table {
	if len(ts) == 0 {
		return nil
	}
	return ts[rand.Intn(len(ts))]
}

func (ts Tables) Filter(pred func(t *Table) bool) Tables {
	ret := make(Tables, 0, len(ts))
	for _, t := range ts {
		if pred(t) {
			ret = append(ret, t)
		}
	}
	return ret
}

func (ts Tables) Contain(t *Table) bool {
	for _, tbl := range ts {
		if tbl.ID == t.ID {
			return true
		}
	}
	return false
}

func (cs Columns) Rand() *Column {
	if len(cs) == 0 {
		return nil
	}
	return cs[rand.Intn(len(cs))]
}

func (cs Columns) Filter(pred func(c *Column) bool) Columns {
	ret := make(Columns, 0, len(cs))
	for _, c := range cs {
		if pred(c) {
			ret = append(ret, c)
		}
	}
	return ret
}

// RandColumnPair picks one column from each side, preferring a pair of the
// same type so the join predicate compares like with like.
func RandColumnPair(left, right Columns) (*Column, *Column) {
	for i := 0; i < 5; i++ {
		l := left.Rand()
		same := right.Filter(func(c *Column) bool { return c.Tp == l.Tp })
		if len(same) > 0 {
			return l, same.Rand()
		}
	}
	return left.Rand(), right.Rand()
}

func (t *Table) GetRandRowVal(col *Column) string {
	if len(t.Values) == 0 {
		return col.RandomValue()
	}
	randRow := t.Values[rand.Intn(len(t.Values))]
	for i, c := range t.Columns {
		if c.ID == col.ID {
			return randRow[i]
		}
	}
	return col.RandomValue()
}
