package sqlgen

import "fmt"

type ColumnType int64

const (
	ColumnTypeInt ColumnType = iota
	ColumnTypeBigInt
	ColumnTypeDecimal
	ColumnTypeChar
	ColumnTypeVarchar

	ColumnTypeMax
)

type ColumnTypes []ColumnType

var ColumnTypeAllTypes = ColumnTypes{
	ColumnTypeInt,
	ColumnTypeBigInt,
	ColumnTypeDecimal,
	ColumnTypeChar,
	ColumnTypeVarchar,
}

func (tps ColumnTypes) Contain(targetTp ColumnType) bool {
	for _, tp := range tps {
		if tp == targetTp {
			return true
		}
	}
	return false
}

func (c ColumnType) IsStringType() bool {
	return c == ColumnTypeChar || c == ColumnTypeVarchar
}

func (c ColumnType) IsIntegerType() bool {
	return c == ColumnTypeInt || c == ColumnTypeBigInt
}

func (c ColumnType) String() string {
	switch c {
	case ColumnTypeInt:
		return "int"
	case ColumnTypeBigInt:
		return "bigint"
	case ColumnTypeDecimal:
		return "decimal"
	case ColumnTypeChar:
		return "char"
	case ColumnTypeVarchar:
		return "varchar"
	}
	panic(fmt.Sprintf("unknown column type %d", c))
}

type JoinType int64

const (
	JoinTypeInner JoinType = iota
	JoinTypeLeft
	JoinTypeRight
	JoinTypeCross

	JoinTypeMax
)

func (j JoinType) String() string {
	switch j {
	case JoinTypeInner:
		return "join"
	case JoinTypeLeft:
		return "left join"
	case JoinTypeRight:
		return "right join"
	case JoinTypeCross:
		return "cross join"
	}
	panic(fmt.Sprintf("unknown join type %d", j))
}

// NeedOn reports whether the join requires an ON clause.
func (j JoinType) NeedOn() bool {
	return j != JoinTypeCross
}

const (
	tableNamePrefix  = "tbl_"
	columnNamePrefix = "col_"
	fieldNamePrefix  = "r"
)
