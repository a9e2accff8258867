package sqlgen

import (
	"strconv"
	"strings"
)

func PrintColumnType(c *Column) string {
	var sb strings.Builder
	sb.WriteString(c.Tp.String())
	if c.arg1 != 0 {
		sb.WriteString("(")
		sb.WriteString(strconv.Itoa(c.arg1))
		if c.Tp == ColumnTypeDecimal {
			sb.WriteString(",")
			sb.WriteString(strconv.Itoa(c.arg2))
		}
		sb.WriteString(")")
	}
	if c.isNotNull {
		sb.WriteString(" not null")
	}
	return sb.String()
}

func PrintColumnDefinitions(adapter Adapter, cols Columns) string {
	defs := make([]string, 0, len(cols))
	for _, c := range cols {
		defs = append(defs, adapter.QuoteIdentifier(c.Name)+" "+PrintColumnType(c))
	}
	return strings.Join(defs, ", ")
}

func PrintRandValues(values []string) string {
	return strings.Join(values, ",")
}

// PrintQualifiedColumn qualifies a column with the reference's identifier.
func PrintQualifiedColumn(adapter Adapter, ref TableReference, c *Column) string {
	return adapter.QuoteIdentifier(ref.Ident()) + "." + adapter.QuoteIdentifier(c.Name)
}

func PrintFieldNames(count int) string {
	fields := make([]string, 0, count)
	for i := 0; i < count; i++ {
		fields = append(fields, fieldNamePrefix+strconv.Itoa(i))
	}
	return strings.Join(fields, ",")
}
