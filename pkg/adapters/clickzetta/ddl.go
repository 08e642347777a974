package clickzetta

import (
	"strings"

	"github.com/leapstack-labs/clickzetta/pkg/adapter"
	"github.com/leapstack-labs/clickzetta/pkg/core"
)

// BuildDefinition renders a CREATE TABLE or CREATE VIEW statement for name
// in workspace.schema.
//
// objectType is "table" (the default when empty) or "view". Column comments
// are emitted only for columns that have one, and the trailing
// COMMENT = '...' clause only when comment is non-empty. Identifiers are
// backtick-escaped and comments literal-escaped; data types are emitted as
// given.
func BuildDefinition(workspace, schema, name string, columns []core.ColumnSpec, comment, objectType string) (string, error) {
	keyword, err := createKeyword(objectType)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("CREATE ")
	b.WriteString(keyword)
	b.WriteString(" ")
	b.WriteString(quoteIdent(workspace))
	b.WriteString(".")
	b.WriteString(quoteIdent(schema))
	b.WriteString(".")
	b.WriteString(quoteIdent(name))
	b.WriteString(" (\n")

	for i, col := range columns {
		b.WriteString("  ")
		b.WriteString(quoteIdent(col.Name))
		b.WriteString(" ")
		b.WriteString(col.DataType)
		if col.Comment != "" {
			b.WriteString(" COMMENT ")
			b.WriteString(quoteLiteral(col.Comment))
		}
		if i < len(columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")

	if comment != "" {
		b.WriteString(" COMMENT = ")
		b.WriteString(quoteLiteral(comment))
	}
	return b.String(), nil
}

func createKeyword(objectType string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(objectType)) {
	case "", core.ObjectTable:
		return "TABLE", nil
	case core.ObjectView:
		return "VIEW", nil
	default:
		return "", adapter.NewError(adapter.CodeValidation,
			"unsupported object type %q (expected %q or %q)", objectType, core.ObjectTable, core.ObjectView)
	}
}
