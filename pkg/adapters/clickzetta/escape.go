package clickzetta

import "strings"

// EscapeLiteral makes s safe to place inside a single-quoted SQL string
// literal by doubling every single quote.
func EscapeLiteral(s string) string {
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeIdentifier makes s safe to place inside a backtick-delimited
// identifier by doubling every backtick.
func EscapeIdentifier(s string) string {
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(s, "`", "``")
}

// quoteIdent returns s as a backtick-delimited identifier.
func quoteIdent(s string) string {
	return "`" + EscapeIdentifier(s) + "`"
}

// quoteLiteral returns s as a single-quoted string literal.
func quoteLiteral(s string) string {
	return "'" + EscapeLiteral(s) + "'"
}

// qualify joins the non-empty parts into a dotted, fully quoted name.
func qualify(parts ...string) string {
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		quoted = append(quoted, quoteIdent(p))
	}
	return strings.Join(quoted, ".")
}
