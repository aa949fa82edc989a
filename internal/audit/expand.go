package audit

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Expand renders query with each ? placeholder replaced by the literal SQL
// form of the matching argument, and runs of whitespace collapsed.
//
// Single-quoted string literals are copied as written: their whitespace is
// kept and placeholders inside them are left alone. Surplus placeholders
// stay as ?; surplus arguments are ignored.
func Expand(query string, args ...any) string {
	var b strings.Builder
	b.Grow(len(query) + 8*len(args))

	next := 0
	inString := false
	space := false
	for _, r := range query {
		if !inString && unicode.IsSpace(r) {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}

		switch {
		case r == '\'':
			inString = !inString
			b.WriteRune(r)
		case r == '?' && !inString && next < len(args):
			b.WriteString(literal(args[next]))
			next++
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// literal formats v the way SQLite would print it in a statement.
func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case []byte:
		return fmt.Sprintf("x'%x'", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
