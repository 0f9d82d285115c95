package sqlgen

import "strings"

// SplitStatements splits a blob of SQL on `;` into statements, using MySQL
// lexical rules.
// Semicolons inside quoted strings ('...', "...", `...`) and comments
// (-- , #, /* */) do not split. Segments with no SQL besides whitespace and
// comments are dropped.
// NOTE: procedure bodies and client-side DELIMITER changes are not understood.
func SplitStatements(blob string) []string {
	return splitStatements(blob, true)
}

// SplitStatements splits blob with the lexical rules of the generator's
// dialect. Without MySQL lexing, # starts no comment and a backslash escapes
// only inside E'...' strings.
func (g Generator) SplitStatements(blob string) []string {
	return splitStatements(blob, g.Dialect == nil || g.Dialect.MySQLLexing())
}

func splitStatements(blob string, mysqlLexing bool) []string {
	var stmts []string
	start := 0
	hasCode := false
	flush := func(end int) {
		if hasCode {
			stmts = append(stmts, strings.TrimSpace(blob[start:end]))
		}
		start = end + 1
		hasCode = false
	}
	n := len(blob)
	for i := 0; i < n; i++ {
		c := blob[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			hasCode = true
			i = skipQuoted(blob, i, c != '`' && (mysqlLexing || isEscapeString(blob, i)))
		case c == '#' && mysqlLexing:
			i = skipLine(blob, i)
		case c == '-' && i+1 < n && blob[i+1] == '-' && (i+2 == n || isSpace(blob[i+2])):
			i = skipLine(blob, i)
		case c == '/' && i+1 < n && blob[i+1] == '*':
			end := strings.Index(blob[i+2:], "*/")
			if end < 0 {
				i = n - 1
			} else {
				i += 2 + end + 1
			}
		case c == ';':
			flush(i)
		case !isSpace(c):
			hasCode = true
		}
	}
	if start < n {
		flush(n)
	}
	return stmts
}

// skipQuoted returns the index of the closing quote of the string opened at i,
// or the last index when it is never closed
func skipQuoted(s string, i int, backslash bool) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			if backslash {
				j++
			}
		case q:
			if j+1 < len(s) && s[j+1] == q { // doubled quote
				j++
				continue
			}
			return j
		}
	}
	return len(s) - 1
}

// isEscapeString reports whether the quote at i opens a PostgreSQL E'...' string
func isEscapeString(s string, i int) bool {
	if s[i] != '\'' || i == 0 || (s[i-1] != 'E' && s[i-1] != 'e') {
		return false
	}
	return i == 1 || !isIdentByte(s[i-2])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func skipLine(s string, i int) int {
	end := strings.IndexByte(s[i:], '\n')
	if end < 0 {
		return len(s) - 1
	}
	return i + end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
