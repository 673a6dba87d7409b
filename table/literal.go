package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/catsim/model"
)

var closers = map[byte]byte{'[': ']', '(': ')', '{': '}'}

// isNull reports whether s is an empty or NaN cell.
func isNull(s string) bool {
	switch s {
	case "", "nan", "NaN", "None", "null":
		return true
	}
	return false
}

// parseList splits a list literal such as "['A', \"B's\", 3]" into its
// elements. Quoted elements are unescaped; bare elements are trimmed.
func parseList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	closer, ok := closers[s[0]]
	if !ok || len(s) < 2 || s[len(s)-1] != closer {
		return nil, fmt.Errorf("%w: %q", ErrLiteral, s)
	}
	body := s[1 : len(s)-1]

	var out []string
	i := 0
	skipSpace := func() {
		for i < len(body) && (body[i] == ' ' || body[i] == '\t' || body[i] == '\n' || body[i] == '\r') {
			i++
		}
	}

	for {
		skipSpace()
		if i == len(body) {
			return out, nil
		}

		var tok string
		if q := body[i]; q == '\'' || q == '"' {
			var err error
			tok, i, err = unquote(body, i)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", err, s)
			}
		} else {
			end := strings.IndexByte(body[i:], ',')
			if end < 0 {
				end = len(body) - i
			}
			tok = strings.TrimSpace(body[i : i+end])
			i += end
			if tok == "" {
				return nil, fmt.Errorf("%w: empty element in %q", ErrLiteral, s)
			}
		}
		out = append(out, tok)

		skipSpace()
		if i == len(body) {
			return out, nil
		}
		if body[i] != ',' {
			return nil, fmt.Errorf("%w: expected ',' at offset %d in %q", ErrLiteral, i+1, s)
		}
		i++
	}
}

// unquote reads the quoted string starting at body[start] and returns it
// with the index just past the closing quote.
func unquote(body string, start int) (string, int, error) {
	q := body[start]
	var b strings.Builder
	for i := start + 1; i < len(body); i++ {
		c := body[i]
		switch {
		case c == q:
			return b.String(), i + 1, nil
		case c == '\\' && i+1 < len(body):
			i++
			switch e := body[i]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteByte(e)
			default:
				b.WriteByte('\\')
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated string", ErrLiteral)
}

// formatList renders labels as a single-quoted list literal.
func formatList(labels []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, l := range labels {
		if i > 0 {
			b.WriteString(", ")
		}
		q := byte('\'')
		if strings.ContainsRune(l, '\'') && !strings.ContainsRune(l, '"') {
			q = '"'
		}
		b.WriteByte(q)
		for j := 0; j < len(l); j++ {
			switch c := l[j]; {
			case c == '\\' || c == q:
				b.WriteByte('\\')
				b.WriteByte(c)
			case c == '\n':
				b.WriteString(`\n`)
			default:
				b.WriteByte(c)
			}
		}
		b.WriteByte(q)
	}
	b.WriteByte(']')
	return b.String()
}

// formatIDs renders item ids as a list literal.
func formatIDs(ids []model.ItemIndex) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	b.WriteByte(']')
	return b.String()
}
