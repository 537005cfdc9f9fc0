// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rups/src/proto/util.rs
//

package nut

import (
	"errors"
	"strings"
	"unicode"
)

// errUnbalancedQuote is returned by Split when a line contains an
// opening quote with no matching close. The caller surfaces this as a
// "not processable" protocol error (§4.1 of the wire format).
var errUnbalancedQuote = errors.New("nut: unbalanced quote in line")

// shellMeta is the set of characters, besides whitespace, that force a
// token to be quoted on Join.
const shellMeta = "'\"`\\$|&;<>(){}[]*?~#!"

// Split tokenizes a line into words using POSIX shell-word rules:
// whitespace separates tokens; single- and double-quoted substrings
// are single tokens with inner whitespace preserved; a backslash
// inside double quotes escapes the next character. The trailing
// newline, if any, is stripped before splitting.
func Split(line string) ([]string, error) {
	line = strings.TrimSuffix(line, "\n")
	runes := []rune(line)
	n := len(runes)

	var tokens []string
	var cur strings.Builder
	inToken := false

	for i := 0; i < n; {
		r := runes[i]
		switch {
		case r == '\'':
			inToken = true
			i++
			start := i
			closed := false
			for i < n {
				if runes[i] == '\'' {
					closed = true
					break
				}
				i++
			}
			if !closed {
				return nil, errUnbalancedQuote
			}
			cur.WriteString(string(runes[start:i]))
			i++
		case r == '"':
			inToken = true
			i++
			closed := false
			for i < n {
				if runes[i] == '"' {
					closed = true
					i++
					break
				}
				if runes[i] == '\\' && i+1 < n {
					cur.WriteRune(runes[i+1])
					i += 2
					continue
				}
				cur.WriteRune(runes[i])
				i++
			}
			if !closed {
				return nil, errUnbalancedQuote
			}
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
			i++
		default:
			inToken = true
			cur.WriteRune(r)
			i++
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// Join renders a sequence of words as a single line, re-quoting any
// token that needs it, and terminates the result with a newline. Join
// is the inverse of Split for every token sequence that Split can
// produce (property verified in tokenizer_test.go).
func Join(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = quoteToken(t)
	}
	return strings.Join(parts, " ") + "\n"
}

func needsQuoting(tok string) bool {
	if tok == "" {
		return true
	}
	for _, r := range tok {
		if unicode.IsSpace(r) || strings.ContainsRune(shellMeta, r) {
			return true
		}
	}
	return false
}

func quoteToken(tok string) string {
	if !needsQuoting(tok) {
		return tok
	}
	if !strings.Contains(tok, "'") {
		return "'" + tok + "'"
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range tok {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
