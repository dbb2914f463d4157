// Released under an MIT license. See LICENSE.

package script

import (
	"errors"
	"strings"

	"github.com/michaelmacinnis/adapted"
)

// ErrUnterminatedQuote is returned when a quoted word has no closing quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Split breaks line into words. Blanks separate words unless quoted or
// escaped with a backslash. Single quotes preserve their contents exactly;
// double-quoted and dollar single-quoted text has its escape sequences
// interpreted. An unquoted # at the start of a word begins a comment.
func Split(line string) ([]string, error) {
	words := []string{}

	var (
		b      strings.Builder
		inWord bool
	)

	flush := func() {
		if inWord {
			words = append(words, b.String())
			b.Reset()

			inWord = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch c {
		case ' ', '\t', '\r', '\n':
			flush()

		case '#':
			if !inWord {
				return words, nil
			}

			b.WriteByte(c)

		case '\\':
			inWord = true

			if i+1 < len(line) {
				i++
				b.WriteByte(line[i])
			}

		case '\'':
			inWord = true

			end := strings.IndexByte(line[i+1:], '\'')
			if end < 0 {
				return nil, ErrUnterminatedQuote
			}

			b.WriteString(line[i+1 : i+1+end])
			i += end + 1

		case '"':
			inWord = true

			n, err := escaped(&b, line[i+1:], '"')
			if err != nil {
				return nil, err
			}

			i += n

		case '$':
			inWord = true

			if i+1 == len(line) || line[i+1] != '\'' {
				b.WriteByte(c)

				continue
			}

			n, err := escaped(&b, line[i+2:], '\'')
			if err != nil {
				return nil, err
			}

			i += n + 1

		default:
			inWord = true

			b.WriteByte(c)
		}
	}

	flush()

	return words, nil
}

// escaped writes the text in s up to the first unescaped q, with escape
// sequences interpreted, to b. It returns the number of bytes consumed,
// including q.
func escaped(b *strings.Builder, s string, q byte) (int, error) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			actual, err := adapted.ActualBytes(s[:i])
			if err != nil {
				return 0, err
			}

			b.WriteString(actual)

			return i + 1, nil
		}
	}

	return 0, ErrUnterminatedQuote
}
