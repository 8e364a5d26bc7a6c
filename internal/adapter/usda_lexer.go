package adapter

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokString
	tokAsset
	tokTarget
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokWord:
		return "word"
	case tokString:
		return "string"
	case tokAsset:
		return "asset path"
	case tokTarget:
		return "path reference"
	case tokPunct:
		return "punctuation"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) String() string {
	if t.kind == tokEOF {
		return t.kind.String()
	}

	return fmt.Sprintf("%s %q", t.kind, t.text)
}

const punctChars = "()[]{}=,;"

// usdaLexer splits ASCII USD text into tokens. Newlines are insignificant.
type usdaLexer struct {
	src  string
	pos  int
	line int
}

func newUSDALexer(src string) *usdaLexer {
	return &usdaLexer{src: src, line: 1}
}

func (l *usdaLexer) next() (token, error) {
	if err := l.skipSpaceAndComments(); err != nil {
		return token{}, err
	}

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	line := l.line
	c := l.src[l.pos]

	switch {
	case strings.IndexByte(punctChars, c) >= 0:
		l.pos++
		return token{kind: tokPunct, text: string(c), line: line}, nil
	case c == '"' || c == '\'':
		text, err := l.readString(c)
		return token{kind: tokString, text: text, line: line}, err
	case c == '@':
		text, err := l.readAsset()
		return token{kind: tokAsset, text: text, line: line}, err
	case c == '<':
		text, err := l.readDelimited('>')
		return token{kind: tokTarget, text: text, line: line}, err
	default:
		return token{kind: tokWord, text: l.readWord(), line: line}, nil
	}
}

func (l *usdaLexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '#' || strings.HasPrefix(l.src[l.pos:], "//"):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			end := strings.Index(l.src[l.pos+2:], "*/")
			if end < 0 {
				return fmt.Errorf("line %d: unterminated block comment", l.line)
			}

			block := l.src[l.pos : l.pos+2+end+2]
			l.line += strings.Count(block, "\n")
			l.pos += len(block)
		default:
			return nil
		}
	}

	return nil
}

func (l *usdaLexer) readString(quote byte) (string, error) {
	triple := strings.Repeat(string(quote), 3)
	if strings.HasPrefix(l.src[l.pos:], triple) {
		start := l.pos + 3

		end := strings.Index(l.src[start:], triple)
		if end < 0 {
			return "", fmt.Errorf("line %d: unterminated string", l.line)
		}

		text := l.src[start : start+end]
		l.line += strings.Count(text, "\n")
		l.pos = start + end + 3

		return text, nil
	}

	var b strings.Builder

	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == quote:
			l.pos++
			return b.String(), nil
		case c == '\n':
			return "", fmt.Errorf("line %d: newline in string", l.line)
		case c == '\\' && l.pos+1 < len(l.src):
			l.pos++
			b.WriteByte(unescape(l.src[l.pos]))
		default:
			b.WriteByte(c)
		}

		l.pos++
	}

	return "", fmt.Errorf("line %d: unterminated string", l.line)
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

func (l *usdaLexer) readAsset() (string, error) {
	if strings.HasPrefix(l.src[l.pos:], "@@@") {
		start := l.pos + 3

		end := strings.Index(l.src[start:], "@@@")
		if end < 0 {
			return "", fmt.Errorf("line %d: unterminated asset path", l.line)
		}

		l.pos = start + end + 3

		return l.src[start : start+end], nil
	}

	return l.readDelimited('@')
}

// readDelimited reads from the opening character at pos up to closing.
func (l *usdaLexer) readDelimited(closing byte) (string, error) {
	start := l.pos + 1

	end := strings.IndexByte(l.src[start:], closing)
	if end < 0 || strings.Contains(l.src[start:start+end], "\n") {
		return "", fmt.Errorf("line %d: unterminated %q", l.line, l.src[l.pos])
	}

	l.pos = start + end + 1

	return l.src[start : start+end], nil
}

func (l *usdaLexer) readWord() string {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' ||
			strings.IndexByte(punctChars, c) >= 0 ||
			c == '"' || c == '\'' || c == '@' || c == '<' || c == '#' {
			break
		}

		l.pos++
	}

	return l.src[start:l.pos]
}
