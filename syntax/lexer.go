package syntax

import (
	"unicode"

	"declres/report"
)

// Lexer splits the short source strings embedded in a skeleton into tokens.
// The position of the string within the skeleton file is given by the line
// and column of its first character so that token spans point into the file.
type Lexer struct {
	src []rune

	// The lexer's position within src.
	ndx int

	// The zero-indexed line and column of src[0].
	line, col int
}

// NewLexer creates a new lexer for src located at the given zero-indexed line
// and column.
func NewLexer(src string, line, col int) *Lexer {
	return &Lexer{src: []rune(src), line: line, col: col}
}

// NextToken lexes the next token.  It panics with a local compile error if
// it meets a malformed token: this is caught by the parser entry points.
func (l *Lexer) NextToken() *Token {
	// Skip whitespace.
	for l.ndx < len(l.src) && unicode.IsSpace(l.src[l.ndx]) {
		l.ndx++
	}

	if l.ndx == len(l.src) {
		return l.makeToken(EOF, l.ndx, l.ndx)
	}

	start := l.ndx
	c := l.src[l.ndx]
	l.ndx++

	switch c {
	case '.':
		return l.makeToken(DOT, start, l.ndx)
	case ',':
		return l.makeToken(COMMA, start, l.ndx)
	case ':':
		return l.makeToken(COLON, start, l.ndx)
	case '<':
		return l.makeToken(LANGLE, start, l.ndx)
	case '>':
		return l.makeToken(RANGLE, start, l.ndx)
	case '(':
		return l.makeToken(LPAREN, start, l.ndx)
	case ')':
		return l.makeToken(RPAREN, start, l.ndx)
	case '?':
		return l.makeToken(QUESTION, start, l.ndx)
	case '*':
		return l.makeToken(STAR, start, l.ndx)
	case '-':
		if l.ndx < len(l.src) && l.src[l.ndx] == '>' {
			l.ndx++
			return l.makeToken(ARROW, start, l.ndx)
		}
	case '`':
		// Escaped identifiers may contain any character except a backtick.
		for l.ndx < len(l.src) && l.src[l.ndx] != '`' {
			l.ndx++
		}

		if l.ndx == len(l.src) || l.ndx == start+1 {
			panic(report.Raise(l.spanOf(start, l.ndx), "unclosed or empty escaped identifier"))
		}

		l.ndx++
		tok := l.makeToken(IDENTIFIER, start, l.ndx)
		tok.Value = string(l.src[start+1 : l.ndx-1])
		return tok
	default:
		if c == '_' || unicode.IsLetter(c) {
			for l.ndx < len(l.src) && (l.src[l.ndx] == '_' || unicode.IsLetter(l.src[l.ndx]) || unicode.IsDigit(l.src[l.ndx])) {
				l.ndx++
			}

			return l.makeToken(IDENTIFIER, start, l.ndx)
		}
	}

	panic(report.Raise(l.spanOf(start, l.ndx), "unexpected character `%c`", c))
}

// makeToken creates a token spanning src[start:end].
func (l *Lexer) makeToken(kind, start, end int) *Token {
	return &Token{
		Kind:   kind,
		Value:  string(l.src[start:end]),
		Offset: start,
		Span:   l.spanOf(start, end),
	}
}

// spanOf returns the text span of src[start:end].
func (l *Lexer) spanOf(start, end int) *report.TextSpan {
	return report.NewSpanAt(l.line, l.col+start, end-start)
}
