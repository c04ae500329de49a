package syntax

import "declres/report"

// Token is a single token of a type expression, import directive or type
// parameter declaration.
type Token struct {
	Kind  int
	Value string

	// Offset is the rune offset of the token within its source string.
	Offset int

	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	IDENTIFIER = iota
	DOT
	COMMA
	COLON
	LANGLE
	RANGLE
	LPAREN
	RPAREN
	ARROW
	QUESTION
	STAR
	EOF
)

var tokenNames = map[int]string{
	IDENTIFIER: "identifier",
	DOT:        "`.`",
	COMMA:      "`,`",
	COLON:      "`:`",
	LANGLE:     "`<`",
	RANGLE:     "`>`",
	LPAREN:     "`(`",
	RPAREN:     "`)`",
	ARROW:      "`->`",
	QUESTION:   "`?`",
	STAR:       "`*`",
	EOF:        "end of input",
}
