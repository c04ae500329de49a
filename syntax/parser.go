package syntax

import (
	"declres/ast"
	"declres/report"
)

// Parser is a recursive descent parser for the small languages embedded in a
// skeleton: type expressions, import directives and type parameter
// declarations.  Syntax errors are thrown as local compile errors and caught
// at the exported entry points.
type Parser struct {
	lexer *Lexer

	// The current token.
	tok *Token

	// The token before the current token.
	prev *Token
}

// newParser creates a new parser for src at the given position.
func newParser(src string, line, col int) *Parser {
	p := &Parser{lexer: NewLexer(src, line, col)}
	p.next()
	return p
}

// ParseTypeRef parses a type expression.
func ParseTypeRef(src string, line, col int) (tr *ast.TypeRef, err error) {
	defer report.CatchErrors(&err)

	p := newParser(src, line, col)
	tr = p.parseType()
	p.want(EOF)
	return
}

// ParseImport parses an import directive.
func ParseImport(src string, line, col int) (imp *ast.Import, err error) {
	defer report.CatchErrors(&err)

	p := newParser(src, line, col)
	imp = p.parseImport()
	p.want(EOF)
	return
}

// ParseTypeParam parses a type parameter declaration.
func ParseTypeParam(src string, line, col int) (tp *ast.TypeParam, err error) {
	defer report.CatchErrors(&err)

	p := newParser(src, line, col)
	tp = p.parseTypeParam()
	p.want(EOF)
	return
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.prev = p.tok
	p.tok = p.lexer.NextToken()
}

// got returns whether the current token is of the given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotKeyword returns whether the current token is the given soft keyword.
func (p *Parser) gotKeyword(kw string) bool {
	return p.tok.Kind == IDENTIFIER && p.tok.Value == kw
}

// want asserts that the current token is of the given kind.
func (p *Parser) want(kind int) {
	if !p.got(kind) {
		p.reject()
	}
}

// wantAndNext asserts that the current token is of the given kind and moves
// the parser forward one token.
func (p *Parser) wantAndNext(kind int) *Token {
	p.want(kind)
	tok := p.tok
	p.next()
	return tok
}

// reject throws an error on the current token.
func (p *Parser) reject() {
	if p.tok.Kind == EOF {
		panic(report.Raise(p.tok.Span, "unexpected end of input"))
	}

	panic(report.Raise(p.tok.Span, "unexpected token %s", tokenNames[p.tok.Kind]))
}

// -----------------------------------------------------------------------------

// type = (func_type | '(' type ')' | named_type) ['?']
func (p *Parser) parseType() *ast.TypeRef {
	var tr *ast.TypeRef

	if p.got(LPAREN) {
		tr = p.parseParenType()
	} else {
		tr = p.parseNamedType()
	}

	if p.got(QUESTION) {
		tr.Nullable = true
		tr.Span = report.NewSpanOver(tr.Span, p.tok.Span)
		p.next()
	}

	return tr
}

// func_type = '(' [type {',' type}] ')' '->' type
// NOTE: a parenthesized single type without an arrow is a grouped type.
func (p *Parser) parseParenType() *ast.TypeRef {
	startSpan := p.wantAndNext(LPAREN).Span

	var params []*ast.TypeRef
	if !p.got(RPAREN) {
		params = append(params, p.parseType())

		for p.got(COMMA) {
			p.next()
			params = append(params, p.parseType())
		}
	}

	p.wantAndNext(RPAREN)

	if p.got(ARROW) {
		p.next()

		ret := p.parseType()
		return &ast.TypeRef{
			Params: params,
			Return: ret,
			Span:   report.NewSpanOver(startSpan, ret.Span),
		}
	}

	if len(params) != 1 {
		p.reject()
	}

	return params[0]
}

// named_type = qual_name [type_args]
func (p *Parser) parseNamedType() *ast.TypeRef {
	path, span := p.parseQualName()
	tr := &ast.TypeRef{Path: path, Span: span}

	if p.got(LANGLE) {
		tr.Args = p.parseTypeArgs()
		tr.Span = report.NewSpanOver(tr.Span, p.prev.Span)
	}

	return tr
}

// qual_name = 'IDENTIFIER' {'.' 'IDENTIFIER'}
func (p *Parser) parseQualName() ([]string, *report.TextSpan) {
	first := p.wantAndNext(IDENTIFIER)
	path := []string{first.Value}
	span := first.Span

	for p.got(DOT) {
		p.next()

		// A star after a dot terminates the name: only legal in imports.
		if p.got(STAR) {
			break
		}

		tok := p.wantAndNext(IDENTIFIER)
		path = append(path, tok.Value)
		span = report.NewSpanOver(span, tok.Span)
	}

	return path, span
}

// type_args = '<' type_arg {',' type_arg} '>'
func (p *Parser) parseTypeArgs() []*ast.TypeArg {
	p.wantAndNext(LANGLE)

	args := []*ast.TypeArg{p.parseTypeArg()}
	for p.got(COMMA) {
		p.next()
		args = append(args, p.parseTypeArg())
	}

	p.wantAndNext(RANGLE)
	return args
}

// type_arg = '*' | [variance] type
func (p *Parser) parseTypeArg() *ast.TypeArg {
	if p.got(STAR) {
		p.next()
		return &ast.TypeArg{Star: true}
	}

	return &ast.TypeArg{Variance: p.parseVariance(), Type: p.parseType()}
}

// variance = 'in' | 'out'
// NOTE: `in` and `out` are soft keywords: they are only variance modifiers if
// followed by another identifier or a parenthesized type.
func (p *Parser) parseVariance() ast.Variance {
	if p.gotKeyword("in") || p.gotKeyword("out") {
		kw := p.tok
		p.next()

		if p.got(IDENTIFIER) || p.got(LPAREN) {
			if kw.Value == "in" {
				return ast.Contravariant
			}

			return ast.Covariant
		}

		// The keyword was actually a type name: step back.
		p.backup(kw)
	}

	return ast.Invariant
}

// backup makes tok the current token again and rewinds the lexer so that the
// token after it is lexed next.  tok must be the token before the current one.
func (p *Parser) backup(tok *Token) {
	p.lexer.ndx = p.tok.Offset
	p.tok = tok
}

// -----------------------------------------------------------------------------

// import = qual_name ['.' '*' | 'as' 'IDENTIFIER']
func (p *Parser) parseImport() *ast.Import {
	path, span := p.parseQualName()
	imp := &ast.Import{Path: path, Span: span}

	if p.got(STAR) {
		imp.Star = true
		imp.Span = report.NewSpanOver(span, p.tok.Span)
		p.next()
	} else if p.gotKeyword("as") {
		p.next()

		alias := p.wantAndNext(IDENTIFIER)
		imp.Alias = alias.Value
		imp.Span = report.NewSpanOver(span, alias.Span)
	}

	return imp
}

// type_param = [variance] 'IDENTIFIER' [':' type]
func (p *Parser) parseTypeParam() *ast.TypeParam {
	variance := p.parseVariance()

	name := p.wantAndNext(IDENTIFIER)
	tp := &ast.TypeParam{
		Name:     name.Value,
		Variance: variance,
		Span:     name.Span,
	}

	if p.got(COLON) {
		p.next()
		tp.Bound = p.parseType()
	}

	return tp
}
