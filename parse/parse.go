package parse

import (
	"fmt"

	. "github.com/owo-lang/narc/common"
)

type Parser interface {
	ParseFile(path string, src string) (*File, error)
	ParseExpr(src string) (Expr, error)
}

func NewParser() Parser {
	return &parser{}
}

type parser struct{}

func (*parser) ParseFile(path string, src string) (*File, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, withPath(err, path)
	}
	r := &reader{toks: toks, path: path}
	var decls []Decl
	for !r.at(TokenEOF) {
		decl, err := r.decl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return &File{Path: path, Decls: decls}, nil
}

func (*parser) ParseExpr(src string) (Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	r := &reader{toks: toks}
	e, err := r.expr()
	if err != nil {
		return nil, err
	}
	if !r.at(TokenEOF) {
		return nil, r.unexpected("end of input")
	}
	return e, nil
}

func withPath(err error, path string) error {
	if perr, ok := err.(*Error); ok {
		perr.Path = path
	}
	return err
}

// ========================

type reader struct {
	toks []Token
	pos  int
	path string
}

func (r *reader) peek() Token {
	return r.toks[r.pos]
}

func (r *reader) peekAt(n int) Token {
	if r.pos+n >= len(r.toks) {
		return r.toks[len(r.toks)-1]
	}
	return r.toks[r.pos+n]
}

func (r *reader) at(kind TokenKind) bool {
	return r.peek().Kind == kind
}

func (r *reader) atKeyword(kw string) bool {
	tok := r.peek()
	return tok.Kind == TokenKeyword && tok.Text == kw
}

func (r *reader) bump() Token {
	tok := r.toks[r.pos]
	if tok.Kind != TokenEOF {
		r.pos++
	}
	return tok
}

func (r *reader) unexpected(want string) error {
	tok := r.peek()
	return &Error{Path: r.path, Loc: tok.Loc, Msg: fmt.Sprintf("expected %v, found %v", want, tok)}
}

func (r *reader) expect(kind TokenKind) (Token, error) {
	if !r.at(kind) {
		return Token{}, r.unexpected(kind.String())
	}
	return r.bump(), nil
}

// ========================

func (r *reader) decl() (Decl, error) {
	switch {
	case r.atKeyword("definition"):
		return r.definition()
	case r.atKeyword("clause"):
		return r.clause()
	case r.atKeyword("data"):
		return r.data()
	case r.atKeyword("codata"):
		return r.codata()
	default:
		return nil, r.unexpected("a declaration")
	}
}

func (r *reader) definition() (Decl, error) {
	r.bump()
	name, err := r.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := r.expect(TokenColon); err != nil {
		return nil, err
	}
	ty, err := r.expr()
	if err != nil {
		return nil, err
	}
	if _, err := r.expect(TokenSemi); err != nil {
		return nil, err
	}
	return &DeclDefinition{Ident: name.Ident(), Type: ty}, nil
}

func (r *reader) clause() (Decl, error) {
	r.bump()
	name, err := r.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	var pats []Copattern
	for !r.at(TokenEquals) && !r.at(TokenSemi) {
		copat, err := r.copattern()
		if err != nil {
			return nil, err
		}
		pats = append(pats, copat)
	}
	var body Expr
	if r.at(TokenEquals) {
		r.bump()
		if body, err = r.expr(); err != nil {
			return nil, err
		}
	}
	if _, err := r.expect(TokenSemi); err != nil {
		return nil, err
	}
	return &DeclClause{Ident: name.Ident(), Patterns: pats, Body: body}, nil
}

func (r *reader) header() (Ident, []Param, Level, error) {
	r.bump()
	name, err := r.expect(TokenIdent)
	if err != nil {
		return Ident{}, nil, 0, err
	}
	params, err := r.params()
	if err != nil {
		return Ident{}, nil, 0, err
	}
	if _, err := r.expect(TokenColon); err != nil {
		return Ident{}, nil, 0, err
	}
	level, err := r.expect(TokenType)
	if err != nil {
		return Ident{}, nil, 0, err
	}
	return name.Ident(), params, level.Level, nil
}

func (r *reader) data() (Decl, error) {
	name, params, level, err := r.header()
	if err != nil {
		return nil, err
	}
	if _, err := r.expect(TokenLBrace); err != nil {
		return nil, err
	}
	var conses []ConsDef
	if r.at(TokenBar) {
		r.bump()
	}
	for !r.at(TokenRBrace) {
		cname, err := r.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		cparams, err := r.params()
		if err != nil {
			return nil, err
		}
		conses = append(conses, ConsDef{Ident: cname.Ident(), Params: cparams})
		if !r.at(TokenBar) {
			break
		}
		r.bump()
	}
	if _, err := r.expect(TokenRBrace); err != nil {
		return nil, err
	}
	r.optionalSemi()
	return &DeclData{Ident: name, Params: params, Level: level, Conses: conses}, nil
}

func (r *reader) codata() (Decl, error) {
	name, params, level, err := r.header()
	if err != nil {
		return nil, err
	}
	var self *Ident
	if r.at(TokenIdent) && r.peek().Text == "self" {
		r.bump()
		tok, err := r.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		self = Ptr(tok.Ident())
	}
	if _, err := r.expect(TokenLBrace); err != nil {
		return nil, err
	}
	var fields []FieldDef
	for !r.at(TokenRBrace) {
		fname, err := r.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := r.expect(TokenColon); err != nil {
			return nil, err
		}
		ty, err := r.expr()
		if err != nil {
			return nil, err
		}
		if _, err := r.expect(TokenSemi); err != nil {
			return nil, err
		}
		fields = append(fields, FieldDef{Ident: fname.Ident(), Type: ty})
	}
	r.bump()
	r.optionalSemi()
	return &DeclCodata{Ident: name, Params: params, Level: level, Self: self, Fields: fields}, nil
}

func (r *reader) optionalSemi() {
	if r.at(TokenSemi) {
		r.bump()
	}
}

// ========================

// atParam looks ahead for `(x y : ` or `{x y : `.
func (r *reader) atParam() bool {
	open := r.peek().Kind
	if open != TokenLParen && open != TokenLBrace {
		return false
	}
	n := 1
	for r.peekAt(n).Kind == TokenIdent {
		n++
	}
	return n > 1 && r.peekAt(n).Kind == TokenColon
}

func (r *reader) params() ([]Param, error) {
	var params []Param
	for r.atParam() {
		open := r.bump()
		licit, closing := Ex, TokenRParen
		if open.Kind == TokenLBrace {
			licit, closing = Im, TokenRBrace
		}
		var names []Ident
		for r.at(TokenIdent) {
			names = append(names, r.bump().Ident())
		}
		r.bump()
		ty, err := r.expr()
		if err != nil {
			return nil, err
		}
		if _, err := r.expect(closing); err != nil {
			return nil, err
		}
		params = append(params, Param{Licit: licit, Names: names, Type: ty})
	}
	return params, nil
}

func (r *reader) expr() (Expr, error) {
	loc := r.peek().Loc
	if r.atParam() {
		params, err := r.params()
		if err != nil {
			return nil, err
		}
		if _, err := r.expect(TokenArrow); err != nil {
			return nil, err
		}
		body, err := r.expr()
		if err != nil {
			return nil, err
		}
		return &ExprPi{At: loc, Params: params, Body: body}, nil
	}
	lhs, err := r.app()
	if err != nil {
		return nil, err
	}
	if !r.at(TokenArrow) {
		return lhs, nil
	}
	r.bump()
	body, err := r.expr()
	if err != nil {
		return nil, err
	}
	anon := Ident{Text: "_", Loc: loc}
	return &ExprPi{At: loc, Params: []Param{{Licit: Ex, Names: []Ident{anon}, Type: lhs}}, Body: body}, nil
}

func (r *reader) atAtom() bool {
	tok := r.peek()
	switch tok.Kind {
	case TokenIdent, TokenType, TokenLParen:
		return true
	case TokenDot:
		return r.peekAt(1).Kind == TokenIdent
	case TokenKeyword:
		return tok.Text == "refl" || tok.Text == "Id"
	default:
		return false
	}
}

func (r *reader) app() (Expr, error) {
	head, err := r.atom()
	if err != nil {
		return nil, err
	}
	var args []Expr
	for r.atAtom() {
		arg, err := r.atom()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return head, nil
	}
	return &ExprApp{Head: head, Args: args}, nil
}

func (r *reader) atom() (Expr, error) {
	tok := r.peek()
	switch {
	case tok.Kind == TokenIdent && tok.Text == "_":
		r.bump()
		return &ExprHole{Ident: tok.Ident()}, nil
	case tok.Kind == TokenIdent:
		r.bump()
		return &ExprVar{Ident: tok.Ident()}, nil
	case tok.Kind == TokenType:
		r.bump()
		return &ExprType{Ident: tok.Ident(), Level: tok.Level}, nil
	case tok.Kind == TokenDot:
		r.bump()
		field, err := r.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		return &ExprProj{Ident: field.Ident()}, nil
	case r.atKeyword("refl"):
		r.bump()
		return &ExprRefl{Ident: tok.Ident()}, nil
	case r.atKeyword("Id"):
		r.bump()
		var parts [3]Expr
		for i := range parts {
			if !r.atAtom() {
				return nil, r.unexpected("an argument of Id")
			}
			part, err := r.atom()
			if err != nil {
				return nil, err
			}
			parts[i] = part
		}
		return &ExprId{At: tok.Loc, Type: parts[0], LHS: parts[1], RHS: parts[2]}, nil
	case tok.Kind == TokenLParen:
		r.bump()
		e, err := r.expr()
		if err != nil {
			return nil, err
		}
		if _, err := r.expect(TokenRParen); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, r.unexpected("an expression")
	}
}

// ========================

func (r *reader) copattern() (Copattern, error) {
	switch {
	case r.at(TokenDot) && r.peekAt(1).Kind == TokenIdent:
		r.bump()
		return &CopatProj{Ident: r.bump().Ident()}, nil
	case r.at(TokenLBrace):
		r.bump()
		pat, err := r.pattern()
		if err != nil {
			return nil, err
		}
		if _, err := r.expect(TokenRBrace); err != nil {
			return nil, err
		}
		return &CopatPat{Licit: Im, Pat: pat}, nil
	default:
		pat, err := r.pattern()
		if err != nil {
			return nil, err
		}
		return &CopatPat{Licit: Ex, Pat: pat}, nil
	}
}

func (r *reader) atPattern() bool {
	switch tok := r.peek(); tok.Kind {
	case TokenIdent, TokenLParen:
		return true
	case TokenDot:
		return r.peekAt(1).Kind == TokenLParen
	case TokenKeyword:
		return tok.Text == "refl"
	default:
		return false
	}
}

func (r *reader) pattern() (Pattern, error) {
	tok := r.peek()
	switch {
	case tok.Kind == TokenIdent && tok.Text == "_":
		r.bump()
		return &PatWild{Ident: tok.Ident()}, nil
	case tok.Kind == TokenIdent:
		r.bump()
		return &PatIdent{Ident: tok.Ident()}, nil
	case r.atKeyword("refl"):
		r.bump()
		return &PatRefl{Ident: tok.Ident()}, nil
	case tok.Kind == TokenDot && r.peekAt(1).Kind == TokenLParen:
		r.bump()
		r.bump()
		e, err := r.expr()
		if err != nil {
			return nil, err
		}
		if _, err := r.expect(TokenRParen); err != nil {
			return nil, err
		}
		return &PatDot{At: tok.Loc, Expr: e}, nil
	case tok.Kind == TokenLParen:
		r.bump()
		if r.at(TokenRParen) {
			r.bump()
			return &PatAbsurd{At: tok.Loc}, nil
		}
		if !r.at(TokenIdent) {
			inner, err := r.pattern()
			if err != nil {
				return nil, err
			}
			if _, err := r.expect(TokenRParen); err != nil {
				return nil, err
			}
			return inner, nil
		}
		head := r.bump()
		var args []Pattern
		for r.atPattern() {
			arg, err := r.pattern()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if _, err := r.expect(TokenRParen); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return &PatIdent{Ident: head.Ident()}, nil
		}
		return &PatApp{Ident: head.Ident(), Args: args}, nil
	default:
		return nil, r.unexpected("a pattern")
	}
}
