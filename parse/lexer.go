package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	. "github.com/owo-lang/narc/common"
	"golang.org/x/text/unicode/norm"
)

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenType
	TokenKeyword
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenColon
	TokenSemi
	TokenEquals
	TokenBar
	TokenArrow
	TokenDot
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenType:
		return "universe"
	case TokenKeyword:
		return "keyword"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenColon:
		return "':'"
	case TokenSemi:
		return "';'"
	case TokenEquals:
		return "'='"
	case TokenBar:
		return "'|'"
	case TokenArrow:
		return "'->'"
	case TokenDot:
		return "'.'"
	default:
		panic("unreachable")
	}
}

var keywords = map[string]bool{
	"definition": true,
	"clause":     true,
	"data":       true,
	"codata":     true,
	"refl":       true,
	"Id":         true,
}

type Token struct {
	Kind  TokenKind
	Text  string
	Loc   Loc
	Level Level
}

func (t Token) Ident() Ident {
	return Ident{Text: t.Text, Loc: t.Loc}
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%q", t.Text)
}

type Error struct {
	Path string
	Loc  Loc
	Msg  string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Loc, e.Msg)
	}
	return fmt.Sprintf("%v:%v: %v", e.Path, e.Loc, e.Msg)
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func Tokenize(src string) ([]Token, error) {
	lx := &lexer{src: src, line: 1, col: 1}
	var toks []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) peek() rune {
	if lx.pos >= len(lx.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
	return r
}

func (lx *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += size
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		switch {
		case strings.HasPrefix(lx.src[lx.pos:], "--"):
			for lx.pos < len(lx.src) && lx.peek() != '\n' {
				lx.advance()
			}
		case unicode.IsSpace(lx.peek()):
			lx.advance()
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\''
}

func (lx *lexer) next() (Token, error) {
	lx.skipSpace()
	loc := Loc{Line: lx.line, Col: lx.col}
	if lx.pos >= len(lx.src) {
		return Token{Kind: TokenEOF, Loc: loc}, nil
	}
	if strings.HasPrefix(lx.src[lx.pos:], "->") {
		lx.advance()
		lx.advance()
		return Token{Kind: TokenArrow, Text: "->", Loc: loc}, nil
	}
	r := lx.peek()
	single := map[rune]TokenKind{
		'(': TokenLParen,
		')': TokenRParen,
		'{': TokenLBrace,
		'}': TokenRBrace,
		':': TokenColon,
		';': TokenSemi,
		'=': TokenEquals,
		'|': TokenBar,
		'.': TokenDot,
	}
	if kind, ok := single[r]; ok {
		lx.advance()
		return Token{Kind: kind, Text: string(r), Loc: loc}, nil
	}
	if r == '→' {
		lx.advance()
		return Token{Kind: TokenArrow, Text: "->", Loc: loc}, nil
	}
	if !isIdentStart(r) {
		return Token{}, &Error{Loc: loc, Msg: fmt.Sprintf("unexpected character %q", r)}
	}
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentPart(lx.peek()) {
		lx.advance()
	}
	text := norm.NFC.String(lx.src[start:lx.pos])
	if level, ok := universe(text); ok {
		return Token{Kind: TokenType, Text: text, Loc: loc, Level: level}, nil
	}
	if keywords[text] {
		return Token{Kind: TokenKeyword, Text: text, Loc: loc}, nil
	}
	return Token{Kind: TokenIdent, Text: text, Loc: loc}, nil
}

// universe recognises Type, Type0, Type1, ...
func universe(text string) (Level, bool) {
	if !strings.HasPrefix(text, "Type") {
		return 0, false
	}
	digits := text[len("Type"):]
	if digits == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return Level(n), true
}
