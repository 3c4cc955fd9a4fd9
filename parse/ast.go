package parse

import (
	"fmt"
	"strings"

	. "github.com/owo-lang/narc/common"
	"github.com/samber/lo"
)

type Expr interface {
	fmt.Stringer
	Loc() Loc
	_Expr()
}

type ExprBase struct{}

func (*ExprBase) _Expr() {}

type ExprVar struct {
	ExprBase
	Ident Ident
}

func (e *ExprVar) Loc() Loc       { return e.Ident.Loc }
func (e *ExprVar) String() string { return e.Ident.Text }

type ExprType struct {
	ExprBase
	Ident Ident
	Level Level
}

func (e *ExprType) Loc() Loc       { return e.Ident.Loc }
func (e *ExprType) String() string { return e.Ident.Text }

// ExprHole is `_` in expression position.
type ExprHole struct {
	ExprBase
	Ident Ident
}

func (e *ExprHole) Loc() Loc       { return e.Ident.Loc }
func (e *ExprHole) String() string { return "_" }

type ExprRefl struct {
	ExprBase
	Ident Ident
}

func (e *ExprRefl) Loc() Loc       { return e.Ident.Loc }
func (e *ExprRefl) String() string { return "refl" }

// ExprProj is a postfix projection `.field` inside an application.
type ExprProj struct {
	ExprBase
	Ident Ident
}

func (e *ExprProj) Loc() Loc       { return e.Ident.Loc }
func (e *ExprProj) String() string { return "." + e.Ident.Text }

type ExprApp struct {
	ExprBase
	Head Expr
	Args []Expr
}

func (e *ExprApp) Loc() Loc { return e.Head.Loc() }

func (e *ExprApp) String() string {
	parts := append([]string{atom(e.Head)}, lo.Map(e.Args, func(a Expr, _ int) string { return atom(a) })...)
	return strings.Join(parts, " ")
}

type Param struct {
	Licit Plicit
	Names []Ident
	Type  Expr
}

func (p Param) String() string {
	names := lo.Map(p.Names, func(n Ident, _ int) string { return n.Text })
	return p.Licit.Wrap(fmt.Sprintf("%v : %v", strings.Join(names, " "), p.Type))
}

// ExprPi covers both telescopic and plain arrows; a plain arrow has one
// explicit parameter named `_`.
type ExprPi struct {
	ExprBase
	At     Loc
	Params []Param
	Body   Expr
}

func (e *ExprPi) Loc() Loc { return e.At }

func (e *ExprPi) String() string {
	params := lo.Map(e.Params, func(p Param, _ int) string { return p.String() })
	return fmt.Sprintf("%v -> %v", strings.Join(params, " "), e.Body)
}

type ExprId struct {
	ExprBase
	At   Loc
	Type Expr
	LHS  Expr
	RHS  Expr
}

func (e *ExprId) Loc() Loc { return e.At }

func (e *ExprId) String() string {
	return fmt.Sprintf("Id %v %v %v", atom(e.Type), atom(e.LHS), atom(e.RHS))
}

func atom(e Expr) string {
	switch e.(type) {
	case *ExprApp, *ExprPi, *ExprId:
		return "(" + e.String() + ")"
	default:
		return e.String()
	}
}

// ========================

type Pattern interface {
	fmt.Stringer
	Loc() Loc
	_Pattern()
}

type PatternBase struct{}

func (*PatternBase) _Pattern() {}

// PatIdent is either a variable or a nullary constructor; the desugarer
// decides.
type PatIdent struct {
	PatternBase
	Ident Ident
}

func (p *PatIdent) Loc() Loc       { return p.Ident.Loc }
func (p *PatIdent) String() string { return p.Ident.Text }

type PatWild struct {
	PatternBase
	Ident Ident
}

func (p *PatWild) Loc() Loc       { return p.Ident.Loc }
func (p *PatWild) String() string { return "_" }

type PatRefl struct {
	PatternBase
	Ident Ident
}

func (p *PatRefl) Loc() Loc       { return p.Ident.Loc }
func (p *PatRefl) String() string { return "refl" }

type PatAbsurd struct {
	PatternBase
	At Loc
}

func (p *PatAbsurd) Loc() Loc       { return p.At }
func (p *PatAbsurd) String() string { return "()" }

type PatApp struct {
	PatternBase
	Ident Ident
	Args  []Pattern
}

func (p *PatApp) Loc() Loc { return p.Ident.Loc }

func (p *PatApp) String() string {
	args := lo.Map(p.Args, func(a Pattern, _ int) string { return a.String() })
	return fmt.Sprintf("(%v %v)", p.Ident.Text, strings.Join(args, " "))
}

type PatDot struct {
	PatternBase
	At   Loc
	Expr Expr
}

func (p *PatDot) Loc() Loc       { return p.At }
func (p *PatDot) String() string { return fmt.Sprintf(".(%v)", p.Expr) }

type Copattern interface {
	fmt.Stringer
	Loc() Loc
	_Copattern()
}

type CopatternBase struct{}

func (*CopatternBase) _Copattern() {}

type CopatPat struct {
	CopatternBase
	Licit Plicit
	Pat   Pattern
}

func (c *CopatPat) Loc() Loc { return c.Pat.Loc() }

func (c *CopatPat) String() string {
	if c.Licit == Im {
		return "{" + c.Pat.String() + "}"
	}
	return c.Pat.String()
}

type CopatProj struct {
	CopatternBase
	Ident Ident
}

func (c *CopatProj) Loc() Loc       { return c.Ident.Loc }
func (c *CopatProj) String() string { return "." + c.Ident.Text }

// ========================

type Decl interface {
	fmt.Stringer
	Loc() Loc
	_Decl()
}

type DeclBase struct{}

func (*DeclBase) _Decl() {}

type DeclDefinition struct {
	DeclBase
	Ident Ident
	Type  Expr
}

func (d *DeclDefinition) Loc() Loc { return d.Ident.Loc }

func (d *DeclDefinition) String() string {
	return fmt.Sprintf("definition %v : %v;", d.Ident, d.Type)
}

type DeclClause struct {
	DeclBase
	Ident    Ident
	Patterns []Copattern
	Body     Expr
}

func (d *DeclClause) Loc() Loc { return d.Ident.Loc }

func (d *DeclClause) String() string {
	parts := append([]string{"clause", d.Ident.Text}, lo.Map(d.Patterns, func(c Copattern, _ int) string { return c.String() })...)
	if d.Body == nil {
		return strings.Join(parts, " ") + ";"
	}
	return fmt.Sprintf("%v = %v;", strings.Join(parts, " "), d.Body)
}

type ConsDef struct {
	Ident  Ident
	Params []Param
}

type DeclData struct {
	DeclBase
	Ident  Ident
	Params []Param
	Level  Level
	Conses []ConsDef
}

func (d *DeclData) Loc() Loc { return d.Ident.Loc }

func (d *DeclData) String() string {
	conses := lo.Map(d.Conses, func(c ConsDef, _ int) string {
		return strings.Join(append([]string{c.Ident.Text}, lo.Map(c.Params, func(p Param, _ int) string { return p.String() })...), " ")
	})
	return fmt.Sprintf("data %v : Type%v { %v }", d.Ident, d.Level, strings.Join(conses, " | "))
}

type FieldDef struct {
	Ident Ident
	Type  Expr
}

type DeclCodata struct {
	DeclBase
	Ident  Ident
	Params []Param
	Level  Level
	Self   *Ident
	Fields []FieldDef
}

func (d *DeclCodata) Loc() Loc { return d.Ident.Loc }

func (d *DeclCodata) String() string {
	fields := lo.Map(d.Fields, func(f FieldDef, _ int) string { return fmt.Sprintf("%v : %v;", f.Ident, f.Type) })
	return fmt.Sprintf("codata %v : Type%v { %v }", d.Ident, d.Level, strings.Join(fields, " "))
}

type File struct {
	Path  string
	Decls []Decl
}
