package abs

import (
	"fmt"
	"strings"

	. "github.com/owo-lang/narc/common"
	"github.com/samber/lo"
)

type Pat interface {
	fmt.Stringer
	Loc() Loc
	_Pat()
}

type PatBase struct{}

func (*PatBase) _Pat() {}

type PatVar struct {
	PatBase
	Ident Ident
	UID   UID
}

func (p *PatVar) Loc() Loc { return p.Ident.Loc }

func (p *PatVar) String() string { return p.Ident.Text }

type PatRefl struct {
	PatBase
	Ident Ident
}

func (p *PatRefl) Loc() Loc { return p.Ident.Loc }

func (*PatRefl) String() string { return "refl" }

type PatAbsurd struct {
	PatBase
	At Loc
}

func (p *PatAbsurd) Loc() Loc { return p.At }

func (*PatAbsurd) String() string { return "()" }

type PatCons struct {
	PatBase
	Ident Ident
	GI    GI
	Args  []Pat
}

func (p *PatCons) Loc() Loc { return p.Ident.Loc }

func (p *PatCons) String() string {
	if len(p.Args) == 0 {
		return p.Ident.Text
	}
	args := lo.Map(p.Args, func(a Pat, _ int) string { return a.String() })
	return fmt.Sprintf("(%v %v)", p.Ident.Text, strings.Join(args, " "))
}

type PatForced struct {
	PatBase
	At   Loc
	Term Abs
}

func (p *PatForced) Loc() Loc { return p.At }

func (p *PatForced) String() string { return fmt.Sprintf(".(%v)", p.Term) }

type Copat interface {
	fmt.Stringer
	Loc() Loc
	_Copat()
}

type CopatBase struct{}

func (*CopatBase) _Copat() {}

type CopatApp struct {
	CopatBase
	Licit Plicit
	Pat   Pat
}

func (c *CopatApp) Loc() Loc { return c.Pat.Loc() }

func (c *CopatApp) String() string {
	if c.Licit == Im {
		return "{" + c.Pat.String() + "}"
	}
	return c.Pat.String()
}

type CopatProj struct {
	CopatBase
	Ident Ident
	GI    GI
}

func (c *CopatProj) Loc() Loc { return c.Ident.Loc }

func (c *CopatProj) String() string { return "." + c.Ident.Text }

// ========================

type Decl interface {
	fmt.Stringer
	DeclName() Ident
	_Decl()
}

type DeclBase struct{}

func (*DeclBase) _Decl() {}

type DataDecl struct {
	DeclBase
	Ident  Ident
	Level  Level
	Tele   Tele
	Conses []GI
}

func (d *DataDecl) DeclName() Ident { return d.Ident }

func (d *DataDecl) String() string {
	return fmt.Sprintf("data %v %v : Type%v", d.Ident, teleString(d.Tele), d.Level)
}

// ConsDecl's telescope is scoped under the datatype's parameters.
type ConsDecl struct {
	DeclBase
	Ident Ident
	Tele  Tele
	Data  GI
}

func (d *ConsDecl) DeclName() Ident { return d.Ident }

func (d *ConsDecl) String() string {
	return fmt.Sprintf("| %v %v", d.Ident, teleString(d.Tele))
}

type CodataDecl struct {
	DeclBase
	Ident   Ident
	Self    Ident
	SelfRef UID
	Level   Level
	Tele    Tele
	Fields  []GI
}

func (d *CodataDecl) DeclName() Ident { return d.Ident }

func (d *CodataDecl) String() string {
	return fmt.Sprintf("codata %v %v : Type%v self %v", d.Ident, teleString(d.Tele), d.Level, d.Self)
}

// ProjDecl's type is scoped under the record's parameters and self.
type ProjDecl struct {
	DeclBase
	Ident  Ident
	Type   Abs
	Codata GI
}

func (d *ProjDecl) DeclName() Ident { return d.Ident }

func (d *ProjDecl) String() string {
	return fmt.Sprintf("%v : %v;", d.Ident, d.Type)
}

type DefnDecl struct {
	DeclBase
	Ident Ident
	Type  Abs
}

func (d *DefnDecl) DeclName() Ident { return d.Ident }

func (d *DefnDecl) String() string {
	return fmt.Sprintf("definition %v : %v;", d.Ident, d.Type)
}

type ClauseDecl struct {
	DeclBase
	Ident    Ident
	Defn     GI
	Patterns []Copat
	Body     Abs
}

func (d *ClauseDecl) DeclName() Ident { return d.Ident }

func (d *ClauseDecl) String() string {
	pats := lo.Map(d.Patterns, func(p Copat, _ int) string { return p.String() })
	head := strings.Join(append([]string{"clause", d.Ident.Text}, pats...), " ")
	if d.Body == nil {
		return head + ";"
	}
	return fmt.Sprintf("%v = %v;", head, d.Body)
}

func teleString(tele Tele) string {
	return strings.Join(lo.Map(tele, func(b Bind, _ int) string { return b.String() }), " ")
}
