package core

import (
	"fmt"

	. "github.com/owo-lang/narc/common"
	"github.com/samber/lo"
)

type Pat interface {
	fmt.Stringer
	_Pat()
}

type PatBase struct{}

func (*PatBase) _Pat() {}

type PatVar struct {
	PatBase
	Index DBI
}

func (p *PatVar) String() string {
	return p.Index.String()
}

type PatRefl struct {
	PatBase
}

func (*PatRefl) String() string {
	return "refl"
}

type PatAbsurd struct {
	PatBase
}

func (*PatAbsurd) String() string {
	return "()"
}

type PatCons struct {
	PatBase
	Head ConHead
	Args []Pat
}

func (p *PatCons) String() string {
	if len(p.Args) == 0 {
		return p.Head.Name.Text
	}
	args := lo.Map(p.Args, func(a Pat, _ int) string { return a.String() })
	return "(" + spine(p.Head.Name.Text, args) + ")"
}

// PatForced is an inaccessible position whose value is determined by the
// other patterns.
type PatForced struct {
	PatBase
	Term Term
}

func (p *PatForced) String() string {
	return ".(" + p.Term.String() + ")"
}

// ========================

type Copat interface {
	fmt.Stringer
	_Copat()
}

type CopatBase struct{}

func (*CopatBase) _Copat() {}

type CopatApp struct {
	CopatBase
	Licit Plicit
	Pat   Pat
}

func (c *CopatApp) String() string {
	if c.Licit == Im {
		return "{" + c.Pat.String() + "}"
	}
	return c.Pat.String()
}

type CopatProj struct {
	CopatBase
	Field string
}

func (c *CopatProj) String() string {
	return "." + c.Field
}

// ========================

// PatToTerm reads a pattern back as the term it stands for.
func PatToTerm(p Pat) Term {
	switch p := p.(type) {
	case *PatVar:
		return NewVar(p.Index)
	case *PatRefl:
		return &Refl{}
	case *PatCons:
		return &Cons{Head: p.Head, Args: lo.Map(p.Args, func(a Pat, _ int) Term { return PatToTerm(a) })}
	case *PatForced:
		return p.Term
	case *PatAbsurd:
		panic("absurd pattern has no term")
	default:
		panic("unreachable")
	}
}

// CopatToElim turns the application and projection copatterns of a clause
// into the elimination they match.
func CopatToElim(c Copat) Elim {
	switch c := c.(type) {
	case *CopatApp:
		return &App{Arg: PatToTerm(c.Pat)}
	case *CopatProj:
		return &Proj{Field: c.Field}
	default:
		panic("unreachable")
	}
}

func IsAbsurdPat(p Pat) bool {
	switch p := p.(type) {
	case *PatAbsurd:
		return true
	case *PatCons:
		return lo.ContainsBy(p.Args, IsAbsurdPat)
	default:
		return false
	}
}
