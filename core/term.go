package core

import (
	"fmt"
	"strings"

	. "github.com/owo-lang/narc/common"
	"github.com/samber/lo"
)

// Term is either a weak-head normal value or a pending call to a global
// definition.
type Term interface {
	fmt.Stringer
	_Term()
}

type TermBase struct{}

func (*TermBase) _Term() {}

type Val interface {
	Term
	_Val()
}

type ValBase struct {
	TermBase
}

func (*ValBase) _Val() {}

type Ductive int

const (
	Inductive Ductive = iota
	Coinductive
)

func (d Ductive) String() string {
	switch d {
	case Inductive:
		return "data"
	case Coinductive:
		return "codata"
	default:
		panic("unreachable")
	}
}

// ========================

type Type struct {
	ValBase
	Level Level
}

func (t *Type) String() string {
	return fmt.Sprintf("Type%v", t.Level)
}

type Data struct {
	ValBase
	Kind Ductive
	Def  GI
	Name Ident
	Args []Term
}

func (t *Data) String() string {
	return spine(t.Name.Text, terms2s(t.Args))
}

type Pi struct {
	ValBase
	Param Bind
	Body  Closure
}

func (t *Pi) String() string {
	return fmt.Sprintf("%v -> %v", t.Param, t.Body.Body)
}

// ConHead identifies a constructor together with its datatype.
type ConHead struct {
	Name Ident
	Cons GI
	Data GI
}

func (h ConHead) String() string {
	return h.Name.Text
}

type Cons struct {
	ValBase
	Head ConHead
	Args []Term
}

func (t *Cons) String() string {
	return spine(t.Head.Name.Text, terms2s(t.Args))
}

type Meta struct {
	ValBase
	Index MI
	Elims []Elim
}

func (t *Meta) String() string {
	return spine(t.Index.String(), elims2s(t.Elims))
}

// Axiom is an opaque value, equal only to itself.
type Axiom struct {
	ValBase
	UID UID
}

func (t *Axiom) String() string {
	return fmt.Sprintf("<%v>", t.UID)
}

type Var struct {
	ValBase
	Index DBI
	Elims []Elim
}

func (t *Var) String() string {
	return spine(t.Index.String(), elims2s(t.Elims))
}

type Id struct {
	ValBase
	Type Term
	LHS  Term
	RHS  Term
}

func (t *Id) String() string {
	return spine("Id", []string{atom(t.Type), atom(t.LHS), atom(t.RHS)})
}

type Refl struct {
	ValBase
}

func (*Refl) String() string {
	return "refl"
}

// ========================

type Redex struct {
	TermBase
	Def   GI
	Name  Ident
	Elims []Elim
}

func (t *Redex) String() string {
	return spine(t.Name.Text, elims2s(t.Elims))
}

// ========================

type Elim interface {
	fmt.Stringer
	_Elim()
}

type ElimBase struct{}

func (*ElimBase) _Elim() {}

type App struct {
	ElimBase
	Arg Term
}

func (e *App) String() string {
	return atom(e.Arg)
}

type Proj struct {
	ElimBase
	Field string
}

func (e *Proj) String() string {
	return "." + e.Field
}

// ========================

func spine(head string, args []string) string {
	if len(args) == 0 {
		return head
	}
	return head + " " + strings.Join(args, " ")
}

func atom(t Term) string {
	switch t := t.(type) {
	case *Var:
		if len(t.Elims) == 0 {
			return t.String()
		}
	case *Meta:
		if len(t.Elims) == 0 {
			return t.String()
		}
	case *Redex:
		if len(t.Elims) == 0 {
			return t.String()
		}
	case *Cons:
		if len(t.Args) == 0 {
			return t.String()
		}
	case *Data:
		if len(t.Args) == 0 {
			return t.String()
		}
	case *Type, *Axiom, *Refl:
		return t.String()
	}
	return "(" + t.String() + ")"
}

func terms2s(ts []Term) []string {
	return lo.Map(ts, func(t Term, _ int) string { return atom(t) })
}

func elims2s(es []Elim) []string {
	return lo.Map(es, func(e Elim, _ int) string { return e.String() })
}
