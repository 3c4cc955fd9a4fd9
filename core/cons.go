package core

import (
	"github.com/davecgh/go-spew/spew"
	. "github.com/owo-lang/narc/common"
	"github.com/samber/lo"
)

func NewVar(i DBI) *Var {
	return &Var{Index: i}
}

func NewType(l Level) *Type {
	return &Type{Level: l}
}

func NewMeta(i MI) *Meta {
	return &Meta{Index: i}
}

func NewPi(param Bind, body Term) *Pi {
	return &Pi{Param: param, Body: Closure{Body: body}}
}

func NewRedex(def GI, name Ident, args ...Term) *Redex {
	return &Redex{Def: def, Name: name, Elims: Apps(args)}
}

func Apps(args []Term) []Elim {
	return lo.Map(args, func(t Term, _ int) Elim { return &App{Arg: t} })
}

// PiFromTele wraps ret in one Pi per binder.
func PiFromTele(tele Tele, ret Term) Term {
	for i := len(tele) - 1; i >= 0; i-- {
		ret = NewPi(tele[i], ret)
	}
	return ret
}

// TeleView peels the syntactic Pi prefix off t.
func TeleView(t Term) (Tele, Term) {
	var tele Tele
	for {
		pi, ok := t.(*Pi)
		if !ok {
			return tele, t
		}
		tele = append(tele, pi.Param)
		t = pi.Body.Body
	}
}

// TeleVars references n consecutive binders in telescope order, the last
// of which has index offset.
func TeleVars(n int, offset DBI) []Term {
	return lo.Times(n, func(i int) Term {
		return NewVar(offset + DBI(n-1-i))
	})
}

// AsVar reports whether t is a variable with no eliminations.
func AsVar(t Term) (DBI, bool) {
	if v, ok := t.(*Var); ok && len(v.Elims) == 0 {
		return v.Index, true
	}
	return 0, false
}

func appendElims(xs, ys []Elim) []Elim {
	out := make([]Elim, 0, len(xs)+len(ys))
	return append(append(out, xs...), ys...)
}

// DefApp extends a pending call with more eliminations.
func DefApp(def GI, name Ident, elims, more []Elim) *Redex {
	return &Redex{Def: def, Name: name, Elims: appendElims(elims, more)}
}

// ApplyElims eliminates t by es. The caller guarantees this is well typed.
func ApplyElims(t Term, es []Elim) Term {
	if len(es) == 0 {
		return t
	}
	switch t := t.(type) {
	case *Var:
		return &Var{Index: t.Index, Elims: appendElims(t.Elims, es)}
	case *Meta:
		return &Meta{Index: t.Index, Elims: appendElims(t.Elims, es)}
	case *Redex:
		return DefApp(t.Def, t.Name, t.Elims, es)
	case *Cons:
		args := Clone(t.Args)
		for _, e := range es {
			switch e := e.(type) {
			case *App:
				args = append(args, e.Arg)
			default:
				spew.Dump(t, e)
				panic("projecting a constructor")
			}
		}
		return &Cons{Head: t.Head, Args: args}
	case *Data:
		args := Clone(t.Args)
		for _, e := range es {
			switch e := e.(type) {
			case *App:
				args = append(args, e.Arg)
			default:
				spew.Dump(t, e)
				panic("projecting a type")
			}
		}
		return &Data{Kind: t.Kind, Def: t.Def, Name: t.Name, Args: args}
	default:
		spew.Dump(t, es)
		panic("unreachable")
	}
}
