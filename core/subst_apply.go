package core

import (
	"github.com/davecgh/go-spew/spew"
	. "github.com/owo-lang/narc/common"
	"github.com/samber/lo"
)

func Substitute(t Term, rho Subst) Term {
	if isIdentity(rho) {
		return t
	}
	switch t := t.(type) {
	case *Redex:
		return &Redex{Def: t.Def, Name: t.Name, Elims: SubstElims(t.Elims, rho)}
	case *Type, *Axiom, *Refl:
		return t
	case *Data:
		return &Data{Kind: t.Kind, Def: t.Def, Name: t.Name, Args: SubstTerms(t.Args, rho)}
	case *Pi:
		return &Pi{
			Param: SubstBind(t.Param, rho),
			Body:  Closure{Body: Substitute(t.Body.Body, Lift(rho, 1))},
		}
	case *Cons:
		return &Cons{Head: t.Head, Args: SubstTerms(t.Args, rho)}
	case *Meta:
		return &Meta{Index: t.Index, Elims: SubstElims(t.Elims, rho)}
	case *Var:
		return ApplyElims(Lookup(rho, t.Index), SubstElims(t.Elims, rho))
	case *Id:
		return &Id{
			Type: Substitute(t.Type, rho),
			LHS:  Substitute(t.LHS, rho),
			RHS:  Substitute(t.RHS, rho),
		}
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

func SubstTerms(ts []Term, rho Subst) []Term {
	return lo.Map(ts, func(t Term, _ int) Term { return Substitute(t, rho) })
}

func SubstElim(e Elim, rho Subst) Elim {
	switch e := e.(type) {
	case *App:
		return &App{Arg: Substitute(e.Arg, rho)}
	case *Proj:
		return e
	default:
		panic("unreachable")
	}
}

func SubstElims(es []Elim, rho Subst) []Elim {
	return lo.Map(es, func(e Elim, _ int) Elim { return SubstElim(e, rho) })
}

func SubstBind(b Bind, rho Subst) Bind {
	return b.Map(func(t Term) Term { return Substitute(t, rho) })
}

// SubstTele applies rho to a telescope, going under each earlier binder.
func SubstTele(tele Tele, rho Subst) Tele {
	out := make(Tele, len(tele))
	for i, b := range tele {
		out[i] = SubstBind(b, Lift(rho, DBI(i)))
	}
	return out
}

func RaiseTerm(t Term, k DBI) Term {
	return Substitute(t, Raise(k))
}

// RaiseFrom raises by k the free variables at index from or above.
func RaiseFrom(t Term, from, k DBI) Term {
	return Substitute(t, Lift(Raise(k), from))
}

func RaiseTele(tele Tele, k DBI) Tele {
	return SubstTele(tele, Raise(k))
}

// RenamePat moves a pattern along rho. Variables named in fixed are
// replaced outright; any other variable becomes a variable pattern if rho
// sends it to a variable and a forced pattern otherwise.
func RenamePat(p Pat, rho Subst, fixed map[DBI]Pat) Pat {
	switch p := p.(type) {
	case *PatVar:
		if q, ok := fixed[p.Index]; ok {
			return q
		}
		t := Lookup(rho, p.Index)
		if i, ok := AsVar(t); ok {
			return &PatVar{Index: i}
		}
		return &PatForced{Term: t}
	case *PatForced:
		return &PatForced{Term: Substitute(p.Term, rho)}
	case *PatCons:
		return &PatCons{
			Head: p.Head,
			Args: lo.Map(p.Args, func(a Pat, _ int) Pat { return RenamePat(a, rho, fixed) }),
		}
	default:
		return p
	}
}

func RenameCopat(c Copat, rho Subst, fixed map[DBI]Pat) Copat {
	if app, ok := c.(*CopatApp); ok {
		return &CopatApp{Licit: app.Licit, Pat: RenamePat(app.Pat, rho, fixed)}
	}
	return c
}
