package core

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-set/v2"
	. "github.com/owo-lang/narc/common"
)

// Walk visits every term directly below t. depth counts the binders
// crossed to reach the child.
func Walk(t Term, visit func(child Term, depth DBI)) {
	elims := func(es []Elim) {
		for _, e := range es {
			if app, ok := e.(*App); ok {
				visit(app.Arg, 0)
			}
		}
	}
	switch t := t.(type) {
	case *Type, *Axiom, *Refl:
	case *Data:
		for _, a := range t.Args {
			visit(a, 0)
		}
	case *Cons:
		for _, a := range t.Args {
			visit(a, 0)
		}
	case *Pi:
		visit(t.Param.Type, 0)
		visit(t.Body.Body, 1)
	case *Meta:
		elims(t.Elims)
	case *Var:
		elims(t.Elims)
	case *Redex:
		elims(t.Elims)
	case *Id:
		visit(t.Type, 0)
		visit(t.LHS, 0)
		visit(t.RHS, 0)
	default:
		spew.Dump(t)
		panic("unreachable")
	}
}

func FreeMetas(t Term) *set.Set[MI] {
	metas := set.New[MI](0)
	var collect func(Term)
	collect = func(t Term) {
		if m, ok := t.(*Meta); ok {
			metas.Insert(m.Index)
		}
		Walk(t, func(child Term, _ DBI) { collect(child) })
	}
	collect(t)
	return metas
}

// FreeVars collects the free de Bruijn indices of t.
func FreeVars(t Term) *set.Set[DBI] {
	vars := set.New[DBI](0)
	var collect func(Term, DBI)
	collect = func(t Term, under DBI) {
		if v, ok := t.(*Var); ok && v.Index >= under {
			vars.Insert(v.Index - under)
		}
		Walk(t, func(child Term, depth DBI) { collect(child, under+depth) })
	}
	collect(t, 0)
	return vars
}

// Mentions reports whether any free index of t is below bound.
func Mentions(t Term, bound DBI) bool {
	for _, v := range FreeVars(t).Slice() {
		if v < bound {
			return true
		}
	}
	return false
}
