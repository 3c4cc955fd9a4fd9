package core

import (
	"fmt"
	"testing"

	. "github.com/owo-lang/narc/common"
)

var (
	boolName = Ident{Text: "Bool"}
	trueHead = ConHead{Name: Ident{Text: "true"}, Cons: 1, Data: 0}
)

func sampleSubsts() map[string]Subst {
	pair := &Cons{Head: trueHead, Args: []Term{NewVar(0), NewVar(3)}}
	return map[string]Subst{
		"id":          Identity,
		"raise2":      Raise(2),
		"one":         One(NewVar(4)),
		"one-cons":    One(pair),
		"lift-one":    Lift(One(pair), 2),
		"weak-cons":   Weaken(ConsSub(NewVar(9), Identity), 3),
		"parallel":    Parallel([]Term{NewVar(0), pair, NewVar(2)}),
		"lift-raise":  Lift(Raise(1), 1),
		"cons-weak":   ConsSub(NewVar(1), Raise(2)),
		"nested-lift": Lift(Lift(Parallel([]Term{neutral, NewVar(5)}), 1), 1),
	}
}

// Every fixture must send a variable to something that can be applied,
// since the test terms apply variables to arguments.
var neutral = &Var{Index: 7, Elims: []Elim{&App{Arg: NewVar(1)}}}

func TestLookupIdentity(t *testing.T) {
	for i := DBI(0); i < 5; i++ {
		if got := Lookup(Identity, i).String(); got != NewVar(i).String() {
			t.Errorf("Lookup(id, %v) = %v", i, got)
		}
	}
}

func TestRaiseLookup(t *testing.T) {
	for k := DBI(0); k < 4; k++ {
		for i := DBI(0); i < 4; i++ {
			got := Lookup(Raise(k), i)
			if got.String() != NewVar(i+k).String() {
				t.Errorf("Lookup(raise %v, %v) = %v", k, i, got)
			}
		}
	}
}

func TestZeroLiftAndWeaken(t *testing.T) {
	for name, rho := range sampleSubsts() {
		if Lift(rho, 0) != rho {
			t.Errorf("%s: lift 0 changed the substitution", name)
		}
		if Weaken(rho, 0) != rho {
			t.Errorf("%s: weaken 0 changed the substitution", name)
		}
	}
}

func TestComposeLookup(t *testing.T) {
	substs := sampleSubsts()
	for rn, rho := range substs {
		for sn, sgm := range substs {
			comp := Compose(rho, sgm)
			for i := DBI(0); i < 6; i++ {
				want := Substitute(Lookup(sgm, i), rho).String()
				got := Lookup(comp, i).String()
				if got != want {
					t.Errorf("compose(%s, %s) at %v: got %v, want %v", rn, sn, i, got, want)
				}
			}
		}
	}
}

func TestComposeAssociative(t *testing.T) {
	substs := sampleSubsts()
	terms := []Term{
		NewVar(0),
		NewVar(3),
		NewPi(NewBind(Ex, 1, Ident{Text: "x"}, NewVar(2)), &Var{Index: 1, Elims: []Elim{&App{Arg: NewVar(0)}}}),
		&Data{Def: 0, Name: boolName, Args: []Term{NewVar(1), NewVar(4)}},
		NewPi(NewBind(Ex, 1, Ident{Text: "A"}, &Type{Level: 1}), &Var{Index: 2, Elims: []Elim{&App{Arg: NewVar(0)}}}),
	}
	for an, a := range substs {
		for bn, b := range substs {
			for cn, c := range substs {
				left := Compose(Compose(a, b), c)
				right := Compose(a, Compose(b, c))
				for _, tm := range terms {
					l, r := Substitute(tm, left).String(), Substitute(tm, right).String()
					if l != r {
						t.Errorf("(%s∘%s)∘%s vs %s∘(%s∘%s) on %v: %v != %v", an, bn, cn, an, bn, cn, tm, l, r)
					}
				}
			}
		}
	}
}

func TestDropLookup(t *testing.T) {
	for name, rho := range sampleSubsts() {
		for n := DBI(0); n < 3; n++ {
			dropped := Drop(rho, n)
			for i := DBI(0); i < 4; i++ {
				got, want := Lookup(dropped, i).String(), Lookup(rho, i+n).String()
				if got != want {
					t.Errorf("%s: drop %v at %v: got %v, want %v", name, n, i, got, want)
				}
			}
		}
	}
}

func TestConsCollapse(t *testing.T) {
	collapsed := ConsSub(NewVar(1), Raise(2))
	if _, ok := collapsed.(*WeakS); !ok {
		t.Fatalf("expected a weakening, got %v", collapsed)
	}
	raw := &ConsS{Term: NewVar(1), Rest: Raise(2)}
	for i := DBI(0); i < 5; i++ {
		if a, b := Lookup(collapsed, i).String(), Lookup(raw, i).String(); a != b {
			t.Errorf("at %v: %v != %v", i, a, b)
		}
	}
}

func TestLiftKeepsInnerVariables(t *testing.T) {
	rho := Lift(One(&Type{Level: 0}), 2)
	cases := []struct {
		in   DBI
		want string
	}{
		{0, "@0"},
		{1, "@1"},
		{2, "Type0"},
		{3, "@2"},
	}
	for _, c := range cases {
		if got := Lookup(rho, c.in).String(); got != c.want {
			t.Errorf("Lookup(%v, %v) = %v, want %v", rho, c.in, got, c.want)
		}
	}
}

func TestLowerAndStrengthen(t *testing.T) {
	tm := &Var{Index: 3, Elims: []Elim{&App{Arg: NewVar(2)}}}
	if got := Substitute(tm, Lower(2)).String(); got != "@1 @0" {
		t.Errorf("lower 2 = %v", got)
	}
	_, err, _ := Try(func() Term { return Lookup(Lower(1), 0) })
	if err == nil {
		t.Errorf("looking up a strengthened variable should fail")
	}
}

func TestClosureInstantiate(t *testing.T) {
	arg := &Type{Level: 3}
	cases := []struct {
		body Term
		want string
	}{
		{NewVar(0), "Type3"},
		{NewVar(1), "@0"},
		{NewPi(NewBind(Ex, 1, Ident{Text: "y"}, NewVar(0)), NewVar(1)), "(y : Type3) -> Type3"},
		{&Var{Index: 2, Elims: []Elim{&App{Arg: NewVar(0)}}}, "@1 Type3"},
	}
	for _, c := range cases {
		if got := (Closure{Body: c.body}).Instantiate(arg).String(); got != c.want {
			t.Errorf("instantiate %v = %v, want %v", c.body, got, c.want)
		}
	}
}

func TestVarWithSpineUnderSubst(t *testing.T) {
	f := &Redex{Def: 4, Name: Ident{Text: "f"}}
	tm := &Var{Index: 0, Elims: []Elim{&App{Arg: NewVar(1)}, &Proj{Field: "fst"}}}
	got := Substitute(tm, One(f)).String()
	if want := "f @0 .fst"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTeleViewRoundTrip(t *testing.T) {
	tele := Tele{
		NewBind(Im, 1, Ident{Text: "A"}, &Type{Level: 0}),
		NewBind(Ex, 2, Ident{Text: "a"}, NewVar(0)),
	}
	pi := PiFromTele(tele, NewVar(1))
	back, ret := TeleView(pi)
	if fmt.Sprint(back) != fmt.Sprint(tele) || ret.String() != "@1" {
		t.Errorf("round trip gave %v and %v", back, ret)
	}
	if got := tele.TypeAt(0).String(); got != "@1" {
		t.Errorf("TypeAt(0) = %v", got)
	}
}

func TestFreeVarsAndMetas(t *testing.T) {
	tm := NewPi(
		NewBind(Ex, 1, Ident{Text: "x"}, &Meta{Index: 2, Elims: []Elim{&App{Arg: NewVar(4)}}}),
		&Var{Index: 0, Elims: []Elim{&App{Arg: NewVar(2)}, &App{Arg: NewMeta(0)}}},
	)
	vars := FreeVars(tm)
	if !vars.Contains(4) || !vars.Contains(1) || vars.Size() != 2 {
		t.Errorf("free vars = %v", vars)
	}
	metas := FreeMetas(tm)
	if !metas.Contains(0) || !metas.Contains(2) || metas.Size() != 2 {
		t.Errorf("free metas = %v", metas)
	}
	if !Mentions(tm, 2) || Mentions(tm, 1) {
		t.Errorf("Mentions is off")
	}
}
