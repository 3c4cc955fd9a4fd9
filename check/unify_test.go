package check

import (
	"errors"
	"testing"

	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
	"github.com/owo-lang/narc/desugar"
)

func TestUnifyNominal(t *testing.T) {
	tcs := checkSource(t, `
data Bool : Type0 { true | false }
definition f : Bool -> Bool;
definition g : Bool -> Bool;
definition k : Bool -> Bool;
clause k b = true;
`)
	x := core.NewVar(0)
	tests := []struct {
		name     string
		lhs, rhs core.Term
		ok       bool
	}{
		{"same stuck call", ref(t, tcs, "f", x), ref(t, tcs, "f", x), true},
		{"different stuck calls", ref(t, tcs, "f", x), ref(t, tcs, "g", x), false},
		{"different arguments", ref(t, tcs, "f", x), ref(t, tcs, "f", ref(t, tcs, "true")), false},
		{"reduces first", ref(t, tcs, "k", x), ref(t, tcs, "true"), true},
		{"stuck against a value", ref(t, tcs, "f", x), ref(t, tcs, "true"), false},
		{"types", ref(t, tcs, "Bool"), ref(t, tcs, "Bool"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tcs.Unify(tt.lhs, tt.rhs)
			if tt.ok != (err == nil) {
				t.Errorf("Unify(%v, %v) = %v", tt.lhs, tt.rhs, err)
			}
		})
	}

	var diff *DifferentName
	if err := tcs.Unify(ref(t, tcs, "f", x), ref(t, tcs, "g", x)); !errors.As(err, &diff) {
		t.Errorf("expected DifferentName, got %v", err)
	}
}

func TestUnifyDoesNotUnfold(t *testing.T) {
	tcs := checkSource(t, `
data Nat : Type0 { zero | suc (n : Nat) }
definition f : Type1;
clause f = Type0;
definition g : Type1;
clause g = Type0;
definition plus : Nat -> Nat -> Nat;
clause plus zero m = m;
clause plus (suc n) m = suc (plus n m);
`)
	zero, one := ref(t, tcs, "zero"), ref(t, tcs, "suc", ref(t, tcs, "zero"))
	tests := []struct {
		name     string
		lhs, rhs core.Term
		ok       bool
	}{
		{"same function", ref(t, tcs, "f"), ref(t, tcs, "f"), true},
		{"both reduce to Type0", ref(t, tcs, "f"), ref(t, tcs, "g"), false},
		{"call against its value", ref(t, tcs, "f"), core.NewType(0), true},
		{"value against a call", core.NewType(0), ref(t, tcs, "g"), true},
		{"same function, equal results", ref(t, tcs, "plus", one, zero), ref(t, tcs, "plus", zero, one), false},
		{"call against a constructor", ref(t, tcs, "plus", one, one), ref(t, tcs, "suc", one), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tcs.Unify(tt.lhs, tt.rhs)
			if tt.ok != (err == nil) {
				t.Errorf("Unify(%v, %v) = %v", tt.lhs, tt.rhs, err)
			}
		})
	}

	var diff *DifferentName
	if err := tcs.Unify(ref(t, tcs, "f"), ref(t, tcs, "g")); !errors.As(err, &diff) {
		t.Errorf("expected DifferentName, got %v", err)
	}
	if err := tcs.Subtype(ref(t, tcs, "f"), ref(t, tcs, "g")); !errors.As(err, &diff) {
		t.Errorf("f <: g: expected DifferentName, got %v", err)
	}
}

func TestSubtype(t *testing.T) {
	tcs := New(desugar.NewState())
	tcs.EnterMetas(0)
	pi := func(licit Plicit, dom, cod core.Term) core.Term {
		return core.NewPi(core.NewBind(licit, 0, Ident{Text: "x"}, dom), cod)
	}
	tests := []struct {
		name     string
		sub, sup core.Term
		ok       bool
	}{
		{"cumulative", core.NewType(0), core.NewType(1), true},
		{"not downwards", core.NewType(2), core.NewType(1), false},
		{"covariant codomain", pi(Ex, core.NewType(0), core.NewType(0)), pi(Ex, core.NewType(0), core.NewType(3)), true},
		{"invariant domain", pi(Ex, core.NewType(0), core.NewType(0)), pi(Ex, core.NewType(1), core.NewType(0)), false},
		{"licit must agree", pi(Im, core.NewType(0), core.NewType(0)), pi(Ex, core.NewType(0), core.NewType(0)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tcs.Subtype(tt.sub, tt.sup)
			if tt.ok != (err == nil) {
				t.Errorf("%v <: %v: %v", tt.sub, tt.sup, err)
			}
		})
	}
}

func TestSolveMeta(t *testing.T) {
	tcs := checkSource(t, `
data Bool : Type0 { true | false }
definition f : Bool -> Bool;
`)
	tcs.EnterMetas(2)
	if err := tcs.Unify(core.NewMeta(0), ref(t, tcs, "true")); err != nil {
		t.Fatal(err)
	}
	if sol := tcs.MetaCtx().Solution(0); !sol.Solved || sol.Val.String() != "true" {
		t.Errorf("?0 := %v", sol)
	}
	// ?0 is solved now, so this compares true with true.
	if err := tcs.Unify(ref(t, tcs, "true"), core.NewMeta(0)); err != nil {
		t.Error(err)
	}
	if err := tcs.Unify(core.NewMeta(0), ref(t, tcs, "false")); err == nil {
		t.Error("a solved meta was solved again")
	}
}

func TestOccursCheck(t *testing.T) {
	tcs := checkSource(t, `
data Bool : Type0 { true | false }
definition f : Bool -> Bool;
`)
	tcs.EnterMetas(2)
	if err := tcs.Unify(core.NewMeta(1), ref(t, tcs, "f", core.NewMeta(0))); err != nil {
		t.Fatal(err)
	}
	// ?0 = f ?0 directly, and ?0 = ?1 through the solution of ?1.
	for _, rhs := range []core.Term{ref(t, tcs, "f", core.NewMeta(0)), core.NewMeta(1)} {
		err := tcs.Unify(core.NewMeta(0), rhs)
		var rec *MetaRecursion
		if !errors.As(err, &rec) || rec.Meta != 0 {
			t.Errorf("?0 = %v: got %v", rhs, err)
		}
		if tcs.MetaCtx().Solution(0).Solved {
			t.Errorf("?0 = %v: failed occurs check still solved the meta", rhs)
		}
	}
}

func TestFlexFlex(t *testing.T) {
	tcs := New(desugar.NewState())
	tcs.EnterMetas(2)
	lhs := &core.Meta{Index: 0, Elims: []core.Elim{&core.App{Arg: core.NewVar(0)}}}
	rhs := &core.Meta{Index: 1, Elims: []core.Elim{&core.App{Arg: core.NewVar(1)}}}
	var ff *FlexFlex
	if err := tcs.Unify(lhs, rhs); !errors.As(err, &ff) {
		t.Errorf("expected FlexFlex, got %v", err)
	}
}

func TestMetaContextMonotonic(t *testing.T) {
	ctx := NewMetaContext(1)
	ctx.Solve(0, 0, core.NewType(0))
	_, err, _ := Try(func() int {
		ctx.Solve(0, 0, core.NewType(1))
		return 0
	})
	if err == nil {
		t.Fatal("solving a meta twice did not panic")
	}
	if got := ctx.Solution(0).Val.String(); got != "Type0" {
		t.Errorf("solution changed to %v", got)
	}
	m := ctx.Fresh()
	if m.Index != 1 || ctx.Len() != 2 {
		t.Errorf("fresh meta %v in a context of %d", m, ctx.Len())
	}
	ctx.Expand(5)
	if got := len(ctx.Unsolved()); got != 4 {
		t.Errorf("%d unsolved metas, want 4", got)
	}
}

func TestMetaSolutionDepth(t *testing.T) {
	tests := []struct {
		name     string
		val      core.Term
		solvedAt DBI
		usedAt   DBI
		want     string
		ok       bool
	}{
		{"same depth", core.NewVar(0), 2, 2, "@0", true},
		{"deeper", core.NewVar(0), 2, 3, "@1", true},
		{"shallower", core.NewVar(1), 2, 1, "@0", true},
		{"escapes its scope", core.NewVar(0), 2, 1, "", false},
		{"closed", core.NewType(0), 4, 0, "Type0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tcs := New(desugar.NewState())
			tcs.EnterMetas(1)
			tcs.MetaCtx().Solve(0, tt.solvedAt, tt.val)
			got, solved, err := tcs.metaSolution(0, tt.usedAt)
			if !tt.ok {
				if err == nil {
					t.Errorf("got %v, want an error", got)
				}
				return
			}
			if err != nil || !solved {
				t.Fatalf("solved %v, err %v", solved, err)
			}
			if got.String() != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
