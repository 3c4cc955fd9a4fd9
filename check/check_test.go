package check

import (
	"errors"
	"strings"
	"testing"

	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
	"github.com/owo-lang/narc/desugar"
	"github.com/owo-lang/narc/parse"
)

const prelude = `
data Bool : Type0 { true | false }
data Nat : Type0 { zero | suc (n : Nat) }
data Empty : Type0 { }
data List (A : Type0) : Type0 { nil | cons (x : A) (xs : List A) }
codata Stream : Type0 { head : Nat; tail : Stream; }

definition not : Bool -> Bool;
clause not true = false;
clause not false = true;

definition plus : Nat -> Nat -> Nat;
clause plus zero m = m;
clause plus (suc n) m = suc (plus n m);

definition len : {A : Type0} -> List A -> Nat;
clause len nil = zero;
clause len (cons x xs) = suc (len xs);

definition zeros : Stream;
clause zeros .head = zero;
clause zeros .tail = zeros;
`

func desugarSource(t *testing.T, src string) *desugar.State {
	t.Helper()
	file, err := parse.NewParser().ParseFile("test.narc", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ds, err := desugar.Desugar(file.Decls)
	if err != nil {
		t.Fatalf("desugar: %v", err)
	}
	return ds
}

func checkSource(t *testing.T, src string) *TCS {
	t.Helper()
	tcs, err := CheckDecls(desugarSource(t, src))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	tcs.EnterMetas(0)
	return tcs
}

// global finds a checked declaration by name.
func global(t *testing.T, tcs *TCS, name string) GI {
	t.Helper()
	for i, d := range tcs.Sigma {
		if _, ok := d.(*core.ClausePlaceholder); ok {
			continue
		}
		if d.DeclName().Text == name {
			return GI(i)
		}
	}
	t.Fatalf("no declaration named %v", name)
	return 0
}

func ref(t *testing.T, tcs *TCS, name string, args ...core.Term) *core.Redex {
	return core.NewRedex(global(t, tcs, name), Ident{Text: name}, args...)
}

func normalize(t *testing.T, tcs *TCS, term core.Term) string {
	t.Helper()
	v, err := tcs.Normalize(term)
	if err != nil {
		t.Fatalf("normalize %v: %v", term, err)
	}
	return v.String()
}

func TestCheckPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"prelude", prelude},
		{"identity", `
definition id' : (A : Type0) -> A -> A;
clause id' A a = a;
`},
		{"implicit identity", `
data Bool : Type0 { true | false }
definition id : {A : Type0} -> A -> A;
clause id a = a;
definition t : Bool;
clause t = id true;
`},
		{"symmetry", `
definition sym : (A : Type0) (a b : A) -> Id A a b -> Id A b a;
clause sym A a .(a) refl = refl;
`},
		{"absurd", `
data Empty : Type0 { }
definition elim : (A : Type0) -> Empty -> A;
clause elim A ();
`},
		{"cumulative universes", `
definition U : Type2;
clause U = Type0 -> Type0;
`},
		{"wildcards", `
data Bool : Type0 { true | false }
definition both : Bool -> Bool -> Bool;
clause both true b = b;
clause both false _ = false;
`},
		{"as binding after a refl split", `
definition sym : (A : Type0) (a b : A) -> Id A a b -> Id A b a;
clause sym A a b refl = refl;
`},
		{"stuck calls with the same name", `
data Bool : Type0 { true | false }
definition f : Bool -> Bool;
definition p : (b : Bool) -> Id Bool (f b) (f b);
clause p b = refl;
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkSource(t, tt.src)
		})
	}
}

func TestCheckFailures(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		check func(error) bool
	}{
		{"universe too large", `
data Bad : Type0 { mk (A : Type0) }
`, func(err error) bool {
			var e *DifferentLevel
			return errors.As(err, &e) && e.Actual == 1 && e.Upper == 0
		}},
		{"absurd on inhabited type", `
data Bool : Type0 { true | false }
definition f : Bool -> Bool;
clause f ();
`, func(err error) bool {
			var e *NotEmpty
			return errors.As(err, &e)
		}},
		{"unsolved hole", `
definition bad : Type1;
clause bad = _;
`, func(err error) bool {
			var e *MetaUnsolved
			return errors.As(err, &e) && e.Name.Text == "bad"
		}},
		{"nominal conversion", `
data Bool : Type0 { true | false }
definition f : Bool -> Bool;
definition g : Bool -> Bool;
definition p : (b : Bool) -> Id Bool (f b) (g b);
clause p b = refl;
`, func(err error) bool {
			var e *DifferentName
			return errors.As(err, &e) && e.LHS.Text == "f" && e.RHS.Text == "g"
		}},
		{"constructor of another type", `
data Bool : Type0 { true | false }
data Nat : Type0 { zero | suc (n : Nat) }
definition h : Bool -> Bool;
clause h zero = true;
`, func(err error) bool {
			var e *CantFindPattern
			return errors.As(err, &e) && e.Ident.Text == "zero"
		}},
		{"too many patterns", `
data Bool : Type0 { true | false }
definition not : Bool -> Bool;
clause not true false = true;
`, func(err error) bool {
			var e *NotPi
			return errors.As(err, &e)
		}},
		{"projection of a function", `
data Nat : Type0 { zero | suc (n : Nat) }
codata Stream : Type0 { head : Nat; }
definition f : Nat -> Nat;
clause f .head = zero;
`, func(err error) bool {
			var e *CantCosplit
			return errors.As(err, &e)
		}},
		{"missing body", `
data Bool : Type0 { true | false }
definition f : Bool -> Bool;
clause f x;
`, func(err error) bool {
			var e *Textual
			return errors.As(err, &e)
		}},
		{"type mismatch", `
data Bool : Type0 { true | false }
data Nat : Type0 { zero | suc (n : Nat) }
definition f : Bool;
clause f = zero;
`, func(err error) bool {
			var e *Wrapped
			return errors.As(err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckDecls(desugarSource(t, tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUniverseRule(t *testing.T) {
	tests := []struct {
		level, upper Level
		ok           bool
	}{
		{0, 1, true},
		{0, 5, true},
		{1, 1, false},
		{2, 1, false},
		{3, Omega, true},
	}
	for _, tt := range tests {
		tcs := New(desugar.NewState())
		tcs.EnterMetas(0)
		_, err := tcs.Check(&abs.Type{Level: tt.level}, core.NewType(tt.upper))
		if tt.ok && err != nil {
			t.Errorf("Type%v : Type%v: %v", tt.level, tt.upper, err)
		}
		if !tt.ok {
			var e *DifferentLevel
			if !errors.As(err, &e) || e.Actual != tt.level+1 || e.Upper != tt.upper {
				t.Errorf("Type%v : Type%v: got %v", tt.level, tt.upper, err)
			}
		}
	}
}

func TestClauseBodies(t *testing.T) {
	const identity = `
data Bool : Type0 { true | false }
definition id : {A : Type0} -> A -> A;
clause id a = a;
definition id' : {A : Type0} -> A -> A;
clause id' a = id a;
definition ex : (A : Type0) -> A -> A;
clause ex A a = a;
definition t : Bool;
clause t = id true;
`
	const split = `
data Bool : Type0 { true | false }
data AB : Type0 { a | b }
definition f : Bool -> AB;
clause f true = a;
clause f false = b;
`
	tests := []struct {
		name   string
		src    string
		defn   string
		clause int
		want   string // the clause as elaborated
		simpl  string // its body after simplification
	}{
		{"implicit identity", identity, "id", 0, "{@1} @0 = @0", "@0"},
		{"explicit identity", identity, "ex", 0, "@1 @0 = @0", "@0"},
		{"one unfolding", identity, "id'", 0, "{@1} @0 = id @1 @0", "@0"},
		{"implicit argument inserted", identity, "t", 0, "= id Bool true", "true"},
		{"first constructor", split, "f", 0, "true = a", "a"},
		{"second constructor", split, "f", 1, "false = b", "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tcs := checkSource(t, tt.src)
			fn := tcs.Def(global(t, tcs, tt.defn)).(*core.FuncDecl)
			if len(fn.Clauses) <= tt.clause {
				t.Fatalf("%v has %d clauses", tt.defn, len(fn.Clauses))
			}
			c := fn.Clauses[tt.clause]
			if got := strings.TrimSpace(copats(c.Patterns) + " = " + c.Body.String()); got != tt.want {
				t.Errorf("clause %v", got)
			}
			if got := normalize(t, tcs, c.Body); got != tt.simpl {
				t.Errorf("body simplifies to %v, want %v", got, tt.simpl)
			}
		})
	}
}

func TestSplitClausesReduce(t *testing.T) {
	tcs := checkSource(t, `
data Bool : Type0 { true | false }
data AB : Type0 { a | b }
definition f : Bool -> AB;
clause f true = a;
clause f false = b;
`)
	fn := tcs.Def(global(t, tcs, "f")).(*core.FuncDecl)
	if len(fn.Clauses) != 2 {
		t.Fatalf("%d clauses", len(fn.Clauses))
	}
	for i, cons := range []string{"true", "false"} {
		pat, ok := fn.Clauses[i].Patterns[0].(*core.CopatApp).Pat.(*core.PatCons)
		if !ok || pat.Head.Name.Text != cons {
			t.Errorf("clause %d matches %v", i, fn.Clauses[i].Patterns[0])
		}
	}
	if got := normalize(t, tcs, ref(t, tcs, "f", ref(t, tcs, "true"))); got != "a" {
		t.Errorf("f true = %v", got)
	}
}

func TestTypeOfDecl(t *testing.T) {
	tcs := checkSource(t, prelude)
	tests := []struct {
		name, want string
	}{
		{"Nat", "Type0"},
		{"suc", "(n : Nat) -> Nat"},
		{"cons", "{A : Type0} -> (x : @0) -> (xs : List @1) -> List @2"},
		{"head", "(self : Stream) -> Nat"},
		{"plus", "(_ : Nat) -> (_ : Nat) -> Nat"},
	}
	for _, tt := range tests {
		ty, err := tcs.TypeOfDecl(global(t, tcs, tt.name))
		if err != nil {
			t.Fatalf("%v: %v", tt.name, err)
		}
		if got := ty.String(); got != tt.want {
			t.Errorf("type of %v = %v, want %v", tt.name, got, tt.want)
		}
	}
}
