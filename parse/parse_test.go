package parse

import (
	"errors"
	"strings"
	"testing"

	. "github.com/owo-lang/narc/common"
	"github.com/samber/lo"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"A", "A"},
		{"A -> B", "(_ : A) -> B"},
		{"A -> B -> C", "(_ : A) -> (_ : B) -> C"},
		{"(x y : A) {B : Type0} -> B", "(x y : A) {B : Type0} -> B"},
		{"f a (g b) .head", "f a (g b) .head"},
		{"(f a) b", "(f a) b"},
		{"Id A a b", "Id A a b"},
		{"Id (List A) nil (cons x nil)", "Id (List A) nil (cons x nil)"},
		{"List A -> Nat", "(_ : List A) -> Nat"},
		{"_", "_"},
		{"refl", "refl"},
		{"-- comment\n  Type1", "Type1"},
		{"α → β", "(_ : α) -> β"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := NewParser().ParseExpr(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if got := e.String(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUniverseLevels(t *testing.T) {
	tests := []struct {
		src   string
		level Level
	}{
		{"Type", 0},
		{"Type0", 0},
		{"Type7", 7},
	}
	for _, tt := range tests {
		e, err := NewParser().ParseExpr(tt.src)
		if err != nil {
			t.Fatalf("%v: %v", tt.src, err)
		}
		ty, ok := e.(*ExprType)
		if !ok || ty.Level != tt.level {
			t.Errorf("%v parsed as %#v", tt.src, e)
		}
	}
	if e, err := NewParser().ParseExpr("Types"); err != nil || e.String() != "Types" {
		t.Errorf("Types: %v, %v", e, err)
	}
}

func TestParseFile(t *testing.T) {
	src := `
data List (A : Type0) : Type1 { | nil | cons (x : A) (xs : List A) }
codata Stream : Type0 self s { head : Nat; tail : Stream; }
definition f : {A : Type0} -> List A -> A;
clause f {A} (cons x xs) .(a) refl () _ (zero) .head = x;
clause f nil;
`
	file, err := NewParser().ParseFile("test.narc", src)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"data List : Type1 { nil | cons (x : A) (xs : List A) }",
		"codata Stream : Type0 { head : Nat; tail : Stream; }",
		"definition f : {A : Type0} -> (_ : List A) -> A;",
		"clause f {A} (cons x xs) .(a) refl () _ zero .head = x;",
		"clause f nil;",
	}
	got := lo.Map(file.Decls, func(d Decl, _ int) string { return d.String() })
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("got\n%v\nwant\n%v", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	data := file.Decls[0].(*DeclData)
	if len(data.Params) != 1 || len(data.Conses) != 2 || data.Level != 1 {
		t.Errorf("data: %+v", data)
	}
	codata := file.Decls[1].(*DeclCodata)
	if codata.Self == nil || codata.Self.Text != "s" {
		t.Errorf("self binder: %v", codata.Self)
	}
	if loc := file.Decls[2].Loc(); loc != (Loc{Line: 4, Col: 12}) {
		t.Errorf("definition at %v", loc)
	}
	if clause := file.Decls[4].(*DeclClause); clause.Body != nil {
		t.Errorf("absurd clause has body %v", clause.Body)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		loc  Loc
	}{
		{"missing type", "definition f : ;", Loc{Line: 1, Col: 16}},
		{"unclosed paren", "definition f : (A;", Loc{Line: 1, Col: 18}},
		{"short Id", "definition f : Id A a;", Loc{Line: 1, Col: 22}},
		{"not a declaration", "\n  f : A;", Loc{Line: 2, Col: 3}},
		{"bad character", "definition f : A % B;", Loc{Line: 1, Col: 18}},
		{"missing semicolon", "clause f x = x", Loc{Line: 1, Col: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseFile("bad.narc", tt.src)
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected a parse error, got %v", err)
			}
			if perr.Loc != tt.loc || perr.Path != "bad.narc" {
				t.Errorf("error %v, want it at %v", perr, tt.loc)
			}
		})
	}
}
