package compile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
	"github.com/owo-lang/narc/desugar"
	"github.com/owo-lang/narc/parse"
)

// compileFiles reports compiler errors in err and internal panics, with
// their stack, in crash.
func compileFiles(paths ...string) (err error, crash error) {
	_, crash, stack := Try(func() int {
		unit := NewCompilationUnit("tests")
		for _, path := range paths {
			if err = unit.AddFile(path); err != nil {
				return 0
			}
		}
		_, _, err = unit.Compile()
		return 0
	})
	if crash != nil {
		crash = fmt.Errorf("%w\n%v", crash, stack)
	}
	return err, crash
}

func TestCorpus(t *testing.T) {
	entries, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		name := entry.Name()
		t.Run(strings.TrimSuffix(name, ".narc"), func(t *testing.T) {
			err, crash := compileFiles(filepath.Join("testdata", name))
			if crash != nil {
				t.Fatalf("internal error: %v", crash)
			}
			switch {
			case strings.HasPrefix(name, "fail_"):
				if err == nil {
					t.Fatal("expected an error")
				}
			case strings.HasPrefix(name, "pass_"):
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			default:
				t.Fatalf("unexpected file %v", name)
			}
		})
	}
}

func TestExamples(t *testing.T) {
	err, crash := compileFiles(filepath.Join("..", "examples"))
	if crash != nil {
		t.Fatalf("internal error: %v", crash)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestUnitSpansFiles(t *testing.T) {
	unit := NewCompilationUnit("two files")
	if err := unit.AddSource("a.narc", []byte("data Nat : Type0 { zero | suc (n : Nat) }")); err != nil {
		t.Fatal(err)
	}
	if err := unit.AddSource("b.narc", []byte("definition two : Nat;\nclause two = suc (suc zero);")); err != nil {
		t.Fatal(err)
	}
	tcs, ds, err := unit.Compile()
	if err != nil {
		t.Fatal(err)
	}
	gi, kind, ok := ds.Lookup("two")
	if !ok || kind != desugar.KindDefn {
		t.Fatalf("two: %v %v", kind, ok)
	}
	fn, ok := tcs.Def(gi).(*core.FuncDecl)
	if !ok || len(fn.Clauses) != 1 {
		t.Fatalf("two checked as %v", spew.Sdump(tcs.Def(gi)))
	}
	if got := fn.Clauses[0].Body.String(); got != "suc (suc zero)" {
		t.Errorf("body = %v", got)
	}
}

func TestCompileErrors(t *testing.T) {
	if _, _, err := NewCompilationUnit("empty").Compile(); err == nil {
		t.Error("empty unit compiled")
	}

	unit := NewCompilationUnit("syntax")
	if err := unit.AddSource("bad.narc", []byte("clause ;")); err != nil {
		t.Fatal(err)
	}
	_, _, err := unit.Compile()
	var perr *parse.Error
	if !errors.As(err, &perr) || perr.Path != "bad.narc" {
		t.Errorf("got %v, want a parse error in bad.narc", err)
	}

	if err := NewCompilationUnit("missing").AddFile("testdata/missing.narc"); err == nil {
		t.Error("missing file added")
	}
}

func TestTrace(t *testing.T) {
	var trace strings.Builder
	unit := NewCompilationUnit("traced")
	unit.Trace = &trace
	if err := unit.AddFile(filepath.Join("testdata", "pass_identity.narc")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := unit.Compile(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(trace.String(), "id") {
		t.Errorf("trace does not mention the checked declarations:\n%v", trace.String())
	}
}
