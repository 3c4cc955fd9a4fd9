package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

var testdata = filepath.Join("..", "..", "compile", "testdata")

func runNarc(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	pass := filepath.Join(testdata, "pass_prelude.narc")
	fail := filepath.Join(testdata, "fail_nominal.narc")
	tests := []struct {
		name   string
		stdin  string
		args   []string
		code   int
		stdout []string
		stderr []string
	}{
		{"pass", "", []string{"-color=never", pass}, 0, []string{"Parse successful.", successMsg}, nil},
		{"quiet", "", []string{"-quiet", pass}, 0, nil, nil},
		{"fail", "", []string{"-color=never", fail}, 1, []string{"Parse successful."}, []string{failureMsg}},
		{"parse only", "", []string{"-parse-only", fail}, 0, []string{"Parse successful."}, nil},
		{"syntax error", "", []string{"-parse-only", filepath.Join(testdata, "fail_syntax.narc")}, 1, nil, []string{failureMsg}},
		{"several files", "", []string{"-jobs=2", pass, fail}, 1,
			[]string{pass + ": " + "Parse successful.", fail + ": " + "Parse successful."}, []string{fail + ": "}},
		{"stdin", "data T : Type0 { t }", []string{"-color=never", "-"}, 0, []string{successMsg}, nil},
		{"missing file", "", []string{filepath.Join(testdata, "missing.narc")}, 1, nil, []string{failureMsg}},
		{"bad flag value", "", []string{"-color=sometimes", pass}, 2, nil, []string{"color"}},
		{"no files", "", nil, 2, nil, []string{"usage"}},
		{"trace", "", []string{"-quiet", "-trace", filepath.Join(testdata, "pass_identity.narc")}, 0, nil, []string{"id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runNarc(t, tt.stdin, tt.args...)
			if code != tt.code {
				t.Errorf("exit status %v, want %v\nstdout:\n%v\nstderr:\n%v", code, tt.code, stdout, stderr)
			}
			for _, want := range tt.stdout {
				if !strings.Contains(stdout, want) {
					t.Errorf("stdout does not contain %q:\n%v", want, stdout)
				}
			}
			for _, want := range tt.stderr {
				if !strings.Contains(stderr, want) {
					t.Errorf("stderr does not contain %q:\n%v", want, stderr)
				}
			}
			if len(tt.stdout) == 0 && stdout != "" {
				t.Errorf("unexpected output:\n%v", stdout)
			}
		})
	}
}

func TestRunOrder(t *testing.T) {
	paths := []string{
		filepath.Join(testdata, "pass_universe.narc"),
		filepath.Join(testdata, "pass_absurd.narc"),
		filepath.Join(testdata, "pass_identity.narc"),
	}
	code, stdout, _ := runNarc(t, "", append([]string{"-parse-only", "-jobs=3"}, paths...)...)
	if code != 0 {
		t.Fatalf("exit status %v", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != len(paths) {
		t.Fatalf("got %d lines:\n%v", len(lines), stdout)
	}
	for i, path := range paths {
		if !strings.HasPrefix(lines[i], path+": ") {
			t.Errorf("line %d is %q, want a report for %v", i, lines[i], path)
		}
	}
}

func TestSession(t *testing.T) {
	var out, errs bytes.Buffer
	e := &env{stdout: &out, stderr: &errs}
	s, err := e.load([]string{filepath.Join(testdata, "pass_prelude.narc")})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		line string
		out  string
		errs string
	}{
		{":t plus", "(_ : Nat) -> (_ : Nat) -> Nat", ""},
		{":n plus (suc zero) (suc zero)", "suc (suc zero)", ""},
		{":n not (not true)", "true", ""},
		{":t len", "{A : Type0} -> (_ : List @0) -> Nat", ""},
		{":n head zeros", "zero", ""},
		{":t missing", "", "missing"},
		{":t (", "", "expected"},
		{":t", "", "missing expression"},
		{":frobnicate", "", "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			errs.Reset()
			if s.command(tt.line) {
				t.Fatal("session ended")
			}
			if got := strings.TrimSpace(out.String()); got != tt.out {
				t.Errorf("output %q, want %q", got, tt.out)
			}
			if !strings.Contains(errs.String(), tt.errs) || (tt.errs == "" && errs.Len() > 0) {
				t.Errorf("errors %q, want %q", errs.String(), tt.errs)
			}
		})
	}
	if !s.command(":q") {
		t.Error(":q did not end the session")
	}
}
