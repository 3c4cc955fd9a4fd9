package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/owo-lang/narc/check"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/compile"
	"github.com/owo-lang/narc/core"
	"github.com/owo-lang/narc/desugar"
	"github.com/owo-lang/narc/parse"
	"github.com/peterh/liner"
)

const (
	historyFile = ".narc_history"
	prompt      = "narc> "
	banner      = "narc REPL. Type :help for the commands, Ctrl+D exits."
	replHelp    = `:t <expr>   infer the type of an expression
:n <expr>   normalize an expression
:help       show this text
:q          exit
`
)

// session evaluates REPL commands against the declarations loaded at
// start-up.
type session struct {
	tcs    *check.TCS
	ds     *desugar.State
	parser parse.Parser
	out    io.Writer
	errs   io.Writer
}

func (e *env) load(paths []string) (*session, error) {
	s := &session{parser: parse.NewParser(), out: e.stdout, errs: e.stderr}
	if len(paths) == 0 {
		s.ds = desugar.NewState()
		s.tcs = check.New(s.ds)
		return s, nil
	}
	unit := compile.NewCompilationUnit("repl")
	for _, path := range paths {
		if err := unit.AddFile(path); err != nil {
			return nil, err
		}
	}
	tcs, ds, err := unit.Compile()
	if err != nil {
		return nil, err
	}
	s.tcs, s.ds = tcs, ds
	return s, nil
}

func (e *env) repl(paths []string) int {
	s, err := e.load(paths)
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		fmt.Fprintln(e.stderr, e.red(failureMsg))
		return 1
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(e.stdout, banner)
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(e.stdout)
			return 0
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if s.command(line) {
			return 0
		}
	}
}

// command runs one line of input and reports whether the session is over.
func (s *session) command(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":q", ":quit":
		return true
	case ":h", ":help":
		fmt.Fprint(s.out, replHelp)
	case ":t", ":type":
		s.guard(func() error {
			_, ty, err := s.infer(arg)
			if err != nil {
				return err
			}
			fmt.Fprintln(s.out, ty)
			return nil
		})
	case ":n", ":normalize":
		s.guard(func() error {
			term, _, err := s.infer(arg)
			if err != nil {
				return err
			}
			nf, err := s.tcs.Normalize(term)
			if err != nil {
				return err
			}
			fmt.Fprintln(s.out, nf)
			return nil
		})
	default:
		fmt.Fprintf(s.errs, "unknown command %v, type :help for the commands\n", cmd)
	}
	return false
}

// guard reports errors and internal panics without ending the session.
func (s *session) guard(f func() error) {
	_, crash, _ := Try(func() int {
		if err := f(); err != nil {
			fmt.Fprintln(s.errs, err)
		}
		return 0
	})
	if crash != nil {
		fmt.Fprintf(s.errs, "internal error: %v\n", crash)
	}
}

// infer elaborates src in the global scope. Solved metas are inlined in
// the results; unsolved ones are left visible.
func (s *session) infer(src string) (core.Term, core.Term, error) {
	if src == "" {
		return nil, nil, fmt.Errorf("missing expression")
	}
	expr, err := s.parser.ParseExpr(src)
	if err != nil {
		return nil, nil, err
	}
	a, metas, err := s.ds.Expr(expr)
	if err != nil {
		return nil, nil, err
	}
	s.tcs.EnterMetas(metas)
	term, ty, err := s.tcs.Infer(a)
	if err != nil {
		return nil, nil, err
	}
	if z, err := s.tcs.Zonk(term, 0); err == nil {
		term = z
	}
	if z, err := s.tcs.Zonk(ty, 0); err == nil {
		ty = z
	}
	return term, ty, nil
}
