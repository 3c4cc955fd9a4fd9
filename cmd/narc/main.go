package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/owo-lang/narc/check"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/compile"
	"github.com/owo-lang/narc/config"
	"golang.org/x/sync/errgroup"
)

const (
	successMsg = "\U0001F42E\U0001F37A"
	failureMsg = "\U0001F528"
	usage      = `usage: narc [flags] files...
       narc [flags] repl [files...]

A directory argument checks every .narc file in it as one program, and "-"
reads standard input. Each argument is checked on its own.

flags:
`
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type env struct {
	cfg    *config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	color  bool
}

func (e *env) green(s string) string {
	if !e.color {
		return s
	}
	return "\x1b[32m" + s + "\x1b[0m"
}

func (e *env) red(s string) string {
	if !e.color {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("narc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "read settings from this file instead of ./"+config.FileName)
	quiet := fs.Bool("quiet", false, "only report errors")
	parseOnly := fs.Bool("parse-only", false, "stop after parsing")
	trace := fs.Bool("trace", false, "print the judgments of the type checker")
	traceMetas := fs.Bool("trace-metas", false, "dump the meta context whenever a meta is solved")
	color := fs.String("color", "", "colour the output: auto, always or never")
	jobs := fs.Int("jobs", 0, "number of files checked at once (default one per CPU)")
	watch := fs.Bool("watch", false, "check again whenever a file changes")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadConfig(*configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "quiet":
			cfg.Quiet = *quiet
		case "parse-only":
			cfg.ParseOnly = *parseOnly
		case "trace":
			cfg.Trace = *trace
		case "trace-metas":
			cfg.TraceMetas = *traceMetas
		case "color":
			cfg.Color = config.ColorMode(*color)
		case "jobs":
			if *jobs > 0 {
				cfg.Jobs = *jobs
			}
		}
	})
	if err := cfg.Validate("command line"); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	check.TraceMetas = cfg.TraceMetas

	e := &env{cfg: cfg, stdin: stdin, stdout: stdout, stderr: stderr, color: cfg.UseColor(isTerminal(stdout))}

	paths := fs.Args()
	if len(paths) > 0 && paths[0] == "repl" {
		return e.repl(paths[1:])
	}
	if len(paths) == 0 {
		paths = cfg.Files
	}
	if len(paths) == 0 {
		fs.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watch {
		return e.watch(ctx, paths)
	}
	if e.checkAll(ctx, paths) {
		return 0
	}
	return 1
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// report is the outcome of checking one argument, buffered so that files
// checked in parallel are still printed in argument order.
type report struct {
	Path   string
	Parsed bool
	Err    error
	Trace  bytes.Buffer
}

// checkAll checks every path as its own compilation unit and prints the
// reports. It returns whether all of them passed.
func (e *env) checkAll(ctx context.Context, paths []string) bool {
	reports := make([]*report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = e.checkFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(e.stderr, err)
		return false
	}

	ok := true
	for _, r := range reports {
		if !e.print(r, len(paths) > 1) {
			ok = false
		}
	}
	return ok
}

func (e *env) checkFile(path string) *report {
	r := &report{Path: path}
	_, crash, stack := Try(func() int {
		r.Err = e.compile(r)
		return 0
	})
	if crash != nil {
		r.Err = fmt.Errorf("internal error: %w\n%s", crash, stack)
	}
	return r
}

func (e *env) compile(r *report) error {
	unit := compile.NewCompilationUnit(r.Path)
	if r.Path == "-" {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return err
		}
		if err := unit.AddSource("<stdin>", data); err != nil {
			return err
		}
	} else if err := unit.AddFile(r.Path); err != nil {
		return err
	}
	if e.cfg.Trace {
		unit.Trace = &r.Trace
	}

	if _, err := unit.Parse(); err != nil {
		return err
	}
	r.Parsed = true
	if e.cfg.ParseOnly {
		return nil
	}

	_, _, err := unit.Compile()
	return err
}

func (e *env) print(r *report, named bool) bool {
	prefix := ""
	if named {
		prefix = r.Path + ": "
	}
	if r.Trace.Len() > 0 {
		fmt.Fprint(e.stderr, r.Trace.String())
	}
	if r.Parsed && !e.cfg.Quiet {
		fmt.Fprintf(e.stdout, "%vParse successful.\n", prefix)
	}
	if r.Err != nil {
		fmt.Fprintf(e.stderr, "%v%v\n", prefix, strings.TrimSpace(r.Err.Error()))
		fmt.Fprintln(e.stderr, e.red(failureMsg))
		return false
	}
	if !e.cfg.ParseOnly && !e.cfg.Quiet {
		fmt.Fprintf(e.stdout, "%v%v\n", prefix, e.green(successMsg))
	}
	return true
}
