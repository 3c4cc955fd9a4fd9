package compile

import (
	"fmt"
	"io"

	"github.com/owo-lang/narc/check"
	"github.com/owo-lang/narc/desugar"
	"github.com/owo-lang/narc/files"
	"github.com/owo-lang/narc/parse"
	"github.com/owo-lang/narc/source"
)

// CompilationUnit is a list of files checked as one program. Declarations
// are visible to every later declaration, across file boundaries, in the
// order the files were added.
type CompilationUnit struct {
	finder files.Finder
	parser parse.Parser
	Name   string
	Files  []*source.File
	// Trace receives the judgment trace of the checker; nil disables it.
	Trace io.Writer
}

func NewCompilationUnit(name string) *CompilationUnit {
	return &CompilationUnit{
		finder: files.NewFinder(),
		parser: parse.NewParser(),
		Name:   name,
	}
}

// AddFile adds a source file, or every source file of a directory.
func (u *CompilationUnit) AddFile(path string) error {
	paths, err := u.finder.FindSources(path)
	if err != nil {
		return err
	}
	for _, p := range paths {
		file, err := source.ReadFile(p)
		if err != nil {
			return err
		}
		u.Files = append(u.Files, file)
	}
	return nil
}

// AddSource adds a file that is not on disk, such as standard input.
func (u *CompilationUnit) AddSource(path string, data []byte) error {
	file, err := source.Decode(path, data)
	if err != nil {
		return err
	}
	u.Files = append(u.Files, file)
	return nil
}

// Parse parses every file and concatenates their declarations.
func (u *CompilationUnit) Parse() ([]parse.Decl, error) {
	var decls []parse.Decl
	for _, file := range u.Files {
		parsed, err := u.parser.ParseFile(file.Path, file.Text)
		if err != nil {
			return nil, err
		}
		decls = append(decls, parsed.Decls...)
	}
	return decls, nil
}

// Compile parses, desugars and type checks the unit.
func (u *CompilationUnit) Compile() (*check.TCS, *desugar.State, error) {
	if len(u.Files) == 0 {
		return nil, nil, fmt.Errorf("%v: no files to check", u.Name)
	}

	decls, err := u.Parse()
	if err != nil {
		return nil, nil, err
	}

	ds, err := desugar.Desugar(decls)
	if err != nil {
		return nil, nil, err
	}

	tcs := check.New(ds)
	tcs.TraceWriter = u.Trace
	if err := tcs.CheckDecls(ds.Decls); err != nil {
		return nil, ds, err
	}
	return tcs, ds, nil
}
