package check

import (
	"io"

	"github.com/owo-lang/narc/abs"
	. "github.com/owo-lang/narc/common"
	"github.com/owo-lang/narc/core"
	"github.com/owo-lang/narc/desugar"
)

// TCS is the type-checking state of one compilation unit. It is owned by a
// single goroutine and passed around by pointer; every judgment that
// extends the local context restores it before returning.
type TCS struct {
	Sigma []core.Decl
	// Gamma is in binding order, so index 0 is its last element.
	Gamma core.Tele
	Lets  []core.Let
	// MetaCtxs has one entry per declaration entered so far; the last one
	// is current.
	MetaCtxs []*MetaContext
	Names    NameGen
	// UnifyDepth counts binders crossed by unification without extending
	// Gamma.
	UnifyDepth DBI

	// TraceWriter receives the judgment trace; nil disables tracing.
	TraceWriter io.Writer
	traceDepth  int

	metaCounts []int
	decl       Ident
}

func New(ds *desugar.State) *TCS {
	return &TCS{
		Sigma:      make([]core.Decl, 0, len(ds.Decls)),
		Gamma:      make(core.Tele, 0, 16),
		Names:      ds.Names,
		metaCounts: ds.MetaCounts,
	}
}

func (tcs *TCS) Def(gi GI) core.Decl {
	Assertf(int(gi) < len(tcs.Sigma), "%v is not checked yet", gi)
	decl := tcs.Sigma[gi]
	if _, ok := decl.(*core.ClausePlaceholder); ok {
		panic("clause placeholder used as a declaration")
	}
	return decl
}

func (tcs *TCS) DefName(gi GI) Ident {
	return tcs.Sigma[gi].DeclName()
}

// Depth is the length of the local context as seen by unification.
func (tcs *TCS) Depth() DBI {
	return DBI(len(tcs.Gamma)) + tcs.UnifyDepth
}

// Local returns the binder at index i with its type valid in the whole of
// Gamma.
func (tcs *TCS) Local(i DBI) core.Bind {
	b := tcs.Gamma.Lookup(i)
	b.Type = tcs.Gamma.TypeAt(i)
	return b
}

func (tcs *TCS) LocalByUID(uid UID) (DBI, core.Bind, bool) {
	for i := len(tcs.Gamma) - 1; i >= 0; i-- {
		if tcs.Gamma[i].Name == uid {
			dbi := DBI(len(tcs.Gamma) - 1 - i)
			return dbi, tcs.Local(dbi), true
		}
	}
	return 0, core.Bind{}, false
}

// LetByUID returns a let binding with its value and type valid in Gamma.
func (tcs *TCS) LetByUID(uid UID) (core.Let, bool) {
	for i := len(tcs.Lets) - 1; i >= 0; i-- {
		let := tcs.Lets[i]
		if let.Name != uid {
			continue
		}
		k := DBI(len(tcs.Gamma) - let.Depth)
		Assertf(k >= 0, "let %v escaped its context", let.Ident)
		let.Val = core.RaiseTerm(let.Val, k)
		let.Type = core.RaiseTerm(let.Type, k)
		return let, true
	}
	return core.Let{}, false
}

// Under runs f with tele pushed onto Gamma.
func (tcs *TCS) Under(tele core.Tele, f func() error) error {
	mark := len(tcs.Gamma)
	tcs.Gamma = append(tcs.Gamma[:mark:mark], tele...)
	defer func() {
		tcs.Gamma = tcs.Gamma[:mark]
	}()
	return f()
}

// Swapped runs f with Gamma replaced by gamma and lets bound on top of it.
func (tcs *TCS) Swapped(gamma core.Tele, lets []core.Let, f func() error) error {
	oldGamma, oldLets := tcs.Gamma, tcs.Lets
	tcs.Gamma, tcs.Lets = Clone(gamma), append(Clone(oldLets), lets...)
	defer func() {
		tcs.Gamma, tcs.Lets = oldGamma, oldLets
	}()
	return f()
}

// ========================

// EnterDef opens a fresh meta context for the declaration at gi.
func (tcs *TCS) EnterDef(gi GI, name Ident) {
	size := 0
	if int(gi) < len(tcs.metaCounts) {
		size = tcs.metaCounts[gi]
	}
	tcs.EnterMetas(size)
	tcs.decl = name
}

func (tcs *TCS) EnterMetas(size int) {
	tcs.MetaCtxs = append(tcs.MetaCtxs, NewMetaContext(size))
}

// ExitDef checks that every meta of the current declaration was solved.
func (tcs *TCS) ExitDef() error {
	ctx := tcs.MetaCtx()
	tcs.tracef("metas of %v: %v", tcs.decl.Text, ctx)
	if unsolved := ctx.Unsolved(); len(unsolved) > 0 {
		return &MetaUnsolved{Meta: unsolved[0], Name: tcs.decl}
	}
	return nil
}

func (tcs *TCS) MetaCtx() *MetaContext {
	Assert(len(tcs.MetaCtxs) > 0, "no meta context entered")
	return tcs.MetaCtxs[len(tcs.MetaCtxs)-1]
}

func (tcs *TCS) FreshMeta() *core.Meta {
	return tcs.MetaCtx().Fresh()
}

// metaFor returns a meta named by the desugarer, allocating it if the
// context was sized too small.
func (tcs *TCS) metaFor(m *abs.Meta) *core.Meta {
	ctx := tcs.MetaCtx()
	ctx.Expand(int(m.Index) + 1)
	return core.NewMeta(m.Index)
}
