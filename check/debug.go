package check

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// TraceMetas adds a full dump of the meta context to every solved meta.
var TraceMetas = false

func (tcs *TCS) tracef(format string, args ...interface{}) {
	if tcs.TraceWriter == nil {
		return
	}
	indent := strings.Repeat("  ", tcs.traceDepth)
	_, err := fmt.Fprintf(tcs.TraceWriter, indent+format+"\n", args...)
	if err != nil {
		panic(err)
	}
}

// judgment traces one judgment: the conclusion on success, the premise on
// failure. Nested judgments are indented.
func (tcs *TCS) judgment(premise func() string, conclusion func() string, f func() error) error {
	if tcs.TraceWriter == nil {
		return f()
	}
	tcs.traceDepth++
	err := f()
	tcs.traceDepth--
	if err != nil {
		tcs.tracef("%v", premise())
		return err
	}
	tcs.tracef("%v", conclusion())
	return nil
}

func (tcs *TCS) traceSolved(format string, args ...interface{}) {
	if tcs.TraceWriter == nil {
		return
	}
	tcs.tracef(format, args...)
	if TraceMetas {
		tcs.tracef("%v", spew.Sdump(tcs.MetaCtx()))
	}
}
