package parsec

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// tracer holds the sinks installed for the run currently in flight.
type tracer struct {
	w      io.Writer
	logger *zap.Logger
	indent int
}

// activeTracer is set by installTracer for the duration of a RunWith call
// that requested WithTrace/WithLogger, and read by Trace. There is one
// parse in flight per goroutine in the intended use of this package
// (recursive-descent combinators, like the teacher's node tree, are not
// meant to run concurrently against a shared tracer), so a package
// variable is no worse than the field-per-node indent the teacher tracks.
var activeTracer *tracer

// Trace wraps p so that, whenever a tracer is active for the run (see
// WithTrace, WithLogger), entering p writes a line naming label and the
// current position, indented by nesting depth — the same shape as the
// teacher's per-node trace line, but opted into per grammar rule rather
// than injected automatically over every node.
func Trace[S LocSource, V any](label string, p Parser[S, V]) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		t := activeTracer
		if t == nil {
			return p.parse(stream, pos, ctx, mode)
		}
		ctx = ctx.updateLoc(stream, pos)
		if t.w != nil {
			fmt.Fprintf(t.w, "%s%s %s\n", strings.Repeat(" ", t.indent), ctx.loc, label)
		}
		if t.logger != nil {
			t.logger.Debug("parse", zap.String("rule", label), zap.Int("pos", pos), zap.Stringer("loc", ctx.loc))
		}
		t.indent += 2
		r := p.parse(stream, pos, ctx, mode)
		t.indent -= 2
		return r
	})
}
