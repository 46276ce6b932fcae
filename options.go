package parsec

import (
	"io"

	"go.uber.org/zap"
)

// runConfig collects the options RunWith was called with.
type runConfig struct {
	recover bool
	trace   io.Writer
	logger  *zap.Logger
}

// Option configures a RunWith call.
type Option func(*runConfig)

// WithRecovery arms error recovery, equivalent to calling RunRecovering
// instead of Run.
func WithRecovery() Option {
	return func(c *runConfig) { c.recover = true }
}

// WithTrace writes a line to w for every Traced parser entered during the
// run — see Trace.
func WithTrace(w io.Writer) Option {
	return func(c *runConfig) { c.trace = w }
}

// WithLogger additionally emits a structured debug record for every
// Traced parser entered during the run.
func WithLogger(logger *zap.Logger) Option {
	return func(c *runConfig) { c.logger = logger }
}

// RunWith parses stream with p, applying opts. It is the configurable
// entry point behind Run/RunRecovering: those are RunWith with no options
// and WithRecovery respectively.
func RunWith[S LocSource, V any](p Parser[S, V], stream S, opts ...Option) Result[S, V] {
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.trace != nil || cfg.logger != nil {
		p = installTracer(p, cfg.trace, cfg.logger)
	}
	return RunFrom(p, stream, cfg.recover)
}

// installTracer wraps p so the active tracer (set by WithTrace/WithLogger)
// is visible to any Trace call reached during this run, without requiring
// every grammar author to thread a tracer parameter through by hand.
func installTracer[S LocSource, V any](p Parser[S, V], w io.Writer, logger *zap.Logger) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		prev := activeTracer
		activeTracer = &tracer{w: w, logger: logger}
		defer func() { activeTracer = prev }()
		return p.parse(stream, pos, ctx, mode)
	})
}
