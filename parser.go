package parsec

// ParseFn is the uncurried shape every Parser wraps: given a stream, a
// position in it, the current context, and the recovery mode in force,
// produce a Result.
type ParseFn[S LocSource, V any] func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V]

// Parser is a parser of V out of a stream of type S. Parsers are values:
// build them with the primitives and combinators in this package and
// Delay, and run them with Run.
//
// Combinators that change the value type (FMap, Bind, And, LSeq, RSeq,
// SepBy, Between) are package-level functions rather than methods, since a
// method cannot introduce the extra type parameter such a transform needs.
// Combinators that need no new type parameter (Maybe, Many, Label, Attempt,
// Or) are exposed as both.
type Parser[S LocSource, V any] struct {
	fn ParseFn[S, V]
}

// New wraps a ParseFn as a Parser. Most callers should prefer the
// primitives and combinators in this package; New is for building new
// primitives grounded directly on a stream's capability interface.
func New[S LocSource, V any](fn ParseFn[S, V]) Parser[S, V] {
	return Parser[S, V]{fn: fn}
}

// parse runs the wrapped function. Unexported: callers drive a Parser
// through Run, or by composing it with a combinator.
func (p Parser[S, V]) parse(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
	return p.fn(stream, pos, ctx, mode)
}

// Run parses stream from the beginning, stopping at the first error.
func Run[S LocSource, V any](p Parser[S, V], stream S) Result[S, V] {
	return RunFrom(p, stream, false)
}

// RunRecovering is Run with error recovery armed: the returned Result may
// be Recovered even though it carries a usable Value — see Result.Unwrap.
func RunRecovering[S LocSource, V any](p Parser[S, V], stream S) Result[S, V] {
	return RunFrom(p, stream, true)
}

// RunFrom parses stream from the beginning with explicit control over
// whether recovery is armed.
func RunFrom[S LocSource, V any](p Parser[S, V], stream S, recover bool) Result[S, V] {
	mode := RecoveryDisabled
	if recover {
		mode = RecoveryArmed
	}
	ctx := NewCtx[S]()
	ctx = ctx.updateLoc(stream, 0)
	return p.parse(stream, 0, ctx, mode)
}

// Maybe parses p, or succeeds with the zero V without consuming input if p
// fails without consuming input.
func (p Parser[S, V]) Maybe() Parser[S, V] {
	return Maybe(p)
}

// Many parses p zero or more times.
func (p Parser[S, V]) Many() Parser[S, []V] {
	return Many(p)
}

// Label overrides the `expected` description reported on failure at this
// point, provided p itself has not consumed input.
func (p Parser[S, V]) Label(expected string) Parser[S, V] {
	return Label(p, expected)
}

// Attempt rolls back any input p consumed before failing, turning a
// consumed failure into an unconsumed one so that a following Or can still
// try its other branch.
func (p Parser[S, V]) Attempt() Parser[S, V] {
	return Attempt(p)
}

// Or tries p, then other if p fails without consuming input.
func (p Parser[S, V]) Or(other Parser[S, V]) Parser[S, V] {
	return Choice(p, other)
}
