package parsec

// RecoveryMode controls whether a parser at the current call is permitted
// to attempt a repair. It is threaded as an explicit argument alongside
// Ctx, rather than stored in it, since it changes call-by-call in a way
// Ctx's cheap value semantics aren't meant to track.
//
//   - RecoveryDisabled: recovery was never requested for this parse.
//   - RecoveryArmed: recovery is permitted here.
//   - RecoverySuspended: recovery is not permitted here, but will re-arm as
//     soon as the enclosing parser consumes input. Choice suspends
//     recovery for an alternative it might still abandon, so that a repair
//     search doesn't run (and get thrown away) for a branch that's about
//     to be discarded. Suspended only ever arises from Armed, so it only
//     ever re-arms back to Armed — there is no separate resume target to
//     carry.
type RecoveryMode int

const (
	RecoveryDisabled RecoveryMode = iota
	RecoveryArmed
	RecoverySuspended
)

// armed reports whether a primitive at this call should attempt a repair.
func (rm RecoveryMode) armed() bool {
	return rm == RecoveryArmed
}

// suspend is applied by Choice to an alternative it might still abandon:
// an Armed mode becomes Suspended until that alternative commits by
// consuming input.
func (rm RecoveryMode) suspend() RecoveryMode {
	if rm == RecoveryArmed {
		return RecoverySuspended
	}
	return rm
}

// rearm restores a Suspended mode to Armed once input has been consumed.
func (rm RecoveryMode) rearm(consumed bool) RecoveryMode {
	if rm == RecoverySuspended && consumed {
		return RecoveryArmed
	}
	return rm
}

// Ctx is the parsing context threaded through a parse: the anchor column
// used by the layout combinators and the cached current Loc. Ctx is small
// and value-typed; every derivation produces a new Ctx rather than
// mutating one in place.
type Ctx[S LocSource] struct {
	anchor int
	loc    Loc
}

// NewCtx builds the initial context for a top-level parse.
func NewCtx[S LocSource]() Ctx[S] {
	return Ctx[S]{anchor: StartLoc.Col, loc: StartLoc}
}

// updateLoc re-derives the cached Loc for pos using the stream's LocSource,
// without rescanning from the beginning.
func (c Ctx[S]) updateLoc(stream S, pos int) Ctx[S] {
	if pos == c.loc.Pos {
		return c
	}
	c.loc = stream.LocAt(c.loc, pos)
	return c
}

// setAnchor returns a derived Ctx with a new anchor column, used by the
// layout combinators to establish and restore indentation scope.
func (c Ctx[S]) setAnchor(anchor int) Ctx[S] {
	c.anchor = anchor
	return c
}
