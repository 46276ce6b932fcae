package parsec

// fmapResult maps f over a Result's value(s): Ok.Value, and each of
// Selected.Value/Pending.Value inside a Recovered, leaving positions and
// repair bookkeeping untouched.
func fmapResult[S LocSource, V, U any](r Result[S, V], f func(V) U) Result[S, U] {
	switch r.Kind {
	case KindOk:
		return Ok(f(r.Value), r.Pos, r.Ctx, r.Consumed)
	case KindError:
		return Err[S, U](r.Pos, r.Loc, r.Expected, r.Consumed)
	default:
		var selected *Selected[S, U]
		if r.Selected != nil {
			s := *r.Selected
			selected = &Selected[S, U]{
				SelectedAt: s.SelectedAt, Prefix: s.Prefix, Pos: s.Pos, Count: s.Count,
				Value: f(s.Value), Ctx: s.Ctx, Op: s.Op, Expected: s.Expected,
				Consumed: s.Consumed, Ops: s.Ops,
			}
		}
		var pending *Pending[S, U]
		if r.Pending != nil {
			p := *r.Pending
			pending = &Pending[S, U]{
				Count: p.Count, Value: f(p.Value), Ctx: p.Ctx, Op: p.Op,
				Expected: p.Expected, Consumed: p.Consumed, Ops: p.Ops,
			}
		}
		return RecoveredResult(selected, pending, r.Pos, r.Loc, r.Expected, r.Consumed)
	}
}

// FMap transforms the value(s) carried by p's result with f.
func FMap[S LocSource, V, U any](p Parser[S, V], f func(V) U) Parser[S, U] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, U] {
		return fmapResult(p.parse(stream, pos, ctx, mode), f)
	})
}

// seqThen folds the result of a's continuation rb into the pair (a's
// value, rb's value/outcome), combining via merge. aConsumed is ORed into
// whatever rb reports, since once a has consumed input the whole sequence
// has — even if rb itself fails or recovers at its own, unconsumed, start.
func seqThen[S LocSource, V, U, X any](va V, aConsumed bool, rb Result[S, U], merge func(V, U) X) Result[S, X] {
	switch rb.Kind {
	case KindOk:
		return Ok(merge(va, rb.Value), rb.Pos, rb.Ctx, aConsumed || rb.Consumed)
	case KindError:
		return Err[S, X](rb.Pos, rb.Loc, rb.Expected, aConsumed || rb.Consumed)
	default:
		r := fmapResult(rb, func(u U) X { return merge(va, u) })
		r.Consumed = aConsumed || r.Consumed
		return r
	}
}

// And runs a then, from its end position, b, combining their values with
// merge. It is the tuple/left/right sequence combinator generalized over
// its merge function (§4.2's "sequence").
func And[S LocSource, V, U, X any](a Parser[S, V], b Parser[S, U], merge func(V, U) X) Parser[S, X] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, X] {
		ra := a.parse(stream, pos, ctx, mode)
		switch ra.Kind {
		case KindOk:
			nextMode := mode.rearm(ra.Consumed)
			rb := b.parse(stream, ra.Pos, ra.Ctx, nextMode)
			return seqThen(ra.Value, ra.Consumed, rb, merge)
		case KindError:
			return Err[S, X](ra.Pos, ra.Loc, ra.Expected, ra.Consumed)
		default:
			nextMode := mode.rearm(ra.Consumed)
			return continuePrefix(ra, func(v V, pos int, ctx Ctx[S]) Result[S, U] {
				return b.parse(stream, pos, ctx, nextMode)
			}, merge)
		}
	})
}

// Pair is the value produced by Seq: the paired result of two parsers run
// in sequence.
type Pair[V, U any] struct {
	First  V
	Second U
}

// Seq runs a then b, pairing their values.
func Seq[S LocSource, V, U any](a Parser[S, V], b Parser[S, U]) Parser[S, Pair[V, U]] {
	return And(a, b, func(v V, u U) Pair[V, U] { return Pair[V, U]{First: v, Second: u} })
}

// LSeq runs a then b, keeping a's value.
func LSeq[S LocSource, V, U any](a Parser[S, V], b Parser[S, U]) Parser[S, V] {
	return And(a, b, func(v V, _ U) V { return v })
}

// RSeq runs a then b, keeping b's value.
func RSeq[S LocSource, V, U any](a Parser[S, V], b Parser[S, U]) Parser[S, U] {
	return And(a, b, func(_ V, u U) U { return u })
}

// Bind runs p, then runs f(value) as a new parser from p's end position.
// Unlike FMap, f chooses the next parser dynamically from the value.
func Bind[S LocSource, V, U any](p Parser[S, V], f func(V) Parser[S, U]) Parser[S, U] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, U] {
		ra := p.parse(stream, pos, ctx, mode)
		switch ra.Kind {
		case KindOk:
			nextMode := mode.rearm(ra.Consumed)
			rb := f(ra.Value).parse(stream, ra.Pos, ra.Ctx, nextMode)
			rb.Consumed = ra.Consumed || rb.Consumed
			return rb
		case KindError:
			return Err[S, U](ra.Pos, ra.Loc, ra.Expected, ra.Consumed)
		default:
			nextMode := mode.rearm(ra.Consumed)
			return continuePrefix(ra, func(v V, pos int, ctx Ctx[S]) Result[S, U] {
				return f(v).parse(stream, pos, ctx, nextMode)
			}, func(_ V, u U) U { return u })
		}
	})
}

// choiceCombine folds rb (the second alternative, already run) into ra
// (the first). It is only called once ra's Kind has ruled out a
// short-circuit (ra is not Ok, and not a committed Error).
func choiceCombine[S LocSource, V any](ra, rb Result[S, V]) Result[S, V] {
	switch rb.Kind {
	case KindOk:
		if rb.Consumed || ra.Kind != KindRecovered || !ra.Consumed {
			return rb
		}
		return ra
	case KindError:
		if ra.Kind == KindRecovered {
			return ra
		}
		if rb.Consumed {
			return rb
		}
		expected := append(append([]string{}, ra.Expected...), rb.Expected...)
		return Err[S, V](ra.Pos, ra.Loc, expected, false)
	default:
		if ra.Kind == KindRecovered {
			return joinRepairs(ra, rb)
		}
		return rb
	}
}

// Choice runs a; if a fails without consuming input, runs b at the same
// position and merges the two outcomes. a runs under a suspended recovery
// mode, since its repair search would be wasted work if b turns out to be
// the branch actually taken; if a consumes, that search re-arms.
//
// A Recovered result from a does not by itself commit the choice — unlike
// a committed Error, which propagates immediately — because join_repairs
// needs to see both sides to pick the better repair. This reading follows
// §4.2's "the non-recovered side is lifted" literally: only Error names
// the consumed-short-circuit; Recovered does not.
func Choice[S LocSource, V any](a, b Parser[S, V]) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		ra := a.parse(stream, pos, ctx, mode.suspend())
		if ra.Kind == KindOk {
			return ra
		}
		if ra.Kind == KindError && ra.Consumed {
			return ra
		}
		rb := b.parse(stream, pos, ctx, mode)
		return choiceCombine(ra, rb)
	})
}

// Maybe parses p, or succeeds with the zero V without consuming input if p
// fails without consuming input. Equivalent to Choice(p, Pure(zero)).
func Maybe[S LocSource, V any](p Parser[S, V]) Parser[S, V] {
	var zero V
	return Choice(p, Pure[S, V](zero))
}

// manyLoop is Many's body, factored out so the Recovered branch can
// recurse into "the rest of many" from the repair's continuation point.
func manyLoop[S LocSource, V any](p Parser[S, V], stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, []V] {
	var values []V
	cur, curCtx, consumedAny := pos, ctx, false
	for {
		r := p.parse(stream, cur, curCtx, mode)
		switch r.Kind {
		case KindOk:
			if !r.Consumed {
				return Ok(values, cur, curCtx, consumedAny)
			}
			values = append(values, r.Value)
			cur, curCtx, consumedAny = r.Pos, r.Ctx, true
		case KindError:
			if r.Consumed {
				return Err[S, []V](r.Pos, r.Loc, r.Expected, true)
			}
			return Ok(values, cur, curCtx, consumedAny)
		default:
			prefix := values
			return continuePrefix(r, func(v V, pos int, ctx Ctx[S]) Result[S, []V] {
				return manyLoop(p, stream, pos, ctx, mode)
			}, func(v V, rest []V) []V {
				out := make([]V, 0, len(prefix)+1+len(rest))
				out = append(out, prefix...)
				out = append(out, v)
				out = append(out, rest...)
				return out
			})
		}
	}
}

// Many parses p zero or more times, stopping (without failing) the first
// time p returns a zero-width Ok or an uncommitted Error. A committed
// Error inside Many propagates; a Recovered iteration is folded into the
// same Recovered the whole Many call returns.
func Many[S LocSource, V any](p Parser[S, V]) Parser[S, []V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, []V] {
		return manyLoop(p, stream, pos, ctx, mode)
	})
}

// Label overrides the `expected` labels reported by p's result, provided p
// itself has not consumed input — a consumed failure is already anchored
// at a more specific point than this label describes.
func Label[S LocSource, V any](p Parser[S, V], name string) Parser[S, V] {
	expected := []string{name}
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		r := p.parse(stream, pos, ctx, mode)
		if r.Consumed {
			return r
		}
		switch r.Kind {
		case KindError:
			r.Expected = expected
		case KindRecovered:
			r.Expected = expected
			if r.Pending != nil && len(r.Pending.Expected) == 0 {
				pending := *r.Pending
				pending.Expected = expected
				r.Pending = &pending
			}
			if r.Selected != nil && len(r.Selected.Expected) == 0 {
				selected := *r.Selected
				selected.Expected = expected
				r.Selected = &selected
			}
		}
		return r
	})
}

// Attempt runs p with recovery suspended (re-armed once p consumes input)
// and rolls back any input p consumed before failing or recovering,
// reporting pos/loc at the call site and consumed = false. This lets a
// following Choice still try its other alternative instead of committing
// to p's (now discarded) progress.
func Attempt[S LocSource, V any](p Parser[S, V]) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		r := p.parse(stream, pos, ctx, mode.suspend())
		switch r.Kind {
		case KindOk:
			return r
		case KindError:
			return Err[S, V](pos, ctx.updateLoc(stream, pos).loc, r.Expected, false)
		default:
			return RecoveredResult(r.Selected, r.Pending, pos, ctx.updateLoc(stream, pos).loc, r.Expected, false)
		}
	})
}

// SepBy parses a sequence of a, separated by sep, discarding separator
// values: maybe(a · many(sep · a)) with the results flattened into one
// slice.
func SepBy[S LocSource, V, U any](a Parser[S, V], sep Parser[S, U]) Parser[S, []V] {
	rest := Many(RSeq(sep, a))
	combined := And(a, rest, func(first V, tail []V) []V {
		out := make([]V, 0, 1+len(tail))
		out = append(out, first)
		out = append(out, tail...)
		return out
	})
	return Maybe(combined)
}

// Between parses open, then p, then close, keeping only p's value.
func Between[S LocSource, V, O, C any](open Parser[S, O], close Parser[S, C], p Parser[S, V]) Parser[S, V] {
	return RSeq(open, LSeq(p, close))
}

// Delay is a forward-declarable parser, for writing recursive grammars
// without a reference cycle at construction time: build a *Delay, use its
// P() wherever the recursive reference belongs, then Set its body once
// the rest of the grammar is built.
type Delay[S LocSource, V any] struct {
	body *Parser[S, V]
}

// NewDelay creates an uninstalled Delay. Calling its Parser before Set is
// a programmer error (it panics), matching §4.2's "fatal usage error."
func NewDelay[S LocSource, V any]() *Delay[S, V] {
	return &Delay[S, V]{}
}

// Set installs p as the Delay's body. Must be called exactly once, before
// the Delay's Parser is ever run.
func (d *Delay[S, V]) Set(p Parser[S, V]) {
	d.body = &p
}

// P returns the parser that forwards to the installed body.
func (d *Delay[S, V]) P() Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		if d.body == nil {
			panic("parsec: Delay used before Set")
		}
		return d.body.parse(stream, pos, ctx, mode)
	})
}

// restoreAnchor puts outer back as the anchor in whatever Ctx(s) r
// carries, once a layout scope (Block/Indented) that set a different
// anchor for its inner parse has finished.
func restoreAnchor[S LocSource, V any](r Result[S, V], outer int) Result[S, V] {
	switch r.Kind {
	case KindOk:
		return withCtx(r, r.Ctx.setAnchor(outer))
	case KindRecovered:
		if r.Selected != nil {
			s := *r.Selected
			s.Ctx = s.Ctx.setAnchor(outer)
			r.Selected = &s
		}
		if r.Pending != nil {
			p := *r.Pending
			p.Ctx = p.Ctx.setAnchor(outer)
			r.Pending = &p
		}
	}
	return r
}

// Block runs p with the anchor column set to the current column, restoring
// the outer anchor once p finishes (Ok, Error, or Recovered).
func Block[S LocSource, V any](p Parser[S, V]) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		ctx = ctx.updateLoc(stream, pos)
		outer := ctx.anchor
		inner := ctx.setAnchor(ctx.loc.Col)
		return restoreAnchor(p.parse(stream, pos, inner, mode), outer)
	})
}

// Same succeeds, without consuming input, only when the current column
// equals the anchor, then runs p. There is no local repair for a bad
// indentation: a mismatch is always a hard Error.
func Same[S LocSource, V any](p Parser[S, V]) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		ctx = ctx.updateLoc(stream, pos)
		if ctx.loc.Col != ctx.anchor {
			return Err[S, V](pos, ctx.loc, []string{"indentation"}, false)
		}
		return p.parse(stream, pos, ctx, mode)
	})
}

// Indented requires the current column to equal anchor+delta, then runs p
// with the anchor advanced to that column, restoring the outer anchor
// afterward.
func Indented[S LocSource, V any](delta int, p Parser[S, V]) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		ctx = ctx.updateLoc(stream, pos)
		if ctx.loc.Col != ctx.anchor+delta {
			return Err[S, V](pos, ctx.loc, []string{"indentation"}, false)
		}
		outer := ctx.anchor
		inner := ctx.setAnchor(ctx.loc.Col)
		return restoreAnchor(p.parse(stream, pos, inner, mode), outer)
	})
}
