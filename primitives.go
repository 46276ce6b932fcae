package parsec

import (
	"fmt"
	"regexp"
)

// unit is the value produced by parsers, like Eof, that carry no
// information beyond having matched.
type unit = struct{}

// Eof succeeds with no value when the stream is exhausted. Under recovery
// it reports a pending repair that skips whatever remains.
func Eof[S Sized]() Parser[S, unit] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, unit] {
		if pos == stream.Len() {
			return Ok[S, unit](unit{}, pos, ctx, false)
		}
		ctx = ctx.updateLoc(stream, pos)
		expected := []string{"end of file"}
		if !mode.armed() {
			return Err[S, unit](pos, ctx.loc, expected, false)
		}
		skip := stream.Len() - pos
		end := stream.Len()
		endCtx := ctx.updateLoc(stream, end)
		return RecoveredResult[S, unit](nil, &Pending[S, unit]{
			Count: skip, Value: unit{}, Ctx: endCtx,
			Op:       RepairOp{Kind: RepairSkip, Count: skip, Loc: ctx.loc},
			Expected: expected, Consumed: true,
		}, pos, ctx.loc, expected, false)
	})
}

// Satisfy reads one element and succeeds if it matches test. Under
// recovery it scans forward for the first element test accepts and
// reports a pending skip repair carrying that element; if the scan reaches
// end of stream, it fails hard.
func Satisfy[S Seq[T], T any](test func(T) bool) Parser[S, T] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, T] {
		if pos < stream.Len() {
			if t := stream.At(pos); test(t) {
				return Ok(t, pos+1, ctx, true)
			}
		}
		ctx = ctx.updateLoc(stream, pos)
		if !mode.armed() {
			return Err[S, T](pos, ctx.loc, nil, false)
		}
		for cur := pos + 1; cur < stream.Len(); cur++ {
			t := stream.At(cur)
			if !test(t) {
				continue
			}
			skip := cur - pos
			next := ctx.updateLoc(stream, cur+1)
			return RecoveredResult[S, T](nil, &Pending[S, T]{
				Count: skip, Value: t, Ctx: next,
				Op:       RepairOp{Kind: RepairSkip, Count: skip, Loc: ctx.loc},
				Consumed: true,
			}, pos, ctx.loc, nil, false)
		}
		return Err[S, T](pos, ctx.loc, nil, false)
	})
}

// Sym specializes Satisfy to a single value s, equal by ==. Under recovery
// it scans forward for the next occurrence of s and reports that skip
// repair; only when no later occurrence exists does it report a cost-1
// insert repair of s instead, so it never fails hard while recovery is
// armed. The skip and insert repairs are never reported together. repr is
// used in the insert
// repair's TokenRepr and as the `expected` label; when repr is "", the Go
// %v formatting of s is used instead.
func Sym[S Seq[T], T comparable](s T, repr string) Parser[S, T] {
	if repr == "" {
		repr = reprOf(s)
	}
	expected := []string{repr}
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, T] {
		if pos < stream.Len() && stream.At(pos) == s {
			return Ok(s, pos+1, ctx, true)
		}
		ctx = ctx.updateLoc(stream, pos)
		if !mode.armed() {
			return Err[S, T](pos, ctx.loc, expected, false)
		}
		pending := &Pending[S, T]{
			Count: 1, Value: s, Ctx: ctx,
			Op:       RepairOp{Kind: RepairInsert, Count: 1, TokenRepr: repr, Loc: ctx.loc},
			Expected: expected,
		}
		for cur := pos + 1; cur < stream.Len(); cur++ {
			if stream.At(cur) != s {
				continue
			}
			skip := cur - pos
			next := ctx.updateLoc(stream, cur+1)
			return RecoveredResult[S, T](nil, &Pending[S, T]{
				Count: skip, Value: s, Ctx: next,
				Op:       RepairOp{Kind: RepairSkip, Count: skip, Loc: ctx.loc},
				Expected: expected, Consumed: true,
			}, pos, ctx.loc, expected, false)
		}
		return RecoveredResult[S, T](nil, pending, pos, ctx.loc, expected, false)
	})
}

// reprOf formats a value the way Sym falls back to when no explicit label
// is given.
func reprOf[T any](v T) string {
	type stringer interface{ String() string }
	if s, ok := any(v).(stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

// Prefix succeeds when stream, scannerlessly, begins with s at pos. Under
// recovery it scans forward for the next occurrence of s.
func Prefix[S Chars](s string) Parser[S, string] {
	expected := []string{quote(s)}
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, string] {
		if hasPrefixAt(stream, pos, s) {
			return Ok(s, pos+len(s), ctx, len(s) > 0)
		}
		ctx = ctx.updateLoc(stream, pos)
		if !mode.armed() {
			return Err[S, string](pos, ctx.loc, expected, false)
		}
		for cur := pos + 1; cur < stream.Len(); cur++ {
			if !hasPrefixAt(stream, cur, s) {
				continue
			}
			skip := cur - pos
			next := ctx.updateLoc(stream, cur+len(s))
			return RecoveredResult[S, string](nil, &Pending[S, string]{
				Count: skip, Value: s, Ctx: next,
				Op:       RepairOp{Kind: RepairSkip, Count: skip, Loc: ctx.loc},
				Expected: expected, Consumed: true,
			}, pos, ctx.loc, expected, false)
		}
		return Err[S, string](pos, ctx.loc, expected, false)
	})
}

func hasPrefixAt[S Chars](stream S, pos int, s string) bool {
	end := pos + len(s)
	return end <= stream.Len() && stream.Slice(pos, end) == s
}

func quote(s string) string {
	return "'" + s + "'"
}

// Regexp matches re, anchored so it can only match at pos (the same
// ^(?:...) anchoring technique participle's lexer/regex package uses),
// returning submatch group `group` (0 for the whole match). Under recovery
// it scans forward for the next position the pattern matches.
func Regexp[S Chars](re *regexp.Regexp, group int) Parser[S, string] {
	anchored := anchor(re)
	expected := []string{re.String()}
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, string] {
		if v, end, ok := matchAt(anchored, stream, pos, group); ok {
			return Ok(v, end, ctx, end > pos)
		}
		ctx = ctx.updateLoc(stream, pos)
		if !mode.armed() {
			return Err[S, string](pos, ctx.loc, expected, false)
		}
		for cur := pos + 1; cur < stream.Len(); cur++ {
			v, end, ok := matchAt(anchored, stream, cur, group)
			if !ok {
				continue
			}
			skip := cur - pos
			next := ctx.updateLoc(stream, end)
			return RecoveredResult[S, string](nil, &Pending[S, string]{
				Count: skip, Value: v, Ctx: next,
				Op:       RepairOp{Kind: RepairSkip, Count: skip, Loc: ctx.loc},
				Expected: expected, Consumed: true,
			}, pos, ctx.loc, expected, false)
		}
		return Err[S, string](pos, ctx.loc, expected, false)
	})
}

func anchor(re *regexp.Regexp) *regexp.Regexp {
	return regexp.MustCompile(`\A(?:` + re.String() + `)`)
}

func matchAt[S Chars](re *regexp.Regexp, stream S, pos int, group int) (string, int, bool) {
	rest := stream.Slice(pos, stream.Len())
	loc := re.FindStringSubmatchIndex(rest)
	if loc == nil {
		return "", 0, false
	}
	g := 2 * group
	if g+1 >= len(loc) || loc[g] < 0 {
		return "", 0, false
	}
	return rest[loc[g]:loc[g+1]], pos + loc[1], true
}

// Pure always succeeds with value, consuming no input.
func Pure[S LocSource, V any](value V) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		return Ok(value, pos, ctx, false)
	})
}

// PureFn is Pure for a value produced lazily by fn, useful when
// constructing the value eagerly would be wasteful or has side effects.
func PureFn[S LocSource, V any](fn func() V) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		return Ok(fn(), pos, ctx, false)
	})
}

// Insert, while recovery is armed, always produces a Recovered result with
// a single pending, cost-1 insert repair carrying value — useful for
// supplying a default at an error site without requiring input to match
// anything. When recovery is not armed it fails without consuming input.
func Insert[S LocSource, V any](value V, repr string) Parser[S, V] {
	return New(func(stream S, pos int, ctx Ctx[S], mode RecoveryMode) Result[S, V] {
		ctx = ctx.updateLoc(stream, pos)
		if !mode.armed() {
			return Err[S, V](pos, ctx.loc, nil, false)
		}
		return RecoveredResult[S, V](nil, &Pending[S, V]{
			Count: 1, Value: value, Ctx: ctx,
			Op: RepairOp{Kind: RepairInsert, Count: 1, TokenRepr: repr, Loc: ctx.loc},
		}, pos, ctx.loc, nil, false)
	})
}
