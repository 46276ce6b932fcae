package parsec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/parsec"
	"github.com/alecthomas/parsec/stream"
)

func charTok(c rune) parsec.Parser[stream.Tokens[rune], rune] {
	return parsec.Sym[stream.Tokens[rune]](c, string(c))
}

func TestAndCombinesValuesAndPositions(t *testing.T) {
	p := parsec.And(charTok('a'), charTok('b'), func(a, b rune) string { return string(a) + string(b) })
	r := parsec.Run(p, runeTokens("ab"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, "ab", r.Value)
}

func TestLSeqRSeqKeepOneSide(t *testing.T) {
	l := parsec.LSeq(charTok('a'), charTok('b'))
	r := parsec.Run(l, runeTokens("ab"))
	assert.Equal(t, 'a', r.Value)

	rs := parsec.RSeq(charTok('a'), charTok('b'))
	r2 := parsec.Run(rs, runeTokens("ab"))
	assert.Equal(t, 'b', r2.Value)
}

func TestChoicePrefersFirstMatch(t *testing.T) {
	p := parsec.Choice(charTok('a'), charTok('b'))
	r := parsec.Run(p, runeTokens("a"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, 'a', r.Value)
}

func TestChoiceFallsBackWhenFirstUncommitted(t *testing.T) {
	p := parsec.Choice(charTok('a'), charTok('b'))
	r := parsec.Run(p, runeTokens("b"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, 'b', r.Value)
}

func TestChoiceCommitsAfterConsuming(t *testing.T) {
	ab := parsec.And(charTok('a'), charTok('b'), func(a, b rune) string { return string(a) + string(b) })
	ac := parsec.And(charTok('a'), charTok('c'), func(a, b rune) string { return string(a) + string(b) })
	p := parsec.Choice(ab, ac)
	r := parsec.Run(p, runeTokens("ac"))
	require.Equal(t, parsec.KindError, r.Kind, "ab consumed 'a' before failing, so ac must never run")
}

func TestMaybeSucceedsOnAbsence(t *testing.T) {
	p := parsec.Maybe(charTok('a'))
	r := parsec.Run(p, runeTokens("b"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, rune(0), r.Value)
	assert.False(t, r.Consumed)
}

func TestManyCollectsZeroOrMore(t *testing.T) {
	p := parsec.Many(charTok('a'))
	r := parsec.Run(p, runeTokens("aaab"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, []rune{'a', 'a', 'a'}, r.Value)
}

func TestManyStopsOnZeroWidthSuccessWithoutLooping(t *testing.T) {
	p := parsec.Many(parsec.Maybe(charTok('z')))
	r := parsec.Run(p, runeTokens("abc"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Empty(t, r.Value)
	assert.Equal(t, 0, r.Pos)
}

func TestFMapTransformsValue(t *testing.T) {
	p := parsec.FMap(charTok('a'), func(r rune) int { return int(r) })
	r := parsec.Run(p, runeTokens("a"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, int('a'), r.Value)
}

func TestBindChainsOnValue(t *testing.T) {
	p := parsec.Bind(charTok('a'), func(rune) parsec.Parser[stream.Tokens[rune], rune] {
		return charTok('b')
	})
	r := parsec.Run(p, runeTokens("ab"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, 'b', r.Value)
}

func TestLabelOverridesExpectedWhenUnconsumed(t *testing.T) {
	p := parsec.Label(charTok('a'), "the letter a")
	r := parsec.Run(p, runeTokens("x"))
	require.Equal(t, parsec.KindError, r.Kind)
	assert.Equal(t, []string{"the letter a"}, r.Expected)
}

func TestAttemptRollsBackConsumedFailure(t *testing.T) {
	ab := parsec.And(charTok('a'), charTok('b'), func(a, b rune) string { return string(a) + string(b) })
	p := parsec.Choice(parsec.Attempt(ab), charTok('a'))
	r := parsec.Run(p, runeTokens("ac"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, 'a', r.Value)
}

func TestSepByCollectsSeparatedValues(t *testing.T) {
	comma := charTok(',')
	p := parsec.SepBy(charTok('a'), comma)
	r := parsec.Run(p, runeTokens("a,a,a"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, []rune{'a', 'a', 'a'}, r.Value)
}

func TestSepByAllowsEmpty(t *testing.T) {
	p := parsec.SepBy(charTok('a'), charTok(','))
	r := parsec.Run(p, runeTokens(""))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Empty(t, r.Value)
}

func TestBetweenDiscardsBrackets(t *testing.T) {
	p := parsec.Between(charTok('('), charTok(')'), charTok('a'))
	r := parsec.Run(p, runeTokens("(a)"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, 'a', r.Value)
}

func TestPureIdentityLaw(t *testing.T) {
	p := charTok('a')
	paired := parsec.And(parsec.Pure[stream.Tokens[rune], rune]('x'), p, func(a, b rune) [2]rune { return [2]rune{a, b} })
	r := parsec.Run(paired, runeTokens("a"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, [2]rune{'x', 'a'}, r.Value)
}

func TestDelayEnablesRecursiveGrammar(t *testing.T) {
	// balanced parens: '(' rec ')' | empty
	rec := parsec.NewDelay[stream.Tokens[rune], int]()
	body := parsec.Choice(
		parsec.FMap(parsec.Between(charTok('('), charTok(')'), rec.P()), func(n int) int { return n + 1 }),
		parsec.Pure[stream.Tokens[rune], int](0),
	)
	rec.Set(body)
	r := parsec.Run(rec.P(), runeTokens("((()))"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, 3, r.Value)
}
