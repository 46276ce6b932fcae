package parsec_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alecthomas/parsec"
	"github.com/alecthomas/parsec/stream"
)

// indentedBlockGrammar parses:
//
//	head
//	  <item><item>...   (each on its own line, indented 2 columns in from
//	                      "head", all aligned to the same column)
//	tail
//
// exercising Indented (sets a new anchor and validates the first item's
// column), Same (validates every following item against that anchor), and
// the anchor restore once the indented block ends — "tail" must line up
// with "head", not with the indented items.
func indentedBlockGrammar() parsec.Parser[stream.Runes, []string] {
	nl := parsec.Prefix[stream.Runes]("\n")
	skipSpaces := parsec.Regexp[stream.Runes](regexp.MustCompile(` *`), 0)
	item := parsec.Choice(parsec.Prefix[stream.Runes]("a"), parsec.Prefix[stream.Runes]("b"))

	repeatItem := parsec.Attempt(parsec.RSeq(nl, parsec.RSeq(skipSpaces, parsec.Same(item))))
	items := parsec.And(item, parsec.Many(repeatItem), func(first string, rest []string) []string {
		return append([]string{first}, rest...)
	})
	indented := parsec.Indented(2, items)

	head := parsec.RSeq(parsec.RSeq(parsec.Prefix[stream.Runes]("head"), nl), skipSpaces)
	body := parsec.RSeq(head, indented)
	tail := parsec.RSeq(nl, parsec.Same(parsec.Prefix[stream.Runes]("tail")))

	return parsec.And(body, tail, func(items []string, tail string) []string {
		return append(items, tail)
	})
}

func TestIndentedBlockAlignsSiblingItems(t *testing.T) {
	r := parsec.Run(indentedBlockGrammar(), stream.NewRunes("head\n  a\n  b\ntail"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, []string{"a", "b", "tail"}, r.Value)
}

func TestIndentedRejectsMisalignedSibling(t *testing.T) {
	// The second item is indented one column further than the first,
	// breaking Same's alignment check against the anchor Indented set.
	r := parsec.Run(indentedBlockGrammar(), stream.NewRunes("head\n  a\n   b\ntail"))
	assert.NotEqual(t, parsec.KindOk, r.Kind)
}

func TestIndentedRejectsInsufficientIndent(t *testing.T) {
	// Only one column in instead of the required two.
	r := parsec.Run(indentedBlockGrammar(), stream.NewRunes("head\n a\ntail"))
	assert.NotEqual(t, parsec.KindOk, r.Kind)
}

func TestSameRestoresOuterAnchorAfterIndentedBlock(t *testing.T) {
	// "tail" sits back at column 1, the outer anchor Indented must have
	// restored once the indented block of items finished.
	r := parsec.Run(indentedBlockGrammar(), stream.NewRunes("head\n  a\ntail"))
	require.Equal(t, parsec.KindOk, r.Kind)
	assert.Equal(t, []string{"a", "tail"}, r.Value)
}
