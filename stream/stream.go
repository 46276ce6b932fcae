// Package stream provides the two stream adapters parsec primitives are
// written against: Tokens, for parsing a pre-lexed sequence, and Runes, for
// scannerless parsing directly over a string.
package stream

import "github.com/alecthomas/parsec"

// Tokens adapts a pre-lexed slice of T into a parsec.Seq[T]. Its LocAt
// treats the index itself as the location: Line is always 1 and Col is
// pos+1, since a token stream has already discarded the source positions of
// individual tokens by the time it reaches the parser (a lexer wanting
// richer positions should carry them in T and have the grammar extract them
// from parsed values instead).
type Tokens[T any] struct {
	items []T
}

var _ parsec.Seq[struct{}] = Tokens[struct{}]{}

// NewTokens wraps items for parsing.
func NewTokens[T any](items []T) Tokens[T] {
	return Tokens[T]{items: items}
}

// Len returns the number of tokens.
func (t Tokens[T]) Len() int { return len(t.items) }

// At returns the token at pos. The caller (Satisfy, Sym) is expected
// to only call this for pos < Len().
func (t Tokens[T]) At(pos int) T { return t.items[pos] }

// LocAt returns the identity location for pos: Pos == pos, Line == 1,
// Col == pos+1.
func (t Tokens[T]) LocAt(prior parsec.Loc, pos int) parsec.Loc {
	return parsec.Loc{Pos: pos, Line: 1, Col: pos + 1}
}

// Runes adapts a string into a parsec.Chars for scannerless parsing. Pos
// counts bytes, matching Go's native string indexing; Regexp and Prefix
// operate on byte offsets for this reason.
type Runes struct {
	src string
}

var _ parsec.Chars = Runes{}

// NewRunes wraps src for parsing.
func NewRunes(src string) Runes {
	return Runes{src: src}
}

// Len returns the length of src in bytes.
func (r Runes) Len() int { return len(r.src) }

// Slice returns src[start:end].
func (r Runes) Slice(start, end int) string { return r.src[start:end] }

// LocAt derives the Loc of pos by scanning forward from prior, counting
// newlines, rather than rescanning src from the start. prior.Pos must be
// <= pos.
func (r Runes) LocAt(prior parsec.Loc, pos int) parsec.Loc {
	line, col := prior.Line, prior.Col
	for i := prior.Pos; i < pos; i++ {
		if r.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return parsec.Loc{Pos: pos, Line: line, Col: col}
}
