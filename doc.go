// Package parsec is a parser combinator library with first-class error
// recovery.
//
// Parsers are values of type Parser[S, V]: a function from a stream of type
// S, a position, and a parsing context to a Result[V]. Small primitives
// (Eof, Satisfy, Sym, Prefix, Regexp, Pure, Insert) are combined with
// combinators (And, Or, Many, Maybe, Label, SepBy, Between, Bind, FMap) to
// build up a grammar. Recursive grammars are wired together with Delay.
//
//	digits := parsec.Regexp[stream.Runes](regexp.MustCompile(`[0-9]+`), 0)
//	number := parsec.FMap(digits, func(s string) int { n, _ := strconv.Atoi(s); return n })
//
// Ordinary parsing stops at the first error. Error recovery, requested with
// RunRecovering (or RunFrom with recover=true, or RunWith and WithRecovery),
// explores repairs — skipping unexpected
// input or inserting a missing token — in parallel across the combinator
// tree, and returns a best-effort value paired with a diagnostic trail of
// the repairs that were applied. See Result and the recovery engine
// (continuePrefix / joinRepairs) for the mechanics.
//
// Two stream adapters are provided in the stream subpackage: stream.Tokens
// for parsing a pre-lexed sequence of tokens, and stream.Runes for
// scannerless parsing directly over a string.
package parsec
