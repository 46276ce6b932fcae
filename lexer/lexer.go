// Package lexer adapts Go's text/scanner into a parsec token stream: the
// host lexing implementation the core spec names as an external
// collaborator. It is deliberately small — parsec's primitives are
// random-access (Satisfy and Sym rescan forward under recovery), so
// unlike a Peek/Next lexer interface, the whole input is scanned once,
// eagerly, into a Tokens value up front.
package lexer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode/utf8"

	"github.com/alecthomas/parsec"
)

// Token is one scanned token: its text/scanner type, its literal text
// (unquoted, for Char/String/RawString), and its source location.
type Token struct {
	Type  rune
	Value string
	Pos   parsec.Loc
}

func (t Token) String() string { return t.Value }

// Symbols names the text/scanner token types a grammar can Satisfy
// against.
var Symbols = map[string]rune{
	"Char": scanner.Char, "Ident": scanner.Ident, "Int": scanner.Int,
	"Float": scanner.Float, "String": scanner.String,
	"RawString": scanner.RawString, "Comment": scanner.Comment,
}

// Tokens is a fully-scanned token stream, implementing parsec.Seq[Token].
type Tokens struct {
	tokens []Token
}

var _ parsec.Seq[Token] = Tokens{}

func (t Tokens) Len() int         { return len(t.tokens) }
func (t Tokens) At(pos int) Token { return t.tokens[pos] }

// LocAt looks up the recorded location of the token at pos; at end of
// stream (pos == Len()) it derives a location just past the last token,
// since there is no token there to have recorded one.
func (t Tokens) LocAt(prior parsec.Loc, pos int) parsec.Loc {
	if pos < len(t.tokens) {
		return t.tokens[pos].Pos
	}
	if len(t.tokens) == 0 {
		return parsec.StartLoc
	}
	last := t.tokens[len(t.tokens)-1]
	return parsec.Loc{Pos: pos, Line: last.Pos.Line, Col: last.Pos.Col + len(last.Value)}
}

// Lex scans all of r into a Tokens stream. String tokens are unquoted;
// single-quoted char literals are accepted by translating them into
// double-quoted strings before unquoting, the same workaround the
// teacher's default lexer used.
func Lex(r io.Reader) Tokens {
	var sc scanner.Scanner
	sc.Init(r)
	sc.Error = func(_ *scanner.Scanner, msg string) {
		if msg != "illegal char literal" {
			panic(msg)
		}
	}
	var tokens []Token
	for i := 0; ; i++ {
		typ := sc.Scan()
		if typ == scanner.EOF {
			break
		}
		at := sc.Position
		tok := unquote(Token{
			Type: typ, Value: sc.TokenText(),
			Pos: parsec.Loc{Pos: i, Line: at.Line, Col: at.Column},
		})
		tokens = append(tokens, tok)
	}
	return Tokens{tokens: tokens}
}

// LexString is Lex over a string.
func LexString(s string) Tokens {
	return Lex(strings.NewReader(s))
}

func unquote(t Token) Token {
	switch t.Type {
	case scanner.Char:
		t.Value = fmt.Sprintf("\"%s\"", t.Value[1:len(t.Value)-1])
		fallthrough
	case scanner.String:
		s, err := strconv.Unquote(t.Value)
		if err != nil {
			panic(err.Error())
		}
		t.Value = s
		if t.Type == scanner.Char && utf8.RuneCountInString(s) > 1 {
			t.Type = scanner.String
		}
	case scanner.RawString:
		t.Value = t.Value[1 : len(t.Value)-1]
	}
	return t
}
