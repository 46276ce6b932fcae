// Package json is a worked grammar built on parsec: a scannerless JSON
// parser with recovery, following the same shape as the library's own
// reference grammar (whitespace-skipping tokens, attempted punctuation,
// a delayed value for the object/array recursion).
package json

import (
	"regexp"
	"strconv"

	"github.com/alecthomas/parsec"
	"github.com/alecthomas/parsec/stream"
)

// S is the stream type this grammar parses: scannerless, directly over
// source text.
type S = stream.Runes

// Value is a parsed JSON value: nil, bool, int, float64, string,
// []Value, or map[string]Value.
type Value = any

var simpleEscapes = map[byte]byte{
	'"': '"', '\\': '\\', '/': '/',
	'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t',
}

var escapeRe = regexp.MustCompile(`\\(?:(["\\/bfnrt])|u([0-9a-fA-F]{4}))`)

// unescape expands the backslash escapes a matched JSON string literal's
// content may contain.
func unescape(s string) string {
	return escapeRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := escapeRe.FindStringSubmatch(m)
		if sub[2] != "" {
			r, _ := strconv.ParseInt(sub[2], 16, 32)
			return string(rune(r))
		}
		return string(simpleEscapes[sub[1][0]])
	})
}

var ows = parsec.Regexp[S](regexp.MustCompile(`[ \n\r\t]*`), 0)

// token matches pat preceded by optional whitespace, returning pat's own
// first capturing group.
func token(pat string) parsec.Parser[S, string] {
	return parsec.Regexp[S](regexp.MustCompile(`[ \n\r\t]*`+pat), 1)
}

// punct matches a punctuation character preceded by optional whitespace.
// It is wrapped in Attempt so that a failure after skipping whitespace does
// not commit: a following Choice can still try its other branch.
func punct(p string) parsec.Parser[S, string] {
	return parsec.Attempt(parsec.RSeq(ows, parsec.Prefix[S](p)))
}

func asValue[V any](p parsec.Parser[S, V]) parsec.Parser[S, Value] {
	return parsec.FMap(p, func(v V) Value { return v })
}

var stringLit = parsec.Label(
	token(`"((?:[\x20\x21\x23-\x5B\x5D-\x{10FFFF}]|\\(?:["\\/bfnrt]|u[0-9a-fA-F]{4}))+)"`),
	"string",
)

var stringP = parsec.FMap(stringLit, unescape)

var integerP = parsec.FMap(
	parsec.Label(token(`(-?(?:0|[1-9][0-9]*))`), "integer"),
	func(s string) int { n, _ := strconv.Atoi(s); return n },
)

var numberP = parsec.FMap(
	parsec.Label(
		token(`(-?(?:0|[1-9][0-9]*)(?:(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)|(?:\.[0-9]+)))`),
		"number",
	),
	func(s string) float64 { f, _ := strconv.ParseFloat(s, 64); return f },
)

var booleanP = parsec.FMap(
	parsec.Label(token(`(true|false)`), "bool"),
	func(s string) bool { return s == "true" },
)

var nullP = parsec.FMap(
	parsec.Label(token(`(null)`), "null"),
	func(string) any { return nil },
)

var value = parsec.NewDelay[S, Value]()

func pairsToObject(pairs []parsec.Pair[string, Value]) Value {
	obj := make(map[string]Value, len(pairs))
	for _, p := range pairs {
		obj[p.First] = p.Second
	}
	return obj
}

var jsonDict = parsec.Label(parsec.FMap(
	parsec.Between(punct("{"), punct("}"),
		parsec.SepBy(
			parsec.And(
				parsec.LSeq(parsec.Choice(stringP, parsec.Insert[S, string]("a", `"a"`)), punct(":")),
				value.P(),
				func(k string, v Value) parsec.Pair[string, Value] { return parsec.Pair[string, Value]{First: k, Second: v} },
			),
			punct(","),
		),
	),
	pairsToObject,
), "object")

var jsonList = parsec.Label(asValue(
	parsec.Between(punct("["), punct("]"), parsec.SepBy(value.P(), punct(","))),
), "list")

func init() {
	value.Set(parsec.Trace("value", parsec.Label(
		parsec.Choice(asValue(numberP),
			parsec.Choice(asValue(integerP),
				parsec.Choice(asValue(booleanP),
					parsec.Choice(nullP,
						parsec.Choice(asValue(stringP),
							parsec.Choice(jsonDict,
								parsec.Choice(jsonList, parsec.Insert[S, Value](int(1), "1")),
							),
						),
					),
				),
			),
		),
		"value",
	)))
}

var grammar = parsec.LSeq(value.P(), parsec.RSeq(ows, parsec.Eof[S]()))

// Parse parses src as a single JSON value, with error recovery disabled:
// any deviation from the grammar is a hard parse error.
func Parse(src string) (Value, error) {
	r := parsec.Run(grammar, stream.NewRunes(src))
	return r.Unwrap()
}

// ParseRecovering parses src with error recovery armed. On a clean parse
// the returned error is nil. On a recovered parse, the returned Value is
// the best repair found and the error is a *parsec.RecoveredError
// describing what was skipped or inserted to produce it.
func ParseRecovering(src string) (Value, error) {
	r := parsec.RunRecovering(grammar, stream.NewRunes(src))
	return r.Unwrap()
}

// ParseWith parses src with explicit options — WithRecovery, WithTrace,
// WithLogger — rather than the Parse/ParseRecovering shorthands.
func ParseWith(src string, opts ...parsec.Option) (Value, error) {
	r := parsec.RunWith(grammar, stream.NewRunes(src), opts...)
	return r.Unwrap()
}
