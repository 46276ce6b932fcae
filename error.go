package parsec

import (
	"fmt"
	"strings"
)

// Error is returned by Result.Unwrap on anything other than Ok.
//
// The error carries positional information; a caller that only needs the
// message can treat it as a plain error.
type Error interface {
	error
	// Pos is the 0-based stream position the error is anchored to.
	Pos() int
	// Loc is the human-facing location (1-based line/col) of Pos.
	Loc() Loc
}

// ParseError is returned when parsing fails and either recovery was not
// requested or no repair could be found.
type ParseError struct {
	pos      int
	loc      Loc
	expected []string
}

func (e *ParseError) Error() string {
	return formatExpected(e.pos, e.expected)
}

func (e *ParseError) Pos() int { return e.pos }
func (e *ParseError) Loc() Loc { return e.loc }

// Expected is the set of labels that were valid at Pos.
func (e *ParseError) Expected() []string { return e.expected }

// RecoveredError is returned when parsing failed but recovery produced a
// usable value. Ops lists, in the order they were applied, every repair
// that went into the returned value.
type RecoveredError struct {
	pos      int
	loc      Loc
	expected []string
	Ops      []OpItem
}

func (e *RecoveredError) Error() string {
	parts := make([]string, 0, len(e.Ops))
	for _, item := range e.Ops {
		parts = append(parts, formatExpected(item.Op.Loc.Pos, item.Expected))
	}
	if len(parts) == 0 {
		return formatExpected(e.pos, e.expected)
	}
	return strings.Join(parts, ", ")
}

func (e *RecoveredError) Pos() int { return e.pos }
func (e *RecoveredError) Loc() Loc { return e.loc }

// formatExpected renders the §6 error text format: "at <pos>: expected <a>
// or <b>", or "at <pos>: unexpected input" when expected is empty.
func formatExpected(pos int, expected []string) string {
	if len(expected) == 0 {
		return fmt.Sprintf("at %d: unexpected input", pos)
	}
	return fmt.Sprintf("at %d: expected %s", pos, strings.Join(expected, " or "))
}
