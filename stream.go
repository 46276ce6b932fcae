package parsec

// Sized, Seq and Chars are the capability interfaces a stream type can
// implement. They live in this package, rather than in package stream, so
// that stream can depend one-way on parsec instead of the two importing
// each other.

// Sized is the minimum a stream must support: Eof only needs a length.
type Sized interface {
	LocSource
	Len() int
}

// Seq is a random-access sequence of elements of type T, as produced by a
// separate lexing pass. Satisfy and Sym are written against Seq.
type Seq[T any] interface {
	Sized
	At(pos int) T
}

// Chars is a random-access sequence of bytes, for scannerless parsing
// directly over source text. Prefix and Regexp are written against Chars.
type Chars interface {
	Sized
	Slice(start, end int) string
}
