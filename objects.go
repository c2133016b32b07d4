package lispobj

import (
	"math"
	"unicode/utf8"
)

// Cons is a pair cell
type Cons struct {
	Car Object
	Cdr Object
}

// ConsRef is a typed view of a cons cell
type ConsRef struct {
	ExternalPtr[Cons]
}

// Car returns the first element
func (c ConsRef) Car() Object { return c.Deref().Car }

// Cdr returns the rest
func (c ConsRef) Cdr() Object { return c.Deref().Cdr }

// SetCar replaces the first element
func (c ConsRef) SetCar(v Object) { c.Deref().Car = v }

// SetCdr replaces the rest
func (c ConsRef) SetCdr(v Object) { c.Deref().Cdr = v }

// Symbol is an interned symbol. Fwd is non-nil for built-in variables
// whose value lives in native storage.
type Symbol struct {
	Name     Object
	Value    Object
	Function Object
	Plist    Object
	Fwd      Forward
	Constant bool
	name     string
}

// SymbolRef is a typed view of a symbol
type SymbolRef struct {
	ExternalPtr[Symbol]
}

// SymbolName returns the symbol's name as a string object
func (s SymbolRef) SymbolName() Object { return s.Deref().Name }

// Name returns the symbol's name
func (s SymbolRef) Name() string { return s.Deref().name }

// Function returns the function cell
func (s SymbolRef) Function() Object { return s.Deref().Function }

// IsForwarded reports whether the value cell points at native storage
func (s SymbolRef) IsForwarded() bool { return s.Deref().Fwd != nil }

// LispString is a string object's payload
type LispString struct {
	Data      []byte
	Multibyte bool
}

// StringRef is a typed view of a string
type StringRef struct {
	ExternalPtr[LispString]
}

// LenBytes returns the byte length
func (s StringRef) LenBytes() int { return len(s.Deref().Data) }

// LenChars returns the character count
func (s StringRef) LenChars() int {
	ls := s.Deref()
	if !ls.Multibyte {
		return len(ls.Data)
	}
	return utf8.RuneCount(ls.Data)
}

// Bytes returns the borrowed byte contents
func (s StringRef) Bytes() []byte { return s.Deref().Data }

// String returns a displayable copy. Invalid UTF-8 is replaced.
func (s StringRef) String() string {
	return string([]rune(string(s.Deref().Data)))
}

// Float is a boxed double
type Float struct {
	Value float64
}

// FloatRef is a typed view of a boxed float
type FloatRef struct {
	ExternalPtr[Float]
}

// Value returns the float
func (f FloatRef) Value() float64 { return f.Deref().Value }

// sameFloat compares bit patterns, so NaNs with equal payloads match and
// 0.0 differs from -0.0.
func sameFloat(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}
