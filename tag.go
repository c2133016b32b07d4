package lispobj

import (
	"fmt"
	"math"
	"strings"
)

// Object is a tagged Lisp value. A few bits of the word hold the type
// discriminant; the rest hold either an inline integer (fixnums) or the
// address of a heap object owned by the allocator.
type Object int64

// Address is an untagged heap address handed out by an Allocator.
type Address uint64

// Type identifies the variant encoded in an Object's tag bits
type Type uint8

const (
	TypeSymbol Type = iota
	TypeMisc
	TypeInt0
	TypeInt1
	TypeString
	TypeVectorlike
	TypeCons
	TypeFloat

	// TypeInvalid is returned for raw discriminants outside the enumeration.
	TypeInvalid Type = 0xFF
)

// NumTypes is the number of defined discriminants
const NumTypes = 8

// String returns the string representation of a Type
func (t Type) String() string {
	switch t {
	case TypeSymbol:
		return "symbol"
	case TypeMisc:
		return "misc"
	case TypeInt0:
		return "int0"
	case TypeInt1:
		return "int1"
	case TypeString:
		return "string"
	case TypeVectorlike:
		return "vectorlike"
	case TypeCons:
		return "cons"
	case TypeFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Valid reports whether t is one of the defined discriminants
func (t Type) Valid() bool {
	return t < NumTypes
}

// IsFixnum reports whether t is either of the two fixnum tags
func (t Type) IsFixnum() bool {
	return t == TypeInt0 || t == TypeInt1
}

// TypeFromString converts a type name to a Type.
// Returns TypeInvalid for unknown names.
func TypeFromString(s string) Type {
	switch strings.ToLower(s) {
	case "symbol":
		return TypeSymbol
	case "misc":
		return TypeMisc
	case "int0", "fixnum", "int":
		return TypeInt0
	case "int1":
		return TypeInt1
	case "string", "str":
		return TypeString
	case "vectorlike", "vector":
		return TypeVectorlike
	case "cons":
		return TypeCons
	case "float":
		return TypeFloat
	default:
		return TypeInvalid
	}
}

// TagMode selects where the tag bits live in a word
type TagMode int

const (
	LSBTag TagMode = iota // tag in the low bits, heap addresses aligned
	MSBTag                // tag above VALBITS
)

// String returns the string representation of a TagMode
func (m TagMode) String() string {
	if m == MSBTag {
		return "msb"
	}
	return "lsb"
}

// ParseTagMode converts "lsb"/"msb" to a TagMode
func ParseTagMode(s string) (TagMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lsb", "low":
		return LSBTag, nil
	case "msb", "high":
		return MSBTag, nil
	}
	return LSBTag, fmt.Errorf("unknown tag mode %q", s)
}

const (
	MinTagBits     = 3
	MaxTagBits     = 8
	DefaultTagBits = 3
)

// Codec packs and unpacks tags and payloads. It is immutable after
// construction and safe for concurrent use.
type Codec struct {
	mode    TagMode
	tagBits uint
	valBits uint
	intBits uint // fixnums steal one tag bit
	valMask uint64
	toRaw   [NumTypes]uint64
	fromRaw []Type
}

// NewCodec builds a codec for the given mode and tag width
func NewCodec(mode TagMode, tagBits uint) (*Codec, error) {
	if mode != LSBTag && mode != MSBTag {
		return nil, fmt.Errorf("unknown tag mode %d", mode)
	}
	if tagBits < MinTagBits || tagBits > MaxTagBits {
		return nil, fmt.Errorf("%w: tag width %d outside [%d, %d]", ErrInvalidTag, tagBits, MinTagBits, MaxTagBits)
	}

	c := &Codec{
		mode:    mode,
		tagBits: tagBits,
		valBits: 64 - tagBits,
		intBits: tagBits - 1,
	}
	if mode == LSBTag {
		c.valMask = ^uint64(0) << tagBits
	} else {
		c.valMask = (uint64(1) << c.valBits) - 1
	}

	// The second fixnum tag must differ from the first in the bit next to
	// the payload, so Int1 and Cons trade places between modes.
	c.toRaw = [NumTypes]uint64{
		TypeSymbol:     0,
		TypeMisc:       1,
		TypeInt0:       2,
		TypeString:     4,
		TypeVectorlike: 5,
		TypeFloat:      7,
	}
	if mode == LSBTag {
		c.toRaw[TypeInt1] = 2 | 1<<(tagBits-1)
		c.toRaw[TypeCons] = 3
	} else {
		c.toRaw[TypeInt1] = 3
		c.toRaw[TypeCons] = 6
	}

	c.fromRaw = make([]Type, 1<<tagBits)
	for i := range c.fromRaw {
		c.fromRaw[i] = TypeInvalid
	}
	for t, raw := range c.toRaw {
		c.fromRaw[raw] = Type(t)
	}
	return c, nil
}

// DefaultCodec returns the low-bits codec with three tag bits
func DefaultCodec() *Codec {
	c, _ := NewCodec(LSBTag, DefaultTagBits)
	return c
}

// Mode returns the codec's tag mode
func (c *Codec) Mode() TagMode { return c.mode }

// TagBits returns the width of the tag field
func (c *Codec) TagBits() uint { return c.tagBits }

// ValBits returns the width of the payload field
func (c *Codec) ValBits() uint { return c.valBits }

// ValMask returns the mask selecting the payload bits
func (c *Codec) ValMask() uint64 { return c.valMask }

// Alignment is the address granularity heap objects must respect
func (c *Codec) Alignment() Address {
	if c.mode == LSBTag {
		return Address(1) << c.tagBits
	}
	return 8
}

// RawTag extracts the tag field without interpreting it
func (c *Codec) RawTag(o Object) uint64 {
	w := uint64(o)
	if c.mode == LSBTag {
		return w &^ c.valMask
	}
	return w >> c.valBits
}

// DecodeTag extracts the discriminant. Raw values outside the
// enumeration decode to TypeInvalid.
func (c *Codec) DecodeTag(o Object) Type {
	return c.fromRaw[c.RawTag(o)]
}

// Encode packs an address and a tag into a word. addr must satisfy
// ValidAddress; t must be a valid pointer-carrying type.
func (c *Codec) Encode(addr Address, t Type) Object {
	if !t.Valid() {
		panic(fmt.Sprintf("lispobj: encode with invalid type %d", t))
	}
	raw := c.toRaw[t]
	if c.mode == LSBTag {
		return Object(uint64(addr) | raw)
	}
	return Object(raw<<c.valBits + uint64(addr))
}

// StripTag recovers the untagged address
func (c *Codec) StripTag(o Object) Address {
	return Address(uint64(o) & c.valMask)
}

// ValidAddress reports whether addr survives a round trip through the
// payload field: aligned in low-bits mode, narrow enough in high-bits mode.
func (c *Codec) ValidAddress(addr Address) bool {
	return uint64(addr)&^c.valMask == 0
}

// MostPositiveFixnum is the largest inline integer
func (c *Codec) MostPositiveFixnum() int64 {
	return math.MaxInt64 >> c.intBits
}

// MostNegativeFixnum is the smallest inline integer
func (c *Codec) MostNegativeFixnum() int64 {
	return -1 - c.MostPositiveFixnum()
}

// FitsFixnum reports whether n can be stored inline without wrapping
func (c *Codec) FitsFixnum(n int64) bool {
	return n >= c.MostNegativeFixnum() && n <= c.MostPositiveFixnum()
}

// MakeFixnum encodes n inline. Values outside the fixnum range wrap.
func (c *Codec) MakeFixnum(n int64) Object {
	if c.mode == LSBTag {
		return Object(uint64(n)<<c.intBits + c.toRaw[TypeInt0])
	}
	intMask := (uint64(1) << (c.valBits + 1)) - 1
	return Object(uint64(n)&intMask + c.toRaw[TypeInt0]<<c.valBits)
}

// FixnumValue decodes an inline integer. o must carry a fixnum tag.
func (c *Codec) FixnumValue(o Object) int64 {
	if c.mode == LSBTag {
		return int64(o) >> c.intBits
	}
	return int64(uint64(o)<<c.intBits) >> c.intBits
}
