package lispobj

import (
	"errors"
	"testing"
	"testing/quick"
)

func allCodecs(t *testing.T) []*Codec {
	t.Helper()
	var codecs []*Codec
	for _, mode := range []TagMode{LSBTag, MSBTag} {
		for bits := uint(MinTagBits); bits <= MaxTagBits; bits++ {
			c, err := NewCodec(mode, bits)
			if err != nil {
				t.Fatalf("NewCodec(%s, %d): %v", mode, bits, err)
			}
			codecs = append(codecs, c)
		}
	}
	return codecs
}

func TestEncodeConsLowBits(t *testing.T) {
	c, err := NewCodec(LSBTag, 3)
	if err != nil {
		t.Fatal(err)
	}
	if c.ValMask() != ^uint64(0x7) {
		t.Errorf("Expected VALMASK ~0x7, got %#x", c.ValMask())
	}
	w := c.Encode(0x1000, TypeCons)
	if got := c.DecodeTag(w); got != TypeCons {
		t.Errorf("Expected cons, got %s", got)
	}
	if got := c.StripTag(w); got != 0x1000 {
		t.Errorf("Expected 0x1000, got %#x", uint64(got))
	}
}

func TestRoundTrip(t *testing.T) {
	for _, c := range allCodecs(t) {
		c := c
		t.Run(c.Mode().String(), func(t *testing.T) {
			for typ := TypeSymbol; typ < NumTypes; typ++ {
				typ := typ
				f := func(p uint64) bool {
					addr := Address(p & c.ValMask())
					w := c.Encode(addr, typ)
					return c.DecodeTag(w) == typ && c.StripTag(w) == addr
				}
				if err := quick.Check(f, nil); err != nil {
					t.Errorf("%s/%d %s: %v", c.Mode(), c.TagBits(), typ, err)
				}
			}
		})
	}
}

func TestFixnumRoundTrip(t *testing.T) {
	for _, c := range allCodecs(t) {
		c := c
		f := func(n int64) bool {
			n >>= c.TagBits()
			w := c.MakeFixnum(n)
			return c.DecodeTag(w).IsFixnum() && c.FixnumValue(w) == n
		}
		if err := quick.Check(f, nil); err != nil {
			t.Errorf("%s/%d: %v", c.Mode(), c.TagBits(), err)
		}
	}
}

func TestFixnumBounds(t *testing.T) {
	for _, c := range allCodecs(t) {
		for _, n := range []int64{0, 1, -1, c.MostPositiveFixnum(), c.MostNegativeFixnum()} {
			w := c.MakeFixnum(n)
			if !c.DecodeTag(w).IsFixnum() {
				t.Errorf("%s/%d: %d decoded as %s", c.Mode(), c.TagBits(), n, c.DecodeTag(w))
			}
			if got := c.FixnumValue(w); got != n {
				t.Errorf("%s/%d: expected %d, got %d", c.Mode(), c.TagBits(), n, got)
			}
		}
		if c.FitsFixnum(c.MostPositiveFixnum() + 1) {
			t.Errorf("%s/%d: most-positive-fixnum + 1 should not fit", c.Mode(), c.TagBits())
		}
	}
}

func TestDefaultFixnumRange(t *testing.T) {
	c := DefaultCodec()
	if c.MostPositiveFixnum() != 1<<61-1 {
		t.Errorf("Expected 2^61-1, got %d", c.MostPositiveFixnum())
	}
	if c.MostNegativeFixnum() != -1<<61 {
		t.Errorf("Expected -2^61, got %d", c.MostNegativeFixnum())
	}
}

func TestInvalidTagWidth(t *testing.T) {
	for _, bits := range []uint{0, 2, 9, 64} {
		if _, err := NewCodec(LSBTag, bits); !errors.Is(err, ErrInvalidTag) {
			t.Errorf("tag width %d: expected ErrInvalidTag, got %v", bits, err)
		}
	}
	if _, err := NewCodec(TagMode(7), 3); err == nil {
		t.Error("Expected error for unknown tag mode")
	}
}

func TestInvalidRawTag(t *testing.T) {
	c, err := NewCodec(LSBTag, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Raw 15 is not assigned with four tag bits.
	if got := c.DecodeTag(Object(0x1000 | 15)); got != TypeInvalid {
		t.Errorf("Expected invalid, got %s", got)
	}
	if TypeInvalid.Valid() {
		t.Error("TypeInvalid should not be valid")
	}
}

func TestDefaultCodecHasNoInvalidTags(t *testing.T) {
	for _, mode := range []TagMode{LSBTag, MSBTag} {
		c, _ := NewCodec(mode, 3)
		for raw := uint64(0); raw < 8; raw++ {
			var w Object
			if mode == LSBTag {
				w = Object(raw)
			} else {
				w = Object(raw << c.ValBits())
			}
			if !c.DecodeTag(w).Valid() {
				t.Errorf("%s: raw %d decoded invalid", mode, raw)
			}
		}
	}
}

func TestValidAddress(t *testing.T) {
	lsb := DefaultCodec()
	if lsb.ValidAddress(0x1001) {
		t.Error("Unaligned address accepted in lsb mode")
	}
	if !lsb.ValidAddress(0x1000) {
		t.Error("Aligned address rejected in lsb mode")
	}
	msb, _ := NewCodec(MSBTag, 3)
	if msb.ValidAddress(1 << 62) {
		t.Error("Wide address accepted in msb mode")
	}
	if !msb.ValidAddress(0x1001) {
		t.Error("Narrow address rejected in msb mode")
	}
}

func TestTypeNames(t *testing.T) {
	for typ := TypeSymbol; typ < NumTypes; typ++ {
		if got := TypeFromString(typ.String()); got != typ {
			t.Errorf("TypeFromString(%q) = %s", typ.String(), got)
		}
	}
	if TypeFromString("bogus") != TypeInvalid {
		t.Error("Expected invalid for unknown name")
	}
	if m, err := ParseTagMode("MSB"); err != nil || m != MSBTag {
		t.Errorf("ParseTagMode(MSB) = %v, %v", m, err)
	}
	if _, err := ParseTagMode("middle"); err == nil {
		t.Error("Expected error for unknown tag mode")
	}
}
