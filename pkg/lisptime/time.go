// Package lisptime implements the four-limb (HI LO US PS) timestamp: HI
// holds the seconds above the low 16 bits, LO the low 16 bits, US the
// microseconds and PS the picoseconds within the microsecond.
package lisptime

import (
	"cmp"
	"fmt"
	"time"
)

// LoTimeBits is the width of the LO limb
const LoTimeBits = 16

const (
	loRadix  = 1 << LoTimeBits
	subRadix = 1_000_000
)

// Time is a four-limb timestamp. The normal form keeps 0 <= Lo < 2^16
// and 0 <= Us, Ps < 10^6; Hi is unbounded.
type Time struct {
	Hi int64
	Lo int
	Us int
	Ps int
}

// New builds a Time from its limbs without normalizing
func New(hi int64, lo, us, ps int) Time {
	return Time{Hi: hi, Lo: lo, Us: us, Ps: ps}
}

// floorMod splits v into a floor quotient and a non-negative remainder
func floorMod(v, radix int) (int, int) {
	q, r := v/radix, v%radix
	if r < 0 {
		q--
		r += radix
	}
	return q, r
}

// Add sums limb-wise and carries ps into us, us into lo and lo into hi.
// The result is normal even when the inputs are not.
func (t Time) Add(o Time) Time {
	return Time{
		Hi: t.Hi + o.Hi,
		Lo: t.Lo + o.Lo,
		Us: t.Us + o.Us,
		Ps: t.Ps + o.Ps,
	}.Normalize()
}

// Sub subtracts limb-wise, then borrows for a negative ps and us. A
// negative hi takes one more from hi and adds 2^16 to lo. LO can end up
// outside [0, 2^16) when hi stays non-negative; call Normalize for the
// canonical form.
func (t Time) Sub(o Time) Time {
	hi := t.Hi - o.Hi
	lo := t.Lo - o.Lo
	us := t.Us - o.Us
	ps := t.Ps - o.Ps

	if ps < 0 {
		us--
		ps += subRadix
	}
	if us < 0 {
		lo--
		us += subRadix
	}
	if hi < 0 {
		hi--
		lo += loRadix
	}
	return Time{Hi: hi, Lo: lo, Us: us, Ps: ps}
}

// Normalize carries every limb into range
func (t Time) Normalize() Time {
	c, ps := floorMod(t.Ps, subRadix)
	c, us := floorMod(t.Us+c, subRadix)
	c, lo := floorMod(t.Lo+c, loRadix)
	return Time{Hi: t.Hi + int64(c), Lo: lo, Us: us, Ps: ps}
}

// IsNormal reports whether every limb is in range
func (t Time) IsNormal() bool {
	return t.Lo >= 0 && t.Lo < loRadix &&
		t.Us >= 0 && t.Us < subRadix &&
		t.Ps >= 0 && t.Ps < subRadix
}

// Compare orders lexicographically by (hi, lo, us, ps)
func (t Time) Compare(o Time) int {
	if c := cmp.Compare(t.Hi, o.Hi); c != 0 {
		return c
	}
	if c := cmp.Compare(t.Lo, o.Lo); c != 0 {
		return c
	}
	if c := cmp.Compare(t.Us, o.Us); c != 0 {
		return c
	}
	return cmp.Compare(t.Ps, o.Ps)
}

// Less reports t < o
func (t Time) Less(o Time) bool { return t.Compare(o) < 0 }

// Equal compares limb by limb
func (t Time) Equal(o Time) bool { return t == o }

// IntoSlice returns the first n limbs. Fewer than two yields nothing
// since HI and LO always travel together.
func (t Time) IntoSlice(n int) []int64 {
	v := make([]int64, 0, min(max(n, 0), 4))
	if n >= 2 {
		v = append(v, t.Hi, int64(t.Lo))
	}
	if n >= 3 {
		v = append(v, int64(t.Us))
	}
	if n > 3 {
		v = append(v, int64(t.Ps))
	}
	return v
}

// FromSlice builds a normal Time from (HI LO [US [PS]])
func FromSlice(v []int64) (Time, error) {
	if len(v) < 2 || len(v) > 4 {
		return Time{}, fmt.Errorf("invalid time specification: %d components", len(v))
	}
	t := Time{Hi: v[0], Lo: int(v[1])}
	if len(v) > 2 {
		t.Us = int(v[2])
	}
	if len(v) > 3 {
		t.Ps = int(v[3])
	}
	return t.Normalize(), nil
}

// FromTime converts a wall-clock time, keeping nanosecond precision
func FromTime(tm time.Time) Time {
	sec := tm.Unix()
	hi, lo := sec>>LoTimeBits, int(sec&(loRadix-1))
	ns := tm.Nanosecond()
	return Time{Hi: hi, Lo: lo, Us: ns / 1000, Ps: ns % 1000 * 1000}
}

// Time converts to a wall-clock time, truncating below a nanosecond
func (t Time) Time() time.Time {
	n := t.Normalize()
	sec := n.Hi<<LoTimeBits + int64(n.Lo)
	return time.Unix(sec, int64(n.Us)*1000+int64(n.Ps/1000))
}

// String renders the limbs as a Lisp list
func (t Time) String() string {
	return fmt.Sprintf("(%d %d %d %d)", t.Hi, t.Lo, t.Us, t.Ps)
}
