package lisptime

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"
	"time"
)

// Generate produces limbs up to a few radixes out of range, so the
// properties also cover denormalized input.
func (Time) Generate(r *rand.Rand, _ int) reflect.Value {
	t := Time{
		Hi: r.Int63n(1<<20) - 1<<19,
		Lo: r.Intn(4*loRadix) - 2*loRadix,
		Us: r.Intn(4*subRadix) - 2*subRadix,
		Ps: r.Intn(4*subRadix) - 2*subRadix,
	}
	return reflect.ValueOf(t)
}

func TestAddCarries(t *testing.T) {
	a := New(0, 0, 999999, 999999)
	b := New(0, 0, 0, 2)
	if got, want := a.Add(b), New(0, 1, 0, 1); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
	if got, want := New(0, loRadix-1, 0, 0).Add(New(0, 1, 0, 0)), New(1, 0, 0, 0); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestAddNormalForm(t *testing.T) {
	f := func(a, b Time) bool {
		return a.Add(b).IsNormal()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSubBorrows(t *testing.T) {
	tests := []struct {
		a, b, want Time
	}{
		{New(0, 1, 0, 0), New(0, 0, 0, 1), New(0, 0, 999999, 999999)},
		{New(5, 10, 20, 30), New(1, 2, 3, 4), New(4, 8, 17, 26)},
		// hi goes negative: hi is decremented once more and lo gains 2^16.
		{New(0, 10, 0, 0), New(1, 5, 0, 0), New(-2, 5+loRadix, 0, 0)},
	}
	for _, tt := range tests {
		if got := tt.a.Sub(tt.b); got != tt.want {
			t.Errorf("%s - %s: expected %s, got %s", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestSubLeavesLoUnnormalized(t *testing.T) {
	// A borrow out of lo with hi still non-negative leaves lo at -1.
	got := New(1, 0, 0, 0).Sub(New(0, 1, 0, 0))
	if got != New(1, -1, 0, 0) {
		t.Errorf("Expected (1 -1 0 0), got %s", got)
	}
	if got.Normalize() != New(0, loRadix-1, 0, 0) {
		t.Errorf("Expected (0 65535 0 0), got %s", got.Normalize())
	}
}

func TestSubInvertsAdd(t *testing.T) {
	f := func(a, b Time) bool {
		return a.Add(b).Sub(b).Normalize() == a.Normalize()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestOrderingConsistency(t *testing.T) {
	f := func(x, y Time) bool {
		a, b := x.Normalize(), y.Normalize()
		diff := b.Sub(a)
		if a.Add(diff) != b {
			return false
		}
		// b - a is non-negative exactly when a <= b.
		return (diff.Normalize().Hi >= 0) == !b.Less(a)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Time
		want int
	}{
		{New(1, 0, 0, 0), New(0, 65535, 999999, 999999), 1},
		{New(0, 1, 0, 0), New(0, 1, 0, 1), -1},
		{New(0, 1, 2, 3), New(0, 1, 2, 3), 0},
		{New(-1, 0, 0, 0), New(0, 0, 0, 0), -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("Compare(%s, %s) = %d", tt.a, tt.b, got)
		}
		if tt.a.Less(tt.b) != (tt.want < 0) {
			t.Errorf("Less(%s, %s) disagrees with Compare", tt.a, tt.b)
		}
		if tt.a.Equal(tt.b) != (tt.want == 0) {
			t.Errorf("Equal(%s, %s) disagrees with Compare", tt.a, tt.b)
		}
	}
}

func TestIntoSlice(t *testing.T) {
	tm := New(1, 2, 3, 4)
	tests := []struct {
		n    int
		want []int64
	}{
		{0, []int64{}},
		{1, []int64{}},
		{2, []int64{1, 2}},
		{3, []int64{1, 2, 3}},
		{4, []int64{1, 2, 3, 4}},
		{9, []int64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		if got := tm.IntoSlice(tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("IntoSlice(%d) = %v, expected %v", tt.n, got, tt.want)
		}
	}
}

func TestFromSlice(t *testing.T) {
	tm, err := FromSlice([]int64{0, 65536, 1000000})
	if err != nil {
		t.Fatal(err)
	}
	if tm != New(1, 1, 0, 0) {
		t.Errorf("Expected (1 1 0 0), got %s", tm)
	}
	for _, bad := range [][]int64{nil, {1}, {1, 2, 3, 4, 5}} {
		if _, err := FromSlice(bad); err == nil {
			t.Errorf("Expected error for %v", bad)
		}
	}
}

func TestWallClock(t *testing.T) {
	wall := time.Unix(1700000000, 123456789)
	tm := FromTime(wall)
	if tm.Hi != 1700000000>>16 || tm.Lo != 1700000000&0xffff {
		t.Errorf("Seconds split wrong: %s", tm)
	}
	if tm.Us != 123456 || tm.Ps != 789000 {
		t.Errorf("Sub-second split wrong: %s", tm)
	}
	if !tm.Time().Equal(wall) {
		t.Errorf("Round trip gave %v", tm.Time())
	}

	before := FromTime(time.Unix(-1, 0))
	if before != New(-1, 65535, 0, 0) {
		t.Errorf("Expected (-1 65535 0 0), got %s", before)
	}
}
