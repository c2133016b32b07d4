package lispobj

import (
	"fmt"
	"math"
	"unsafe"
)

// Signed is any native signed integer type
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is any native unsigned integer type
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

func signedBounds[T Signed]() (int64, int64) {
	var zero T
	bits := unsafe.Sizeof(zero) * 8
	if bits >= 64 {
		return math.MinInt64, math.MaxInt64
	}
	return -1 << (bits - 1), 1<<(bits-1) - 1
}

func unsignedMax[T Unsigned]() uint64 {
	var zero T
	bits := unsafe.Sizeof(zero) * 8
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1<<bits - 1
}

// FromSigned encodes v as a fixnum. Magnitudes outside the fixnum range
// are rejected rather than wrapped.
func FromSigned[T Signed](rt *Runtime, v T) (Object, error) {
	n := int64(v)
	if !rt.codec.FitsFixnum(n) {
		return 0, &ArgsOutOfRangeError{
			Value:  fmt.Sprint(n),
			Min:    fmt.Sprint(rt.codec.MostNegativeFixnum()),
			Max:    fmt.Sprint(rt.codec.MostPositiveFixnum()),
			Target: "fixnum",
		}
	}
	return rt.codec.MakeFixnum(n), nil
}

// FromUnsigned encodes v as a natural-number fixnum
func FromUnsigned[T Unsigned](rt *Runtime, v T) (Object, error) {
	u := uint64(v)
	if u > uint64(rt.codec.MostPositiveFixnum()) {
		return 0, &ArgsOutOfRangeError{
			Value:  fmt.Sprint(u),
			Min:    "0",
			Max:    fmt.Sprint(rt.codec.MostPositiveFixnum()),
			Target: "natnum",
		}
	}
	return rt.codec.MakeFixnum(int64(u)), nil
}

// ToSigned decodes a fixnum into T, failing with integer-or-marker-p for
// non-integers and args-out-of-range when the value does not fit T.
func ToSigned[T Signed](rt *Runtime, o Object) (T, error) {
	n, err := rt.AsFixnumOrError(o)
	if err != nil {
		return 0, err
	}
	lo, hi := signedBounds[T]()
	if n < lo || n > hi {
		return 0, &ArgsOutOfRangeError{Value: fmt.Sprint(n), Min: fmt.Sprint(lo), Max: fmt.Sprint(hi), Target: fmt.Sprintf("%T", T(0))}
	}
	return T(n), nil
}

// ToUnsigned decodes a natural-number fixnum into T, failing with
// wholenump for negatives and non-integers.
func ToUnsigned[T Unsigned](rt *Runtime, o Object) (T, error) {
	u, err := rt.AsNatnumOrError(o)
	if err != nil {
		return 0, err
	}
	if hi := unsignedMax[T](); u > hi {
		return 0, &ArgsOutOfRangeError{Value: fmt.Sprint(u), Min: "0", Max: fmt.Sprint(hi), Target: fmt.Sprintf("%T", T(0))}
	}
	return T(u), nil
}

// ToOptionalSigned treats nil as absent
func ToOptionalSigned[T Signed](rt *Runtime, o Object) (T, bool, error) {
	if rt.IsNil(o) {
		return 0, false, nil
	}
	v, err := ToSigned[T](rt, o)
	return v, err == nil, err
}

// ToOptionalUnsigned treats nil as absent
func ToOptionalUnsigned[T Unsigned](rt *Runtime, o Object) (T, bool, error) {
	if rt.IsNil(o) {
		return 0, false, nil
	}
	v, err := ToUnsigned[T](rt, o)
	return v, err == nil, err
}

// MakeFixnum encodes n, wrapping values outside the fixnum range
func (rt *Runtime) MakeFixnum(n int64) Object {
	return rt.codec.MakeFixnum(n)
}

// FloatValue returns the numeric value of a fixnum or float
func (rt *Runtime) FloatValue(o Object) (float64, error) {
	if n, ok := rt.AsFixnum(o); ok {
		return float64(n), nil
	}
	if f, ok := rt.AsFloat(o); ok {
		return f.Value(), nil
	}
	return 0, rt.wrongType("numberp", o)
}
