package lispobj

import (
	"bytes"
	"fmt"
)

// EqualKind selects how strict deep equality is
type EqualKind int

const (
	EqualNoQuit EqualKind = iota // no quit polling; used where interruption is unsafe
	EqualPlain                   // ordinary equal
)

// String returns the string representation of an EqualKind
func (k EqualKind) String() string {
	if k == EqualNoQuit {
		return "no-quit"
	}
	return "plain"
}

// VisitedSet records object pairs already under comparison, so cyclic
// structure compares equal instead of recursing forever.
type VisitedSet struct {
	seen map[Object][]Object
}

// NewVisitedSet creates an empty visited set
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[Object][]Object)}
}

// visit reports whether (a, b) was already recorded, recording it if not
func (v *VisitedSet) visit(a, b Object) bool {
	for _, o := range v.seen[a] {
		if o == b {
			return true
		}
	}
	v.seen[a] = append(v.seen[a], b)
	return false
}

// Eq is word identity
func (rt *Runtime) Eq(a, b Object) bool {
	return a == b
}

// Eql is Eq, except that a float on the left compares by value
func (rt *Runtime) Eql(a, b Object) bool {
	if rt.IsFloat(a) {
		// Floats never recurse, so no-quit equality cannot fail here.
		equal, _ := rt.EqualNoQuit(a, b)
		return equal
	}
	return rt.Eq(a, b)
}

// Equal is deep structural equality
func (rt *Runtime) Equal(a, b Object) (bool, error) {
	return rt.InternalEqual(a, b, EqualPlain, 0, nil)
}

// EqualNoQuit is Equal without quit polling
func (rt *Runtime) EqualNoQuit(a, b Object) (bool, error) {
	return rt.InternalEqual(a, b, EqualNoQuit, 0, nil)
}

// InternalEqual is the recursive comparison behind Equal. ht may be nil;
// it is created once depth passes EqualHashDepth.
func (rt *Runtime) InternalEqual(o1, o2 Object, kind EqualKind, depth int, ht *VisitedSet) (bool, error) {
	if depth > rt.config.EqualHashDepth {
		if depth > rt.config.MaxEqualDepth {
			rt.logger.WarnCat(CatEqual, "equal: depth %d exceeds %d", depth, rt.config.MaxEqualDepth)
			return false, &SignalError{Symbol: "error", Data: []string{"Stack overflow in equal"}, err: ErrEqualDepth}
		}
		if ht == nil {
			ht = NewVisitedSet()
		}
		switch rt.TypeOf(o1) {
		case TypeCons, TypeMisc, TypeVectorlike:
			if ht.visit(o1, o2) {
				return true, nil
			}
		}
	}

	for {
		if o1 == o2 {
			return true, nil
		}
		t1 := rt.TypeOf(o1)
		if t1 != rt.TypeOf(o2) {
			return false, nil
		}

		switch t1 {
		case TypeFloat:
			f1, ok1 := rt.AsFloat(o1)
			f2, ok2 := rt.AsFloat(o2)
			return ok1 && ok2 && sameFloat(f1.Value(), f2.Value()), nil

		case TypeCons:
			rest1, rest2, done, equal, err := rt.equalConsPrefix(o1, o2, kind, depth, ht)
			if err != nil || done {
				return equal, err
			}
			o1, o2 = rest1, rest2
			depth++
			continue

		case TypeMisc:
			m1, ok1 := rt.AsMisc(o1)
			m2, ok2 := rt.AsMisc(o2)
			if !ok1 || !ok2 {
				return false, nil
			}
			return rt.miscEqual(m1, m2, kind, depth, ht)

		case TypeVectorlike:
			return rt.vectorlikeEqual(o1, o2, kind, depth, ht)

		case TypeString:
			s1, ok1 := rt.AsString(o1)
			s2, ok2 := rt.AsString(o2)
			return ok1 && ok2 &&
				s1.LenChars() == s2.LenChars() &&
				bytes.Equal(s1.Bytes(), s2.Bytes()), nil
		}
		// Symbols and fixnums are equal only when eq.
		return false, nil
	}
}

// equalConsPrefix walks two lists in step. It returns done when the
// answer is known, otherwise the two non-cons-or-remaining tails to keep
// comparing.
func (rt *Runtime) equalConsPrefix(o1, o2 Object, kind EqualKind, depth int, ht *VisitedSet) (Object, Object, bool, bool, error) {
	tortoise := o1
	for n := 0; ; n++ {
		c1, ok := rt.AsCons(o1)
		if !ok {
			return o1, o2, false, false, nil
		}
		c2, ok := rt.AsCons(o2)
		if !ok {
			return o1, o2, true, false, nil
		}
		if kind == EqualPlain && rt.config.QuitHook != nil && rt.config.QuitHook() {
			return o1, o2, true, false, &SignalError{Symbol: "quit", err: ErrQuit}
		}
		equal, err := rt.InternalEqual(c1.Car(), c2.Car(), kind, depth+1, ht)
		if err != nil || !equal {
			return o1, o2, true, false, err
		}
		o1, o2 = c1.Cdr(), c2.Cdr()
		if o1 == o2 {
			return o1, o2, true, true, nil
		}
		if n%2 == 1 {
			tc, _ := rt.AsCons(tortoise)
			tortoise = tc.Cdr()
		}
		if o1 == tortoise && rt.IsCons(o1) {
			return o1, o2, true, false, rt.signal(ErrCircularList, "circular-list", o1)
		}
	}
}

// miscEqual requires equal subtypes; only overlays and markers compare
func (rt *Runtime) miscEqual(m1, m2 MiscRef, kind EqualKind, depth int, ht *VisitedSet) (bool, error) {
	if m1.Type() != m2.Type() {
		return false, nil
	}
	if ov1, ok := m1.AsOverlay(); ok {
		ov2, ok := m2.AsOverlay()
		if !ok {
			return false, nil
		}
		a, b := ov1.Deref(), ov2.Deref()
		for _, pair := range [][2]Object{{a.Start, b.Start}, {a.End, b.End}} {
			equal, err := rt.InternalEqual(pair[0], pair[1], kind, depth+1, ht)
			if err != nil || !equal {
				return false, err
			}
		}
		return rt.InternalEqual(a.Plist, b.Plist, kind, depth+1, ht)
	}
	if mk1, ok := m1.AsMarker(); ok {
		mk2, ok := m2.AsMarker()
		if !ok {
			return false, nil
		}
		return mk1.Buffer() == mk2.Buffer() &&
			(mk1.Buffer() == nil || mk1.Deref().Bytepos == mk2.Deref().Bytepos), nil
	}
	return false, nil
}

// vectorlikeEqual compares headers, then slots for the comparable
// subtypes. Other pseudovectors are equal only when eq.
func (rt *Runtime) vectorlikeEqual(o1, o2 Object, kind EqualKind, depth int, ht *VisitedSet) (bool, error) {
	v1, ok1 := rt.AsVectorlike(o1)
	v2, ok2 := rt.AsVectorlike(o2)
	if !ok1 || !ok2 {
		return false, nil
	}
	if v1.Deref().Size != v2.Deref().Size {
		return false, nil
	}

	if b1, ok := v1.AsBoolVector(); ok {
		b2, ok := v2.AsBoolVector()
		if !ok || len(b1.Deref().Bits) != len(b2.Deref().Bits) {
			return false, nil
		}
		for i, bit := range b1.Deref().Bits {
			if b2.Deref().Bits[i] != bit {
				return false, nil
			}
		}
		return true, nil
	}

	if !v1.IsVector() && v1.PseudovectorType() < PvecCompiled {
		return false, nil
	}
	s1, ok1 := v1.Object().(slotted)
	s2, ok2 := v2.Object().(slotted)
	if !ok1 || !ok2 {
		return false, nil
	}
	slots1, slots2 := s1.lispSlots(), s2.lispSlots()
	if len(slots1) != len(slots2) {
		return false, nil
	}
	for i := range slots1 {
		equal, err := rt.InternalEqual(slots1[i], slots2[i], kind, depth+1, ht)
		if err != nil || !equal {
			return false, err
		}
	}
	return true, nil
}

// EqualKindFromString parses "plain" or "no-quit"
func EqualKindFromString(s string) (EqualKind, error) {
	switch s {
	case "plain", "":
		return EqualPlain, nil
	case "no-quit", "noquit":
		return EqualNoQuit, nil
	}
	return EqualPlain, fmt.Errorf("unknown equal kind %q", s)
}
