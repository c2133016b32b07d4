package lispobj

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer renders an object for diagnostics. It never fails: objects
// with an unknown tag print as raw hex.
type Printer struct {
	rt  *Runtime
	obj Object
}

// Printer returns a fmt.Stringer for o
func (rt *Runtime) Printer(o Object) Printer {
	return Printer{rt: rt, obj: o}
}

func (p Printer) String() string {
	return p.rt.Inspect(p.obj)
}

// Inspect renders o for debugging
func (rt *Runtime) Inspect(o Object) string {
	var sb strings.Builder
	rt.inspect(&sb, o, 0, true)
	return sb.String()
}

func (rt *Runtime) rawForm(label string, o Object) string {
	return fmt.Sprintf("#<%s @ 0x%X: VAL(0x%X)>", label, uint64(rt.codec.StripTag(o)), uint64(o))
}

func (rt *Runtime) inspect(sb *strings.Builder, o Object, depth int, top bool) {
	t := rt.TypeOf(o)
	if !t.Valid() {
		rt.logger.DebugCat(CatCodec, "invalid tag %#x in word %#x", rt.codec.RawTag(o), uint64(o))
		sb.WriteString(rt.rawForm("INVALID-OBJECT", o))
		return
	}
	if rt.IsNil(o) {
		sb.WriteString("nil")
		return
	}
	if depth > rt.config.PrintDepth {
		sb.WriteString("...")
		return
	}

	switch t {
	case TypeSymbol:
		sym, ok := rt.AsSymbol(o)
		if !ok {
			sb.WriteString(rt.rawForm("SYMBOL", o))
			return
		}
		if top {
			sb.WriteByte('\'')
		}
		sb.WriteString(sym.Name())

	case TypeCons:
		if top {
			sb.WriteByte('\'')
		}
		sb.WriteByte('(')
		tail := o
		for n := 0; ; n++ {
			cell, ok := rt.AsCons(tail)
			if !ok {
				break
			}
			if n > 0 {
				sb.WriteByte(' ')
			}
			if n >= rt.config.PrintLength {
				sb.WriteString("...)")
				return
			}
			rt.inspect(sb, cell.Car(), depth+1, false)
			tail = cell.Cdr()
		}
		if rt.IsNotNil(tail) {
			sb.WriteString(" . ")
			rt.inspect(sb, tail, depth+1, false)
		}
		sb.WriteByte(')')

	case TypeFloat:
		f, ok := rt.AsFloat(o)
		if !ok {
			sb.WriteString(rt.rawForm("FLOAT", o))
			return
		}
		sb.WriteString(strconv.FormatFloat(f.Value(), 'g', -1, 64))

	case TypeVectorlike:
		v, ok := rt.AsVector(o)
		if !ok {
			sb.WriteString(rt.rawForm("VECTOR-LIKE", o))
			return
		}
		sb.WriteByte('[')
		for i, el := range v.Slice() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if i >= rt.config.PrintLength {
				sb.WriteString("...")
				break
			}
			rt.inspect(sb, el, depth+1, false)
		}
		sb.WriteByte(']')

	case TypeInt0, TypeInt1:
		sb.WriteString(strconv.FormatInt(rt.codec.FixnumValue(o), 10))

	case TypeMisc:
		sb.WriteString(rt.rawForm("MISC", o))

	case TypeString:
		s, ok := rt.AsString(o)
		if !ok {
			sb.WriteString(rt.rawForm("STRING", o))
			return
		}
		sb.WriteString(strconv.Quote(s.String()))
	}
}
