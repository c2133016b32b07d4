package lispobj

import (
	"maps"
	"slices"
)

// TypePredicate tests the variant of an object
type TypePredicate func(rt *Runtime, o Object) bool

// builtinPredicates is built once and never written afterwards, so it is
// read from any goroutine without locking.
var builtinPredicates = map[string]TypePredicate{
	"integerp":            (*Runtime).IsFixnum,
	"natnump":             (*Runtime).IsNatnum,
	"wholenump":           (*Runtime).IsNatnum,
	"numberp":             (*Runtime).IsNumber,
	"floatp":              (*Runtime).IsFloat,
	"integer-or-marker-p": (*Runtime).isIntegerOrMarker,
	"symbolp":             (*Runtime).IsSymbol,
	"stringp":             (*Runtime).IsString,
	"consp":               (*Runtime).IsCons,
	"listp":               (*Runtime).IsList,
	"vectorp":             (*Runtime).IsVector,
	"bool-vector-p":       (*Runtime).IsBoolVector,
	"char-table-p":        (*Runtime).IsCharTable,
	"sequencep":           (*Runtime).IsSequence,
	"arrayp":              (*Runtime).IsArray,
	"recordp":             (*Runtime).IsRecord,
	"subrp":               (*Runtime).IsSubr,
	"bufferp":             (*Runtime).IsBuffer,
	"markerp":             (*Runtime).IsMarker,
	"overlayp":            (*Runtime).IsOverlay,
	"functionp":           (*Runtime).IsFunction,
}

func (rt *Runtime) isIntegerOrMarker(o Object) bool {
	return rt.IsFixnum(o) || rt.IsMarker(o)
}

// PredicateNames lists the built-in predicates in sorted order
func PredicateNames() []string {
	return slices.Sorted(maps.Keys(builtinPredicates))
}

// LookupPredicate finds a built-in predicate by name
func LookupPredicate(name string) (TypePredicate, bool) {
	p, ok := builtinPredicates[name]
	return p, ok
}

// CheckPredicate applies the predicate named by the symbol pred to o.
// A nil pred accepts everything.
func (rt *Runtime) CheckPredicate(pred, o Object) (bool, error) {
	if rt.IsNil(pred) {
		return true, nil
	}
	sym, err := rt.AsSymbolOrError(pred)
	if err != nil {
		return false, err
	}
	p, ok := builtinPredicates[sym.Name()]
	if !ok {
		return false, rt.signal(ErrVoidVariable, "void-function", pred)
	}
	return p(rt, o), nil
}

// TypeName returns the type-of symbol name for o
func (rt *Runtime) TypeName(o Object) string {
	switch rt.TypeOf(o) {
	case TypeInt0, TypeInt1:
		return "integer"
	case TypeSymbol:
		return "symbol"
	case TypeString:
		return "string"
	case TypeCons:
		return "cons"
	case TypeFloat:
		return "float"
	case TypeMisc:
		m, ok := rt.AsMisc(o)
		if !ok {
			return "misc"
		}
		return m.Type().String()
	case TypeVectorlike:
		v, ok := rt.AsVectorlike(o)
		if !ok {
			return "vector-like"
		}
		if v.IsVector() {
			return "vector"
		}
		return v.PseudovectorType().String()
	}
	return "invalid"
}
