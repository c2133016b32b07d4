package lispobj

import (
	"fmt"
	"strconv"
)

// Reserved MaxArgs values
const (
	Many      = -2 // arguments arrive as one slice
	Unevalled = -1 // arguments arrive unevaluated
)

// SubrFunc is the Go implementation of a subroutine
type SubrFunc func(rt *Runtime, args []Object) (Object, error)

// Subr is a native subroutine record
type Subr struct {
	VectorlikeHeader
	Function   SubrFunc
	MinArgs    int16
	MaxArgs    int16
	SymbolName string
	IntSpec    string
	Doc        string
}

// SubrRef is a typed view of a subroutine record
type SubrRef struct {
	ExternalPtr[Subr]
}

// IsMany reports whether the subr takes any number of arguments
func (s SubrRef) IsMany() bool { return s.Deref().MaxArgs == Many }

// IsUnevalled reports whether the subr is a special form
func (s SubrRef) IsUnevalled() bool { return s.Deref().MaxArgs == Unevalled }

// MinArgs returns the minimum argument count
func (s SubrRef) MinArgs() int { return int(s.Deref().MinArgs) }

// MaxArgs returns the maximum argument count, or Many / Unevalled
func (s SubrRef) MaxArgs() int { return int(s.Deref().MaxArgs) }

// SymbolName returns the name the subr is installed under
func (s SubrRef) SymbolName() string { return s.Deref().SymbolName }

// Arity renders the argument counts the way func-arity prints them
func (s SubrRef) Arity() string {
	upper := strconv.Itoa(s.MaxArgs())
	switch s.MaxArgs() {
	case Unevalled:
		upper = "unevalled"
	case Many:
		upper = "many"
	}
	return fmt.Sprintf("(%d . %s)", s.MinArgs(), upper)
}

// Call checks the argument count and runs the subr
func (s SubrRef) Call(rt *Runtime, args ...Object) (Object, error) {
	sub := s.Deref()
	n := len(args)
	if n < int(sub.MinArgs) || (sub.MaxArgs >= 0 && n > int(sub.MaxArgs)) {
		return rt.nilObj, &SignalError{
			Symbol: "wrong-number-of-arguments",
			Data:   []string{sub.SymbolName, s.Arity(), strconv.Itoa(n)},
			err:    ErrArity,
		}
	}
	rt.logger.TraceCat(CatSubr, "call %s/%d", sub.SymbolName, n)
	return sub.Function(rt, args)
}

// SubrTable is the registry of native subroutines. It is frozen at
// construction; Lookup and All need no locking.
type SubrTable struct {
	byName map[string]*Subr
	order  []*Subr
}

// NewSubrTable validates and freezes specs
func NewSubrTable(specs ...*Subr) (*SubrTable, error) {
	t := &SubrTable{byName: make(map[string]*Subr, len(specs))}
	for _, s := range specs {
		if s == nil || s.SymbolName == "" {
			return nil, fmt.Errorf("subr table: unnamed subr")
		}
		if s.Function == nil {
			return nil, fmt.Errorf("subr table: %s has no function", s.SymbolName)
		}
		if s.MinArgs < 0 || (s.MaxArgs >= 0 && s.MaxArgs < s.MinArgs) || s.MaxArgs < Many {
			return nil, fmt.Errorf("subr table: %s has bad arity (%d, %d)", s.SymbolName, s.MinArgs, s.MaxArgs)
		}
		if _, dup := t.byName[s.SymbolName]; dup {
			return nil, fmt.Errorf("subr table: %s defined twice", s.SymbolName)
		}
		s.VectorlikeHeader = pseudoHeader(PvecSubr, 0, 0)
		t.byName[s.SymbolName] = s
		t.order = append(t.order, s)
	}
	return t, nil
}

// Lookup finds a subr by name
func (t *SubrTable) Lookup(name string) (SubrRef, bool) {
	s, ok := t.byName[name]
	if !ok {
		return SubrRef{}, false
	}
	return SubrRef{NewExternalPtr(s)}, true
}

// Len returns the number of subrs
func (t *SubrTable) Len() int { return len(t.order) }

// All returns the subrs in registration order
func (t *SubrTable) All() []SubrRef {
	refs := make([]SubrRef, len(t.order))
	for i, s := range t.order {
		refs[i] = SubrRef{NewExternalPtr(s)}
	}
	return refs
}

// InstallSubrs points each subr's symbol function cell at it. A runtime
// holds one table; installing again replaces it.
func (rt *Runtime) InstallSubrs(t *SubrTable) {
	for _, s := range t.order {
		obj := rt.mustAlloc(s, TypeVectorlike)
		sym, _ := rt.AsSymbol(rt.Intern(s.SymbolName))
		sym.Deref().Function = obj
		rt.logger.DebugCat(CatSubr, "defsubr %s %s", s.SymbolName, SubrRef{NewExternalPtr(s)}.Arity())
	}
	rt.subrs = t
}

// Subrs returns the installed table, nil before InstallSubrs
func (rt *Runtime) Subrs() *SubrTable { return rt.subrs }

// Funcall calls the subr in fn's function cell
func (rt *Runtime) Funcall(fn Object, args ...Object) (Object, error) {
	target := fn
	if sym, ok := rt.AsSymbol(fn); ok {
		target = sym.Function()
	}
	s, err := rt.AsSubrOrError(target)
	if err != nil {
		return rt.nilObj, err
	}
	if s.IsUnevalled() {
		return rt.nilObj, rt.wrongType("functionp", fn)
	}
	return s.Call(rt, args...)
}
