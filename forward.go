package lispobj

import (
	"fmt"
	"reflect"
	"unsafe"
)

// FwdKind identifies how a built-in variable's value is stored
type FwdKind int

const (
	FwdInt FwdKind = iota
	FwdBool
	FwdObj
	FwdBufferObj
	FwdKboardObj
)

// String returns the string representation of a FwdKind
func (k FwdKind) String() string {
	switch k {
	case FwdInt:
		return "int"
	case FwdBool:
		return "bool"
	case FwdObj:
		return "object"
	case FwdBufferObj:
		return "buffer-object"
	case FwdKboardObj:
		return "kboard-object"
	default:
		return fmt.Sprintf("fwd(%d)", int(k))
	}
}

// Forward describes a forwarded value cell. The implementations below are
// the only ones; each carries exactly the payload its kind needs.
type Forward interface {
	Kind() FwdKind
	isForward()
}

// IntForward forwards to a native integer
type IntForward struct {
	Ptr *int64
}

// BoolForward forwards to a native boolean; nil reads as false and any
// other value writes as true
type BoolForward struct {
	Ptr *bool
}

// ObjForward forwards to a native Object cell
type ObjForward struct {
	Ptr *Object
}

// BufferObjForward forwards to an Object field of the current buffer.
// Predicate names the type predicate values stored there must satisfy;
// nil means unconstrained.
type BufferObjForward struct {
	Offset    FieldOffset[Buffer]
	Predicate Object
}

// KboardObjForward forwards to an Object field of the current keyboard
type KboardObjForward struct {
	Offset FieldOffset[Kboard]
}

func (IntForward) Kind() FwdKind       { return FwdInt }
func (BoolForward) Kind() FwdKind      { return FwdBool }
func (ObjForward) Kind() FwdKind       { return FwdObj }
func (BufferObjForward) Kind() FwdKind { return FwdBufferObj }
func (KboardObjForward) Kind() FwdKind { return FwdKboardObj }

func (IntForward) isForward()       {}
func (BoolForward) isForward()      {}
func (ObjForward) isForward()       {}
func (BufferObjForward) isForward() {}
func (KboardObjForward) isForward() {}

// Kboard holds the keyboard-local variables of one terminal
type Kboard struct {
	PrefixArg                  Object
	LastPrefixArg              Object
	LastCommand                Object
	RealLastCommand            Object
	LastRepeatableCommand      Object
	DefiningKbdMacro           Object
	LastKbdMacro               Object
	OverridingTerminalLocalMap Object
}

// MakeKboard returns a keyboard record with every field set to nil
func (rt *Runtime) MakeKboard() *Kboard {
	kb := &Kboard{}
	fillObjects(kb, rt.nilObj)
	return kb
}

// fillObjects sets every exported Object field of *p to v
func fillObjects(p any, v Object) {
	rv := reflect.ValueOf(p).Elem()
	objType := reflect.TypeOf(Object(0))
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.CanSet() && f.Type() == objType {
			f.Set(reflect.ValueOf(v))
		}
	}
}

// FieldOffset is the byte offset of an Object field within R. It can
// only be built from a field name, so it always lands on an aligned
// Object inside R.
type FieldOffset[R any] struct {
	off  uintptr
	name string
}

// NewFieldOffset locates the Object field named field in R
func NewFieldOffset[R any](field string) (FieldOffset[R], error) {
	t := reflect.TypeOf((*R)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return FieldOffset[R]{}, fmt.Errorf("field offset: %s is not a struct", t)
	}
	f, ok := t.FieldByName(field)
	if !ok || len(f.Index) != 1 {
		return FieldOffset[R]{}, fmt.Errorf("field offset: %s has no field %s", t, field)
	}
	objType := reflect.TypeOf(Object(0))
	if f.Type != objType {
		return FieldOffset[R]{}, fmt.Errorf("field offset: %s.%s is %s, not Object", t, field, f.Type)
	}
	if f.Offset%uintptr(objType.Align()) != 0 || f.Offset+objType.Size() > t.Size() {
		return FieldOffset[R]{}, fmt.Errorf("field offset: %s.%s at %d is misaligned", t, field, f.Offset)
	}
	return FieldOffset[R]{off: f.Offset, name: field}, nil
}

// MustFieldOffset is NewFieldOffset for static field names
func MustFieldOffset[R any](field string) FieldOffset[R] {
	off, err := NewFieldOffset[R](field)
	if err != nil {
		panic(err)
	}
	return off
}

// Offset returns the byte offset
func (f FieldOffset[R]) Offset() uintptr { return f.off }

// Field returns the field name
func (f FieldOffset[R]) Field() string { return f.name }

// IsZero reports whether f was never initialized
func (f FieldOffset[R]) IsZero() bool { return f.name == "" }

// Apply returns the field's address within r
func (f FieldOffset[R]) Apply(r *R) *Object {
	return (*Object)(unsafe.Add(unsafe.Pointer(r), f.off))
}
