package lispobj

import "fmt"

func (rt *Runtime) defvar(name string, fwd Forward) Object {
	obj := rt.Intern(name)
	sym, _ := rt.AsSymbol(obj)
	sym.Deref().Fwd = fwd
	rt.logger.DebugCat(CatForward, "defvar %s (%s)", name, fwd.Kind())
	return obj
}

// DefvarInt forwards name to a native integer
func (rt *Runtime) DefvarInt(name string, p *int64) Object {
	return rt.defvar(name, IntForward{Ptr: p})
}

// DefvarBool forwards name to a native boolean
func (rt *Runtime) DefvarBool(name string, p *bool) Object {
	return rt.defvar(name, BoolForward{Ptr: p})
}

// DefvarLisp forwards name to a native Object cell
func (rt *Runtime) DefvarLisp(name string, p *Object) Object {
	return rt.defvar(name, ObjForward{Ptr: p})
}

// DefvarPerBuffer forwards name to the Buffer field called field.
// predicate is a predicate symbol such as integerp, or nil.
func (rt *Runtime) DefvarPerBuffer(name, field string, predicate Object) (Object, error) {
	off, err := NewFieldOffset[Buffer](field)
	if err != nil {
		return rt.nilObj, err
	}
	if rt.IsNotNil(predicate) {
		sym, err := rt.AsSymbolOrError(predicate)
		if err != nil {
			return rt.nilObj, err
		}
		if _, ok := LookupPredicate(sym.Name()); !ok {
			return rt.nilObj, fmt.Errorf("defvar %s: unknown predicate %s", name, sym.Name())
		}
	}
	return rt.defvar(name, BufferObjForward{Offset: off, Predicate: predicate}), nil
}

// DefvarKboard forwards name to the Kboard field called field
func (rt *Runtime) DefvarKboard(name, field string) (Object, error) {
	off, err := NewFieldOffset[Kboard](field)
	if err != nil {
		return rt.nilObj, err
	}
	return rt.defvar(name, KboardObjForward{Offset: off}), nil
}

// Forwarding returns the descriptor installed on sym, if any
func (rt *Runtime) Forwarding(sym Object) (Forward, bool) {
	s, ok := rt.AsSymbol(sym)
	if !ok || s.Deref().Fwd == nil {
		return nil, false
	}
	return s.Deref().Fwd, true
}

// SymbolValue reads sym's value. buf and kb supply the records that
// per-buffer and per-keyboard variables live in; they may be nil for
// other kinds.
func (rt *Runtime) SymbolValue(sym Object, buf *Buffer, kb *Kboard) (Object, error) {
	s, err := rt.AsSymbolOrError(sym)
	if err != nil {
		return rt.nilObj, err
	}
	switch fwd := s.Deref().Fwd.(type) {
	case nil:
		v := s.Deref().Value
		if v == rt.unboundObj {
			return rt.nilObj, rt.signal(ErrVoidVariable, "void-variable", sym)
		}
		return v, nil
	case IntForward:
		return rt.codec.MakeFixnum(*fwd.Ptr), nil
	case BoolForward:
		return rt.FromBool(*fwd.Ptr), nil
	case ObjForward:
		return *fwd.Ptr, nil
	case BufferObjForward:
		if buf == nil {
			return rt.nilObj, rt.signal(ErrNoRecord, "error", rt.MakeString("No current buffer"), sym)
		}
		return *fwd.Offset.Apply(buf), nil
	case KboardObjForward:
		if kb == nil {
			return rt.nilObj, rt.signal(ErrNoRecord, "error", rt.MakeString("No current keyboard"), sym)
		}
		return *fwd.Offset.Apply(kb), nil
	default:
		panic(fmt.Sprintf("lispobj: unknown forward %T", fwd))
	}
}

// SetSymbolValue stores v in sym's value cell or forwarded storage
func (rt *Runtime) SetSymbolValue(sym, v Object, buf *Buffer, kb *Kboard) error {
	s, err := rt.AsSymbolOrError(sym)
	if err != nil {
		return err
	}
	if s.Deref().Constant {
		return rt.signal(ErrSetting, "setting-constant", sym)
	}
	switch fwd := s.Deref().Fwd.(type) {
	case nil:
		s.Deref().Value = v
	case IntForward:
		n, ok := rt.AsFixnum(v)
		if !ok {
			return rt.wrongType("integerp", v)
		}
		*fwd.Ptr = n
	case BoolForward:
		*fwd.Ptr = rt.IsNotNil(v)
	case ObjForward:
		*fwd.Ptr = v
	case BufferObjForward:
		if buf == nil {
			return rt.signal(ErrNoRecord, "error", rt.MakeString("No current buffer"), sym)
		}
		if rt.IsNotNil(v) {
			ok, err := rt.CheckPredicate(fwd.Predicate, v)
			if err != nil {
				return err
			}
			if !ok {
				pred, _ := rt.AsSymbol(fwd.Predicate)
				return rt.wrongType(pred.Name(), v)
			}
		}
		*fwd.Offset.Apply(buf) = v
	case KboardObjForward:
		if kb == nil {
			return rt.signal(ErrNoRecord, "error", rt.MakeString("No current keyboard"), sym)
		}
		*fwd.Offset.Apply(kb) = v
	default:
		panic(fmt.Sprintf("lispobj: unknown forward %T", fwd))
	}
	rt.logger.TraceCat(CatForward, "set %s", s.Name())
	return nil
}

// IsBound reports whether sym has a value
func (rt *Runtime) IsBound(sym Object) bool {
	s, ok := rt.AsSymbol(sym)
	return ok && (s.Deref().Fwd != nil || s.Deref().Value != rt.unboundObj)
}
