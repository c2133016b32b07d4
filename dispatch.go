package lispobj

// TypeOf decodes o's discriminant
func (rt *Runtime) TypeOf(o Object) Type {
	return rt.codec.DecodeTag(o)
}

// Address returns o's untagged payload
func (rt *Runtime) Address(o Object) Address {
	return rt.codec.StripTag(o)
}

// IsNil reports whether o is nil
func (rt *Runtime) IsNil(o Object) bool { return o == rt.nilObj }

// IsNotNil reports whether o is anything but nil
func (rt *Runtime) IsNotNil(o Object) bool { return o != rt.nilObj }

// IsT reports whether o is t
func (rt *Runtime) IsT(o Object) bool { return o == rt.tObj }

// FromBool maps true to t and false to nil
func (rt *Runtime) FromBool(v bool) Object {
	if v {
		return rt.tObj
	}
	return rt.nilObj
}

// ToBool is the Lisp truth test
func (rt *Runtime) ToBool(o Object) bool { return rt.IsNotNil(o) }

// Primitive predicates. Exactly one holds for any valid word; none hold
// for an invalid one.

func (rt *Runtime) IsSymbol(o Object) bool { return rt.TypeOf(o) == TypeSymbol }
func (rt *Runtime) IsCons(o Object) bool { return rt.TypeOf(o) == TypeCons }
func (rt *Runtime) IsString(o Object) bool { return rt.TypeOf(o) == TypeString }
func (rt *Runtime) IsFloat(o Object) bool { return rt.TypeOf(o) == TypeFloat }
func (rt *Runtime) IsFixnum(o Object) bool { return rt.TypeOf(o).IsFixnum() }
func (rt *Runtime) IsVectorlike(o Object) bool { return rt.TypeOf(o) == TypeVectorlike }
func (rt *Runtime) IsMisc(o Object) bool { return rt.TypeOf(o) == TypeMisc }

// IsNatnum reports whether o is a non-negative fixnum
func (rt *Runtime) IsNatnum(o Object) bool {
	return rt.IsFixnum(o) && rt.codec.FixnumValue(o) >= 0
}

// IsNumber reports whether o is a fixnum or a float
func (rt *Runtime) IsNumber(o Object) bool {
	return rt.IsFixnum(o) || rt.IsFloat(o)
}

// IsList reports whether o is a cons or nil
func (rt *Runtime) IsList(o Object) bool {
	return rt.IsCons(o) || rt.IsNil(o)
}

// AsCons returns a cons view when o is a cons
func (rt *Runtime) AsCons(o Object) (ConsRef, bool) {
	if !rt.IsCons(o) {
		return ConsRef{}, false
	}
	p, ok := resolve[Cons](rt.heap, rt.Address(o))
	return ConsRef{p}, ok
}

// AsConsOrError signals wrong-type consp
func (rt *Runtime) AsConsOrError(o Object) (ConsRef, error) {
	if c, ok := rt.AsCons(o); ok {
		return c, nil
	}
	return ConsRef{}, rt.wrongType("consp", o)
}

// AsSymbol returns a symbol view when o is a symbol
func (rt *Runtime) AsSymbol(o Object) (SymbolRef, bool) {
	if !rt.IsSymbol(o) {
		return SymbolRef{}, false
	}
	p, ok := resolve[Symbol](rt.heap, rt.Address(o))
	return SymbolRef{p}, ok
}

// AsSymbolOrError signals wrong-type symbolp
func (rt *Runtime) AsSymbolOrError(o Object) (SymbolRef, error) {
	if s, ok := rt.AsSymbol(o); ok {
		return s, nil
	}
	return SymbolRef{}, rt.wrongType("symbolp", o)
}

// AsString returns a string view when o is a string
func (rt *Runtime) AsString(o Object) (StringRef, bool) {
	if !rt.IsString(o) {
		return StringRef{}, false
	}
	p, ok := resolve[LispString](rt.heap, rt.Address(o))
	return StringRef{p}, ok
}

// AsStringOrError signals wrong-type stringp
func (rt *Runtime) AsStringOrError(o Object) (StringRef, error) {
	if s, ok := rt.AsString(o); ok {
		return s, nil
	}
	return StringRef{}, rt.wrongType("stringp", o)
}

// AsFloat returns a float view when o is a boxed float
func (rt *Runtime) AsFloat(o Object) (FloatRef, bool) {
	if !rt.IsFloat(o) {
		return FloatRef{}, false
	}
	p, ok := resolve[Float](rt.heap, rt.Address(o))
	return FloatRef{p}, ok
}

// AsFloatOrError signals wrong-type floatp
func (rt *Runtime) AsFloatOrError(o Object) (FloatRef, error) {
	if f, ok := rt.AsFloat(o); ok {
		return f, nil
	}
	return FloatRef{}, rt.wrongType("floatp", o)
}

// AsFixnum decodes an inline integer
func (rt *Runtime) AsFixnum(o Object) (int64, bool) {
	if !rt.IsFixnum(o) {
		return 0, false
	}
	return rt.codec.FixnumValue(o), true
}

// AsFixnumOrError signals wrong-type integer-or-marker-p
func (rt *Runtime) AsFixnumOrError(o Object) (int64, error) {
	if n, ok := rt.AsFixnum(o); ok {
		return n, nil
	}
	return 0, rt.wrongType("integer-or-marker-p", o)
}

// AsNatnum decodes a non-negative inline integer
func (rt *Runtime) AsNatnum(o Object) (uint64, bool) {
	if !rt.IsNatnum(o) {
		return 0, false
	}
	return uint64(rt.codec.FixnumValue(o)), true
}

// AsNatnumOrError signals wrong-type wholenump
func (rt *Runtime) AsNatnumOrError(o Object) (uint64, error) {
	if n, ok := rt.AsNatnum(o); ok {
		return n, nil
	}
	return 0, rt.wrongType("wholenump", o)
}

// AsVectorlike returns a vectorlike view when o is vectorlike
func (rt *Runtime) AsVectorlike(o Object) (VectorlikeRef, bool) {
	if !rt.IsVectorlike(o) {
		return VectorlikeRef{}, false
	}
	obj, ok := rt.heap.Resolve(rt.Address(o)).(Vectorlike)
	if !ok || obj == nil {
		return VectorlikeRef{}, false
	}
	return newVectorlikeRef(obj), true
}

// AsVectorlikeOrError signals wrong-type vectorp
func (rt *Runtime) AsVectorlikeOrError(o Object) (VectorlikeRef, error) {
	if v, ok := rt.AsVectorlike(o); ok {
		return v, nil
	}
	return VectorlikeRef{}, rt.wrongType("vectorp", o)
}

// AsMisc returns a misc view when o is a misc object
func (rt *Runtime) AsMisc(o Object) (MiscRef, bool) {
	if !rt.IsMisc(o) {
		return MiscRef{}, false
	}
	obj, ok := rt.heap.Resolve(rt.Address(o)).(Misc)
	if !ok || obj == nil {
		return MiscRef{}, false
	}
	return newMiscRef(obj), true
}

// AsMiscOrError signals wrong-type miscp
func (rt *Runtime) AsMiscOrError(o Object) (MiscRef, error) {
	if m, ok := rt.AsMisc(o); ok {
		return m, nil
	}
	return MiscRef{}, rt.wrongType("miscp", o)
}

// isPseudovector reports a vectorlike with subtype code
func (rt *Runtime) isPseudovector(o Object, code PvecType) bool {
	v, ok := rt.AsVectorlike(o)
	return ok && v.IsPseudovector(code)
}

// IsVector reports whether o is an ordinary vector
func (rt *Runtime) IsVector(o Object) bool {
	v, ok := rt.AsVectorlike(o)
	return ok && v.IsVector()
}

func (rt *Runtime) IsBoolVector(o Object) bool { return rt.isPseudovector(o, PvecBoolVector) }
func (rt *Runtime) IsCharTable(o Object) bool { return rt.isPseudovector(o, PvecCharTable) }
func (rt *Runtime) IsRecord(o Object) bool { return rt.isPseudovector(o, PvecRecord) }
func (rt *Runtime) IsSubr(o Object) bool { return rt.isPseudovector(o, PvecSubr) }
func (rt *Runtime) IsMutex(o Object) bool { return rt.isPseudovector(o, PvecMutex) }
func (rt *Runtime) IsBuffer(o Object) bool { return rt.isPseudovector(o, PvecBuffer) }
func (rt *Runtime) IsProcess(o Object) bool { return rt.isPseudovector(o, PvecProcess) }
func (rt *Runtime) IsModuleFunction(o Object) bool { return rt.isPseudovector(o, PvecModuleFunction) }

// IsConditionVariable reports whether o is a condition variable
func (rt *Runtime) IsConditionVariable(o Object) bool { return rt.isPseudovector(o, PvecCondvar) }

// IsByteCodeFunction reports whether o is a compiled function
func (rt *Runtime) IsByteCodeFunction(o Object) bool { return rt.isPseudovector(o, PvecCompiled) }

// IsArray reports a vector, string, char-table or bool-vector
func (rt *Runtime) IsArray(o Object) bool {
	return rt.IsVector(o) || rt.IsString(o) || rt.IsCharTable(o) || rt.IsBoolVector(o)
}

// IsSequence reports a list or an array
func (rt *Runtime) IsSequence(o Object) bool {
	return rt.IsCons(o) || rt.IsNil(o) || rt.IsArray(o)
}

// IsMarker reports whether o is a marker
func (rt *Runtime) IsMarker(o Object) bool {
	m, ok := rt.AsMisc(o)
	return ok && m.Type() == MiscMarker
}

// IsOverlay reports whether o is an overlay
func (rt *Runtime) IsOverlay(o Object) bool {
	m, ok := rt.AsMisc(o)
	return ok && m.Type() == MiscOverlay
}

// AsVector narrows o to an ordinary vector
func (rt *Runtime) AsVector(o Object) (VectorRef, bool) {
	v, ok := rt.AsVectorlike(o)
	if !ok {
		return VectorRef{}, false
	}
	return v.AsVector()
}

// AsSubr narrows o to a subroutine record
func (rt *Runtime) AsSubr(o Object) (SubrRef, bool) {
	v, ok := rt.AsVectorlike(o)
	if !ok {
		return SubrRef{}, false
	}
	return v.AsSubr()
}

// AsSubrOrError signals wrong-type subrp
func (rt *Runtime) AsSubrOrError(o Object) (SubrRef, error) {
	if s, ok := rt.AsSubr(o); ok {
		return s, nil
	}
	return SubrRef{}, rt.wrongType("subrp", o)
}

// AsBuffer narrows o to a buffer
func (rt *Runtime) AsBuffer(o Object) (BufferRef, bool) {
	v, ok := rt.AsVectorlike(o)
	if !ok {
		return BufferRef{}, false
	}
	return v.AsBuffer()
}

// AsBufferOrError signals wrong-type bufferp
func (rt *Runtime) AsBufferOrError(o Object) (BufferRef, error) {
	if b, ok := rt.AsBuffer(o); ok {
		return b, nil
	}
	return BufferRef{}, rt.wrongType("bufferp", o)
}

// AsMarker narrows o to a marker
func (rt *Runtime) AsMarker(o Object) (MarkerRef, bool) {
	m, ok := rt.AsMisc(o)
	if !ok {
		return MarkerRef{}, false
	}
	return m.AsMarker()
}

// AsOverlay narrows o to an overlay
func (rt *Runtime) AsOverlay(o Object) (OverlayRef, bool) {
	m, ok := rt.AsMisc(o)
	if !ok {
		return OverlayRef{}, false
	}
	return m.AsOverlay()
}

// MapOr applies action to o, or returns def when o is nil
func MapOr[T any](rt *Runtime, o Object, def T, action func(Object) T) T {
	if rt.IsNil(o) {
		return def
	}
	return action(o)
}

// MapOrElse is MapOr with a lazily computed default
func MapOrElse[T any](rt *Runtime, o Object, def func() T, action func(Object) T) T {
	if rt.IsNil(o) {
		return def()
	}
	return action(o)
}

// FromOptional returns the present value or nil
func (rt *Runtime) FromOptional(o Object, ok bool) Object {
	if !ok {
		return rt.nilObj
	}
	return o
}

// FromStrings materializes each string and lists them
func (rt *Runtime) FromStrings(items ...string) Object {
	objs := make([]Object, len(items))
	for i, s := range items {
		objs[i] = rt.MakeString(s)
	}
	return rt.List(objs...)
}

// FromList is an alias for List over a slice
func (rt *Runtime) FromList(items []Object) Object {
	return rt.List(items...)
}

// IsAutoload reports whether function is an (autoload ...) form
func (rt *Runtime) IsAutoload(function Object) bool {
	return MapOr(rt, function, false, func(o Object) bool {
		cell, ok := rt.AsCons(o)
		return ok && cell.Car() == rt.Intern("autoload")
	})
}

// maxIndirection bounds symbol function-cell chains
const maxIndirection = 100

// IsFunction reports whether o can be called as a function
func (rt *Runtime) IsFunction(o Object) bool {
	for i := 0; i < maxIndirection; i++ {
		sym, ok := rt.AsSymbol(o)
		if !ok || rt.IsNil(o) {
			break
		}
		o = sym.Function()
	}
	if rt.IsSymbol(o) {
		return false
	}
	if s, ok := rt.AsSubr(o); ok {
		return !s.IsUnevalled()
	}
	if rt.IsByteCodeFunction(o) || rt.IsModuleFunction(o) {
		return true
	}
	cell, ok := rt.AsCons(o)
	if !ok {
		return false
	}
	switch cell.Car() {
	case rt.Intern("lambda"), rt.Intern("closure"):
		return true
	case rt.Intern("autoload"):
		// (autoload FILE DOC INTERACTIVE TYPE): functions have a nil TYPE.
		items, err := rt.ListCars(o)
		return err == nil && (len(items) < 5 || rt.IsNil(items[4]))
	}
	return false
}
