package lispobj

// ExternalPtr is a copyable, nullable handle to a T owned by someone else,
// normally the heap. The handle never frees its pointee. Deref does not
// re-check for null; callers check IsNull or build the handle with
// ExternalPtrFromNullable.
type ExternalPtr[T any] struct {
	p *T
}

// NewExternalPtr wraps p without validation (nil is allowed)
func NewExternalPtr[T any](p *T) ExternalPtr[T] {
	return ExternalPtr[T]{p: p}
}

// ExternalPtrFromNullable returns false when p is nil
func ExternalPtrFromNullable[T any](p *T) (ExternalPtr[T], bool) {
	if p == nil {
		return ExternalPtr[T]{}, false
	}
	return ExternalPtr[T]{p: p}, true
}

// ExternalPtrFromAny narrows an untyped heap object to *T.
// Returns false when v is not a non-nil *T.
func ExternalPtrFromAny[T any](v any) (ExternalPtr[T], bool) {
	p, ok := v.(*T)
	if !ok {
		return ExternalPtr[T]{}, false
	}
	return ExternalPtrFromNullable(p)
}

// IsNull reports whether the handle points nowhere
func (e ExternalPtr[T]) IsNull() bool {
	return e.p == nil
}

// Deref returns the pointee. Calling it on a null handle is a contract
// violation.
func (e ExternalPtr[T]) Deref() *T {
	return e.p
}

// Equal is pointer identity
func (e ExternalPtr[T]) Equal(other ExternalPtr[T]) bool {
	return e.p == other.p
}
