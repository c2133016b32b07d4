package lispobj

// MiscType is the secondary tag of a misc object
type MiscType uint16

const (
	MiscFree MiscType = 0x5eab + iota
	MiscMarker
	MiscOverlay
	MiscSaveValue
	MiscFinalizer
	MiscUserPtr
	MiscLimit
)

// String returns the string representation of a MiscType
func (m MiscType) String() string {
	switch m {
	case MiscFree:
		return "free"
	case MiscMarker:
		return "marker"
	case MiscOverlay:
		return "overlay"
	case MiscSaveValue:
		return "save-value"
	case MiscFinalizer:
		return "finalizer"
	case MiscUserPtr:
		return "user-ptr"
	default:
		return "unknown"
	}
}

// MiscAny is the header shared by every misc object
type MiscAny struct {
	Type MiscType
}

func (m *MiscAny) miscHeader() *MiscAny { return m }

// Misc is implemented by every object stored under TypeMisc
type Misc interface {
	miscHeader() *MiscAny
}

// Marker is a position in a buffer. A nil Buffer means the marker
// points nowhere.
type Marker struct {
	MiscAny
	Buffer        *Buffer
	Charpos       int64
	Bytepos       int64
	InsertionType bool
}

// Overlay is a buffer range with a property list
type Overlay struct {
	MiscAny
	Start Object
	End   Object
	Plist Object
}

// SaveValue holds opaque native values
type SaveValue struct {
	MiscAny
	Data []any
}

// Finalizer runs Function when collected
type Finalizer struct {
	MiscAny
	Function Object
}

// UserPtr wraps a module-owned native value
type UserPtr struct {
	MiscAny
	Ptr       any
	Finalizer func(any)
}

// MiscRef is a typed view of any misc object
type MiscRef struct {
	ExternalPtr[MiscAny]
	obj Misc
}

func newMiscRef(obj Misc) MiscRef {
	return MiscRef{ExternalPtr: NewExternalPtr(obj.miscHeader()), obj: obj}
}

// Type returns the misc subtype
func (m MiscRef) Type() MiscType { return m.Deref().Type }

// MarkerRef is a typed view of a marker
type MarkerRef struct {
	ExternalPtr[Marker]
}

// Buffer returns the marker's buffer, nil when unset
func (m MarkerRef) Buffer() *Buffer { return m.Deref().Buffer }

// Charpos returns the character position
func (m MarkerRef) Charpos() int64 { return m.Deref().Charpos }

// OverlayRef is a typed view of an overlay
type OverlayRef struct {
	ExternalPtr[Overlay]
}

// AsMarker narrows to a marker
func (m MiscRef) AsMarker() (MarkerRef, bool) {
	if m.IsNull() || m.Type() != MiscMarker {
		return MarkerRef{}, false
	}
	p, ok := ExternalPtrFromAny[Marker](m.obj)
	return MarkerRef{p}, ok
}

// AsOverlay narrows to an overlay
func (m MiscRef) AsOverlay() (OverlayRef, bool) {
	if m.IsNull() || m.Type() != MiscOverlay {
		return OverlayRef{}, false
	}
	p, ok := ExternalPtrFromAny[Overlay](m.obj)
	return OverlayRef{p}, ok
}
