package lispobj

import "math"

// PvecType is the pseudovector subtype stored in a vectorlike header
type PvecType int

const (
	PvecNormalVector PvecType = iota
	PvecFree
	PvecProcess
	PvecFrame
	PvecWindow
	PvecBoolVector
	PvecBuffer
	PvecHashTable
	PvecTerminal
	PvecWindowConfiguration
	PvecSubr
	PvecOther
	PvecXwidget
	PvecXwidgetView
	PvecThread
	PvecMutex
	PvecCondvar
	PvecModuleFunction
	// Types from here on are compared slot by slot by equal.
	PvecCompiled
	PvecCharTable
	PvecSubCharTable
	PvecRecord
	PvecFont
)

var pvecNames = map[PvecType]string{
	PvecNormalVector:        "vector",
	PvecFree:                "free",
	PvecProcess:             "process",
	PvecFrame:               "frame",
	PvecWindow:              "window",
	PvecBoolVector:          "bool-vector",
	PvecBuffer:              "buffer",
	PvecHashTable:           "hash-table",
	PvecTerminal:            "terminal",
	PvecWindowConfiguration: "window-configuration",
	PvecSubr:                "subr",
	PvecOther:               "other",
	PvecXwidget:             "xwidget",
	PvecXwidgetView:         "xwidget-view",
	PvecThread:              "thread",
	PvecMutex:               "mutex",
	PvecCondvar:             "condition-variable",
	PvecModuleFunction:      "module-function",
	PvecCompiled:            "compiled-function",
	PvecCharTable:           "char-table",
	PvecSubCharTable:        "sub-char-table",
	PvecRecord:              "record",
	PvecFont:                "font",
}

// String returns the string representation of a PvecType
func (p PvecType) String() string {
	if name, ok := pvecNames[p]; ok {
		return name
	}
	return "unknown"
}

// Header layout: a normal vector stores its length; a pseudovector sets
// PseudovectorFlag and keeps its subtype above the size fields.
const (
	PseudovectorFlag     int64 = math.MaxInt64 - math.MaxInt64/2
	pseudovectorSizeBits       = 12
	pseudovectorRestBits       = 12
	pseudovectorAreaBits       = pseudovectorSizeBits + pseudovectorRestBits
	pseudovectorSizeMask int64 = (1 << pseudovectorSizeBits) - 1
	pvecTypeMask         int64 = 0x3f << pseudovectorAreaBits
)

// VectorlikeHeader is the first field of every vectorlike object
type VectorlikeHeader struct {
	Size int64
}

func (h *VectorlikeHeader) vectorlikeHeader() *VectorlikeHeader { return h }

// IsPseudovector reports whether the header carries subtype code
func (h *VectorlikeHeader) IsPseudovector(code PvecType) bool {
	want := PseudovectorFlag | int64(code)<<pseudovectorAreaBits
	return h.Size&(PseudovectorFlag|pvecTypeMask) == want
}

// PseudovectorType returns the subtype, PvecNormalVector for plain vectors
func (h *VectorlikeHeader) PseudovectorType() PvecType {
	if h.Size&PseudovectorFlag == 0 {
		return PvecNormalVector
	}
	return PvecType((h.Size & pvecTypeMask) >> pseudovectorAreaBits)
}

// LispSize returns the number of Lisp-visible slots
func (h *VectorlikeHeader) LispSize() int {
	if h.Size&PseudovectorFlag == 0 {
		return int(h.Size)
	}
	return int(h.Size & pseudovectorSizeMask)
}

func vectorHeader(n int) VectorlikeHeader {
	return VectorlikeHeader{Size: int64(n)}
}

func pseudoHeader(code PvecType, lispSlots, restSlots int) VectorlikeHeader {
	return VectorlikeHeader{Size: PseudovectorFlag |
		int64(code)<<pseudovectorAreaBits |
		int64(restSlots)<<pseudovectorSizeBits |
		int64(lispSlots)&pseudovectorSizeMask}
}

// Vectorlike is implemented by every object stored under TypeVectorlike
type Vectorlike interface {
	vectorlikeHeader() *VectorlikeHeader
}

// slotted objects expose their Lisp slots to equal
type slotted interface {
	lispSlots() []Object
}

// Vector is an ordinary vector
type Vector struct {
	VectorlikeHeader
	Contents []Object
}

func (v *Vector) lispSlots() []Object { return v.Contents }

// BoolVector is a packed vector of booleans
type BoolVector struct {
	VectorlikeHeader
	Bits []bool
}

// CharTable maps characters to values
type CharTable struct {
	VectorlikeHeader
	Default  Object
	Parent   Object
	Purpose  Object
	Contents []Object
}

func (c *CharTable) lispSlots() []Object {
	slots := make([]Object, 0, 3+len(c.Contents))
	slots = append(slots, c.Default, c.Parent, c.Purpose)
	return append(slots, c.Contents...)
}

// Record is a user-defined record; slot 0 holds its type
type Record struct {
	VectorlikeHeader
	Slots []Object
}

func (r *Record) lispSlots() []Object { return r.Slots }

// CompiledFunction is a byte-code function object
type CompiledFunction struct {
	VectorlikeHeader
	Slots []Object
}

func (c *CompiledFunction) lispSlots() []Object { return c.Slots }

// Mutex is a thread mutex object
type Mutex struct {
	VectorlikeHeader
	Name  Object
	Owner Object
	Count int
}

// CondVar is a condition variable object
type CondVar struct {
	VectorlikeHeader
	Name  Object
	Mutex Object
}

// ModuleFunction is a function supplied by a dynamic module
type ModuleFunction struct {
	VectorlikeHeader
	MinArity      int16
	MaxArity      int16
	Documentation string
	Function      any
	Data          any
}

// Buffer is a buffer record. Forwarded per-buffer variables live in its
// Object fields.
type Buffer struct {
	VectorlikeHeader
	Name           Object
	Filename       Object
	Directory      Object
	MajorMode      Object
	ModeName       Object
	FillColumn     Object
	TabWidth       Object
	CaseFoldSearch Object
	TruncateLines  Object
	LocalVarAlist  Object
	live           bool
}

// IsLive reports whether the buffer has not been killed
func (b *Buffer) IsLive() bool { return b.live }

// Process is an opaque subprocess record
type Process struct {
	VectorlikeHeader
	Name    Object
	Command Object
	Buffer  Object
	Status  Object
}

// VectorlikeRef is a typed view of any vectorlike; narrow it with the As
// methods.
type VectorlikeRef struct {
	ExternalPtr[VectorlikeHeader]
	obj Vectorlike
}

func newVectorlikeRef(obj Vectorlike) VectorlikeRef {
	return VectorlikeRef{ExternalPtr: NewExternalPtr(obj.vectorlikeHeader()), obj: obj}
}

// IsVector reports whether this is an ordinary vector
func (v VectorlikeRef) IsVector() bool {
	return v.Deref().Size&PseudovectorFlag == 0
}

// IsPseudovector reports whether the subtype is code
func (v VectorlikeRef) IsPseudovector(code PvecType) bool {
	return v.Deref().IsPseudovector(code)
}

// PseudovectorType returns the subtype
func (v VectorlikeRef) PseudovectorType() PvecType {
	return v.Deref().PseudovectorType()
}

// Object returns the underlying heap object
func (v VectorlikeRef) Object() Vectorlike { return v.obj }

// narrow succeeds only when the header subtype and the Go type agree
func narrow[T any](v VectorlikeRef, code PvecType) (ExternalPtr[T], bool) {
	if v.IsNull() || !v.IsPseudovector(code) {
		return ExternalPtr[T]{}, false
	}
	return ExternalPtrFromAny[T](v.obj)
}

// VectorRef is a typed view of an ordinary vector
type VectorRef struct {
	ExternalPtr[Vector]
}

// Len returns the number of elements
func (v VectorRef) Len() int { return len(v.Deref().Contents) }

// Slice returns the borrowed contents
func (v VectorRef) Slice() []Object { return v.Deref().Contents }

// AsVector narrows to an ordinary vector
func (v VectorlikeRef) AsVector() (VectorRef, bool) {
	if v.IsNull() || !v.IsVector() {
		return VectorRef{}, false
	}
	p, ok := ExternalPtrFromAny[Vector](v.obj)
	return VectorRef{p}, ok
}

// AsSubr narrows to a subroutine record
func (v VectorlikeRef) AsSubr() (SubrRef, bool) {
	p, ok := narrow[Subr](v, PvecSubr)
	return SubrRef{p}, ok
}

// AsBuffer narrows to a buffer
func (v VectorlikeRef) AsBuffer() (BufferRef, bool) {
	p, ok := narrow[Buffer](v, PvecBuffer)
	return BufferRef{p}, ok
}

// AsProcess narrows to a process
func (v VectorlikeRef) AsProcess() (ExternalPtr[Process], bool) {
	return narrow[Process](v, PvecProcess)
}

// AsRecord narrows to a record
func (v VectorlikeRef) AsRecord() (ExternalPtr[Record], bool) {
	return narrow[Record](v, PvecRecord)
}

// AsBoolVector narrows to a bool-vector
func (v VectorlikeRef) AsBoolVector() (ExternalPtr[BoolVector], bool) {
	return narrow[BoolVector](v, PvecBoolVector)
}

// AsCharTable narrows to a char-table
func (v VectorlikeRef) AsCharTable() (ExternalPtr[CharTable], bool) {
	return narrow[CharTable](v, PvecCharTable)
}

// AsCompiled narrows to a byte-code function
func (v VectorlikeRef) AsCompiled() (ExternalPtr[CompiledFunction], bool) {
	return narrow[CompiledFunction](v, PvecCompiled)
}

// AsMutex narrows to a mutex
func (v VectorlikeRef) AsMutex() (ExternalPtr[Mutex], bool) {
	return narrow[Mutex](v, PvecMutex)
}

// AsCondVar narrows to a condition variable
func (v VectorlikeRef) AsCondVar() (ExternalPtr[CondVar], bool) {
	return narrow[CondVar](v, PvecCondvar)
}

// AsModuleFunction narrows to a module function
func (v VectorlikeRef) AsModuleFunction() (ExternalPtr[ModuleFunction], bool) {
	return narrow[ModuleFunction](v, PvecModuleFunction)
}

// BufferRef is a typed view of a buffer
type BufferRef struct {
	ExternalPtr[Buffer]
}

// Name returns the buffer name object
func (b BufferRef) Name() Object { return b.Deref().Name }

// IsLive reports whether the buffer is live
func (b BufferRef) IsLive() bool { return b.Deref().live }
