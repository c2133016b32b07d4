// Package lispobj implements the tagged-value layer of a Lisp runtime:
// packing values into a single word, typed views of heap objects,
// the eq/eql/equal relations, forwarded built-in variables and the
// subroutine table.
package lispobj

import (
	"fmt"
	"unicode/utf8"
)

// Config holds configuration for a Runtime
type Config struct {
	TagMode        TagMode
	TagBits        uint
	Debug          bool
	LogCategories  []LogCategory
	MaxEqualDepth  int
	EqualHashDepth int
	PrintDepth     int
	PrintLength    int
	HeapBase       Address
	// QuitHook is polled by plain-mode equal; returning true aborts with ErrQuit.
	QuitHook func() bool
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		TagMode:        LSBTag,
		TagBits:        DefaultTagBits,
		Debug:          false,
		MaxEqualDepth:  200,
		EqualHashDepth: 10,
		PrintDepth:     8,
		PrintLength:    64,
		HeapBase:       0x1000,
	}
}

// Runtime owns the codec, the heap and the obarray. All operations
// assume a single mutator goroutine; only the installed SubrTable is
// safe to read concurrently.
type Runtime struct {
	config  *Config
	logger  *Logger
	codec   *Codec
	heap    *Heap
	obarray map[string]Object

	nilObj     Object
	tObj       Object
	unboundObj Object

	bufferAlist  Object
	processAlist Object
	subrs        *SubrTable
}

// New creates a runtime. A nil config uses DefaultConfig.
func New(config *Config) *Runtime {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	defaults := DefaultConfig()
	if cfg.MaxEqualDepth <= 0 {
		cfg.MaxEqualDepth = defaults.MaxEqualDepth
	}
	if cfg.EqualHashDepth <= 0 {
		cfg.EqualHashDepth = defaults.EqualHashDepth
	}
	if cfg.PrintDepth <= 0 {
		cfg.PrintDepth = defaults.PrintDepth
	}
	if cfg.PrintLength <= 0 {
		cfg.PrintLength = defaults.PrintLength
	}
	if cfg.TagBits == 0 {
		cfg.TagBits = DefaultTagBits
	}

	logger := NewLogger(cfg.Debug)
	for _, cat := range cfg.LogCategories {
		logger.EnableCategory(cat)
	}

	codec, err := NewCodec(cfg.TagMode, cfg.TagBits)
	if err != nil {
		logger.WarnCat(CatCodec, "%v; using default codec", err)
		codec = DefaultCodec()
		cfg.TagMode = codec.Mode()
		cfg.TagBits = codec.TagBits()
	}

	rt := &Runtime{
		config:  &cfg,
		logger:  logger,
		codec:   codec,
		heap:    NewHeap(cfg.HeapBase, codec),
		obarray: make(map[string]Object),
	}
	rt.bootstrap()
	logger.DebugCat(CatCodec, "runtime ready: mode=%s tagbits=%d valbits=%d", codec.Mode(), codec.TagBits(), codec.ValBits())
	return rt
}

// bootstrap creates nil, t and the unbound marker. nil must exist before
// any other symbol because every fresh cell points at it.
func (rt *Runtime) bootstrap() {
	nilSym := &Symbol{name: "nil", Constant: true}
	rt.nilObj = rt.mustAlloc(nilSym, TypeSymbol)
	nilSym.Name = rt.MakeString("nil")
	nilSym.Value = rt.nilObj
	nilSym.Function = rt.nilObj
	nilSym.Plist = rt.nilObj
	rt.obarray["nil"] = rt.nilObj

	unbound := &Symbol{name: "unbound", Function: rt.nilObj, Plist: rt.nilObj}
	rt.unboundObj = rt.mustAlloc(unbound, TypeSymbol)
	unbound.Name = rt.MakeString("unbound")
	unbound.Value = rt.unboundObj

	rt.tObj = rt.Intern("t")
	t, _ := rt.AsSymbol(rt.tObj)
	t.Deref().Value = rt.tObj
	t.Deref().Constant = true

	rt.bufferAlist = rt.nilObj
	rt.processAlist = rt.nilObj
}

// Codec returns the runtime's codec
func (rt *Runtime) Codec() *Codec { return rt.codec }

// Heap returns the runtime's allocator
func (rt *Runtime) Heap() *Heap { return rt.heap }

// Logger returns the runtime's logger
func (rt *Runtime) Logger() *Logger { return rt.logger }

// Config returns a copy of the effective configuration
func (rt *Runtime) Config() Config { return *rt.config }

// Nil returns the nil symbol
func (rt *Runtime) Nil() Object { return rt.nilObj }

// T returns the t symbol
func (rt *Runtime) T() Object { return rt.tObj }

// Unbound returns the marker stored in unbound value cells
func (rt *Runtime) Unbound() Object { return rt.unboundObj }

func (rt *Runtime) mustAlloc(obj any, t Type) Object {
	addr, err := rt.heap.Alloc(obj)
	if err != nil {
		panic(fmt.Sprintf("lispobj: %v", err))
	}
	rt.logger.TraceCat(CatHeap, "alloc %s at %#x", t, uint64(addr))
	return rt.codec.Encode(addr, t)
}

// TagPointer encodes an address already known to the heap
func (rt *Runtime) TagPointer(addr Address, t Type) (Object, error) {
	if !t.Valid() || t.IsFixnum() {
		return 0, fmt.Errorf("%w: cannot tag a pointer as %s", ErrInvalidTag, t)
	}
	if !rt.codec.ValidAddress(addr) {
		return 0, fmt.Errorf("address %#x does not fit the %s payload", uint64(addr), rt.codec.Mode())
	}
	return rt.codec.Encode(addr, t), nil
}

// Intern returns the symbol named name, creating it if needed
func (rt *Runtime) Intern(name string) Object {
	if sym, ok := rt.obarray[name]; ok {
		return sym
	}
	sym := rt.makeUninterned(name)
	rt.obarray[name] = sym
	return sym
}

// InternSoft returns the symbol named name if it exists
func (rt *Runtime) InternSoft(name string) (Object, bool) {
	sym, ok := rt.obarray[name]
	return sym, ok
}

func (rt *Runtime) makeUninterned(name string) Object {
	sym := &Symbol{
		Name:     rt.MakeString(name),
		Value:    rt.unboundObj,
		Function: rt.nilObj,
		Plist:    rt.nilObj,
		name:     name,
	}
	return rt.mustAlloc(sym, TypeSymbol)
}

// MakeString materializes a string object from Go text
func (rt *Runtime) MakeString(s string) Object {
	return rt.MakeStringBytes([]byte(s))
}

// MakeStringBytes materializes a string object, copying data
func (rt *Runtime) MakeStringBytes(data []byte) Object {
	buf := make([]byte, len(data))
	copy(buf, data)
	multibyte := false
	for _, b := range buf {
		if b >= utf8.RuneSelf {
			multibyte = utf8.Valid(buf)
			break
		}
	}
	return rt.mustAlloc(&LispString{Data: buf, Multibyte: multibyte}, TypeString)
}

// MakeFloat boxes f. Every call yields a distinct object.
func (rt *Runtime) MakeFloat(f float64) Object {
	return rt.mustAlloc(&Float{Value: f}, TypeFloat)
}

// Cons allocates a pair
func (rt *Runtime) Cons(car, cdr Object) Object {
	return rt.mustAlloc(&Cons{Car: car, Cdr: cdr}, TypeCons)
}

// List builds a proper list
func (rt *Runtime) List(items ...Object) Object {
	result := rt.nilObj
	for i := len(items) - 1; i >= 0; i-- {
		result = rt.Cons(items[i], result)
	}
	return result
}

// MakeVector allocates an ordinary vector holding a copy of items
func (rt *Runtime) MakeVector(items ...Object) Object {
	contents := make([]Object, len(items))
	copy(contents, items)
	return rt.mustAlloc(&Vector{VectorlikeHeader: vectorHeader(len(contents)), Contents: contents}, TypeVectorlike)
}

// MakeRecord allocates a record; recordType becomes slot 0
func (rt *Runtime) MakeRecord(recordType Object, slots ...Object) Object {
	all := append([]Object{recordType}, slots...)
	return rt.mustAlloc(&Record{VectorlikeHeader: pseudoHeader(PvecRecord, len(all), 0), Slots: all}, TypeVectorlike)
}

// MakeBoolVector allocates a bool-vector
func (rt *Runtime) MakeBoolVector(bits ...bool) Object {
	b := make([]bool, len(bits))
	copy(b, bits)
	return rt.mustAlloc(&BoolVector{VectorlikeHeader: pseudoHeader(PvecBoolVector, 0, 0), Bits: b}, TypeVectorlike)
}

// MakeCharTable allocates a char-table with n content slots set to init
func (rt *Runtime) MakeCharTable(purpose, init Object, n int) Object {
	contents := make([]Object, n)
	for i := range contents {
		contents[i] = init
	}
	ct := &CharTable{
		VectorlikeHeader: pseudoHeader(PvecCharTable, 3+n, 0),
		Default:          init,
		Parent:           rt.nilObj,
		Purpose:          purpose,
		Contents:         contents,
	}
	return rt.mustAlloc(ct, TypeVectorlike)
}

// MakeCompiled allocates a byte-code function from its slots
func (rt *Runtime) MakeCompiled(slots ...Object) Object {
	s := make([]Object, len(slots))
	copy(s, slots)
	return rt.mustAlloc(&CompiledFunction{VectorlikeHeader: pseudoHeader(PvecCompiled, len(s), 0), Slots: s}, TypeVectorlike)
}

// MakeMutex allocates a mutex object
func (rt *Runtime) MakeMutex(name Object) Object {
	return rt.mustAlloc(&Mutex{VectorlikeHeader: pseudoHeader(PvecMutex, 2, 0), Name: name, Owner: rt.nilObj}, TypeVectorlike)
}

// MakeCondVar allocates a condition variable bound to mutex
func (rt *Runtime) MakeCondVar(mutex, name Object) Object {
	return rt.mustAlloc(&CondVar{VectorlikeHeader: pseudoHeader(PvecCondvar, 2, 0), Name: name, Mutex: mutex}, TypeVectorlike)
}

// MakeModuleFunction allocates a module function
func (rt *Runtime) MakeModuleFunction(minArity, maxArity int16, fn any, doc string) Object {
	mf := &ModuleFunction{
		VectorlikeHeader: pseudoHeader(PvecModuleFunction, 0, 0),
		MinArity:         minArity,
		MaxArity:         maxArity,
		Documentation:    doc,
		Function:         fn,
	}
	return rt.mustAlloc(mf, TypeVectorlike)
}

// MakeBuffer allocates a live buffer and records it in the buffer alist
func (rt *Runtime) MakeBuffer(name string) Object {
	n := rt.MakeString(name)
	b := &Buffer{
		VectorlikeHeader: pseudoHeader(PvecBuffer, 10, 0),
		Name:             n,
		Filename:         rt.nilObj,
		Directory:        rt.nilObj,
		MajorMode:        rt.Intern("fundamental-mode"),
		ModeName:         rt.MakeString("Fundamental"),
		FillColumn:       rt.codec.MakeFixnum(70),
		TabWidth:         rt.codec.MakeFixnum(8),
		CaseFoldSearch:   rt.tObj,
		TruncateLines:    rt.nilObj,
		LocalVarAlist:    rt.nilObj,
		live:             true,
	}
	obj := rt.mustAlloc(b, TypeVectorlike)
	rt.bufferAlist = rt.appendAlist(rt.bufferAlist, n, obj)
	return obj
}

// KillBuffer marks a buffer dead and drops it from the buffer alist
func (rt *Runtime) KillBuffer(buffer Object) error {
	b, err := rt.AsBufferOrError(buffer)
	if err != nil {
		return err
	}
	b.Deref().live = false
	rt.bufferAlist = rt.removeAlistValue(rt.bufferAlist, buffer)
	return nil
}

// MakeProcess allocates a process record and records it in the process alist
func (rt *Runtime) MakeProcess(name string, command ...Object) Object {
	n := rt.MakeString(name)
	p := &Process{
		VectorlikeHeader: pseudoHeader(PvecProcess, 4, 0),
		Name:             n,
		Command:          rt.List(command...),
		Buffer:           rt.nilObj,
		Status:           rt.Intern("run"),
	}
	obj := rt.mustAlloc(p, TypeVectorlike)
	rt.processAlist = rt.appendAlist(rt.processAlist, n, obj)
	return obj
}

// MakeMarker allocates a marker; buffer may be nil
func (rt *Runtime) MakeMarker(buffer *Buffer, charpos, bytepos int64) Object {
	m := &Marker{MiscAny: MiscAny{Type: MiscMarker}, Buffer: buffer, Charpos: charpos, Bytepos: bytepos}
	return rt.mustAlloc(m, TypeMisc)
}

// MakeOverlay allocates an overlay between two markers
func (rt *Runtime) MakeOverlay(start, end, plist Object) Object {
	ov := &Overlay{MiscAny: MiscAny{Type: MiscOverlay}, Start: start, End: end, Plist: plist}
	return rt.mustAlloc(ov, TypeMisc)
}

// MakeSaveValue wraps native values in a misc object
func (rt *Runtime) MakeSaveValue(data ...any) Object {
	return rt.mustAlloc(&SaveValue{MiscAny: MiscAny{Type: MiscSaveValue}, Data: data}, TypeMisc)
}

// MakeUserPtr wraps a module-owned value
func (rt *Runtime) MakeUserPtr(ptr any, finalizer func(any)) Object {
	return rt.mustAlloc(&UserPtr{MiscAny: MiscAny{Type: MiscUserPtr}, Ptr: ptr, Finalizer: finalizer}, TypeMisc)
}

func (rt *Runtime) appendAlist(alist, key, value Object) Object {
	entry := rt.List(rt.Cons(key, value))
	if rt.IsNil(alist) {
		return entry
	}
	tail, _ := rt.AsCons(alist)
	for {
		next, ok := rt.AsCons(tail.Cdr())
		if !ok {
			break
		}
		tail = next
	}
	tail.SetCdr(entry)
	return alist
}

func (rt *Runtime) removeAlistValue(alist, value Object) Object {
	var prev ConsRef
	for tail := alist; !rt.IsNil(tail); {
		cell, ok := rt.AsCons(tail)
		if !ok {
			break
		}
		if entry, ok := rt.AsCons(cell.Car()); ok && entry.Cdr() == value {
			if prev.IsNull() {
				return cell.Cdr()
			}
			prev.SetCdr(cell.Cdr())
			return alist
		}
		prev = cell
		tail = cell.Cdr()
	}
	return alist
}
