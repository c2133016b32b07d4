package lispobj

import (
	"fmt"
	"sync"
)

// Allocator resolves untagged addresses to the objects placed there.
// Resolve returns nil for addresses it never handed out.
type Allocator interface {
	Resolve(addr Address) any
}

// heapSlot is the spacing between consecutive allocations
const heapSlot Address = 16

// Heap is the reference allocator: a bump allocator over a sparse address
// space. Objects are never freed or relocated, so every address it hands
// out stays valid for the life of the heap.
type Heap struct {
	mu      sync.RWMutex
	objects map[Address]any
	base    Address
	next    Address
	step    Address
	limit   Address
}

// NewHeap creates a heap whose addresses start at base and respect the
// codec's alignment and payload width.
func NewHeap(base Address, codec *Codec) *Heap {
	step := heapSlot
	if a := codec.Alignment(); a > step {
		step = a
	}
	if base == 0 {
		base = step
	}
	base = (base + step - 1) &^ (step - 1)
	return &Heap{
		objects: make(map[Address]any),
		base:    base,
		next:    base,
		step:    step,
		limit:   Address(codec.ValMask()),
	}
}

// Alloc places obj at a fresh address
func (h *Heap) Alloc(obj any) (Address, error) {
	if obj == nil {
		return 0, fmt.Errorf("heap: cannot allocate nil object")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	addr := h.next
	if addr > h.limit-h.step {
		return 0, fmt.Errorf("heap: address space exhausted at %#x", uint64(addr))
	}
	h.objects[addr] = obj
	h.next += h.step
	return addr, nil
}

// Resolve implements Allocator
func (h *Heap) Resolve(addr Address) any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.objects[addr]
}

// Len returns the number of live allocations
func (h *Heap) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.objects)
}

// Base returns the first address the heap hands out
func (h *Heap) Base() Address {
	return h.base
}

// resolve narrows the object at addr to *T
func resolve[T any](a Allocator, addr Address) (ExternalPtr[T], bool) {
	return ExternalPtrFromAny[T](a.Resolve(addr))
}
