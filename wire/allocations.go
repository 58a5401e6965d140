package wire

import (
	"sync"

	sbfstubs "github.com/wippyai/sbf-stubs"
)

// Allocation records one scratch allocation.
type Allocation struct {
	Addr  uint64
	Size  uint64
	Align uint64
}

// AllocationList collects the scratch allocations made for one crossing so
// they can be released together.
type AllocationList struct {
	allocations []Allocation
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{allocations: make([]Allocation, 0, 8)}
	},
}

// NewAllocationList takes a list from the pool.
func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 128

// Release returns the list to the pool. Call after Free; the list is invalid afterwards.
func (al *AllocationList) Release() {
	if cap(al.allocations) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

// FreeAndRelease frees every allocation and returns the list to the pool.
func (al *AllocationList) FreeAndRelease(allocator sbfstubs.Allocator) error {
	err := al.Free(allocator)
	al.Release()
	return err
}

func (al *AllocationList) Add(addr, size, align uint64) {
	al.allocations = append(al.allocations, Allocation{
		Addr:  addr,
		Size:  size,
		Align: align,
	})
}

// Free releases every recorded allocation, returning the first failure.
func (al *AllocationList) Free(allocator sbfstubs.Allocator) error {
	if allocator == nil {
		return nil
	}
	var first error
	for _, a := range al.allocations {
		if a.Addr == 0 {
			continue
		}
		if err := allocator.Free(a.Addr, a.Size, a.Align); err != nil && first == nil {
			first = err
		}
	}
	al.Reset()
	return first
}

func (al *AllocationList) Reset() {
	al.allocations = al.allocations[:0]
}

func (al *AllocationList) Count() int {
	return len(al.allocations)
}
