package memory

import (
	"encoding/binary"
	"sort"
	"sync"
	"unsafe"

	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
)

const (
	// DefaultSize is the arena size used by New.
	DefaultSize = 4 << 20

	// NullPage is the reserved low range; no allocation is ever placed below it.
	NullPage = 16
)

var (
	_ sbfstubs.ProgramSpace = (*Arena)(nil)
	_ sbfstubs.MemorySizer  = (*Arena)(nil)
)

// Config holds arena configuration options.
type Config struct {
	// Size is the fixed arena size in bytes. Zero means DefaultSize.
	Size uint64
}

type block struct {
	addr uint64
	size uint64
}

// Arena is an in-process address space backed by one fixed byte slice.
// The backing slice is never reallocated, so views returned by Read stay valid
// for the life of the arena.
//
// Allocation is first-fit over a coalescing free list. Every live allocation
// is tracked so leaks and double frees are observable.
type Arena struct {
	buf  []byte
	free []block
	live map[uint64]uint64
	mu   sync.Mutex
}

// New creates an arena with the default size.
func New() *Arena {
	return NewWithConfig(nil)
}

// NewWithConfig creates an arena with custom configuration.
func NewWithConfig(cfg *Config) *Arena {
	size := uint64(DefaultSize)
	if cfg != nil && cfg.Size > NullPage {
		size = cfg.Size
	}
	return &Arena{
		buf:  make([]byte, size),
		free: []block{{addr: NullPage, size: size - NullPage}},
		live: make(map[uint64]uint64),
	}
}

// Size returns the arena size in bytes.
func (a *Arena) Size() uint64 {
	return uint64(len(a.buf))
}

func (a *Arena) check(addr, length uint64) error {
	if length == 0 {
		if addr > uint64(len(a.buf)) {
			return errors.OutOfBounds(errors.PhaseMemory, addr, length, a.Size())
		}
		return nil
	}
	if addr < NullPage {
		return errors.New(errors.PhaseMemory, errors.KindNullPointer).
			Addr(addr).
			Detail("access of %d bytes inside the null page", length).
			Build()
	}
	end := addr + length
	if end < addr || end > uint64(len(a.buf)) {
		return errors.OutOfBounds(errors.PhaseMemory, addr, length, a.Size())
	}
	return nil
}

// Read returns a view of [addr, addr+length). The view's capacity equals its
// length so appends never spill into neighbouring allocations.
func (a *Arena) Read(addr, length uint64) ([]byte, error) {
	if err := a.check(addr, length); err != nil {
		return nil, err
	}
	return a.buf[addr : addr+length : addr+length], nil
}

func (a *Arena) Write(addr uint64, data []byte) error {
	if err := a.check(addr, uint64(len(data))); err != nil {
		return err
	}
	copy(a.buf[addr:], data)
	return nil
}

func (a *Arena) ReadU8(addr uint64) (uint8, error) {
	if err := a.check(addr, 1); err != nil {
		return 0, err
	}
	return a.buf[addr], nil
}

func (a *Arena) ReadU32(addr uint64) (uint32, error) {
	if err := a.check(addr, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(a.buf[addr:]), nil
}

func (a *Arena) ReadU64(addr uint64) (uint64, error) {
	if err := a.check(addr, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(a.buf[addr:]), nil
}

func (a *Arena) WriteU8(addr uint64, value uint8) error {
	if err := a.check(addr, 1); err != nil {
		return err
	}
	a.buf[addr] = value
	return nil
}

func (a *Arena) WriteU32(addr uint64, value uint32) error {
	if err := a.check(addr, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(a.buf[addr:], value)
	return nil
}

func (a *Arena) WriteU64(addr uint64, value uint64) error {
	if err := a.check(addr, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(a.buf[addr:], value)
	return nil
}

// Alloc reserves size bytes aligned to align and zeroes them.
// A zero-size request still receives a unique address.
func (a *Arena) Alloc(size, align uint64) (uint64, error) {
	if align == 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return 0, errors.InvalidInput(errors.PhaseMemory, "alignment must be a power of two")
	}
	if size == 0 {
		size = 1
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for i, b := range a.free {
		start := alignUp(b.addr, align)
		if start < b.addr || start+size < start || start+size > b.addr+b.size {
			continue
		}

		var rest []block
		if start > b.addr {
			rest = append(rest, block{addr: b.addr, size: start - b.addr})
		}
		if tail := b.addr + b.size - (start + size); tail > 0 {
			rest = append(rest, block{addr: start + size, size: tail})
		}
		a.free = append(a.free[:i], append(rest, a.free[i+1:]...)...)

		a.live[start] = size
		clear(a.buf[start : start+size])
		return start, nil
	}

	return 0, errors.AllocationFailed(errors.PhaseMemory, size, align)
}

// Free releases an allocation made by Alloc. Freeing an address that is not
// live reports a double free. The size argument is advisory; the recorded
// size is what gets released.
func (a *Arena) Free(addr, size, align uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	recorded, ok := a.live[addr]
	if !ok {
		return errors.DoubleFree(errors.PhaseMemory, addr)
	}
	delete(a.live, addr)
	a.release(block{addr: addr, size: recorded})
	return nil
}

// release inserts b into the sorted free list and merges adjacent blocks.
func (a *Arena) release(b block) {
	i := sort.Search(len(a.free), func(i int) bool { return a.free[i].addr > b.addr })
	a.free = append(a.free, block{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = b

	if i+1 < len(a.free) && a.free[i].addr+a.free[i].size == a.free[i+1].addr {
		a.free[i].size += a.free[i+1].size
		a.free = append(a.free[:i+1], a.free[i+2:]...)
	}
	if i > 0 && a.free[i-1].addr+a.free[i-1].size == a.free[i].addr {
		a.free[i-1].size += a.free[i].size
		a.free = append(a.free[:i], a.free[i+1:]...)
	}
}

// AddrOf returns the address of b when its backing array lies inside the
// arena. An empty foreign slice resolves to the null address.
func (a *Arena) AddrOf(b []byte) (uint64, bool) {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if p < base || p >= base+uintptr(len(a.buf)) {
		if len(b) == 0 {
			return 0, true
		}
		return 0, false
	}
	off := uint64(p - base)
	if off+uint64(len(b)) > uint64(len(a.buf)) {
		return 0, false
	}
	return off, true
}

// Put allocates room for data, copies it in, and returns the view and its address.
func (a *Arena) Put(data []byte) ([]byte, uint64, error) {
	addr, err := a.Alloc(uint64(len(data)), 1)
	if err != nil {
		return nil, 0, err
	}
	view, _ := a.Read(addr, uint64(len(data)))
	copy(view, data)
	return view, addr, nil
}

// Stats describes live allocations.
type Stats struct {
	Live      int
	LiveBytes uint64
	FreeBytes uint64
}

// Stats returns a snapshot of the allocation counters.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	var s Stats
	s.Live = len(a.live)
	for _, n := range a.live {
		s.LiveBytes += n
	}
	for _, b := range a.free {
		s.FreeBytes += b.size
	}
	return s
}

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}
