package wire

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

// Encoder stages native values into a program space for one crossing.
// Buffers already resident in the space are referenced by address; anything
// else is copied into scratch memory that Close releases.
type Encoder struct {
	space  sbfstubs.ProgramSpace
	allocs *AllocationList
}

// NewEncoder starts a crossing over space.
func NewEncoder(space sbfstubs.ProgramSpace) *Encoder {
	return &Encoder{space: space, allocs: NewAllocationList()}
}

// Space returns the underlying space.
func (e *Encoder) Space() sbfstubs.ProgramSpace {
	return e.space
}

// Alloc reserves zeroed scratch memory.
func (e *Encoder) Alloc(size, align uint64) (uint64, error) {
	addr, err := e.space.Alloc(size, align)
	if err != nil {
		return 0, err
	}
	e.allocs.Add(addr, size, align)
	return addr, nil
}

// Put copies data into scratch memory. Empty data yields the null address.
func (e *Encoder) Put(data []byte, align uint64) (uint64, error) {
	if len(data) == 0 {
		return 0, nil
	}
	addr, err := e.Alloc(uint64(len(data)), align)
	if err != nil {
		return 0, err
	}
	if err := e.space.Write(addr, data); err != nil {
		return 0, err
	}
	return addr, nil
}

// Ref returns the address of b without copying when b lives in the space,
// and stages a copy otherwise. Use it only for buffers the callee reads.
func (e *Encoder) Ref(b []byte) (uint64, error) {
	if addr, ok := e.space.AddrOf(b); ok {
		return addr, nil
	}
	return e.Put(b, 1)
}

// Resident returns the address of b and fails when b is not in the space.
// Buffers the callee may write through must be resident.
func (e *Encoder) Resident(b []byte, path ...string) (uint64, error) {
	addr, ok := e.space.AddrOf(b)
	if !ok {
		return 0, errors.ForeignBuffer(errors.PhaseEncode, path...)
	}
	return addr, nil
}

// Pubkey stages a copy of pk.
func (e *Encoder) Pubkey(pk solana.Pubkey) (uint64, error) {
	return e.Put(pk[:], 1)
}

// U64 stages one little-endian word.
func (e *Encoder) U64(v uint64) (uint64, error) {
	addr, err := e.Alloc(8, PointerAlign)
	if err != nil {
		return 0, err
	}
	return addr, e.space.WriteU64(addr, v)
}

// Staged reports how many scratch allocations are pending.
func (e *Encoder) Staged() int {
	return e.allocs.Count()
}

// Close frees every scratch allocation. The encoder must not be used afterwards.
func (e *Encoder) Close() error {
	err := e.allocs.FreeAndRelease(e.space)
	e.allocs = nil
	return err
}
