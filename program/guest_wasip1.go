//go:build wasip1

package program

import (
	"encoding/binary"
	"sync"
	"unsafe"

	"github.com/wippyai/sbf-stubs/abi"
	"github.com/wippyai/sbf-stubs/errors"
)

// GuestSpace is the guest's own linear memory seen as a program space.
// Every Go slice already lives in it, so AddrOf never fails. Allocations are
// pinned in a map until freed so the collector keeps them alive while the
// host holds their addresses.
type GuestSpace struct {
	mu   sync.Mutex
	pins map[uint64][]byte
}

// NewGuestSpace creates an empty guest space.
func NewGuestSpace() *GuestSpace {
	return &GuestSpace{pins: make(map[uint64][]byte)}
}

func (g *GuestSpace) Read(addr, length uint64) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	if addr == 0 {
		return nil, errors.NullPointer(errors.PhaseMemory)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), length), nil
}

func (g *GuestSpace) Write(addr uint64, data []byte) error {
	dst, err := g.Read(addr, uint64(len(data)))
	if err != nil {
		return err
	}
	copy(dst, data)
	return nil
}

func (g *GuestSpace) ReadU8(addr uint64) (uint8, error) {
	b, err := g.Read(addr, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (g *GuestSpace) ReadU32(addr uint64) (uint32, error) {
	b, err := g.Read(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (g *GuestSpace) ReadU64(addr uint64) (uint64, error) {
	b, err := g.Read(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (g *GuestSpace) WriteU8(addr uint64, value uint8) error {
	return g.Write(addr, []byte{value})
}

func (g *GuestSpace) WriteU32(addr uint64, value uint32) error {
	b, err := g.Read(addr, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, value)
	return nil
}

func (g *GuestSpace) WriteU64(addr uint64, value uint64) error {
	b, err := g.Read(addr, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, value)
	return nil
}

// Alloc returns zeroed, pinned memory aligned to align.
func (g *GuestSpace) Alloc(size, align uint64) (uint64, error) {
	if align == 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return 0, errors.InvalidInput(errors.PhaseMemory, "alignment must be a power of two")
	}
	if size == 0 {
		size = 1
	}
	buf := make([]byte, size+align-1)
	base := uint64(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))
	addr := (base + align - 1) &^ (align - 1)

	g.mu.Lock()
	g.pins[addr] = buf
	g.mu.Unlock()
	return addr, nil
}

func (g *GuestSpace) Free(addr, _, _ uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.pins[addr]; !ok {
		return errors.DoubleFree(errors.PhaseMemory, addr)
	}
	delete(g.pins, addr)
	return nil
}

func (g *GuestSpace) AddrOf(b []byte) (uint64, bool) {
	if len(b) == 0 {
		return 0, true
	}
	return uint64(uintptr(unsafe.Pointer(unsafe.SliceData(b)))), true
}

// GuestTableV2 returns the raw-pointer table backed by the env imports the
// host links into the guest.
func GuestTableV2() *abi.TableV2 {
	return &abi.TableV2{
		SolLog:                            solLog,
		SolLogComputeUnits:                solLogComputeUnits,
		SolRemainingComputeUnits:          solRemainingComputeUnits,
		SolInvokeSignedC:                  solInvokeSignedC,
		SolGetClockSysvar:                 solGetClockSysvar,
		SolGetEpochScheduleSysvar:         solGetEpochScheduleSysvar,
		SolGetFeesSysvar:                  solGetFeesSysvar,
		SolGetRentSysvar:                  solGetRentSysvar,
		SolGetLastRestartSlot:             solGetLastRestartSlot,
		SolGetEpochRewardsSysvar:          solGetEpochRewardsSysvar,
		SolGetEpochStake:                  solGetEpochStake,
		SolMemcpy:                         solMemcpy,
		SolMemmove:                        solMemmove,
		SolMemcmp:                         solMemcmp,
		SolMemset:                         solMemset,
		SolGetReturnData:                  solGetReturnData,
		SolSetReturnData:                  solSetReturnData,
		SolLogData:                        solLogData,
		SolGetProcessedSiblingInstruction: solGetProcessedSiblingInstruction,
		SolGetStackHeight:                 solGetStackHeight,
		SolGetSysvar:                      solGetSysvar,
	}
}

// InstallGuest installs the v2 adapter over the guest's imports.
func InstallGuest() {
	if _, err := InstallV2(NewGuestSpace(), GuestTableV2()); err != nil {
		panic(err)
	}
}
