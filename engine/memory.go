package engine

import (
	"math"

	"github.com/tetratelabs/wazero/api"

	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
)

var (
	_ sbfstubs.Memory      = (*guestMemory)(nil)
	_ sbfstubs.MemorySizer = (*guestMemory)(nil)
)

// guestMemory adapts a guest's linear memory to the 64-bit address space the
// dispatch tables speak. Views returned by Read alias guest memory and stay
// valid until the guest grows its memory.
type guestMemory struct {
	mem api.Memory
}

func (m *guestMemory) Size() uint64 {
	if m.mem == nil {
		return 0
	}
	return uint64(m.mem.Size())
}

func (m *guestMemory) check(addr, length uint64) (uint32, error) {
	if addr == 0 && length > 0 {
		return 0, errors.New(errors.PhaseMemory, errors.KindNullPointer).
			Addr(addr).
			Detail("access of %d bytes at null", length).
			Build()
	}
	end := addr + length
	if end < addr || end > math.MaxUint32 || end > m.Size() {
		return 0, errors.OutOfBounds(errors.PhaseMemory, addr, length, m.Size())
	}
	return uint32(addr), nil
}

func (m *guestMemory) Read(addr, length uint64) ([]byte, error) {
	off, err := m.check(addr, length)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	data, ok := m.mem.Read(off, uint32(length))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseMemory, addr, length, m.Size())
	}
	return data[:length:length], nil
}

func (m *guestMemory) Write(addr uint64, data []byte) error {
	off, err := m.check(addr, uint64(len(data)))
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if !m.mem.Write(off, data) {
		return errors.OutOfBounds(errors.PhaseMemory, addr, uint64(len(data)), m.Size())
	}
	return nil
}

func (m *guestMemory) ReadU8(addr uint64) (uint8, error) {
	off, err := m.check(addr, 1)
	if err != nil {
		return 0, err
	}
	v, ok := m.mem.ReadByte(off)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseMemory, addr, 1, m.Size())
	}
	return v, nil
}

func (m *guestMemory) ReadU32(addr uint64) (uint32, error) {
	off, err := m.check(addr, 4)
	if err != nil {
		return 0, err
	}
	v, ok := m.mem.ReadUint32Le(off)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseMemory, addr, 4, m.Size())
	}
	return v, nil
}

func (m *guestMemory) ReadU64(addr uint64) (uint64, error) {
	off, err := m.check(addr, 8)
	if err != nil {
		return 0, err
	}
	v, ok := m.mem.ReadUint64Le(off)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseMemory, addr, 8, m.Size())
	}
	return v, nil
}

func (m *guestMemory) WriteU8(addr uint64, value uint8) error {
	off, err := m.check(addr, 1)
	if err != nil {
		return err
	}
	if !m.mem.WriteByte(off, value) {
		return errors.OutOfBounds(errors.PhaseMemory, addr, 1, m.Size())
	}
	return nil
}

func (m *guestMemory) WriteU32(addr uint64, value uint32) error {
	off, err := m.check(addr, 4)
	if err != nil {
		return err
	}
	if !m.mem.WriteUint32Le(off, value) {
		return errors.OutOfBounds(errors.PhaseMemory, addr, 4, m.Size())
	}
	return nil
}

func (m *guestMemory) WriteU64(addr uint64, value uint64) error {
	off, err := m.check(addr, 8)
	if err != nil {
		return err
	}
	if !m.mem.WriteUint64Le(off, value) {
		return errors.OutOfBounds(errors.PhaseMemory, addr, 8, m.Size())
	}
	return nil
}
