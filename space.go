package sbfstubs

// Memory is the linear address space shared by both sides of the boundary.
// Addresses are 64-bit offsets and address 0 is null.
//
// Read returns a view, not a copy: writes through the returned slice are
// visible to every other view of the same range.
type Memory interface {
	Read(addr, length uint64) ([]byte, error)
	Write(addr uint64, data []byte) error
	ReadU8(addr uint64) (uint8, error)
	ReadU32(addr uint64) (uint32, error)
	ReadU64(addr uint64) (uint64, error)
	WriteU8(addr uint64, value uint8) error
	WriteU32(addr uint64, value uint32) error
	WriteU64(addr uint64, value uint64) error
}

// MemorySizer provides the current size of the address space in bytes.
type MemorySizer interface {
	Size() uint64
}

// Allocator allocates memory inside the address space
type Allocator interface {
	Alloc(size, align uint64) (uint64, error)
	Free(addr, size, align uint64) error
}

// Space is an address space that can also allocate.
type Space interface {
	Memory
	Allocator
}

// Addresser resolves a native slice whose backing array lives inside the
// address space to its wire address. It reports false for foreign slices.
type Addresser interface {
	AddrOf(b []byte) (uint64, bool)
}

// ProgramSpace is what the program side needs: an allocating space that can
// also hand out addresses of native buffers it owns.
type ProgramSpace interface {
	Space
	Addresser
}
