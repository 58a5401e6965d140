package solana

import (
	"unsafe"
)

// AccountMeta describes one account referenced by an instruction.
type AccountMeta struct {
	Pubkey     Pubkey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta returns a writable account reference.
func NewAccountMeta(key Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: key, IsSigner: isSigner, IsWritable: true}
}

// NewReadonlyAccountMeta returns a read-only account reference.
func NewReadonlyAccountMeta(key Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: key, IsSigner: isSigner}
}

// Instruction is a request to run a program against a set of accounts.
type Instruction struct {
	ProgramID Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// Clone returns a deep copy that shares no memory with ix.
func (ix Instruction) Clone() Instruction {
	out := Instruction{ProgramID: ix.ProgramID}
	if ix.Accounts != nil {
		out.Accounts = append([]AccountMeta(nil), ix.Accounts...)
	}
	if ix.Data != nil {
		out.Data = append([]byte(nil), ix.Data...)
	}
	return out
}

// AccountInfo is a program's live view of an account during execution.
//
// Lamports and Data are shared: copies of an AccountInfo point at the same
// balance and the same data slice header, so a change made by a callee is
// visible to every holder. Data may shrink or grow within its capacity; its
// backing array never moves.
type AccountInfo struct {
	Lamports   *uint64
	Data       *[]byte
	RentEpoch  uint64
	Key        Pubkey
	Owner      Pubkey
	IsSigner   bool
	IsWritable bool
	Executable bool
}

// NewAccountInfo wires an account over existing storage.
func NewAccountInfo(key, owner Pubkey, lamports *uint64, data *[]byte) AccountInfo {
	return AccountInfo{
		Key:      key,
		Owner:    owner,
		Lamports: lamports,
		Data:     data,
	}
}

// Balance returns the current lamport balance.
func (a *AccountInfo) Balance() uint64 {
	if a.Lamports == nil {
		return 0
	}
	return *a.Lamports
}

// Bytes returns the current data slice.
func (a *AccountInfo) Bytes() []byte {
	if a.Data == nil {
		return nil
	}
	return *a.Data
}

// DataLen returns the current data length.
func (a *AccountInfo) DataLen() int {
	return len(a.Bytes())
}

// DataCap returns how far the data may grow without moving.
func (a *AccountInfo) DataCap() int {
	return cap(a.Bytes())
}

// Realloc changes the data length in place. Growth beyond the buffer's
// capacity fails rather than relocating the data. When zeroInit is set the
// newly exposed bytes are cleared.
func (a *AccountInfo) Realloc(newLen int, zeroInit bool) error {
	if a.Data == nil || newLen < 0 || newLen > cap(*a.Data) {
		return ErrInvalidRealloc
	}
	old := len(*a.Data)
	*a.Data = (*a.Data)[:newLen]
	if zeroInit && newLen > old {
		clear((*a.Data)[old:newLen])
	}
	return nil
}

// DataPtr returns the address of the first byte of the data buffer.
// It is stable across Realloc calls.
func (a *AccountInfo) DataPtr() uintptr {
	if a.Data == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(*a.Data)))
}

// ReturnData is the result buffer most recently set by a program.
type ReturnData struct {
	ProgramID Pubkey
	Data      []byte
}

// ProcessedSiblingInstruction carries the sizes of a sibling instruction,
// filled in by the query phase of the two-phase read.
type ProcessedSiblingInstruction struct {
	DataLen     uint64
	AccountsLen uint64
}
