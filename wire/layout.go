package wire

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

// Record sizes in bytes.
const (
	PointerAlign = 8

	// FatPointerSize covers Bytes, BytesArray, BytesArrayArray and every v2
	// {addr, len} pair: they share one layout.
	FatPointerSize = 16

	// AccountMetaSize is the packed {pubkey, is_signer, is_writable} record
	// used by v1 instructions and by sibling instruction output.
	AccountMetaSize = solana.PubkeySize + 2

	// AccountInfoSize is the account view record for both conventions; only
	// the order of the data and data_len fields differs.
	AccountInfoSize = 56

	SolInstructionSize = 40
	SolAccountMetaSize = 16
	SiblingMetaSize    = 16
)

// SolInstruction field offsets.
const (
	solInstructionProgramID   = 0
	solInstructionAccounts    = 8
	solInstructionAccountsLen = 16
	solInstructionData        = 24
	solInstructionDataLen     = 32
)

// SolAccountMeta field offsets.
const (
	solAccountMetaPubkey     = 0
	solAccountMetaIsWritable = 8
	solAccountMetaIsSigner   = 9
)

// AccountLayout gives the field offsets of an account view record.
type AccountLayout struct {
	Key        uint64
	Lamports   uint64
	Data       uint64
	DataLen    uint64
	Owner      uint64
	RentEpoch  uint64
	IsSigner   uint64
	IsWritable uint64
	Executable uint64
}

var (
	// LayoutV1 orders data before data_len.
	LayoutV1 = AccountLayout{Key: 0, Lamports: 8, Data: 16, DataLen: 24, Owner: 32, RentEpoch: 40, IsSigner: 48, IsWritable: 49, Executable: 50}

	// LayoutV2 is SolAccountInfo, which orders data_len before data.
	LayoutV2 = AccountLayout{Key: 0, Lamports: 8, DataLen: 16, Data: 24, Owner: 32, RentEpoch: 40, IsSigner: 48, IsWritable: 49, Executable: 50}
)

var le = binary.LittleEndian

// arraySize returns n*elem, failing instead of wrapping.
func arraySize(n, elem uint64) (uint64, error) {
	if elem != 0 && n > math.MaxUint64/elem {
		return 0, errors.Overflow(errors.PhaseDecode, n, "array byte size")
	}
	return n * elem, nil
}

func putAccountMeta(dst []byte, m solana.AccountMeta) {
	copy(dst[:solana.PubkeySize], m.Pubkey[:])
	dst[solana.PubkeySize] = boolByte(m.IsSigner)
	dst[solana.PubkeySize+1] = boolByte(m.IsWritable)
}

func getAccountMeta(src []byte) solana.AccountMeta {
	var m solana.AccountMeta
	copy(m.Pubkey[:], src[:solana.PubkeySize])
	m.IsSigner = src[solana.PubkeySize] != 0
	m.IsWritable = src[solana.PubkeySize+1] != 0
	return m
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func index(name string, i int) []string {
	return []string{name, strconv.Itoa(i)}
}
