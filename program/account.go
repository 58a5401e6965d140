package program

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

// NewAccount allocates dataLen bytes of account data in space, followed by
// room to grow by solana.MaxPermittedDataIncrease, and returns an account
// that owns it. The data slice has length dataLen and never moves.
func NewAccount(space sbfstubs.Space, key, owner solana.Pubkey, lamports uint64, dataLen int) (solana.AccountInfo, error) {
	if dataLen < 0 {
		return solana.AccountInfo{}, errors.InvalidInput(errors.PhaseEncode, "negative account data length")
	}
	size := uint64(dataLen) + solana.MaxPermittedDataIncrease
	addr, err := space.Alloc(size, 8)
	if err != nil {
		return solana.AccountInfo{}, err
	}
	full, err := space.Read(addr, size)
	if err != nil {
		_ = space.Free(addr, size, 8)
		return solana.AccountInfo{}, err
	}
	data := full[:dataLen]
	balance := lamports
	return solana.NewAccountInfo(key, owner, &balance, &data), nil
}

// FreeAccount releases data allocated by NewAccount.
func FreeAccount(space sbfstubs.ProgramSpace, info solana.AccountInfo) error {
	data := info.Bytes()
	addr, ok := space.AddrOf(data)
	if !ok || addr == 0 {
		return errors.ForeignBuffer(errors.PhaseMemory, "account", info.Key.String())
	}
	return space.Free(addr, uint64(cap(data)), 8)
}
