package wire

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

// Instruction is the v1 by-value instruction record. Accounts points at
// AccountsLen packed AccountMeta records.
type Instruction struct {
	ProgramID   solana.Pubkey
	AccountsPtr uint64
	AccountsLen uint64
	DataPtr     uint64
	DataLen     uint64
}

// EncodeInstruction builds the v1 record for ix. Data is referenced in place
// when resident.
func EncodeInstruction(e *Encoder, ix *solana.Instruction) (Instruction, error) {
	out := Instruction{ProgramID: ix.ProgramID}

	if n := len(ix.Accounts); n > 0 {
		addr, err := e.Alloc(uint64(n)*AccountMetaSize, 1)
		if err != nil {
			return Instruction{}, err
		}
		raw, err := e.space.Read(addr, uint64(n)*AccountMetaSize)
		if err != nil {
			return Instruction{}, err
		}
		for i, m := range ix.Accounts {
			putAccountMeta(raw[i*AccountMetaSize:], m)
		}
		out.AccountsPtr, out.AccountsLen = addr, uint64(n)
	}

	data, err := EncodeBytes(e, ix.Data)
	if err != nil {
		return Instruction{}, err
	}
	out.DataPtr, out.DataLen = data.Ptr, data.Len
	return out, nil
}

// Decode returns the native instruction. Accounts are copied; Data is a view
// and must be cloned by anyone who keeps it past the crossing.
func (w Instruction) Decode(mem sbfstubs.Memory) (solana.Instruction, error) {
	ix := solana.Instruction{ProgramID: w.ProgramID}

	metas, err := readAccountMetas(mem, w.AccountsPtr, w.AccountsLen)
	if err != nil {
		return solana.Instruction{}, err
	}
	ix.Accounts = metas

	if ix.Data, err = view(mem, w.DataPtr, w.DataLen); err != nil {
		return solana.Instruction{}, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path("instruction", "data").Addr(w.DataPtr).Cause(err).Build()
	}
	return ix, nil
}

func readAccountMetas(mem sbfstubs.Memory, addr, n uint64) ([]solana.AccountMeta, error) {
	if n == 0 {
		return nil, nil
	}
	size, err := arraySize(n, AccountMetaSize)
	if err != nil {
		return nil, err
	}
	raw, err := view(mem, addr, size)
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path("instruction", "accounts").Addr(addr).Cause(err).Build()
	}
	out := make([]solana.AccountMeta, n)
	for i := range out {
		out[i] = getAccountMeta(raw[i*AccountMetaSize:])
	}
	return out, nil
}

// DecodeAccountMetas copies n packed AccountMeta records at addr.
func DecodeAccountMetas(mem sbfstubs.Memory, addr, n uint64) ([]solana.AccountMeta, error) {
	return readAccountMetas(mem, addr, n)
}

func writeAccountMetas(dst []byte, metas []solana.AccountMeta) {
	for i, m := range metas {
		putAccountMeta(dst[i*AccountMetaSize:], m)
	}
}

// EncodeSolInstruction stages a v2 SolInstruction record and returns its address.
// Every pubkey is staged; the data buffer is referenced in place when resident.
func EncodeSolInstruction(e *Encoder, ix *solana.Instruction) (uint64, error) {
	rec, err := e.Alloc(SolInstructionSize, PointerAlign)
	if err != nil {
		return 0, err
	}

	programID, err := e.Pubkey(ix.ProgramID)
	if err != nil {
		return 0, err
	}

	var metas uint64
	if n := uint64(len(ix.Accounts)); n > 0 {
		// one block for the metas, one for their keys
		if metas, err = e.Alloc(n*SolAccountMetaSize, PointerAlign); err != nil {
			return 0, err
		}
		keys, err := e.Alloc(n*solana.PubkeySize, 1)
		if err != nil {
			return 0, err
		}
		metaRaw, err := e.space.Read(metas, n*SolAccountMetaSize)
		if err != nil {
			return 0, err
		}
		keyRaw, err := e.space.Read(keys, n*solana.PubkeySize)
		if err != nil {
			return 0, err
		}
		for i, m := range ix.Accounts {
			copy(keyRaw[i*solana.PubkeySize:], m.Pubkey[:])
			r := metaRaw[i*SolAccountMetaSize:]
			le.PutUint64(r[solAccountMetaPubkey:], keys+uint64(i)*solana.PubkeySize)
			r[solAccountMetaIsWritable] = boolByte(m.IsWritable)
			r[solAccountMetaIsSigner] = boolByte(m.IsSigner)
		}
	}

	data, err := EncodeBytes(e, ix.Data)
	if err != nil {
		return 0, err
	}

	raw, err := e.space.Read(rec, SolInstructionSize)
	if err != nil {
		return 0, err
	}
	le.PutUint64(raw[solInstructionProgramID:], programID)
	le.PutUint64(raw[solInstructionAccounts:], metas)
	le.PutUint64(raw[solInstructionAccountsLen:], uint64(len(ix.Accounts)))
	le.PutUint64(raw[solInstructionData:], data.Ptr)
	le.PutUint64(raw[solInstructionDataLen:], data.Len)
	return rec, nil
}

// DecodeSolInstruction reads a v2 SolInstruction record. Data is a view.
func DecodeSolInstruction(mem sbfstubs.Memory, addr uint64) (solana.Instruction, error) {
	if addr == 0 {
		return solana.Instruction{}, errors.NullPointer(errors.PhaseDecode, "instruction")
	}
	raw, err := mem.Read(addr, SolInstructionSize)
	if err != nil {
		return solana.Instruction{}, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path("instruction").Addr(addr).Cause(err).Build()
	}

	var ix solana.Instruction
	if ix.ProgramID, err = readPubkey(mem, le.Uint64(raw[solInstructionProgramID:]), "instruction", "program_id"); err != nil {
		return solana.Instruction{}, err
	}

	metasAddr := le.Uint64(raw[solInstructionAccounts:])
	n := le.Uint64(raw[solInstructionAccountsLen:])
	if n > 0 {
		size, err := arraySize(n, SolAccountMetaSize)
		if err != nil {
			return solana.Instruction{}, err
		}
		metaRaw, err := view(mem, metasAddr, size)
		if err != nil {
			return solana.Instruction{}, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
				Path("instruction", "accounts").Addr(metasAddr).Cause(err).Build()
		}
		ix.Accounts = make([]solana.AccountMeta, n)
		for i := range ix.Accounts {
			r := metaRaw[i*SolAccountMetaSize:]
			key, err := readPubkey(mem, le.Uint64(r[solAccountMetaPubkey:]), index("accounts", i)...)
			if err != nil {
				return solana.Instruction{}, err
			}
			ix.Accounts[i] = solana.AccountMeta{
				Pubkey:     key,
				IsWritable: r[solAccountMetaIsWritable] != 0,
				IsSigner:   r[solAccountMetaIsSigner] != 0,
			}
		}
	}

	dataAddr := le.Uint64(raw[solInstructionData:])
	if ix.Data, err = view(mem, dataAddr, le.Uint64(raw[solInstructionDataLen:])); err != nil {
		return solana.Instruction{}, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path("instruction", "data").Addr(dataAddr).Cause(err).Build()
	}
	return ix, nil
}

func readPubkey(mem sbfstubs.Memory, addr uint64, path ...string) (solana.Pubkey, error) {
	if addr == 0 {
		return solana.Pubkey{}, errors.NullPointer(errors.PhaseDecode, path...)
	}
	raw, err := mem.Read(addr, solana.PubkeySize)
	if err != nil {
		return solana.Pubkey{}, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path(path...).Addr(addr).Cause(err).Build()
	}
	var pk solana.Pubkey
	copy(pk[:], raw)
	return pk, nil
}

// ReadPubkey copies the 32 bytes at addr.
func ReadPubkey(mem sbfstubs.Memory, addr uint64) (solana.Pubkey, error) {
	return readPubkey(mem, addr, "pubkey")
}

// WritePubkey stores pk at addr.
func WritePubkey(mem sbfstubs.Memory, addr uint64, pk solana.Pubkey) error {
	if addr == 0 {
		return errors.NullPointer(errors.PhaseEncode, "pubkey")
	}
	return mem.Write(addr, pk[:])
}
