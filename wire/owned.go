package wire

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

// ReturnData is the v1 owned return-data record. The callee allocates the
// buffer and hands it over in raw parts; the receiver must call Take exactly
// once to reclaim it.
type ReturnData struct {
	ProgramID solana.Pubkey
	Ptr       uint64
	Len       uint64
	Cap       uint64
	HasData   bool
}

// NewReturnData moves rd into space. Absent return data produces a record
// with HasData unset and nothing allocated. Present but empty data still
// gets a live allocation so the record keeps its single-Take ownership.
func NewReturnData(space sbfstubs.Space, rd solana.ReturnData, ok bool) (ReturnData, error) {
	if !ok {
		return ReturnData{}, nil
	}
	n := uint64(len(rd.Data))
	addr, err := space.Alloc(n, 1)
	if err != nil {
		return ReturnData{}, err
	}
	if err := space.Write(addr, rd.Data); err != nil {
		_ = space.Free(addr, n, 1)
		return ReturnData{}, err
	}
	return ReturnData{
		ProgramID: rd.ProgramID,
		Ptr:       addr,
		Len:       n,
		Cap:       n,
		HasData:   true,
	}, nil
}

// Take copies the data out and frees the buffer. A second Take of the same
// record fails because the buffer is no longer live.
func (r ReturnData) Take(space sbfstubs.Space) (solana.ReturnData, bool, error) {
	if !r.HasData {
		return solana.ReturnData{}, false, nil
	}
	if r.Len > r.Cap {
		return solana.ReturnData{}, false, errors.New(errors.PhaseDecode, errors.KindSizeMismatch).
			Path("return_data").Detail("len %d exceeds cap %d", r.Len, r.Cap).Build()
	}
	raw, err := view(space, r.Ptr, r.Len)
	if err != nil {
		return solana.ReturnData{}, false, err
	}
	data := append([]byte(nil), raw...)
	if err := space.Free(r.Ptr, r.Cap, 1); err != nil {
		return solana.ReturnData{}, false, err
	}
	return solana.ReturnData{ProgramID: r.ProgramID, Data: data}, true, nil
}

// OptionInstruction is the v1 owned optional instruction record used for
// sibling instructions. Ownership rules match ReturnData.
type OptionInstruction struct {
	ProgramID   solana.Pubkey
	AccountsPtr uint64
	AccountsLen uint64
	DataPtr     uint64
	DataLen     uint64
	Present     bool
}

// NewOptionInstruction moves ix into space.
func NewOptionInstruction(space sbfstubs.Space, ix solana.Instruction, ok bool) (OptionInstruction, error) {
	if !ok {
		return OptionInstruction{}, nil
	}
	out := OptionInstruction{ProgramID: ix.ProgramID, Present: true}

	if n := uint64(len(ix.Accounts)); n > 0 {
		addr, err := space.Alloc(n*AccountMetaSize, 1)
		if err != nil {
			return OptionInstruction{}, err
		}
		raw, err := space.Read(addr, n*AccountMetaSize)
		if err != nil {
			_ = space.Free(addr, n*AccountMetaSize, 1)
			return OptionInstruction{}, err
		}
		writeAccountMetas(raw, ix.Accounts)
		out.AccountsPtr, out.AccountsLen = addr, n
	}

	if n := uint64(len(ix.Data)); n > 0 {
		addr, err := space.Alloc(n, 1)
		if err == nil {
			err = space.Write(addr, ix.Data)
		}
		if err != nil {
			if out.AccountsPtr != 0 {
				_ = space.Free(out.AccountsPtr, out.AccountsLen*AccountMetaSize, 1)
			}
			return OptionInstruction{}, err
		}
		out.DataPtr, out.DataLen = addr, n
	}
	return out, nil
}

// Take copies the instruction out and frees its buffers.
func (o OptionInstruction) Take(space sbfstubs.Space) (solana.Instruction, bool, error) {
	if !o.Present {
		return solana.Instruction{}, false, nil
	}
	metas, err := readAccountMetas(space, o.AccountsPtr, o.AccountsLen)
	if err != nil {
		return solana.Instruction{}, false, err
	}
	raw, err := view(space, o.DataPtr, o.DataLen)
	if err != nil {
		return solana.Instruction{}, false, err
	}
	ix := solana.Instruction{ProgramID: o.ProgramID, Accounts: metas}
	if raw != nil {
		ix.Data = append([]byte(nil), raw...)
	}

	if o.AccountsPtr != 0 {
		if err := space.Free(o.AccountsPtr, o.AccountsLen*AccountMetaSize, 1); err != nil {
			return solana.Instruction{}, false, err
		}
	}
	if o.DataPtr != 0 {
		if err := space.Free(o.DataPtr, o.DataLen, 1); err != nil {
			return solana.Instruction{}, false, err
		}
	}
	return ix, true, nil
}
