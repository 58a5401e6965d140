package wire

import (
	"math"
	"unsafe"

	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

// AccountInfoSlice is the v1 by-value reference to an array of account records.
type AccountInfoSlice struct {
	Ptr uint64
	Len uint64
}

// AccountBinding remembers where one account's mutable state lives on the
// wire so the program side can adopt the callee's changes.
type AccountBinding struct {
	Record   uint64
	Lamports uint64
	Data     uint64
}

// EncodeAccountInfos writes one record per account in the given layout.
// Keys, owners and balances are staged; account data must already be
// resident because the callee may write through it. Accounts sharing a
// balance pointer share one staged balance cell.
func EncodeAccountInfos(e *Encoder, layout AccountLayout, infos []solana.AccountInfo) (uint64, []AccountBinding, error) {
	if len(infos) == 0 {
		return 0, nil, nil
	}

	n := uint64(len(infos))
	base, err := e.Alloc(n*AccountInfoSize, PointerAlign)
	if err != nil {
		return 0, nil, err
	}
	raw, err := e.space.Read(base, n*AccountInfoSize)
	if err != nil {
		return 0, nil, err
	}

	bindings := make([]AccountBinding, len(infos))
	cells := make(map[*uint64]uint64, len(infos))
	for i := range infos {
		info := &infos[i]
		rec := raw[i*AccountInfoSize : (i+1)*AccountInfoSize]

		key, err := e.Pubkey(info.Key)
		if err != nil {
			return 0, nil, err
		}
		owner, err := e.Pubkey(info.Owner)
		if err != nil {
			return 0, nil, err
		}
		lamports, ok := cells[info.Lamports]
		if !ok || info.Lamports == nil {
			if lamports, err = e.U64(info.Balance()); err != nil {
				return 0, nil, err
			}
			cells[info.Lamports] = lamports
		}

		data := info.Bytes()
		var dataAddr uint64
		if info.Data != nil && cap(data) > 0 {
			if dataAddr, err = e.Resident(data, index("account_infos", i)...); err != nil {
				return 0, nil, err
			}
		}

		le.PutUint64(rec[layout.Key:], key)
		le.PutUint64(rec[layout.Lamports:], lamports)
		le.PutUint64(rec[layout.Data:], dataAddr)
		le.PutUint64(rec[layout.DataLen:], uint64(len(data)))
		le.PutUint64(rec[layout.Owner:], owner)
		le.PutUint64(rec[layout.RentEpoch:], info.RentEpoch)
		rec[layout.IsSigner] = boolByte(info.IsSigner)
		rec[layout.IsWritable] = boolByte(info.IsWritable)
		rec[layout.Executable] = boolByte(info.Executable)

		bindings[i] = AccountBinding{
			Record:   base + uint64(i)*AccountInfoSize,
			Lamports: lamports,
			Data:     dataAddr,
		}
	}
	return base, bindings, nil
}

// SyncAccountInfos adopts the callee's changes after a crossing: each
// account's data is resliced to the reported length within its original
// buffer, and its balance is reloaded. A relocated buffer or a length past
// the buffer's capacity is an invariant violation.
//
// Duplicate accounts share one data slice. When their records disagree the
// length that differs from the pre-call length wins.
func SyncAccountInfos(mem sbfstubs.Memory, layout AccountLayout, infos []solana.AccountInfo, bindings []AccountBinding, syscall string) error {
	lens := make([]uint64, len(bindings))
	adopted := make(map[*[]byte]uint64, len(bindings))
	for i, b := range bindings {
		info := &infos[i]

		dataAddr, err := mem.ReadU64(b.Record + layout.Data)
		if err != nil {
			return err
		}
		if dataAddr != b.Data {
			return errors.Invariant(syscall, "account %d data moved from 0x%x to 0x%x", i, b.Data, dataAddr)
		}
		newLen, err := mem.ReadU64(b.Record + layout.DataLen)
		if err != nil {
			return err
		}
		lens[i] = newLen

		if info.Data == nil {
			if newLen != 0 {
				return errors.Invariant(syscall, "account %d has no data buffer but reports data_len %d", i, newLen)
			}
			continue
		}
		if newLen > uint64(cap(*info.Data)) {
			return errors.Invariant(syscall, "account %d data_len %d exceeds buffer capacity %d", i, newLen, cap(*info.Data))
		}
		if _, ok := adopted[info.Data]; !ok || newLen != uint64(len(*info.Data)) {
			adopted[info.Data] = newLen
		}
	}

	for i, b := range bindings {
		info := &infos[i]
		if info.Data != nil {
			*info.Data = (*info.Data)[:adopted[info.Data]]
		}
		if info.Lamports != nil {
			lamports, err := mem.ReadU64(b.Lamports)
			if err != nil {
				return err
			}
			*info.Lamports = lamports
		}
	}
	return nil
}

// AccountViews is the harness-side decoding of an account record array.
// Data slices are views of the space; balances are copied into cells that
// WriteBack stores again.
type AccountViews struct {
	Infos    []solana.AccountInfo
	layout   AccountLayout
	records  []uint64
	cells    []uint64
	dataPtrs []*byte
}

// DecodeAccountInfos decodes n records at addr. Records naming the same
// balance cell share one balance, and records naming the same data address
// share one data slice, so a change through either duplicate is seen by all.
//
// Data views get MaxPermittedDataIncrease bytes of capacity whenever the
// space has them. The caller must have allocated that slack behind every
// account buffer; growth into a buffer without it overwrites neighbouring
// memory and is only caught as an invariant violation on the program side.
func DecodeAccountInfos(mem sbfstubs.Memory, layout AccountLayout, addr, n uint64) (*AccountViews, error) {
	v := &AccountViews{layout: layout}
	if n == 0 {
		return v, nil
	}
	size, err := arraySize(n, AccountInfoSize)
	if err != nil {
		return nil, err
	}
	raw, err := view(mem, addr, size)
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path("account_infos").Addr(addr).Cause(err).Build()
	}

	v.Infos = make([]solana.AccountInfo, n)
	v.records = make([]uint64, n)
	v.cells = make([]uint64, n)
	v.dataPtrs = make([]*byte, n)
	balances := make(map[uint64]*uint64)
	buffers := make(map[uint64]*[]byte)

	for i := range v.Infos {
		rec := raw[i*AccountInfoSize:]
		path := index("account_infos", i)

		key, err := readPubkey(mem, le.Uint64(rec[layout.Key:]), append(path, "key")...)
		if err != nil {
			return nil, err
		}
		owner, err := readPubkey(mem, le.Uint64(rec[layout.Owner:]), append(path, "owner")...)
		if err != nil {
			return nil, err
		}

		cell := le.Uint64(rec[layout.Lamports:])
		if cell == 0 {
			return nil, errors.NullPointer(errors.PhaseDecode, append(path, "lamports")...)
		}
		lamports, ok := balances[cell]
		if !ok {
			balance, err := mem.ReadU64(cell)
			if err != nil {
				return nil, err
			}
			lamports = &balance
			balances[cell] = lamports
		}

		dataAddr := le.Uint64(rec[layout.Data:])
		data, ok := buffers[dataAddr]
		if !ok || dataAddr == 0 {
			view, err := accountData(mem, dataAddr, le.Uint64(rec[layout.DataLen:]))
			if err != nil {
				return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
					Path(append(path, "data")...).Addr(dataAddr).Cause(err).Build()
			}
			data = &view
			if dataAddr != 0 {
				buffers[dataAddr] = data
			}
		}

		v.Infos[i] = solana.AccountInfo{
			Key:        key,
			Owner:      owner,
			Lamports:   lamports,
			Data:       data,
			RentEpoch:  le.Uint64(rec[layout.RentEpoch:]),
			IsSigner:   rec[layout.IsSigner] != 0,
			IsWritable: rec[layout.IsWritable] != 0,
			Executable: rec[layout.Executable] != 0,
		}
		v.records[i] = addr + uint64(i)*AccountInfoSize
		v.cells[i] = cell
		v.dataPtrs[i] = unsafe.SliceData(*data)
	}
	return v, nil
}

// accountData views n bytes at addr with room to grow by the permitted
// increase when the space allows it. The backing array never changes.
func accountData(mem sbfstubs.Memory, addr, n uint64) ([]byte, error) {
	if addr == 0 {
		if n == 0 {
			return nil, nil
		}
		return nil, errors.NullPointer(errors.PhaseDecode)
	}
	if n <= math.MaxUint64-solana.MaxPermittedDataIncrease {
		if full, err := mem.Read(addr, n+solana.MaxPermittedDataIncrease); err == nil {
			return full[:n], nil
		}
	}
	return mem.Read(addr, n)
}

// WriteBack asserts that no account's data buffer moved and stores the new
// data lengths and balances into the wire records. Duplicates share their
// cells, so every record of one account reports the same final state.
func (v *AccountViews) WriteBack(mem sbfstubs.Memory, syscall string) error {
	for i := range v.Infos {
		info := &v.Infos[i]
		data := info.Bytes()
		if unsafe.SliceData(data) != v.dataPtrs[i] {
			return errors.Invariant(syscall, "account %s data buffer was replaced", info.Key)
		}
		if err := mem.WriteU64(v.records[i]+v.layout.DataLen, uint64(len(data))); err != nil {
			return err
		}
		if err := mem.WriteU64(v.cells[i], info.Balance()); err != nil {
			return err
		}
	}
	return nil
}
