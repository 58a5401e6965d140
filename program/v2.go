package program

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/abi"
	"github.com/wippyai/sbf-stubs/solana"
	"github.com/wippyai/sbf-stubs/wire"
)

// AdapterV2 implements solana.Syscalls over a raw-pointer table.
type AdapterV2 struct {
	space sbfstubs.ProgramSpace
	table *abi.TableV2
}

var _ solana.Syscalls = (*AdapterV2)(nil)

// NewV2 creates an adapter that stages arguments in space and calls table.
func NewV2(space sbfstubs.ProgramSpace, table *abi.TableV2) *AdapterV2 {
	return &AdapterV2{space: space, table: table}
}

func (a *AdapterV2) Log(message string) {
	must(crossing(a.space, func(e *wire.Encoder) error {
		addr, err := e.Put([]byte(message), 1)
		if err != nil {
			return err
		}
		a.table.SolLog(addr, uint64(len(message)))
		return nil
	}))
}

func (a *AdapterV2) LogComputeUnits() {
	a.table.SolLogComputeUnits()
}

func (a *AdapterV2) RemainingComputeUnits() uint64 {
	return a.table.SolRemainingComputeUnits()
}

// InvokeSigned crosses with every account by reference and adopts the
// callee's balance and length changes afterwards, whatever the status.
func (a *AdapterV2) InvokeSigned(ix *solana.Instruction, accounts []solana.AccountInfo, signerSeeds [][][]byte) error {
	var status uint64
	err := crossing(a.space, func(e *wire.Encoder) error {
		ixAddr, err := wire.EncodeSolInstruction(e, ix)
		if err != nil {
			return err
		}
		infos, bindings, err := wire.EncodeAccountInfos(e, wire.LayoutV2, accounts)
		if err != nil {
			return err
		}
		seeds, seedsLen, err := wire.EncodeSeeds(e, signerSeeds)
		if err != nil {
			return err
		}
		status = a.table.SolInvokeSignedC(ixAddr, infos, uint64(len(accounts)), seeds, seedsLen)
		must(wire.SyncAccountInfos(a.space, wire.LayoutV2, accounts, bindings, solana.SyscallInvokeSigned))
		return nil
	})
	if err != nil {
		return err
	}
	return solana.ErrorFromCode(status)
}

func (a *AdapterV2) sysvar(syscall string, dst []byte, size int, entry func(uint64) uint64) uint64 {
	dst = sized(syscall, dst, size)
	var status uint64
	must(crossing(a.space, func(e *wire.Encoder) error {
		out, err := stageOutput(e, dst)
		if err != nil {
			return err
		}
		if status = entry(out.addr); status == solana.Success {
			out.commit()
		}
		return nil
	}))
	return status
}

func (a *AdapterV2) GetClockSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetClockSysvar, dst, solana.ClockSize, a.table.SolGetClockSysvar)
}

func (a *AdapterV2) GetEpochScheduleSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetEpochScheduleSysvar, dst, solana.EpochScheduleSize, a.table.SolGetEpochScheduleSysvar)
}

func (a *AdapterV2) GetFeesSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetFeesSysvar, dst, solana.FeesSize, a.table.SolGetFeesSysvar)
}

func (a *AdapterV2) GetRentSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetRentSysvar, dst, solana.RentSize, a.table.SolGetRentSysvar)
}

func (a *AdapterV2) GetLastRestartSlot(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetLastRestartSlot, dst, solana.LastRestartSlotSize, a.table.SolGetLastRestartSlot)
}

func (a *AdapterV2) GetEpochRewardsSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetEpochRewardsSysvar, dst, solana.EpochRewardsSize, a.table.SolGetEpochRewardsSysvar)
}

func (a *AdapterV2) GetEpochStake(voteAddress *solana.Pubkey) uint64 {
	if voteAddress == nil {
		return a.table.SolGetEpochStake(0)
	}
	var stake uint64
	must(crossing(a.space, func(e *wire.Encoder) error {
		addr, err := e.Pubkey(*voteAddress)
		if err != nil {
			return err
		}
		stake = a.table.SolGetEpochStake(addr)
		return nil
	}))
	return stake
}

func (a *AdapterV2) Memcpy(dst, src []byte) {
	dst, src = pair(dst, src)
	memop(a.space, dst, src, a.table.SolMemcpy)
}

func (a *AdapterV2) Memmove(dst, src []byte) {
	dst, src = pair(dst, src)
	memop(a.space, dst, src, a.table.SolMemmove)
}

func (a *AdapterV2) Memcmp(s1, s2 []byte) int32 {
	s1, s2 = pair(s1, s2)
	return compare(a.space, s1, s2, a.table.SolMemcmp)
}

func (a *AdapterV2) Memset(dst []byte, c byte) {
	fill(a.space, dst, func(addr, n uint64) { a.table.SolMemset(addr, uint64(c), n) })
}

// GetReturnData queries the length and source, then fills a buffer of
// exactly that length. Return data replaced between the two calls reads as
// absent.
func (a *AdapterV2) GetReturnData() (rd solana.ReturnData, ok bool) {
	must(crossing(a.space, func(e *wire.Encoder) error {
		pid, err := e.Alloc(solana.PubkeySize, 1)
		if err != nil {
			return err
		}
		n := a.table.SolGetReturnData(0, 0, pid)
		if n == wire.NoData {
			return nil
		}
		buf, err := e.Alloc(n, 1)
		if err != nil {
			return err
		}
		if a.table.SolGetReturnData(buf, n, pid) != n {
			return nil
		}
		if rd.ProgramID, err = wire.ReadPubkey(a.space, pid); err != nil {
			return err
		}
		raw, err := a.space.Read(buf, n)
		if err != nil {
			return err
		}
		rd.Data = append([]byte(nil), raw...)
		ok = true
		return nil
	}))
	return rd, ok
}

func (a *AdapterV2) SetReturnData(data []byte) {
	must(crossing(a.space, func(e *wire.Encoder) error {
		b, err := wire.EncodeBytes(e, data)
		if err != nil {
			return err
		}
		a.table.SolSetReturnData(b.Ptr, b.Len)
		return nil
	}))
}

func (a *AdapterV2) LogData(fields [][]byte) {
	must(crossing(a.space, func(e *wire.Encoder) error {
		addr, n, err := wire.EncodeByteSlices(e, fields)
		if err != nil {
			return err
		}
		a.table.SolLogData(addr, n)
		return nil
	}))
}

// GetProcessedSiblingInstruction queries the sizes with a zeroed meta record
// and fills buffers of exactly those sizes. An instruction with no data and
// no accounts is complete after the query, since a second call with the
// same zero sizes would only repeat it.
func (a *AdapterV2) GetProcessedSiblingInstruction(index uint64) (ix solana.Instruction, ok bool) {
	must(crossing(a.space, func(e *wire.Encoder) error {
		meta, err := e.Alloc(wire.SiblingMetaSize, wire.PointerAlign)
		if err != nil {
			return err
		}
		pid, err := e.Alloc(solana.PubkeySize, 1)
		if err != nil {
			return err
		}
		if a.table.SolGetProcessedSiblingInstruction(index, meta, pid, 0, 0) == 0 {
			return nil
		}
		dataLen, err := a.space.ReadU64(meta)
		if err != nil {
			return err
		}
		accountsLen, err := a.space.ReadU64(meta + 8)
		if err != nil {
			return err
		}

		var data, accounts uint64
		if dataLen > 0 || accountsLen > 0 {
			if data, err = e.Alloc(dataLen, 1); err != nil {
				return err
			}
			if accounts, err = e.Alloc(accountsLen*wire.AccountMetaSize, 1); err != nil {
				return err
			}
			if a.table.SolGetProcessedSiblingInstruction(index, meta, pid, data, accounts) == 0 {
				return nil
			}
		}

		if ix.ProgramID, err = wire.ReadPubkey(a.space, pid); err != nil {
			return err
		}
		if ix.Accounts, err = wire.DecodeAccountMetas(a.space, accounts, accountsLen); err != nil {
			return err
		}
		if dataLen > 0 {
			raw, err := a.space.Read(data, dataLen)
			if err != nil {
				return err
			}
			ix.Data = append([]byte(nil), raw...)
		}
		ok = true
		return nil
	}))
	return ix, ok
}

func (a *AdapterV2) GetStackHeight() uint64 {
	return a.table.SolGetStackHeight()
}

func (a *AdapterV2) GetSysvar(id solana.Pubkey, dst []byte, offset uint64) uint64 {
	return getSysvar(a.space, id, dst, offset, a.table.SolGetSysvar)
}
