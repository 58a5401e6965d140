package program

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/abi"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
	"github.com/wippyai/sbf-stubs/wire"
)

// AdapterV1 implements solana.Syscalls over a struct-passing table.
type AdapterV1 struct {
	space sbfstubs.ProgramSpace
	table *abi.TableV1
}

var _ solana.Syscalls = (*AdapterV1)(nil)

// NewV1 creates an adapter that stages arguments in space and calls table.
func NewV1(space sbfstubs.ProgramSpace, table *abi.TableV1) *AdapterV1 {
	return &AdapterV1{space: space, table: table}
}

func (a *AdapterV1) Log(message string) {
	must(crossing(a.space, func(e *wire.Encoder) error {
		b, err := wire.EncodeBytes(e, []byte(message))
		if err != nil {
			return err
		}
		a.table.Log(b)
		return nil
	}))
}

func (a *AdapterV1) LogComputeUnits() {
	a.table.LogComputeUnits()
}

func (a *AdapterV1) RemainingComputeUnits() uint64 {
	return a.table.RemainingComputeUnits()
}

// InvokeSigned crosses with every account by reference. The v1 status
// carries no detail, so any failure is reported as invocation_failed.
func (a *AdapterV1) InvokeSigned(ix *solana.Instruction, accounts []solana.AccountInfo, signerSeeds [][][]byte) error {
	var status int64
	err := crossing(a.space, func(e *wire.Encoder) error {
		w, err := wire.EncodeInstruction(e, ix)
		if err != nil {
			return err
		}
		infos, bindings, err := wire.EncodeAccountInfos(e, wire.LayoutV1, accounts)
		if err != nil {
			return err
		}
		seeds, err := wire.EncodeBytesArrayArray(e, signerSeeds)
		if err != nil {
			return err
		}
		status = a.table.InvokeSigned(w, wire.AccountInfoSlice{Ptr: infos, Len: uint64(len(accounts))}, seeds)
		must(wire.SyncAccountInfos(a.space, wire.LayoutV1, accounts, bindings, solana.SyscallInvokeSigned))
		return nil
	})
	if err != nil {
		return err
	}
	if status != abi.V1Success {
		return errors.New(errors.PhaseInvoke, errors.KindInvocationFailed).
			Syscall(solana.SyscallInvokeSigned).
			Value(status).
			Build()
	}
	return nil
}

func (a *AdapterV1) sysvar(syscall string, dst []byte, size int, entry func(uint64) uint64) uint64 {
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

func (a *AdapterV1) GetClockSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetClockSysvar, dst, solana.ClockSize, a.table.GetClockSysvar)
}

func (a *AdapterV1) GetEpochScheduleSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetEpochScheduleSysvar, dst, solana.EpochScheduleSize, a.table.GetEpochScheduleSysvar)
}

func (a *AdapterV1) GetFeesSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetFeesSysvar, dst, solana.FeesSize, a.table.GetFeesSysvar)
}

func (a *AdapterV1) GetRentSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetRentSysvar, dst, solana.RentSize, a.table.GetRentSysvar)
}

func (a *AdapterV1) GetLastRestartSlot(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetLastRestartSlot, dst, solana.LastRestartSlotSize, a.table.GetLastRestartSlot)
}

func (a *AdapterV1) GetEpochRewardsSysvar(dst []byte) uint64 {
	return a.sysvar(solana.SyscallGetEpochRewardsSysvar, dst, solana.EpochRewardsSize, a.table.GetEpochRewardsSysvar)
}

func (a *AdapterV1) GetEpochStake(voteAddress *solana.Pubkey) uint64 {
	if voteAddress == nil {
		return a.table.GetEpochStake(0)
	}
	var stake uint64
	must(crossing(a.space, func(e *wire.Encoder) error {
		addr, err := e.Pubkey(*voteAddress)
		if err != nil {
			return err
		}
		stake = a.table.GetEpochStake(addr)
		return nil
	}))
	return stake
}

func (a *AdapterV1) Memcpy(dst, src []byte) {
	dst, src = pair(dst, src)
	memop(a.space, dst, src, a.table.Memcpy)
}

func (a *AdapterV1) Memmove(dst, src []byte) {
	dst, src = pair(dst, src)
	memop(a.space, dst, src, a.table.Memmove)
}

func (a *AdapterV1) Memcmp(s1, s2 []byte) int32 {
	s1, s2 = pair(s1, s2)
	return compare(a.space, s1, s2, a.table.Memcmp)
}

func (a *AdapterV1) Memset(dst []byte, c byte) {
	fill(a.space, dst, func(addr, n uint64) { a.table.Memset(addr, c, n) })
}

// GetReturnData takes ownership of the record the callee allocated.
func (a *AdapterV1) GetReturnData() (solana.ReturnData, bool) {
	rd, ok, err := a.table.GetReturnData().Take(a.space)
	must(err)
	return rd, ok
}

func (a *AdapterV1) SetReturnData(data []byte) {
	must(crossing(a.space, func(e *wire.Encoder) error {
		b, err := wire.EncodeBytes(e, data)
		if err != nil {
			return err
		}
		a.table.SetReturnData(b)
		return nil
	}))
}

func (a *AdapterV1) LogData(fields [][]byte) {
	must(crossing(a.space, func(e *wire.Encoder) error {
		arr, err := wire.EncodeBytesArray(e, fields)
		if err != nil {
			return err
		}
		a.table.LogData(arr)
		return nil
	}))
}

// GetProcessedSiblingInstruction takes ownership of the record the callee
// allocated.
func (a *AdapterV1) GetProcessedSiblingInstruction(index uint64) (solana.Instruction, bool) {
	ix, ok, err := a.table.GetProcessedSiblingInstruction(index).Take(a.space)
	must(err)
	return ix, ok
}

func (a *AdapterV1) GetStackHeight() uint64 {
	return a.table.GetStackHeight()
}

func (a *AdapterV1) GetSysvar(id solana.Pubkey, dst []byte, offset uint64) uint64 {
	return getSysvar(a.space, id, dst, offset, a.table.GetSysvar)
}
