package harness

import (
	"unicode/utf8"

	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
	"github.com/wippyai/sbf-stubs/wire"
)

// binding carries what every crossing of one table needs.
type binding struct {
	router     *Router
	mem        sbfstubs.Memory
	convention string
}

// read returns a view or aborts the crossing.
func (b *binding) read(syscall string, addr, n uint64) []byte {
	if n == 0 {
		return nil
	}
	v, err := b.mem.Read(addr, n)
	if err != nil {
		b.router.fatal(b.convention, syscall, err)
	}
	return v
}

func (b *binding) check(syscall string, err error) {
	if err != nil {
		b.router.fatal(b.convention, syscall, err)
	}
}

func (b *binding) log(msg []byte) {
	if !utf8.Valid(msg) {
		b.router.fatal(b.convention, solana.SyscallLog, errors.InvalidUTF8(errors.PhaseDecode, solana.SyscallLog, msg))
	}
	b.router.call(b.convention, solana.SyscallLog, func(impl solana.Syscalls) {
		impl.Log(string(msg))
	})
}

func (b *binding) logComputeUnits() {
	b.router.call(b.convention, solana.SyscallLogComputeUnits, func(impl solana.Syscalls) {
		impl.LogComputeUnits()
	})
}

func (b *binding) remainingComputeUnits() (n uint64) {
	b.router.call(b.convention, solana.SyscallRemainingComputeUnits, func(impl solana.Syscalls) {
		n = impl.RemainingComputeUnits()
	})
	return n
}

// invoke decodes, runs and writes back one cross-program invocation under a
// single read lock, so Register never lands between the call and the
// propagation of its account changes. decode runs first and may abort.
func (b *binding) invoke(decode func() (*solana.Instruction, *wire.AccountViews, [][][]byte)) error {
	var err error
	b.router.call(b.convention, solana.SyscallInvokeSigned, func(impl solana.Syscalls) {
		ix, views, seeds := decode()
		err = impl.InvokeSigned(ix, views.Infos, seeds)
		b.check(solana.SyscallInvokeSigned, views.WriteBack(b.mem, solana.SyscallInvokeSigned))
	})
	if err != nil {
		b.router.failed(b.convention, solana.SyscallInvokeSigned, err)
	}
	return err
}

type sysvarGetter func(impl solana.Syscalls, dst []byte) uint64

var sysvars = map[string]struct {
	get  sysvarGetter
	size uint64
}{
	solana.SyscallGetClockSysvar:         {solana.Syscalls.GetClockSysvar, solana.ClockSize},
	solana.SyscallGetEpochScheduleSysvar: {solana.Syscalls.GetEpochScheduleSysvar, solana.EpochScheduleSize},
	solana.SyscallGetFeesSysvar:          {solana.Syscalls.GetFeesSysvar, solana.FeesSize},
	solana.SyscallGetRentSysvar:          {solana.Syscalls.GetRentSysvar, solana.RentSize},
	solana.SyscallGetLastRestartSlot:     {solana.Syscalls.GetLastRestartSlot, solana.LastRestartSlotSize},
	solana.SyscallGetEpochRewardsSysvar:  {solana.Syscalls.GetEpochRewardsSysvar, solana.EpochRewardsSize},
}

// sysvar returns a table entry that fills the named sysvar's C layout at dst.
func (b *binding) sysvar(syscall string) func(dst uint64) uint64 {
	s := sysvars[syscall]
	return func(dst uint64) (status uint64) {
		if dst == 0 {
			b.router.fatal(b.convention, syscall, errors.NullPointer(errors.PhaseDecode, "dst"))
		}
		view := b.read(syscall, dst, s.size)
		b.router.call(b.convention, syscall, func(impl solana.Syscalls) {
			status = s.get(impl, view)
		})
		return status
	}
}

func (b *binding) getEpochStake(voteAddr uint64) (stake uint64) {
	var vote *solana.Pubkey
	if voteAddr != 0 {
		pk, err := wire.ReadPubkey(b.mem, voteAddr)
		b.check(solana.SyscallGetEpochStake, err)
		vote = &pk
	}
	b.router.call(b.convention, solana.SyscallGetEpochStake, func(impl solana.Syscalls) {
		stake = impl.GetEpochStake(vote)
	})
	return stake
}

func (b *binding) memcpy(dst, src, n uint64) {
	d := b.read(solana.SyscallMemcpy, dst, n)
	s := b.read(solana.SyscallMemcpy, src, n)
	b.router.call(b.convention, solana.SyscallMemcpy, func(impl solana.Syscalls) {
		impl.Memcpy(d, s)
	})
}

func (b *binding) memmove(dst, src, n uint64) {
	d := b.read(solana.SyscallMemmove, dst, n)
	s := b.read(solana.SyscallMemmove, src, n)
	b.router.call(b.convention, solana.SyscallMemmove, func(impl solana.Syscalls) {
		impl.Memmove(d, s)
	})
}

func (b *binding) memcmp(s1, s2, n, result uint64) {
	a := b.read(solana.SyscallMemcmp, s1, n)
	c := b.read(solana.SyscallMemcmp, s2, n)
	var r int32
	b.router.call(b.convention, solana.SyscallMemcmp, func(impl solana.Syscalls) {
		r = impl.Memcmp(a, c)
	})
	b.check(solana.SyscallMemcmp, b.mem.WriteU32(result, uint32(r)))
}

func (b *binding) memset(dst uint64, c byte, n uint64) {
	d := b.read(solana.SyscallMemset, dst, n)
	b.router.call(b.convention, solana.SyscallMemset, func(impl solana.Syscalls) {
		impl.Memset(d, c)
	})
}

func (b *binding) returnData() (rd solana.ReturnData, ok bool) {
	b.router.call(b.convention, solana.SyscallGetReturnData, func(impl solana.Syscalls) {
		rd, ok = impl.GetReturnData()
	})
	return rd, ok
}

func (b *binding) setReturnData(data []byte) {
	b.router.call(b.convention, solana.SyscallSetReturnData, func(impl solana.Syscalls) {
		impl.SetReturnData(data)
	})
}

func (b *binding) logData(fields [][]byte) {
	b.router.call(b.convention, solana.SyscallLogData, func(impl solana.Syscalls) {
		impl.LogData(fields)
	})
}

func (b *binding) sibling(index uint64) (ix solana.Instruction, ok bool) {
	b.router.call(b.convention, solana.SyscallGetProcessedSiblingInstruction, func(impl solana.Syscalls) {
		ix, ok = impl.GetProcessedSiblingInstruction(index)
	})
	return ix, ok
}

func (b *binding) getStackHeight() (h uint64) {
	b.router.call(b.convention, solana.SyscallGetStackHeight, func(impl solana.Syscalls) {
		h = impl.GetStackHeight()
	})
	return h
}

func (b *binding) getSysvar(idAddr, dst, offset, length uint64) (status uint64) {
	id, err := wire.ReadPubkey(b.mem, idAddr)
	b.check(solana.SyscallGetSysvar, err)
	view := b.read(solana.SyscallGetSysvar, dst, length)
	b.router.call(b.convention, solana.SyscallGetSysvar, func(impl solana.Syscalls) {
		status = impl.GetSysvar(id, view, offset)
	})
	return status
}
