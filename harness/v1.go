package harness

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/abi"
	"github.com/wippyai/sbf-stubs/solana"
	"github.com/wippyai/sbf-stubs/wire"
)

// TableV1 binds every struct-passing entry to this router over space. Owned
// results are allocated in space and handed to the caller.
func (r *Router) TableV1(space sbfstubs.Space) *abi.TableV1 {
	b := &binding{router: r, mem: space, convention: ConventionV1}
	return &abi.TableV1{
		Log: func(msg wire.Bytes) {
			b.log(b.read(solana.SyscallLog, msg.Ptr, msg.Len))
		},
		LogComputeUnits:       b.logComputeUnits,
		RemainingComputeUnits: b.remainingComputeUnits,
		InvokeSigned: func(ix wire.Instruction, infos wire.AccountInfoSlice, seeds wire.BytesArrayArray) int64 {
			err := b.invoke(func() (*solana.Instruction, *wire.AccountViews, [][][]byte) {
				native, err := ix.Decode(space)
				b.check(solana.SyscallInvokeSigned, err)
				views, err := wire.DecodeAccountInfos(space, wire.LayoutV1, infos.Ptr, infos.Len)
				b.check(solana.SyscallInvokeSigned, err)
				decoded, err := seeds.Decode(space)
				b.check(solana.SyscallInvokeSigned, err)
				return &native, views, decoded
			})
			if err != nil {
				return abi.V1Failure
			}
			return abi.V1Success
		},
		GetClockSysvar:         b.sysvar(solana.SyscallGetClockSysvar),
		GetEpochScheduleSysvar: b.sysvar(solana.SyscallGetEpochScheduleSysvar),
		GetFeesSysvar:          b.sysvar(solana.SyscallGetFeesSysvar),
		GetRentSysvar:          b.sysvar(solana.SyscallGetRentSysvar),
		GetLastRestartSlot:     b.sysvar(solana.SyscallGetLastRestartSlot),
		GetEpochRewardsSysvar:  b.sysvar(solana.SyscallGetEpochRewardsSysvar),
		GetEpochStake:          b.getEpochStake,
		Memcpy:                 b.memcpy,
		Memmove:                b.memmove,
		Memcmp:                 b.memcmp,
		Memset:                 b.memset,
		GetReturnData: func() wire.ReturnData {
			rd, ok := b.returnData()
			out, err := wire.NewReturnData(space, rd, ok)
			b.check(solana.SyscallGetReturnData, err)
			return out
		},
		SetReturnData: func(data wire.Bytes) {
			b.setReturnData(b.read(solana.SyscallSetReturnData, data.Ptr, data.Len))
		},
		LogData: func(fields wire.BytesArray) {
			decoded, err := fields.Decode(space)
			b.check(solana.SyscallLogData, err)
			b.logData(decoded)
		},
		GetProcessedSiblingInstruction: func(index uint64) wire.OptionInstruction {
			ix, ok := b.sibling(index)
			out, err := wire.NewOptionInstruction(space, ix, ok)
			b.check(solana.SyscallGetProcessedSiblingInstruction, err)
			return out
		},
		GetStackHeight: b.getStackHeight,
		GetSysvar:      b.getSysvar,
	}
}
