package harness

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/abi"
	"github.com/wippyai/sbf-stubs/solana"
	"github.com/wippyai/sbf-stubs/wire"
)

// TableV2 binds every raw-pointer entry to this router over mem.
func (r *Router) TableV2(mem sbfstubs.Memory) *abi.TableV2 {
	b := &binding{router: r, mem: mem, convention: ConventionV2}
	return &abi.TableV2{
		SolLog: func(msg, n uint64) {
			b.log(b.read(solana.SyscallLog, msg, n))
		},
		SolLogComputeUnits:       b.logComputeUnits,
		SolRemainingComputeUnits: b.remainingComputeUnits,
		SolInvokeSignedC: func(ixAddr, infosAddr, infosLen, seedsAddr, seedsLen uint64) uint64 {
			return solana.ErrorCode(b.invoke(func() (*solana.Instruction, *wire.AccountViews, [][][]byte) {
				ix, err := wire.DecodeSolInstruction(mem, ixAddr)
				b.check(solana.SyscallInvokeSigned, err)
				views, err := wire.DecodeAccountInfos(mem, wire.LayoutV2, infosAddr, infosLen)
				b.check(solana.SyscallInvokeSigned, err)
				seeds, err := wire.DecodeSeeds(mem, seedsAddr, seedsLen)
				b.check(solana.SyscallInvokeSigned, err)
				return &ix, views, seeds
			}))
		},
		SolGetClockSysvar:         b.sysvar(solana.SyscallGetClockSysvar),
		SolGetEpochScheduleSysvar: b.sysvar(solana.SyscallGetEpochScheduleSysvar),
		SolGetFeesSysvar:          b.sysvar(solana.SyscallGetFeesSysvar),
		SolGetRentSysvar:          b.sysvar(solana.SyscallGetRentSysvar),
		SolGetLastRestartSlot:     b.sysvar(solana.SyscallGetLastRestartSlot),
		SolGetEpochRewardsSysvar:  b.sysvar(solana.SyscallGetEpochRewardsSysvar),
		SolGetEpochStake:          b.getEpochStake,
		SolMemcpy:                 b.memcpy,
		SolMemmove:                b.memmove,
		SolMemcmp:                 b.memcmp,
		SolMemset: func(dst, c, n uint64) {
			b.memset(dst, byte(c), n)
		},
		SolGetReturnData: func(data, length, programID uint64) uint64 {
			rd, ok := b.returnData()
			n, err := wire.ServeReturnData(mem, rd, ok, data, length, programID)
			b.check(solana.SyscallGetReturnData, err)
			return n
		},
		SolSetReturnData: func(data, n uint64) {
			b.setReturnData(b.read(solana.SyscallSetReturnData, data, n))
		},
		SolLogData: func(fields, n uint64) {
			decoded, err := wire.DecodeByteSlices(mem, fields, n)
			b.check(solana.SyscallLogData, err)
			b.logData(decoded)
		},
		SolGetProcessedSiblingInstruction: func(index, meta, programID, data, accounts uint64) uint64 {
			ix, ok := b.sibling(index)
			found, err := wire.ServeSiblingInstruction(mem, ix, ok, meta, programID, data, accounts)
			b.check(solana.SyscallGetProcessedSiblingInstruction, err)
			return found
		},
		SolGetStackHeight: b.getStackHeight,
		SolGetSysvar:      b.getSysvar,
	}
}
