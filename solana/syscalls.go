package solana

import (
	"github.com/wippyai/sbf-stubs/errors"
)

// Raw syscall names. These are the import names a compiled program links
// against and must not change.
const (
	SyscallLog                            = "sol_log_"
	SyscallLogComputeUnits                = "sol_log_compute_units_"
	SyscallRemainingComputeUnits          = "sol_remaining_compute_units"
	SyscallInvokeSigned                   = "sol_invoke_signed_c"
	SyscallGetClockSysvar                 = "sol_get_clock_sysvar"
	SyscallGetEpochScheduleSysvar         = "sol_get_epoch_schedule_sysvar"
	SyscallGetFeesSysvar                  = "sol_get_fees_sysvar"
	SyscallGetRentSysvar                  = "sol_get_rent_sysvar"
	SyscallGetLastRestartSlot             = "sol_get_last_restart_slot"
	SyscallGetEpochRewardsSysvar          = "sol_get_epoch_rewards_sysvar"
	SyscallGetEpochStake                  = "sol_get_epoch_stake"
	SyscallMemcpy                         = "sol_memcpy_"
	SyscallMemmove                        = "sol_memmove_"
	SyscallMemcmp                         = "sol_memcmp_"
	SyscallMemset                         = "sol_memset_"
	SyscallGetReturnData                  = "sol_get_return_data"
	SyscallSetReturnData                  = "sol_set_return_data"
	SyscallLogData                        = "sol_log_data"
	SyscallGetProcessedSiblingInstruction = "sol_get_processed_sibling_instruction"
	SyscallGetStackHeight                 = "sol_get_stack_height"
	SyscallGetSysvar                      = "sol_get_sysvar"
)

//go:generate mockgen -package=solanamock -destination=solanamock/syscalls.go github.com/wippyai/sbf-stubs/solana Syscalls

// Syscalls is the capability set program logic expects from its runtime.
// The harness supplies an implementation; the program-side adapter also
// implements it by forwarding across the boundary.
//
// Sysvar getters write the sysvar's C layout into dst and return a status
// code. GetEpochStake takes nil for the total active stake.
type Syscalls interface {
	Log(message string)
	LogComputeUnits()
	RemainingComputeUnits() uint64
	InvokeSigned(instruction *Instruction, accounts []AccountInfo, signerSeeds [][][]byte) error
	GetClockSysvar(dst []byte) uint64
	GetEpochScheduleSysvar(dst []byte) uint64
	GetFeesSysvar(dst []byte) uint64
	GetRentSysvar(dst []byte) uint64
	GetLastRestartSlot(dst []byte) uint64
	GetEpochRewardsSysvar(dst []byte) uint64
	GetEpochStake(voteAddress *Pubkey) uint64
	Memcpy(dst, src []byte)
	Memmove(dst, src []byte)
	Memcmp(s1, s2 []byte) int32
	Memset(dst []byte, c byte)
	GetReturnData() (ReturnData, bool)
	SetReturnData(data []byte)
	LogData(fields [][]byte)
	GetProcessedSiblingInstruction(index uint64) (Instruction, bool)
	GetStackHeight() uint64
	GetSysvar(id Pubkey, dst []byte, offset uint64) uint64
}

// Unimplemented is the default implementation installed before anything is
// registered. Every operation panics naming the syscall, so a missing
// registration is never silently ignored.
type Unimplemented struct{}

var _ Syscalls = Unimplemented{}

func fail(name string) {
	panic(errors.Unimplemented(name))
}

func (Unimplemented) Log(string) { fail(SyscallLog) }

func (Unimplemented) LogComputeUnits() { fail(SyscallLogComputeUnits) }

func (Unimplemented) RemainingComputeUnits() uint64 {
	fail(SyscallRemainingComputeUnits)
	return 0
}

func (Unimplemented) InvokeSigned(*Instruction, []AccountInfo, [][][]byte) error {
	fail(SyscallInvokeSigned)
	return nil
}

func (Unimplemented) GetClockSysvar([]byte) uint64 {
	fail(SyscallGetClockSysvar)
	return 0
}

func (Unimplemented) GetEpochScheduleSysvar([]byte) uint64 {
	fail(SyscallGetEpochScheduleSysvar)
	return 0
}

func (Unimplemented) GetFeesSysvar([]byte) uint64 {
	fail(SyscallGetFeesSysvar)
	return 0
}

func (Unimplemented) GetRentSysvar([]byte) uint64 {
	fail(SyscallGetRentSysvar)
	return 0
}

func (Unimplemented) GetLastRestartSlot([]byte) uint64 {
	fail(SyscallGetLastRestartSlot)
	return 0
}

func (Unimplemented) GetEpochRewardsSysvar([]byte) uint64 {
	fail(SyscallGetEpochRewardsSysvar)
	return 0
}

func (Unimplemented) GetEpochStake(*Pubkey) uint64 {
	fail(SyscallGetEpochStake)
	return 0
}

func (Unimplemented) Memcpy(_, _ []byte) { fail(SyscallMemcpy) }

func (Unimplemented) Memmove(_, _ []byte) { fail(SyscallMemmove) }

func (Unimplemented) Memcmp(_, _ []byte) int32 {
	fail(SyscallMemcmp)
	return 0
}

func (Unimplemented) Memset([]byte, byte) { fail(SyscallMemset) }

func (Unimplemented) GetReturnData() (ReturnData, bool) {
	fail(SyscallGetReturnData)
	return ReturnData{}, false
}

func (Unimplemented) SetReturnData([]byte) { fail(SyscallSetReturnData) }

func (Unimplemented) LogData([][]byte) { fail(SyscallLogData) }

func (Unimplemented) GetProcessedSiblingInstruction(uint64) (Instruction, bool) {
	fail(SyscallGetProcessedSiblingInstruction)
	return Instruction{}, false
}

func (Unimplemented) GetStackHeight() uint64 {
	fail(SyscallGetStackHeight)
	return 0
}

func (Unimplemented) GetSysvar(Pubkey, []byte, uint64) uint64 {
	fail(SyscallGetSysvar)
	return 0
}
