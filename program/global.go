package program

import (
	"fmt"
	"sync"

	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/abi"
	"github.com/wippyai/sbf-stubs/solana"
)

var (
	mu      sync.RWMutex
	current solana.Syscalls = solana.Unimplemented{}
)

// SetSyscalls installs s as the process-wide implementation and returns the
// previous one. Installing nil restores the fail-loud default.
func SetSyscalls(s solana.Syscalls) solana.Syscalls {
	if s == nil {
		s = solana.Unimplemented{}
	}
	mu.Lock()
	defer mu.Unlock()
	prev := current
	current = s
	return prev
}

// Syscalls returns the process-wide implementation.
func Syscalls() solana.Syscalls {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// InstallV1 installs an adapter over a struct-passing table.
func InstallV1(space sbfstubs.ProgramSpace, table *abi.TableV1) (solana.Syscalls, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return SetSyscalls(NewV1(space, table)), nil
}

// InstallV2 installs an adapter over a raw-pointer table.
func InstallV2(space sbfstubs.ProgramSpace, table *abi.TableV2) (solana.Syscalls, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return SetSyscalls(NewV2(space, table)), nil
}

// Log writes a message to the program log.
func Log(message string) {
	Syscalls().Log(message)
}

// Logf formats and logs a message.
func Logf(format string, args ...any) {
	Syscalls().Log(fmt.Sprintf(format, args...))
}

func LogComputeUnits() {
	Syscalls().LogComputeUnits()
}

func RemainingComputeUnits() uint64 {
	return Syscalls().RemainingComputeUnits()
}

// LogData logs each field as base64.
func LogData(fields ...[]byte) {
	Syscalls().LogData(fields)
}

// Invoke runs a cross-program invocation without signer seeds.
func Invoke(ix *solana.Instruction, accounts []solana.AccountInfo) error {
	return Syscalls().InvokeSigned(ix, accounts, nil)
}

// InvokeSigned runs a cross-program invocation. Each seed set derives a
// program address that signs for this call.
func InvokeSigned(ix *solana.Instruction, accounts []solana.AccountInfo, signerSeeds ...[][]byte) error {
	return Syscalls().InvokeSigned(ix, accounts, signerSeeds)
}

func SetReturnData(data []byte) {
	Syscalls().SetReturnData(data)
}

// GetReturnData returns the most recent return data and the program that set it.
func GetReturnData() (solana.Pubkey, []byte, bool) {
	rd, ok := Syscalls().GetReturnData()
	return rd.ProgramID, rd.Data, ok
}

// GetProcessedSiblingInstruction returns the index-th most recently
// processed instruction at the current stack height.
func GetProcessedSiblingInstruction(index uint64) (solana.Instruction, bool) {
	return Syscalls().GetProcessedSiblingInstruction(index)
}

func GetStackHeight() uint64 {
	return Syscalls().GetStackHeight()
}

func GetEpochStake(voteAddress *solana.Pubkey) uint64 {
	return Syscalls().GetEpochStake(voteAddress)
}

// GetSysvar reads part of a sysvar account's data into dst.
func GetSysvar(id solana.Pubkey, dst []byte, offset uint64) error {
	switch Syscalls().GetSysvar(id, dst, offset) {
	case solana.Success:
		return nil
	case solana.OffsetLengthExceedsSysvar:
		return solana.ErrInvalidArgument
	default:
		return solana.ErrUnsupportedSysvar
	}
}

type cLayout interface {
	UnmarshalC(src []byte) error
}

func loadSysvar(v cLayout, size int, get func([]byte) uint64) error {
	buf := make([]byte, size)
	if status := get(buf); status != solana.Success {
		return solana.ErrorFromCode(status)
	}
	return v.UnmarshalC(buf)
}

func GetClock() (solana.Clock, error) {
	var v solana.Clock
	err := loadSysvar(&v, solana.ClockSize, Syscalls().GetClockSysvar)
	return v, err
}

func GetRent() (solana.Rent, error) {
	var v solana.Rent
	err := loadSysvar(&v, solana.RentSize, Syscalls().GetRentSysvar)
	return v, err
}

func GetEpochSchedule() (solana.EpochSchedule, error) {
	var v solana.EpochSchedule
	err := loadSysvar(&v, solana.EpochScheduleSize, Syscalls().GetEpochScheduleSysvar)
	return v, err
}

func GetFees() (solana.Fees, error) {
	var v solana.Fees
	err := loadSysvar(&v, solana.FeesSize, Syscalls().GetFeesSysvar)
	return v, err
}

func GetEpochRewards() (solana.EpochRewards, error) {
	var v solana.EpochRewards
	err := loadSysvar(&v, solana.EpochRewardsSize, Syscalls().GetEpochRewardsSysvar)
	return v, err
}

func GetLastRestartSlot() (uint64, error) {
	var v solana.LastRestartSlot
	err := loadSysvar(&v, solana.LastRestartSlotSize, Syscalls().GetLastRestartSlot)
	return v.LastRestartSlot, err
}

func Memcpy(dst, src []byte) {
	Syscalls().Memcpy(dst, src)
}

func Memmove(dst, src []byte) {
	Syscalls().Memmove(dst, src)
}

func Memcmp(s1, s2 []byte) int32 {
	return Syscalls().Memcmp(s1, s2)
}

func Memset(dst []byte, c byte) {
	Syscalls().Memset(dst, c)
}
