package abi

import (
	"reflect"
	"strings"

	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/wire"
)

// Status values of the v1 invoke entry.
const (
	V1Success int64 = 0
	V1Failure int64 = -1
)

// TableV1 is the struct-passing dispatch table. Whole wire records travel by
// value; results the callee allocates come back owned and must be consumed
// with Take.
type TableV1 struct {
	Log                            func(message wire.Bytes)
	LogComputeUnits                func()
	RemainingComputeUnits          func() uint64
	InvokeSigned                   func(instruction wire.Instruction, accountInfos wire.AccountInfoSlice, signerSeeds wire.BytesArrayArray) int64
	GetClockSysvar                 func(dst uint64) uint64
	GetEpochScheduleSysvar         func(dst uint64) uint64
	GetFeesSysvar                  func(dst uint64) uint64
	GetRentSysvar                  func(dst uint64) uint64
	GetLastRestartSlot             func(dst uint64) uint64
	GetEpochRewardsSysvar          func(dst uint64) uint64
	GetEpochStake                  func(voteAddress uint64) uint64
	Memcpy                         func(dst, src, n uint64)
	Memmove                        func(dst, src, n uint64)
	Memcmp                         func(s1, s2, n, result uint64)
	Memset                         func(dst uint64, c uint8, n uint64)
	GetReturnData                  func() wire.ReturnData
	SetReturnData                  func(data wire.Bytes)
	LogData                        func(fields wire.BytesArray)
	GetProcessedSiblingInstruction func(index uint64) wire.OptionInstruction
	GetStackHeight                 func() uint64
	GetSysvar                      func(id, dst, offset, length uint64) uint64
}

// Validate reports every entry left nil.
func (t *TableV1) Validate() error {
	return missing("v1", reflect.ValueOf(t).Elem())
}

// TableV2 is the raw-pointer dispatch table. Every argument and result is a
// u64 and the entries mirror the real syscalls one to one.
type TableV2 struct {
	SolLog                            func(message, length uint64)
	SolLogComputeUnits                func()
	SolRemainingComputeUnits          func() uint64
	SolInvokeSignedC                  func(instruction, accountInfos, accountInfosLen, signerSeeds, signerSeedsLen uint64) uint64
	SolGetClockSysvar                 func(dst uint64) uint64
	SolGetEpochScheduleSysvar         func(dst uint64) uint64
	SolGetFeesSysvar                  func(dst uint64) uint64
	SolGetRentSysvar                  func(dst uint64) uint64
	SolGetLastRestartSlot             func(dst uint64) uint64
	SolGetEpochRewardsSysvar          func(dst uint64) uint64
	SolGetEpochStake                  func(voteAddress uint64) uint64
	SolMemcpy                         func(dst, src, n uint64)
	SolMemmove                        func(dst, src, n uint64)
	SolMemcmp                         func(s1, s2, n, result uint64)
	SolMemset                         func(dst, c, n uint64)
	SolGetReturnData                  func(data, length, programID uint64) uint64
	SolSetReturnData                  func(data, length uint64)
	SolLogData                        func(fields, length uint64)
	SolGetProcessedSiblingInstruction func(index, meta, programID, data, accounts uint64) uint64
	SolGetStackHeight                 func() uint64
	SolGetSysvar                      func(id, dst, offset, length uint64) uint64
}

// Validate reports every entry left nil.
func (t *TableV2) Validate() error {
	return missing("v2", reflect.ValueOf(t).Elem())
}

func missing(convention string, v reflect.Value) error {
	var names []string
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).IsNil() {
			names = append(names, v.Type().Field(i).Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return errors.New(errors.PhaseRegister, errors.KindNotFound).
		Detail("%s table missing entries: %s", convention, strings.Join(names, ", ")).
		Build()
}
