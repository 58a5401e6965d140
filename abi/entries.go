package abi

import (
	"github.com/wippyai/sbf-stubs/solana"
)

// Entry describes one v2 syscall as a host import: its fixed name, how many
// u64 parameters it takes, whether it returns a u64, and how to dispatch a
// raw value stack to a table. Results are written to stack[0].
type Entry struct {
	Invoke  func(t *TableV2, stack []uint64)
	Name    string
	Params  int
	Results int
}

// V2Entries lists every v2 syscall in table order.
var V2Entries = []Entry{
	{Name: solana.SyscallLog, Params: 2, Invoke: func(t *TableV2, s []uint64) {
		t.SolLog(s[0], s[1])
	}},
	{Name: solana.SyscallLogComputeUnits, Invoke: func(t *TableV2, _ []uint64) {
		t.SolLogComputeUnits()
	}},
	{Name: solana.SyscallRemainingComputeUnits, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolRemainingComputeUnits()
	}},
	{Name: solana.SyscallInvokeSigned, Params: 5, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolInvokeSignedC(s[0], s[1], s[2], s[3], s[4])
	}},
	{Name: solana.SyscallGetClockSysvar, Params: 1, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetClockSysvar(s[0])
	}},
	{Name: solana.SyscallGetEpochScheduleSysvar, Params: 1, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetEpochScheduleSysvar(s[0])
	}},
	{Name: solana.SyscallGetFeesSysvar, Params: 1, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetFeesSysvar(s[0])
	}},
	{Name: solana.SyscallGetRentSysvar, Params: 1, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetRentSysvar(s[0])
	}},
	{Name: solana.SyscallGetLastRestartSlot, Params: 1, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetLastRestartSlot(s[0])
	}},
	{Name: solana.SyscallGetEpochRewardsSysvar, Params: 1, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetEpochRewardsSysvar(s[0])
	}},
	{Name: solana.SyscallGetEpochStake, Params: 1, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetEpochStake(s[0])
	}},
	{Name: solana.SyscallMemcpy, Params: 3, Invoke: func(t *TableV2, s []uint64) {
		t.SolMemcpy(s[0], s[1], s[2])
	}},
	{Name: solana.SyscallMemmove, Params: 3, Invoke: func(t *TableV2, s []uint64) {
		t.SolMemmove(s[0], s[1], s[2])
	}},
	{Name: solana.SyscallMemcmp, Params: 4, Invoke: func(t *TableV2, s []uint64) {
		t.SolMemcmp(s[0], s[1], s[2], s[3])
	}},
	{Name: solana.SyscallMemset, Params: 3, Invoke: func(t *TableV2, s []uint64) {
		t.SolMemset(s[0], s[1], s[2])
	}},
	{Name: solana.SyscallGetReturnData, Params: 3, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetReturnData(s[0], s[1], s[2])
	}},
	{Name: solana.SyscallSetReturnData, Params: 2, Invoke: func(t *TableV2, s []uint64) {
		t.SolSetReturnData(s[0], s[1])
	}},
	{Name: solana.SyscallLogData, Params: 2, Invoke: func(t *TableV2, s []uint64) {
		t.SolLogData(s[0], s[1])
	}},
	{Name: solana.SyscallGetProcessedSiblingInstruction, Params: 5, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetProcessedSiblingInstruction(s[0], s[1], s[2], s[3], s[4])
	}},
	{Name: solana.SyscallGetStackHeight, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetStackHeight()
	}},
	{Name: solana.SyscallGetSysvar, Params: 4, Results: 1, Invoke: func(t *TableV2, s []uint64) {
		s[0] = t.SolGetSysvar(s[0], s[1], s[2], s[3])
	}},
}

var entriesByName = func() map[string]Entry {
	m := make(map[string]Entry, len(V2Entries))
	for _, e := range V2Entries {
		m[e.Name] = e
	}
	return m
}()

// Lookup finds a v2 entry by syscall name.
func Lookup(name string) (Entry, bool) {
	e, ok := entriesByName[name]
	return e, ok
}
