package abi

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sbf-stubs/errors"
)

func TestV2Entries_CoverTable(t *testing.T) {
	require := require.New(t)

	fields := reflect.TypeOf(TableV2{}).NumField()
	require.Len(V2Entries, fields, "every table entry needs a descriptor")

	seen := make(map[string]bool)
	for i, e := range V2Entries {
		require.False(seen[e.Name], "duplicate %s", e.Name)
		seen[e.Name] = true

		fn := reflect.TypeOf(TableV2{}).Field(i).Type
		assert.Equal(t, fn.NumIn(), e.Params, "%s params", e.Name)
		assert.Equal(t, fn.NumOut(), e.Results, "%s results", e.Name)

		got, ok := Lookup(e.Name)
		require.True(ok)
		require.Equal(e.Name, got.Name)
	}

	_, ok := Lookup("sol_log_64_")
	require.False(ok)
}

func TestV2Entries_Dispatch(t *testing.T) {
	var gotMsg, gotLen uint64
	table := &TableV2{
		SolLog: func(msg, n uint64) { gotMsg, gotLen = msg, n },
		SolInvokeSignedC: func(ix, infos, n, seeds, m uint64) uint64 {
			return ix + infos + n + seeds + m
		},
		SolGetStackHeight: func() uint64 { return 3 },
	}

	e, _ := Lookup("sol_log_")
	e.Invoke(table, []uint64{0x100, 12})
	assert.Equal(t, uint64(0x100), gotMsg)
	assert.Equal(t, uint64(12), gotLen)

	stack := []uint64{1, 2, 3, 4, 5}
	e, _ = Lookup("sol_invoke_signed_c")
	e.Invoke(table, stack)
	assert.Equal(t, uint64(15), stack[0])

	stack = []uint64{0}
	e, _ = Lookup("sol_get_stack_height")
	e.Invoke(table, stack)
	assert.Equal(t, uint64(3), stack[0])
}

func TestValidate(t *testing.T) {
	v2 := &TableV2{SolLog: func(uint64, uint64) {}}
	err := v2.Validate()
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseRegister, Kind: errors.KindNotFound})
	assert.Contains(t, err.Error(), "SolGetSysvar")
	assert.NotContains(t, err.Error(), "SolLog,")

	v1 := &TableV1{}
	err = v1.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvokeSigned")
}
