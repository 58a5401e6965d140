package bank

import (
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

var (
	callerID = solana.Pubkey{0xC0}
	calleeID = solana.Pubkey{0xCE}
)

func account(key solana.Pubkey, signer, writable bool) solana.AccountInfo {
	lamports := uint64(100)
	data := make([]byte, 8, 64)
	info := solana.NewAccountInfo(key, solana.SystemProgramID, &lamports, &data)
	info.IsSigner = signer
	info.IsWritable = writable
	return info
}

func TestLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	b := New().WithLogger(zap.New(core)).WithComputeUnits(1000)

	b.Log("hello")
	b.LogData([][]byte{[]byte("ab"), {}})
	b.LogComputeUnits()

	assert.Equal(t, []string{
		"Program log: hello",
		"Program data: YWI= ",
		"Program consumption: 800 units remaining",
	}, b.Logs())
	assert.Equal(t, 3, logs.Len())
}

func TestComputeMeterSaturates(t *testing.T) {
	b := New().WithComputeUnits(150)
	b.Consume(100)
	assert.Equal(t, uint64(50), b.RemainingComputeUnits())
	b.Consume(100)
	assert.Zero(t, b.RemainingComputeUnits())

	b.Reset()
	assert.Equal(t, uint64(150), b.RemainingComputeUnits())
	assert.Empty(t, b.Logs())
}

func TestReturnData(t *testing.T) {
	b := New().WithProgramID(callerID)

	_, ok := b.GetReturnData()
	assert.False(t, ok)

	b.SetReturnData([]byte("hello"))
	rd, ok := b.GetReturnData()
	require.True(t, ok)
	assert.Equal(t, callerID, rd.ProgramID)
	assert.Equal(t, []byte("hello"), rd.Data)

	b.SetReturnData(nil)
	_, ok = b.GetReturnData()
	assert.False(t, ok)

	assert.Panics(t, func() { b.SetReturnData(make([]byte, solana.MaxReturnData+1)) })
}

func TestReturnDataClearedByInvocation(t *testing.T) {
	b := New()
	b.Register(calleeID, func(solana.Pubkey, []solana.AccountInfo, []byte) error { return nil })
	b.Register(callerID, func(_ solana.Pubkey, accounts []solana.AccountInfo, _ []byte) error {
		b.SetReturnData([]byte("mine"))
		if err := b.InvokeSigned(&solana.Instruction{ProgramID: calleeID}, accounts, nil); err != nil {
			return err
		}
		_, ok := b.GetReturnData()
		assert.False(t, ok, "callee starts with empty return data")
		return nil
	})
	require.NoError(t, b.Process(&solana.Instruction{ProgramID: callerID}, nil))
}

func TestSysvars(t *testing.T) {
	clock := solana.Clock{Slot: 7, Epoch: 2, UnixTimestamp: 99}
	b := New().WithClock(clock).WithLastRestartSlot(5)

	dst := make([]byte, solana.ClockSize)
	require.Equal(t, solana.Success, b.GetClockSysvar(dst))
	var got solana.Clock
	require.NoError(t, got.UnmarshalC(dst))
	assert.Equal(t, clock, got)

	assert.Equal(t, uint64(solana.ErrInvalidArgument), b.GetRentSysvar(make([]byte, 4)))

	slot := make([]byte, 8)
	require.Equal(t, solana.Success, b.GetSysvar(solana.LastRestartSlotID, slot, 0))
	assert.Equal(t, byte(5), slot[0])
}

func TestGetSysvarRanges(t *testing.T) {
	clock := solana.Clock{Slot: 1, EpochStartTimestamp: 2, Epoch: 3, LeaderScheduleEpoch: 4, UnixTimestamp: 5}
	b := New().WithClock(clock)
	full, err := borsh.Serialize(clock)
	require.NoError(t, err)

	part := make([]byte, 8)
	require.Equal(t, solana.Success, b.GetSysvar(solana.ClockID, part, 16))
	assert.Equal(t, full[16:24], part)

	assert.Equal(t, solana.OffsetLengthExceedsSysvar, b.GetSysvar(solana.ClockID, part, 36))
	assert.Equal(t, solana.OffsetLengthExceedsSysvar, b.GetSysvar(solana.ClockID, part, ^uint64(0)))
	assert.Equal(t, solana.SysvarNotFound, b.GetSysvar(solana.Pubkey{1}, part, 0))

	b.WithSysvarData(solana.Pubkey{1}, []byte{1, 2, 3})
	assert.Equal(t, solana.Success, b.GetSysvar(solana.Pubkey{1}, part[:2], 1))
	assert.Equal(t, []byte{2, 3}, part[:2])
}

func TestEpochStake(t *testing.T) {
	b := New().WithStake(solana.Pubkey{1}, 10).WithStake(solana.Pubkey{2}, 32)
	vote := solana.Pubkey{2}
	assert.Equal(t, uint64(32), b.GetEpochStake(&vote))
	assert.Equal(t, uint64(42), b.GetEpochStake(nil))
	missing := solana.Pubkey{3}
	assert.Zero(t, b.GetEpochStake(&missing))
}

func TestMemops(t *testing.T) {
	b := New()
	dst := make([]byte, 3)
	b.Memcpy(dst, []byte("abc"))
	assert.Equal(t, []byte("abc"), dst)

	buf := []byte("abcdef")
	b.Memmove(buf[2:], buf[:4])
	assert.Equal(t, []byte("ababcd"), buf)

	assert.Equal(t, int32(0), b.Memcmp([]byte("abc"), []byte("abc")))
	assert.Equal(t, int32('c')-int32('d'), b.Memcmp([]byte("abc"), []byte("abd")))

	b.Memset(dst, 'z')
	assert.Equal(t, []byte("zzz"), dst)
}

func TestStackHeightAndSiblings(t *testing.T) {
	b := New()
	first := solana.Instruction{ProgramID: callerID}
	second := solana.Instruction{ProgramID: callerID, Data: []byte{1}}

	var heights []uint64
	b.Register(calleeID, func(solana.Pubkey, []solana.AccountInfo, []byte) error {
		heights = append(heights, b.GetStackHeight())
		_, ok := b.GetProcessedSiblingInstruction(0)
		assert.False(t, ok, "first child has no siblings")
		return nil
	})
	b.Register(callerID, func(_ solana.Pubkey, accounts []solana.AccountInfo, data []byte) error {
		heights = append(heights, b.GetStackHeight())
		if len(data) == 0 {
			return nil
		}
		prev, ok := b.GetProcessedSiblingInstruction(0)
		assert.True(t, ok)
		assert.Equal(t, first, prev)
		return b.InvokeSigned(&solana.Instruction{ProgramID: calleeID, Data: []byte{9}}, accounts, nil)
	})

	var sibling solana.Instruction
	var found bool
	b.Register(solana.Pubkey{0xAA}, func(solana.Pubkey, []solana.AccountInfo, []byte) error {
		sibling, found = b.GetProcessedSiblingInstruction(0)
		_, deeper := b.GetProcessedSiblingInstruction(2)
		assert.False(t, deeper)
		return nil
	})

	require.NoError(t, b.ProcessTransaction(
		Step{Instruction: first},
		Step{Instruction: second},
		Step{Instruction: solana.Instruction{ProgramID: solana.Pubkey{0xAA}}},
	))
	assert.Equal(t, []uint64{1, 1, 2}, heights)
	require.True(t, found)
	assert.Equal(t, second, sibling)
	assert.Zero(t, b.GetStackHeight())
}

func TestInvokeRequiresAccounts(t *testing.T) {
	b := New()
	b.Register(calleeID, func(solana.Pubkey, []solana.AccountInfo, []byte) error { return nil })
	ix := &solana.Instruction{
		ProgramID: calleeID,
		Accounts:  []solana.AccountMeta{solana.NewAccountMeta(solana.Pubkey{1}, false)},
	}
	assert.ErrorIs(t, b.InvokeSigned(ix, nil, nil), solana.ErrNotEnoughAccountKeys)
}

func TestInvokeSignerPrivileges(t *testing.T) {
	b := New()
	var seen []solana.AccountInfo
	b.Register(calleeID, func(_ solana.Pubkey, accounts []solana.AccountInfo, _ []byte) error {
		seen = accounts
		return nil
	})

	pda, bump, err := solana.FindProgramAddress([][]byte{[]byte("vault")}, callerID)
	require.NoError(t, err)
	seeds := [][]byte{[]byte("vault"), {bump}}

	b.Register(callerID, func(_ solana.Pubkey, accounts []solana.AccountInfo, _ []byte) error {
		ix := &solana.Instruction{
			ProgramID: calleeID,
			Accounts:  []solana.AccountMeta{solana.NewAccountMeta(pda, true)},
		}
		if err := b.InvokeSigned(ix, accounts, nil); !assert.ErrorIs(t, err, solana.ErrMissingRequiredSignatures) {
			return err
		}
		return b.InvokeSigned(ix, accounts, [][][]byte{seeds})
	})

	vault := account(pda, false, true)
	require.NoError(t, b.Process(&solana.Instruction{
		ProgramID: callerID,
		Accounts:  []solana.AccountMeta{solana.NewAccountMeta(pda, false)},
	}, []solana.AccountInfo{vault}))

	require.Len(t, seen, 1)
	assert.True(t, seen[0].IsSigner)
	assert.Same(t, vault.Lamports, seen[0].Lamports)
}

func TestInvokeWritableEscalation(t *testing.T) {
	b := New()
	b.Register(calleeID, func(solana.Pubkey, []solana.AccountInfo, []byte) error { return nil })
	ro := account(solana.Pubkey{1}, false, false)
	ix := &solana.Instruction{
		ProgramID: calleeID,
		Accounts:  []solana.AccountMeta{solana.NewAccountMeta(ro.Key, false)},
	}
	assert.ErrorIs(t, b.InvokeSigned(ix, []solana.AccountInfo{ro}, nil), solana.ErrInvalidArgument)
}

func TestInvokeUnknownProgram(t *testing.T) {
	b := New()
	err := b.Process(&solana.Instruction{ProgramID: calleeID}, nil)
	assert.ErrorIs(t, err, solana.ErrIncorrectProgramID)
}

func TestInvokeDepthLimit(t *testing.T) {
	b := New()
	depth := 0
	b.Register(callerID, func(_ solana.Pubkey, accounts []solana.AccountInfo, _ []byte) error {
		depth++
		return b.InvokeSigned(&solana.Instruction{ProgramID: callerID}, accounts, nil)
	})
	err := b.Process(&solana.Instruction{ProgramID: callerID}, nil)
	assert.ErrorIs(t, err, solana.ErrMaxInstructionTraceLength)
	assert.Equal(t, solana.MaxInstructionStackDepth, depth)
}

func TestProcessorPanics(t *testing.T) {
	b := New()
	b.Register(callerID, func(solana.Pubkey, []solana.AccountInfo, []byte) error {
		panic(solana.CustomError(3))
	})
	assert.ErrorIs(t, b.Process(&solana.Instruction{ProgramID: callerID}, nil), solana.CustomError(3))
	assert.Contains(t, b.Logs()[1], "failed")

	b.Register(callerID, func(solana.Pubkey, []solana.AccountInfo, []byte) error {
		panic(errors.Unimplemented(solana.SyscallLog))
	})
	assert.Panics(t, func() { _ = b.Process(&solana.Instruction{ProgramID: callerID}, nil) })
}
