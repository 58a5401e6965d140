package solana

import (
	"bytes"
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sbf-stubs/errors"
)

func TestPubkey_Base58(t *testing.T) {
	require := require.New(t)

	var pk Pubkey
	for i := range pk {
		pk[i] = byte(i + 1)
	}
	parsed, err := ParsePubkey(pk.String())
	require.NoError(err)
	require.Equal(pk, parsed)

	require.Equal("11111111111111111111111111111111", SystemProgramID.String())
	require.True(SystemProgramID.IsZero())

	_, err = ParsePubkey("abc")
	require.ErrorIs(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindSizeMismatch})

	_, err = ParsePubkey("0OIl")
	require.Error(err)
}

func TestPubkey_Text(t *testing.T) {
	var pk Pubkey
	require.NoError(t, pk.UnmarshalText([]byte(ClockID.String())))
	assert.Equal(t, ClockID, pk)

	text, err := ClockID.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "SysvarC1ock11111111111111111111111111111111", string(text))
}

func TestSysvarIDsDistinct(t *testing.T) {
	ids := []Pubkey{ClockID, RentID, EpochScheduleID, FeesID, EpochRewardsID, LastRestartSlotID}
	seen := make(map[Pubkey]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate sysvar id %s", id)
		seen[id] = true
	}
}

func TestAccountInfo_Realloc(t *testing.T) {
	require := require.New(t)

	backing := make([]byte, 100, 100+MaxPermittedDataIncrease)
	for i := range backing {
		backing[i] = 0xEE
	}
	lamports := uint64(500)
	info := NewAccountInfo(Pubkey{1}, Pubkey{2}, &lamports, &backing)
	ptr := info.DataPtr()

	require.NoError(info.Realloc(40, false))
	require.Equal(40, info.DataLen())
	require.Equal(ptr, info.DataPtr())

	require.NoError(info.Realloc(60, true))
	require.Equal(make([]byte, 20), info.Bytes()[40:60])
	require.Equal(byte(0xEE), info.Bytes()[39])

	require.ErrorIs(info.Realloc(100+MaxPermittedDataIncrease+1, false), ErrInvalidRealloc)
	require.Equal(ptr, info.DataPtr())

	// copies share the slice header
	alias := info
	require.NoError(alias.Realloc(10, false))
	require.Equal(10, info.DataLen())
	require.Equal(uint64(500), alias.Balance())
}

func TestProgramError_Codes(t *testing.T) {
	tests := []struct {
		err  ProgramError
		code uint64
	}{
		{ErrCustomZero, 1 << 32},
		{ErrInvalidArgument, 2 << 32},
		{ErrMissingRequiredSignatures, 8 << 32},
		{ErrInvalidRealloc, 20 << 32},
		{CustomError(0), 1 << 32},
		{CustomError(42), 42},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, ErrorCode(tt.err))
			assert.Equal(t, tt.err, ErrorFromCode(tt.code))
		})
	}

	n, ok := CustomError(7).Custom()
	assert.True(t, ok)
	assert.Equal(t, uint32(7), n)

	_, ok = ErrInvalidSeeds.Custom()
	assert.False(t, ok)

	assert.Equal(t, Success, ErrorCode(nil))
	assert.NoError(t, ErrorFromCode(Success))
	assert.Equal(t, uint64(ErrInvalidArgument), ErrorCode(errors.InvalidInput(errors.PhaseInvoke, "x")))
	assert.Contains(t, CustomError(0x1f).Error(), "0x1f")
}

func TestSysvar_CLayouts(t *testing.T) {
	t.Run("clock", func(t *testing.T) {
		in := Clock{Slot: 7, EpochStartTimestamp: -3, Epoch: 2, LeaderScheduleEpoch: 3, UnixTimestamp: 1700000000}
		buf := make([]byte, ClockSize)
		in.MarshalC(buf)
		var out Clock
		require.NoError(t, out.UnmarshalC(buf))
		assert.Equal(t, in, out)
	})

	t.Run("rent", func(t *testing.T) {
		buf := bytes.Repeat([]byte{0xFF}, RentSize)
		DefaultRent.MarshalC(buf)
		assert.Equal(t, make([]byte, RentSize-17), buf[17:], "padding cleared")
		var out Rent
		require.NoError(t, out.UnmarshalC(buf))
		assert.Equal(t, DefaultRent, out)
	})

	t.Run("epoch schedule", func(t *testing.T) {
		in := EpochSchedule{SlotsPerEpoch: 432000, LeaderScheduleSlotOffset: 432000, Warmup: true, FirstNormalEpoch: 14, FirstNormalSlot: 524256}
		buf := make([]byte, EpochScheduleSize)
		in.MarshalC(buf)
		assert.Equal(t, byte(1), buf[16])
		var out EpochSchedule
		require.NoError(t, out.UnmarshalC(buf))
		assert.Equal(t, in, out)
	})

	t.Run("epoch rewards", func(t *testing.T) {
		in := EpochRewards{
			DistributionStartingBlockHeight: 10,
			NumPartitions:                   4,
			ParentBlockhash:                 [32]byte{9, 9, 9},
			TotalPoints:                     Uint128{Lo: 5, Hi: 1},
			TotalRewards:                    1000,
			DistributedRewards:              250,
			Active:                          true,
		}
		buf := make([]byte, EpochRewardsSize)
		in.MarshalC(buf)
		var out EpochRewards
		require.NoError(t, out.UnmarshalC(buf))
		assert.Equal(t, in, out)
	})

	t.Run("short buffer", func(t *testing.T) {
		var c Clock
		err := c.UnmarshalC(make([]byte, ClockSize-1))
		require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindSizeMismatch})
	})
}

func TestSysvar_BorshMatchesPackedLayout(t *testing.T) {
	require := require.New(t)

	clock := Clock{Slot: 1, EpochStartTimestamp: 2, Epoch: 3, LeaderScheduleEpoch: 4, UnixTimestamp: 5}
	data, err := borsh.Serialize(clock)
	require.NoError(err)

	// Clock has no padding, so the account-data form equals the C layout.
	c := make([]byte, ClockSize)
	clock.MarshalC(c)
	require.Equal(c, data)

	rent, err := borsh.Serialize(DefaultRent)
	require.NoError(err)
	require.Len(rent, 17)
}

func TestProgramAddress(t *testing.T) {
	require := require.New(t)
	programID := Pubkey{0xAA, 0xBB}
	seeds := [][]byte{[]byte("vault"), {1, 2, 3}}

	pda, bump, err := FindProgramAddress(seeds, programID)
	require.NoError(err)
	require.False(IsOnCurve(pda[:]))

	again, err := CreateProgramAddress(append(seeds, []byte{bump}), programID)
	require.NoError(err)
	require.Equal(pda, again)

	other, _, err := FindProgramAddress(seeds, Pubkey{0xCC})
	require.NoError(err)
	require.NotEqual(pda, other)

	_, err = CreateProgramAddress([][]byte{make([]byte, MaxSeedLen+1)}, programID)
	require.ErrorIs(err, ErrMaxSeedLengthExceeded)

	tooMany := make([][]byte, MaxSeeds+1)
	_, err = CreateProgramAddress(tooMany, programID)
	require.ErrorIs(err, ErrMaxSeedLengthExceeded)
}

func TestUnimplemented_Panics(t *testing.T) {
	var s Syscalls = Unimplemented{}

	tests := []struct {
		name string
		call func()
	}{
		{SyscallLog, func() { s.Log("x") }},
		{SyscallInvokeSigned, func() { _ = s.InvokeSigned(&Instruction{}, nil, nil) }},
		{SyscallGetReturnData, func() { s.GetReturnData() }},
		{SyscallGetSysvar, func() { s.GetSysvar(ClockID, nil, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(*errors.Error)
				require.True(t, ok)
				assert.Equal(t, errors.KindUnimplemented, err.Kind)
				assert.Equal(t, tt.name, err.Syscall)
			}()
			tt.call()
		})
	}
}
