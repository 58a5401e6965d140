package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sbf-stubs/errors"
)

func TestArena_AllocAlignment(t *testing.T) {
	a := NewWithConfig(&Config{Size: 4096})

	tests := []struct {
		size  uint64
		align uint64
	}{
		{1, 1},
		{3, 8},
		{40, 8},
		{7, 16},
		{32, 1},
		{0, 8},
	}

	for _, tt := range tests {
		addr, err := a.Alloc(tt.size, tt.align)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, addr, uint64(NullPage))
		assert.Zero(t, addr%tt.align, "addr %d not aligned to %d", addr, tt.align)
	}
	assert.Equal(t, len(tests), a.Stats().Live)
}

func TestArena_AllocRejectsBadAlignment(t *testing.T) {
	a := New()
	_, err := a.Alloc(8, 3)
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindInvalidInput})
}

func TestArena_Exhaustion(t *testing.T) {
	a := NewWithConfig(&Config{Size: 64})
	_, err := a.Alloc(64, 1)
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindAllocation})

	addr, err := a.Alloc(48, 1)
	require.NoError(t, err)
	require.NoError(t, a.Free(addr, 48, 1))

	again, err := a.Alloc(48, 1)
	require.NoError(t, err)
	assert.Equal(t, addr, again, "coalesced free list should satisfy the same request")
}

func TestArena_DoubleFree(t *testing.T) {
	a := New()
	addr, err := a.Alloc(32, 8)
	require.NoError(t, err)

	require.NoError(t, a.Free(addr, 32, 8))
	err = a.Free(addr, 32, 8)
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindDoubleFree})
	assert.Zero(t, a.Stats().Live)
}

func TestArena_FreeCoalesces(t *testing.T) {
	a := NewWithConfig(&Config{Size: 1024})
	before := a.Stats().FreeBytes

	var addrs []uint64
	for i := 0; i < 8; i++ {
		addr, err := a.Alloc(24, 8)
		require.NoError(t, err)
		addrs = append(addrs, addr)
	}
	// free out of order
	for _, i := range []int{3, 0, 7, 1, 5, 2, 6, 4} {
		require.NoError(t, a.Free(addrs[i], 24, 8))
	}

	s := a.Stats()
	assert.Zero(t, s.Live)
	assert.Equal(t, before, s.FreeBytes)
	assert.Len(t, a.free, 1)
}

func TestArena_ReadIsView(t *testing.T) {
	a := New()
	addr, err := a.Alloc(8, 1)
	require.NoError(t, err)

	v1, err := a.Read(addr, 8)
	require.NoError(t, err)
	v2, err := a.Read(addr, 8)
	require.NoError(t, err)

	v1[3] = 0xAB
	assert.Equal(t, byte(0xAB), v2[3])
	assert.Equal(t, 8, cap(v1))

	got, err := a.ReadU8(addr + 3)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), got)
}

func TestArena_IntegerRoundTrip(t *testing.T) {
	a := New()
	addr, err := a.Alloc(16, 8)
	require.NoError(t, err)

	require.NoError(t, a.WriteU64(addr, 0x0102030405060708))
	require.NoError(t, a.WriteU32(addr+8, 0xdeadbeef))

	v64, err := a.ReadU64(addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), v64)

	raw, err := a.Read(addr, 1)
	require.NoError(t, err)
	assert.Equal(t, byte(0x08), raw[0], "little endian")

	v32, err := a.ReadU32(addr + 8)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), v32)
}

func TestArena_Bounds(t *testing.T) {
	a := NewWithConfig(&Config{Size: 128})

	tests := []struct {
		name string
		addr uint64
		n    uint64
		kind errors.Kind
	}{
		{"null", 0, 8, errors.KindNullPointer},
		{"null page", 8, 1, errors.KindNullPointer},
		{"past end", 120, 16, errors.KindOutOfBounds},
		{"wraparound", 64, ^uint64(0), errors.KindOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Read(tt.addr, tt.n)
			require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseMemory, Kind: tt.kind})
		})
	}

	v, err := a.Read(0, 0)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestArena_AddrOf(t *testing.T) {
	a := New()
	view, addr, err := a.Put([]byte("seed"))
	require.NoError(t, err)

	got, ok := a.AddrOf(view)
	require.True(t, ok)
	assert.Equal(t, addr, got)

	got, ok = a.AddrOf(view[1:3])
	require.True(t, ok)
	assert.Equal(t, addr+1, got)

	_, ok = a.AddrOf([]byte("foreign"))
	assert.False(t, ok)

	got, ok = a.AddrOf(nil)
	assert.True(t, ok)
	assert.Zero(t, got)
}

func TestArena_AllocZeroes(t *testing.T) {
	a := NewWithConfig(&Config{Size: 256})
	addr, err := a.Alloc(16, 8)
	require.NoError(t, err)
	require.NoError(t, a.Write(addr, []byte("dirty dirty data")))
	require.NoError(t, a.Free(addr, 16, 8))

	addr, err = a.Alloc(16, 8)
	require.NoError(t, err)
	v, err := a.Read(addr, 16)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), v)
}
