package engine

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/internal/wasmtest"
)

func newGuestMemory(t *testing.T) *guestMemory {
	t.Helper()
	e, _ := newEngine(t)
	m := &wasmtest.Module{
		Funcs: []wasmtest.Func{{Name: "nop", Body: wasmtest.NewCode()}},
		Pages: 1,
	}
	inst, err := load(t, e, m).Instantiate(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = inst.Close(context.Background()) })
	return inst.Memory().(*guestMemory)
}

func kindOf(t *testing.T, err error) errors.Kind {
	t.Helper()
	var se *errors.Error
	require.True(t, stderrors.As(err, &se), "got %v", err)
	return se.Kind
}

func TestGuestMemory_Size(t *testing.T) {
	assert.Equal(t, uint64(65536), newGuestMemory(t).Size())
}

func TestGuestMemory_ViewAliases(t *testing.T) {
	mem := newGuestMemory(t)

	v, err := mem.Read(100, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cap(v))
	copy(v, "abcd")

	w, err := mem.Read(100, 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(w))
}

func TestGuestMemory_Integers(t *testing.T) {
	mem := newGuestMemory(t)

	require.NoError(t, mem.WriteU8(8, 0xab))
	require.NoError(t, mem.WriteU32(16, 0xdeadbeef))
	require.NoError(t, mem.WriteU64(24, 1<<40+3))

	u8, err := mem.ReadU8(8)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xab), u8)
	u32, err := mem.ReadU32(16)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)
	u64, err := mem.ReadU64(24)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40+3), u64)

	raw, err := mem.Read(16, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, raw)
}

func TestGuestMemory_Faults(t *testing.T) {
	mem := newGuestMemory(t)

	_, err := mem.Read(0, 1)
	assert.Equal(t, errors.KindNullPointer, kindOf(t, err))
	err = mem.WriteU64(0, 1)
	assert.Equal(t, errors.KindNullPointer, kindOf(t, err))

	_, err = mem.Read(65535, 2)
	assert.Equal(t, errors.KindOutOfBounds, kindOf(t, err))
	_, err = mem.ReadU64(1 << 33)
	assert.Equal(t, errors.KindOutOfBounds, kindOf(t, err))
	err = mem.Write(^uint64(0), []byte{1})
	assert.Equal(t, errors.KindOutOfBounds, kindOf(t, err))
}

func TestGuestMemory_Empty(t *testing.T) {
	mem := newGuestMemory(t)

	v, err := mem.Read(0, 0)
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.NoError(t, mem.Write(0, nil))
}
