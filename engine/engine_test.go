package engine

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sbf-stubs/bank"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/harness"
	"github.com/wippyai/sbf-stubs/internal/wasmtest"
	"github.com/wippyai/sbf-stubs/solana"
)

var programID = solana.Pubkey{7, 7, 7}

// newEngine returns an installed engine routed to a fresh bank.
func newEngine(t *testing.T) (*Engine, *bank.Bank) {
	t.Helper()
	ctx := context.Background()

	b := bank.New().WithProgramID(programID)
	router := harness.NewRouter()
	router.Register(b)

	e, err := New(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close(ctx) })
	require.NoError(t, e.Install(ctx, router))
	return e, b
}

func load(t *testing.T, e *Engine, m *wasmtest.Module) *Program {
	t.Helper()
	p, err := e.Load(context.Background(), m.Encode())
	require.NoError(t, err)
	return p
}

func logGuest() *wasmtest.Module {
	m := &wasmtest.Module{
		Imports: []wasmtest.Import{
			{Module: "env", Name: solana.SyscallLog, Params: 2},
			{Module: "env", Name: solana.SyscallGetStackHeight, Results: 1},
		},
		Data:  []wasmtest.Data{{Offset: 1024, Bytes: []byte("hello")}},
		Pages: 1,
	}
	m.Funcs = []wasmtest.Func{{
		Name:    "entry",
		Results: 1,
		Body: wasmtest.NewCode().
			I64(1024).I64(5).Call(m.FuncIndex(solana.SyscallLog)).
			Call(m.FuncIndex(solana.SyscallGetStackHeight)),
	}}
	return m
}

func TestNew_Defaults(t *testing.T) {
	ctx := context.Background()
	e, err := New(ctx, nil)
	require.NoError(t, err)
	defer e.Close(ctx)

	assert.Equal(t, DefaultModuleName, e.cfg.ModuleName)
	assert.NotNil(t, e.runtime)
}

func TestInstall_Twice(t *testing.T) {
	e, _ := newEngine(t)
	err := e.Install(context.Background(), harness.NewRouter())

	var se *errors.Error
	require.True(t, stderrors.As(err, &se))
	assert.Equal(t, errors.KindRegistration, se.Kind)
}

func TestLoad_ListsImportsAndExports(t *testing.T) {
	e, _ := newEngine(t)
	p := load(t, e, logGuest())

	assert.Equal(t, []string{"env#sol_log_", "env#sol_get_stack_height"}, p.Imports())
	assert.Equal(t, []Export{{Name: "entry", Results: 1}}, p.Exports())
}

func TestLoad_MissingImports(t *testing.T) {
	e, _ := newEngine(t)
	m := &wasmtest.Module{
		Imports: []wasmtest.Import{
			{Module: "env", Name: "sol_log_pubkey"},
			{Module: "other", Name: "thing"},
			{Module: "wasi_snapshot_preview1", Name: "sched_yield", Results: 1},
		},
		Funcs: []wasmtest.Func{{Name: "entry", Body: wasmtest.NewCode()}},
	}
	_, err := e.Load(context.Background(), m.Encode())

	var missing *errors.MissingImportsError
	require.True(t, stderrors.As(err, &missing))
	assert.Len(t, missing.Imports, 3)
	assert.Equal(t, "sol_log_pubkey", missing.Imports[0].Function)
}

func TestLoad_SignatureMismatch(t *testing.T) {
	e, _ := newEngine(t)
	m := &wasmtest.Module{
		Imports: []wasmtest.Import{{Module: "env", Name: solana.SyscallLog, Params: 1}},
		Funcs:   []wasmtest.Func{{Name: "entry", Body: wasmtest.NewCode()}},
	}
	_, err := e.Load(context.Background(), m.Encode())

	var se *errors.Error
	require.True(t, stderrors.As(err, &se))
	assert.Equal(t, errors.PhaseLoad, se.Phase)
	assert.Contains(t, se.Error(), "sol_log_")
}

func TestLoad_InvalidBinary(t *testing.T) {
	e, _ := newEngine(t)
	_, err := e.Load(context.Background(), []byte("not wasm"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.Load("", nil)))
}

func TestInstantiate_NotInstalled(t *testing.T) {
	ctx := context.Background()
	e, err := New(ctx, nil)
	require.NoError(t, err)
	defer e.Close(ctx)

	p, err := e.Load(ctx, logGuest().Encode())
	require.NoError(t, err)
	_, err = p.Instantiate(ctx)

	var se *errors.Error
	require.True(t, stderrors.As(err, &se))
	assert.Equal(t, errors.KindInstantiation, se.Kind)
}

func TestCall_LogReachesBank(t *testing.T) {
	e, b := newEngine(t)
	p := load(t, e, logGuest())

	res, err := p.Call(context.Background(), "entry")
	require.NoError(t, err)
	assert.Equal(t, []uint64{0}, res)
	assert.Contains(t, b.Logs(), "Program log: hello")
}

func TestCall_InsideInstruction(t *testing.T) {
	ctx := context.Background()
	e, b := newEngine(t)
	p := load(t, e, logGuest())

	inst, err := p.Instantiate(ctx)
	require.NoError(t, err)
	defer inst.Close(ctx)

	var height uint64
	b.Register(programID, func(solana.Pubkey, []solana.AccountInfo, []byte) error {
		res, err := inst.Call(ctx, "entry")
		if err != nil {
			return err
		}
		height = res[0]
		return nil
	})

	require.NoError(t, b.Process(&solana.Instruction{ProgramID: programID}, nil))
	assert.Equal(t, uint64(1), height)
	assert.Contains(t, b.Logs(), "Program log: hello")
}

func TestCall_ReturnDataTwoPhase(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t)

	m := &wasmtest.Module{
		Imports: []wasmtest.Import{
			{Module: "env", Name: solana.SyscallSetReturnData, Params: 2},
			{Module: "env", Name: solana.SyscallGetReturnData, Params: 3, Results: 1},
		},
		Data:  []wasmtest.Data{{Offset: 1024, Bytes: []byte("result")}},
		Pages: 1,
	}
	get := m.FuncIndex(solana.SyscallGetReturnData)
	m.Funcs = []wasmtest.Func{
		{
			Name: "set",
			Body: wasmtest.NewCode().I64(1024).I64(6).Call(m.FuncIndex(solana.SyscallSetReturnData)),
		},
		{
			Name:    "query",
			Results: 1,
			Body:    wasmtest.NewCode().I64(0).I64(0).I64(4096).Call(get),
		},
		{
			Name:    "fill",
			Params:  1,
			Results: 1,
			Body:    wasmtest.NewCode().I64(2048).LocalGet(0).I64(4096).Call(get),
		},
	}
	p := load(t, e, m)
	inst, err := p.Instantiate(ctx)
	require.NoError(t, err)
	defer inst.Close(ctx)

	_, err = inst.Call(ctx, "set")
	require.NoError(t, err)

	res, err := inst.Call(ctx, "query")
	require.NoError(t, err)
	require.Equal(t, uint64(6), res[0])

	res, err = inst.Call(ctx, "fill", res[0])
	require.NoError(t, err)
	assert.Equal(t, uint64(6), res[0])

	mem := inst.Memory()
	data, err := mem.Read(2048, 6)
	require.NoError(t, err)
	assert.Equal(t, "result", string(data))
	pid, err := mem.Read(4096, 32)
	require.NoError(t, err)
	assert.Equal(t, programID[:], pid)
}

func TestCall_SysvarIntoGuestMemory(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t)

	m := &wasmtest.Module{
		Imports: []wasmtest.Import{{Module: "env", Name: solana.SyscallGetRentSysvar, Params: 1, Results: 1}},
		Pages:   1,
	}
	m.Funcs = []wasmtest.Func{{
		Name:    "rent",
		Results: 1,
		Body:    wasmtest.NewCode().I64(512).Call(m.FuncIndex(solana.SyscallGetRentSysvar)),
	}}
	inst, err := load(t, e, m).Instantiate(ctx)
	require.NoError(t, err)
	defer inst.Close(ctx)

	res, err := inst.Call(ctx, "rent")
	require.NoError(t, err)
	assert.Equal(t, uint64(solana.Success), res[0])

	raw, err := inst.Memory().Read(512, solana.RentSize)
	require.NoError(t, err)
	var rent solana.Rent
	require.NoError(t, rent.UnmarshalC(raw))
	assert.Equal(t, solana.DefaultRent, rent)
}

func TestCall_FaultAbortsGuest(t *testing.T) {
	tests := []struct {
		name string
		ptr  int64
		kind errors.Kind
	}{
		{"null", 0, errors.KindNullPointer},
		{"out of bounds", 65530, errors.KindOutOfBounds},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newEngine(t)
			m := &wasmtest.Module{
				Imports: []wasmtest.Import{{Module: "env", Name: solana.SyscallLog, Params: 2}},
				Pages:   1,
			}
			m.Funcs = []wasmtest.Func{{
				Name: "entry",
				Body: wasmtest.NewCode().I64(tc.ptr).I64(16).Call(m.FuncIndex(solana.SyscallLog)),
			}}
			_, err := load(t, e, m).Call(context.Background(), "entry")

			var se *errors.Error
			require.True(t, stderrors.As(err, &se), "got %v", err)
			assert.Equal(t, tc.kind, se.Kind)
			assert.Equal(t, solana.SyscallLog, se.Syscall)
		})
	}
}

func TestCall_Unimplemented(t *testing.T) {
	ctx := context.Background()
	e, err := New(ctx, nil)
	require.NoError(t, err)
	defer e.Close(ctx)
	require.NoError(t, e.Install(ctx, harness.NewRouter()))

	p, err := e.Load(ctx, logGuest().Encode())
	require.NoError(t, err)
	_, err = p.Call(ctx, "entry")

	var se *errors.Error
	require.True(t, stderrors.As(err, &se))
	assert.Equal(t, errors.KindUnimplemented, se.Kind)
	assert.True(t, se.Fatal())
}

func TestCall_UnknownExport(t *testing.T) {
	e, _ := newEngine(t)
	_, err := load(t, e, logGuest()).Call(context.Background(), "missing")

	var se *errors.Error
	require.True(t, stderrors.As(err, &se))
	assert.Equal(t, errors.KindNotFound, se.Kind)
}

func TestCall_InstancesAreIndependent(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t)
	p := load(t, e, logGuest())

	a, err := p.Instantiate(ctx)
	require.NoError(t, err)
	defer a.Close(ctx)
	b, err := p.Instantiate(ctx)
	require.NoError(t, err)
	defer b.Close(ctx)

	require.NoError(t, a.Memory().Write(1024, []byte("HELLO")))
	got, err := b.Memory().Read(1024, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}
