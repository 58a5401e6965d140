package main

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/sbf-stubs/bank"
	"github.com/wippyai/sbf-stubs/engine"
	"github.com/wippyai/sbf-stubs/harness"
	"github.com/wippyai/sbf-stubs/solana"
)

// session is one loaded guest bound to one bank through a router.
type session struct {
	bank      *bank.Bank
	engine    *engine.Engine
	program   *engine.Program
	inst      *engine.Instance
	programID solana.Pubkey
	budget    uint64
}

// outcome is what one call produced.
type outcome struct {
	Err        error
	Results    []uint64
	Logs       []string
	ReturnData solana.ReturnData
	HasReturn  bool
	Consumed   uint64
}

func openSession(ctx context.Context, wasm []byte, sc *Scenario, log *zap.Logger, stdout io.Writer) (*session, error) {
	b, err := sc.Bank(log)
	if err != nil {
		return nil, err
	}
	id, _ := solana.ParsePubkey(sc.ProgramID)
	budget := sc.ComputeUnits
	if budget == 0 {
		budget = bank.DefaultComputeUnits
	}

	router := harness.NewRouter(harness.WithLogger(log))
	router.Register(b)

	e, err := engine.New(ctx, &engine.Config{EnableWASI: true, Stdout: stdout, Stderr: stdout})
	if err != nil {
		return nil, err
	}
	if err := e.Install(ctx, router); err != nil {
		_ = e.Close(ctx)
		return nil, err
	}
	p, err := e.Load(ctx, wasm)
	if err != nil {
		_ = e.Close(ctx)
		return nil, err
	}
	inst, err := p.Instantiate(ctx)
	if err != nil {
		_ = e.Close(ctx)
		return nil, err
	}
	return &session{
		bank:      b,
		engine:    e,
		program:   p,
		inst:      inst,
		programID: id,
		budget:    budget,
	}, nil
}

// call runs one export as a top-level instruction of the session's program.
func (s *session) call(ctx context.Context, name string, args []uint64) outcome {
	var results []uint64
	s.bank.Register(s.programID, func(solana.Pubkey, []solana.AccountInfo, []byte) error {
		var err error
		results, err = s.inst.Call(ctx, name, args...)
		return err
	})

	before := len(s.bank.Logs())
	err := s.bank.Process(&solana.Instruction{ProgramID: s.programID, Data: []byte(name)}, nil)

	out := outcome{
		Err:      err,
		Results:  results,
		Logs:     s.bank.Logs()[before:],
		Consumed: s.budget - s.bank.RemainingComputeUnits(),
	}
	out.ReturnData, out.HasReturn = s.bank.GetReturnData()
	return out
}

// entrypoint picks the export to call when none is named.
func (s *session) entrypoint() string {
	exports := s.program.Exports()
	for _, want := range []string{"entrypoint", "run", "main"} {
		for _, e := range exports {
			if e.Name == want {
				return want
			}
		}
	}
	if len(exports) == 1 {
		return exports[0].Name
	}
	return ""
}

func (s *session) close(ctx context.Context) {
	_ = s.inst.Close(ctx)
	_ = s.engine.Close(ctx)
}
