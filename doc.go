// Package sbfstubs lets on-chain program logic that expects the SBF syscall
// ABI run off-chain against a harness, by marshalling every syscall across a
// flat, fixed-layout boundary.
//
// # Architecture Overview
//
//	sbfstubs/            Root package with the Memory, Allocator and Space interfaces
//	├── solana/          Native types and the Syscalls capability set
//	├── memory/          In-process arena address space
//	├── wire/            Fixed wire layouts for both conventions
//	├── abi/             Dispatch tables (v1 struct passing, v2 raw pointers)
//	├── harness/         Router that forwards crossings to the registered implementation
//	├── program/         Adapter that turns native calls into table calls
//	├── bank/            Reference in-memory harness implementation
//	├── engine/          wazero host module exposing the v2 table as "env"
//	├── errors/          Structured error types
//	└── cmd/stubrun/     CLI running a wasm program against a scenario bank
//
// # Quick Start
//
// Wire a program-side adapter straight to a harness router in one process:
//
//	arena := memory.New()
//	b := bank.New().WithProgramID(programID)
//	router := harness.NewRouter()
//	router.Register(b)
//
//	program.InstallV2(arena, router.TableV2(arena))
//	program.Log("hello")
//
// Or run a guest module that imports the real syscall names:
//
//	eng, _ := engine.New(ctx, nil)
//	defer eng.Close(ctx)
//	eng.Install(ctx, router)
//	prog, _ := eng.Load(ctx, wasmBytes)
//	inst, _ := prog.Instantiate(ctx)
//	inst.Call(ctx, "run")
//
// # Conventions
//
// The v1 convention passes whole wire structs by value and transfers
// ownership of callee-allocated results. The v2 convention passes only u64
// values, mirrors the real syscall names, and reads variable-sized results in
// two phases: query the size, then fill a caller-provided buffer.
package sbfstubs
