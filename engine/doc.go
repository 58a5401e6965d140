// Package engine runs WebAssembly builds of on-chain programs against a
// harness router.
//
// The engine exports every v2 syscall as a host function of module "env"
// under its real name (sol_log_, sol_invoke_signed_c, ...). Every parameter
// and result is an i64, matching the raw-pointer table one to one. When a
// guest calls one, the engine binds a v2 table to that guest's linear memory
// and forwards the call, so the active implementation sees native values.
//
// # Flow
//
//  1. New creates the wazero runtime.
//  2. Install exports the syscall host module wired to a router.
//  3. Load compiles a guest and rejects imports the host cannot satisfy.
//  4. Program.Instantiate creates an Instance; Instance.Call runs an export.
//
// # Faults
//
// Fatal conditions (an unimplemented syscall, a memory fault inside a
// syscall, a relocated account buffer) abort the guest. Instance.Call
// returns the *errors.Error that caused the abort.
//
// # Thread Safety
//
// Engine and Program are safe for concurrent use. Instance is NOT
// thread-safe and should be used by a single goroutine.
//
// # Known Limitations
//
// Guest memory is 32-bit; addresses above 4GB fault. The v1 struct-passing
// table has no wasm binding because its entries exchange Go values.
package engine
