// Package errors provides structured error types for the syscall stub layer.
//
// Errors are categorized by Phase (which side of a crossing failed) and Kind
// (error category). The Error type carries the syscall name, the wire address
// involved, a field path and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
//		Syscall("sol_invoke_signed_c").
//		Path("account_infos", "3", "data").
//		Addr(0x4000).
//		Detail("data_len exceeds space").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unimplemented("sol_log_")
//	err := errors.OutOfBounds(errors.PhaseMemory, addr, n, size)
//
// Errors of kind unimplemented and invariant are raised as panics by the
// router and the adapter; everything else is returned.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
