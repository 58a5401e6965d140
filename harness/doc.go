// Package harness is the harness side of the boundary: a Router that owns
// the single active solana.Syscalls implementation and binds dispatch tables
// whose entries decode wire arguments, call the implementation, and encode
// the results.
//
// Failures fall into four classes. Calling before anything is registered
// panics naming the syscall. A two-phase read whose sizes or source no
// longer match reports no data. A failed invocation returns -1 (v1) or the
// program error code (v2). A memory fault or a relocated account buffer is
// fatal and panics with an *errors.Error.
package harness
