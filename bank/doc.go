// Package bank is an in-memory solana.Syscalls implementation for tests and
// local runs. It records logs, relays a compute meter, keeps return data and
// sibling instructions with the runtime's reset rules, serves sysvars in both
// their C and account-data forms, and dispatches cross-program invocations
// to processors registered per program id.
//
// Processors run synchronously on the caller's goroutine and may call back
// into the bank, directly or through a program-side adapter.
package bank
