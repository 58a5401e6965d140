// Package solana defines the native side of the syscall boundary: account
// addresses, instructions, account views, sysvars, program errors, and the
// Syscalls capability set that program logic calls into.
//
// Nothing in this package knows about wire layouts. The wire package converts
// these values to and from fixed-layout records.
package solana
