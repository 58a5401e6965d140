// Package program is the program side of the boundary. An adapter implements
// solana.Syscalls by staging native arguments into the shared space, calling
// the matching dispatch table entry and adopting the results, so program
// logic written against solana.Syscalls runs unchanged off-chain.
//
// Account data handed to InvokeSigned must already live in the space,
// because the callee resizes it in place. NewAccount allocates such data
// with room to grow by solana.MaxPermittedDataIncrease. Every other input is
// referenced when resident and copied into scratch memory otherwise.
//
// A process-wide slot holds the active adapter. The package-level functions
// (Log, Invoke, GetClock and friends) forward to it.
package program
