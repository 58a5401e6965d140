// Package wire defines the fixed, language-neutral layouts that cross the
// syscall boundary and converts them to and from native solana values.
//
// All records are little endian with 8-byte alignment for pointer-sized
// fields. Two conventions share most records:
//
//	v1: Instruction, BytesArray and friends are passed by value; results the
//	    callee allocates (ReturnData, OptionInstruction) transfer ownership
//	    and are consumed exactly once with Take.
//	v2: only addresses and lengths cross; records are SolInstruction,
//	    SolAccountMeta, SolAccountInfo and fat pointers ({addr, len}) that are
//	    reinterpreted at each level of nesting.
//
// Decoding never copies leaf byte buffers: the native slices returned are
// views of the address space, so pointer and length survive the round trip.
// Scratch records staged for one crossing are tracked by an Encoder and
// released together once the crossing returns.
package wire
