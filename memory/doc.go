// Package memory provides Arena, an in-process address space used when the
// program side and the harness side share one Go process.
//
// Program-side account data must live inside the arena so that its wire
// address can be handed across the boundary without copying; see
// Arena.AddrOf. Harness-side views returned by Read alias the same bytes, so
// a change made by the implementation is immediately visible to the program.
package memory
