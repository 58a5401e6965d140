// Package abi defines the two dispatch tables that cross the boundary.
//
// TableV1 passes whole wire records by value. TableV2 passes only u64
// values and uses the real syscall names, so a table can be exported as host
// imports without adaptation; V2Entries carries the name and arity of each
// entry for that purpose.
//
// A table is plain data: the harness builds one bound to its router and an
// address space, and the program side calls through it.
package abi
