// Package wasmtest assembles small core wasm modules for tests. It covers
// only what guest fixtures need: i64 function imports, one memory, active
// data segments and function bodies written with the Code helpers.
package wasmtest

const (
	magic   = 0x6d736100
	version = 1

	secType     = 1
	secImport   = 2
	secFunction = 3
	secMemory   = 5
	secExport   = 7
	secCode     = 10
	secData     = 11

	kindFunc   = 0x00
	kindMemory = 0x02

	i64 = 0x7e
)

// Func is a defined function over i64 values.
type Func struct {
	Name    string
	Params  int
	Results int
	Locals  int
	Body    *Code
}

// Import is an i64 function import.
type Import struct {
	Module  string
	Name    string
	Params  int
	Results int
}

// Data is an active segment placed at Offset in memory 0.
type Data struct {
	Offset uint32
	Bytes  []byte
}

// Module is a core module under construction. Imported functions take the
// first indices, followed by Funcs in order.
type Module struct {
	Imports []Import
	Funcs   []Func
	Data    []Data

	// Pages of memory 0, exported as "memory". Zero means no memory.
	Pages uint32
}

// FuncIndex returns the index of an imported or defined function.
func (m *Module) FuncIndex(name string) uint32 {
	for i, imp := range m.Imports {
		if imp.Name == name {
			return uint32(i)
		}
	}
	for i, f := range m.Funcs {
		if f.Name == name {
			return uint32(len(m.Imports) + i)
		}
	}
	panic("wasmtest: unknown function " + name)
}

type sig struct{ params, results int }

// Encode returns the binary module.
func (m *Module) Encode() []byte {
	var sigs []sig
	typeOf := func(p, r int) uint32 {
		for i, s := range sigs {
			if s.params == p && s.results == r {
				return uint32(i)
			}
		}
		sigs = append(sigs, sig{p, r})
		return uint32(len(sigs) - 1)
	}
	importTypes := make([]uint32, len(m.Imports))
	for i, imp := range m.Imports {
		importTypes[i] = typeOf(imp.Params, imp.Results)
	}
	funcTypes := make([]uint32, len(m.Funcs))
	for i, f := range m.Funcs {
		funcTypes[i] = typeOf(f.Params, f.Results)
	}

	w := &writer{}
	w.u32le(magic)
	w.u32le(version)

	sec := &writer{}
	sec.u32(uint32(len(sigs)))
	for _, s := range sigs {
		sec.byte(0x60)
		sec.u32(uint32(s.params))
		for i := 0; i < s.params; i++ {
			sec.byte(i64)
		}
		sec.u32(uint32(s.results))
		for i := 0; i < s.results; i++ {
			sec.byte(i64)
		}
	}
	w.section(secType, sec)

	if len(m.Imports) > 0 {
		sec = &writer{}
		sec.u32(uint32(len(m.Imports)))
		for i, imp := range m.Imports {
			sec.name(imp.Module)
			sec.name(imp.Name)
			sec.byte(kindFunc)
			sec.u32(importTypes[i])
		}
		w.section(secImport, sec)
	}

	sec = &writer{}
	sec.u32(uint32(len(m.Funcs)))
	for _, t := range funcTypes {
		sec.u32(t)
	}
	w.section(secFunction, sec)

	if m.Pages > 0 {
		sec = &writer{}
		sec.u32(1)
		sec.byte(0x00)
		sec.u32(m.Pages)
		w.section(secMemory, sec)
	}

	sec = &writer{}
	exports := len(m.Funcs)
	if m.Pages > 0 {
		exports++
	}
	sec.u32(uint32(exports))
	for i, f := range m.Funcs {
		sec.name(f.Name)
		sec.byte(kindFunc)
		sec.u32(uint32(len(m.Imports) + i))
	}
	if m.Pages > 0 {
		sec.name("memory")
		sec.byte(kindMemory)
		sec.u32(0)
	}
	w.section(secExport, sec)

	sec = &writer{}
	sec.u32(uint32(len(m.Funcs)))
	for _, f := range m.Funcs {
		body := &writer{}
		if f.Locals > 0 {
			body.u32(1)
			body.u32(uint32(f.Locals))
			body.byte(i64)
		} else {
			body.u32(0)
		}
		body.raw(f.Body.w.bytes())
		body.byte(0x0b)
		sec.u32(uint32(len(body.bytes())))
		sec.raw(body.bytes())
	}
	w.section(secCode, sec)

	if len(m.Data) > 0 {
		sec = &writer{}
		sec.u32(uint32(len(m.Data)))
		for _, d := range m.Data {
			sec.u32(0)
			sec.byte(0x41) // i32.const
			sec.s64(int64(d.Offset))
			sec.byte(0x0b)
			sec.u32(uint32(len(d.Bytes)))
			sec.raw(d.Bytes)
		}
		w.section(secData, sec)
	}
	return w.bytes()
}

// Code is a function body under construction.
type Code struct {
	w writer
}

// NewCode starts an empty body.
func NewCode() *Code {
	return &Code{}
}

// I64 pushes a constant.
func (c *Code) I64(v int64) *Code {
	c.w.byte(0x42)
	c.w.s64(v)
	return c
}

// LocalGet pushes a parameter or local.
func (c *Code) LocalGet(i uint32) *Code {
	c.w.byte(0x20)
	c.w.u32(i)
	return c
}

// LocalSet pops into a parameter or local.
func (c *Code) LocalSet(i uint32) *Code {
	c.w.byte(0x21)
	c.w.u32(i)
	return c
}

// Call calls function index fn.
func (c *Code) Call(fn uint32) *Code {
	c.w.byte(0x10)
	c.w.u32(fn)
	return c
}

// Drop discards the top of the stack.
func (c *Code) Drop() *Code {
	c.w.byte(0x1a)
	return c
}

// I64Add adds the two top values.
func (c *Code) I64Add() *Code {
	c.w.byte(0x7c)
	return c
}
