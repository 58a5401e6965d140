package wasmtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLEB128(t *testing.T) {
	tests := []struct {
		name string
		want []byte
		u    uint32
		s    int64
		sign bool
	}{
		{name: "u zero", u: 0, want: []byte{0x00}},
		{name: "u 127", u: 127, want: []byte{0x7f}},
		{name: "u 128", u: 128, want: []byte{0x80, 0x01}},
		{name: "u 624485", u: 624485, want: []byte{0xe5, 0x8e, 0x26}},
		{name: "s 63", s: 63, sign: true, want: []byte{0x3f}},
		{name: "s 64", s: 64, sign: true, want: []byte{0xc0, 0x00}},
		{name: "s -1", s: -1, sign: true, want: []byte{0x7f}},
		{name: "s -123456", s: -123456, sign: true, want: []byte{0xc0, 0xbb, 0x78}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := &writer{}
			if tc.sign {
				w.s64(tc.s)
			} else {
				w.u32(tc.u)
			}
			assert.Equal(t, tc.want, w.bytes())
		})
	}
}

func TestEncode_Header(t *testing.T) {
	m := &Module{Funcs: []Func{{Name: "f", Body: NewCode()}}}
	bin := m.Encode()
	assert.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, bin[:8])
}

func TestFuncIndex(t *testing.T) {
	m := &Module{
		Imports: []Import{{Module: "env", Name: "a"}, {Module: "env", Name: "b"}},
		Funcs:   []Func{{Name: "c", Body: NewCode()}},
	}
	assert.Equal(t, uint32(1), m.FuncIndex("b"))
	assert.Equal(t, uint32(2), m.FuncIndex("c"))
	assert.Panics(t, func() { m.FuncIndex("d") })
}

func TestCode(t *testing.T) {
	c := NewCode().I64(1).LocalGet(0).I64Add().LocalSet(1).Call(3).Drop()
	assert.Equal(t, []byte{0x42, 0x01, 0x20, 0x00, 0x7c, 0x21, 0x01, 0x10, 0x03, 0x1a}, c.w.bytes())
}
