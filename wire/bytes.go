package wire

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
)

// Bytes is a borrowed byte buffer: an address and a length.
type Bytes struct {
	Ptr uint64
	Len uint64
}

// BytesArray points at Len consecutive Bytes records.
type BytesArray struct {
	Ptr uint64
	Len uint64
}

// BytesArrayArray points at Len consecutive BytesArray records.
type BytesArrayArray struct {
	Ptr uint64
	Len uint64
}

// FatPointer is the v2 {addr, len} pair. What it points at depends on the
// level being decoded.
type FatPointer struct {
	Addr uint64
	Len  uint64
}

// View returns the bytes b refers to without copying. A null, empty buffer
// decodes to nil.
func (b Bytes) View(mem sbfstubs.Memory) ([]byte, error) {
	return view(mem, b.Ptr, b.Len)
}

func view(mem sbfstubs.Memory, addr, n uint64) ([]byte, error) {
	if addr == 0 {
		if n == 0 {
			return nil, nil
		}
		return nil, errors.NullPointer(errors.PhaseDecode)
	}
	return mem.Read(addr, n)
}

func readPairs(mem sbfstubs.Memory, addr, n uint64) ([]FatPointer, error) {
	if n == 0 {
		return nil, nil
	}
	size, err := arraySize(n, FatPointerSize)
	if err != nil {
		return nil, err
	}
	raw, err := view(mem, addr, size)
	if err != nil {
		return nil, err
	}
	out := make([]FatPointer, n)
	for i := range out {
		rec := raw[i*FatPointerSize:]
		out[i] = FatPointer{Addr: le.Uint64(rec), Len: le.Uint64(rec[8:])}
	}
	return out, nil
}

func writePairs(e *Encoder, pairs []FatPointer) (uint64, error) {
	if len(pairs) == 0 {
		return 0, nil
	}
	addr, err := e.Alloc(uint64(len(pairs))*FatPointerSize, PointerAlign)
	if err != nil {
		return 0, err
	}
	raw, err := e.space.Read(addr, uint64(len(pairs))*FatPointerSize)
	if err != nil {
		return 0, err
	}
	for i, p := range pairs {
		rec := raw[i*FatPointerSize:]
		le.PutUint64(rec, p.Addr)
		le.PutUint64(rec[8:], p.Len)
	}
	return addr, nil
}

// Elems returns the Bytes records a points at.
func (a BytesArray) Elems(mem sbfstubs.Memory) ([]Bytes, error) {
	pairs, err := readPairs(mem, a.Ptr, a.Len)
	if err != nil {
		return nil, err
	}
	out := make([]Bytes, len(pairs))
	for i, p := range pairs {
		out[i] = Bytes{Ptr: p.Addr, Len: p.Len}
	}
	return out, nil
}

// Decode returns views of every buffer in a.
func (a BytesArray) Decode(mem sbfstubs.Memory) ([][]byte, error) {
	elems, err := a.Elems(mem)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(elems))
	for i, b := range elems {
		if out[i], err = b.View(mem); err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
				Path(index("bytes", i)...).Addr(b.Ptr).Cause(err).Build()
		}
	}
	return out, nil
}

// Elems returns the BytesArray records a points at.
func (a BytesArrayArray) Elems(mem sbfstubs.Memory) ([]BytesArray, error) {
	pairs, err := readPairs(mem, a.Ptr, a.Len)
	if err != nil {
		return nil, err
	}
	out := make([]BytesArray, len(pairs))
	for i, p := range pairs {
		out[i] = BytesArray{Ptr: p.Addr, Len: p.Len}
	}
	return out, nil
}

// Decode returns views of every buffer at every level of a.
func (a BytesArrayArray) Decode(mem sbfstubs.Memory) ([][][]byte, error) {
	elems, err := a.Elems(mem)
	if err != nil {
		return nil, err
	}
	out := make([][][]byte, len(elems))
	for i, inner := range elems {
		if out[i], err = inner.Decode(mem); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeBytes references b for the callee to read.
func EncodeBytes(e *Encoder, b []byte) (Bytes, error) {
	addr, err := e.Ref(b)
	if err != nil {
		return Bytes{}, err
	}
	return Bytes{Ptr: addr, Len: uint64(len(b))}, nil
}

// EncodeBytesArray writes one Bytes record per buffer.
func EncodeBytesArray(e *Encoder, bufs [][]byte) (BytesArray, error) {
	addr, n, err := EncodeByteSlices(e, bufs)
	if err != nil {
		return BytesArray{}, err
	}
	return BytesArray{Ptr: addr, Len: n}, nil
}

// EncodeBytesArrayArray writes the three-level structure used for signer seeds.
func EncodeBytesArrayArray(e *Encoder, sets [][][]byte) (BytesArrayArray, error) {
	if len(sets) == 0 {
		return BytesArrayArray{}, nil
	}
	pairs := make([]FatPointer, len(sets))
	for i, set := range sets {
		inner, err := EncodeBytesArray(e, set)
		if err != nil {
			return BytesArrayArray{}, err
		}
		pairs[i] = FatPointer{Addr: inner.Ptr, Len: inner.Len}
	}
	addr, err := writePairs(e, pairs)
	if err != nil {
		return BytesArrayArray{}, err
	}
	return BytesArrayArray{Ptr: addr, Len: uint64(len(sets))}, nil
}

// EncodeByteSlices writes a fat pointer per buffer and returns the array address and count.
func EncodeByteSlices(e *Encoder, bufs [][]byte) (uint64, uint64, error) {
	if len(bufs) == 0 {
		return 0, 0, nil
	}
	pairs := make([]FatPointer, len(bufs))
	for i, b := range bufs {
		addr, err := e.Ref(b)
		if err != nil {
			return 0, 0, err
		}
		pairs[i] = FatPointer{Addr: addr, Len: uint64(len(b))}
	}
	addr, err := writePairs(e, pairs)
	if err != nil {
		return 0, 0, err
	}
	return addr, uint64(len(bufs)), nil
}

// EncodeSeeds writes signer seeds as fat pointers to fat pointers.
func EncodeSeeds(e *Encoder, sets [][][]byte) (uint64, uint64, error) {
	if len(sets) == 0 {
		return 0, 0, nil
	}
	pairs := make([]FatPointer, len(sets))
	for i, set := range sets {
		addr, n, err := EncodeByteSlices(e, set)
		if err != nil {
			return 0, 0, err
		}
		pairs[i] = FatPointer{Addr: addr, Len: n}
	}
	addr, err := writePairs(e, pairs)
	if err != nil {
		return 0, 0, err
	}
	return addr, uint64(len(sets)), nil
}

// DecodeFatPointers reads n fat pointers at addr.
func DecodeFatPointers(mem sbfstubs.Memory, addr, n uint64) ([]FatPointer, error) {
	return readPairs(mem, addr, n)
}

// DecodeByteSlices reinterprets n fat pointers at addr as byte buffers.
func DecodeByteSlices(mem sbfstubs.Memory, addr, n uint64) ([][]byte, error) {
	pairs, err := readPairs(mem, addr, n)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(pairs))
	for i, p := range pairs {
		if out[i], err = view(mem, p.Addr, p.Len); err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
				Path(index("bytes", i)...).Addr(p.Addr).Cause(err).Build()
		}
	}
	return out, nil
}

// DecodeSeeds reinterprets n fat pointers at addr as arrays of byte buffers.
func DecodeSeeds(mem sbfstubs.Memory, addr, n uint64) ([][][]byte, error) {
	pairs, err := readPairs(mem, addr, n)
	if err != nil {
		return nil, err
	}
	out := make([][][]byte, len(pairs))
	for i, p := range pairs {
		if out[i], err = DecodeByteSlices(mem, p.Addr, p.Len); err != nil {
			return nil, err
		}
	}
	return out, nil
}
