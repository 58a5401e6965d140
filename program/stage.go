package program

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/wire"
)

// crossing runs fn with a fresh encoder and releases its scratch memory.
func crossing(space sbfstubs.ProgramSpace, fn func(e *wire.Encoder) error) error {
	e := wire.NewEncoder(space)
	err := fn(e)
	if cerr := e.Close(); err == nil {
		err = cerr
	}
	return err
}

// must aborts the calling program on a fault it has no way to report.
func must(err error) {
	if err == nil {
		return
	}
	if _, ok := err.(*errors.Error); ok {
		panic(err)
	}
	panic(errors.Wrap(errors.PhaseEncode, errors.KindInvariant, err, "crossing failed"))
}

// output is a destination buffer prepared for the callee. Resident buffers
// are written in place; foreign ones go through a scratch copy that commit
// moves back.
type output struct {
	dst     []byte
	addr    uint64
	scratch []byte
}

func stageOutput(e *wire.Encoder, dst []byte) (output, error) {
	if addr, ok := e.Space().AddrOf(dst); ok {
		return output{dst: dst, addr: addr}, nil
	}
	n := uint64(len(dst))
	addr, err := e.Alloc(n, 1)
	if err != nil {
		return output{}, err
	}
	scratch, err := e.Space().Read(addr, n)
	if err != nil {
		return output{}, err
	}
	copy(scratch, dst)
	return output{dst: dst, addr: addr, scratch: scratch}, nil
}

func (o output) commit() {
	if o.scratch != nil {
		copy(o.dst, o.scratch)
	}
}

// sized checks that dst can hold a fixed-size sysvar record.
func sized(syscall string, dst []byte, n int) []byte {
	if len(dst) < n {
		panic(errors.SizeMismatch(syscall, uint64(n), uint64(len(dst))))
	}
	return dst[:n]
}

func pair(a, b []byte) ([]byte, []byte) {
	n := min(len(a), len(b))
	return a[:n], b[:n]
}
