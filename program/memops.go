package program

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/solana"
	"github.com/wippyai/sbf-stubs/wire"
)

// Helpers shared by both adapters. The memory and sysvar entries have the
// same shape in either table.

func memop(space sbfstubs.ProgramSpace, dst, src []byte, entry func(dst, src, n uint64)) {
	if len(dst) == 0 {
		return
	}
	must(crossing(space, func(e *wire.Encoder) error {
		s, err := e.Ref(src)
		if err != nil {
			return err
		}
		out, err := stageOutput(e, dst)
		if err != nil {
			return err
		}
		entry(out.addr, s, uint64(len(dst)))
		out.commit()
		return nil
	}))
}

func compare(space sbfstubs.ProgramSpace, s1, s2 []byte, entry func(s1, s2, n, result uint64)) (result int32) {
	must(crossing(space, func(e *wire.Encoder) error {
		a, err := e.Ref(s1)
		if err != nil {
			return err
		}
		b, err := e.Ref(s2)
		if err != nil {
			return err
		}
		res, err := e.Alloc(4, 4)
		if err != nil {
			return err
		}
		entry(a, b, uint64(len(s1)), res)
		v, err := space.ReadU32(res)
		result = int32(v)
		return err
	}))
	return result
}

func fill(space sbfstubs.ProgramSpace, dst []byte, entry func(addr, n uint64)) {
	if len(dst) == 0 {
		return
	}
	must(crossing(space, func(e *wire.Encoder) error {
		out, err := stageOutput(e, dst)
		if err != nil {
			return err
		}
		entry(out.addr, uint64(len(dst)))
		out.commit()
		return nil
	}))
}

func getSysvar(space sbfstubs.ProgramSpace, id solana.Pubkey, dst []byte, offset uint64, entry func(id, dst, offset, length uint64) uint64) (status uint64) {
	must(crossing(space, func(e *wire.Encoder) error {
		idAddr, err := e.Pubkey(id)
		if err != nil {
			return err
		}
		out, err := stageOutput(e, dst)
		if err != nil {
			return err
		}
		if status = entry(idAddr, out.addr, offset, uint64(len(dst))); status == solana.Success {
			out.commit()
		}
		return nil
	}))
	return status
}
