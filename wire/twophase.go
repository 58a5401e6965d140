package wire

import (
	sbfstubs "github.com/wippyai/sbf-stubs"
	"github.com/wippyai/sbf-stubs/solana"
)

// NoData is what the callee of a two-phase read returns when there is
// nothing to deliver, including when the caller's buffer no longer matches.
const NoData uint64 = 0

// ServeReturnData answers sol_get_return_data(data, length, program_id).
//
// A call with a null data address and zero length is a query: the source
// program id is written and the data length returned. Any other call is a
// fill: the caller's length and program id must match the current return
// data exactly, otherwise nothing is written and NoData is returned. Empty
// return data is reported as absent.
//
// The returned error only reports memory faults.
func ServeReturnData(mem sbfstubs.Memory, rd solana.ReturnData, ok bool, dataAddr, length, programIDAddr uint64) (uint64, error) {
	if !ok || len(rd.Data) == 0 {
		return NoData, nil
	}
	n := uint64(len(rd.Data))

	if dataAddr == 0 && length == 0 {
		if programIDAddr != 0 {
			if err := WritePubkey(mem, programIDAddr, rd.ProgramID); err != nil {
				return NoData, err
			}
		}
		return n, nil
	}

	if length != n {
		return NoData, nil
	}
	if programIDAddr != 0 {
		expected, err := ReadPubkey(mem, programIDAddr)
		if err != nil {
			return NoData, err
		}
		if expected != rd.ProgramID {
			return NoData, nil
		}
	}
	if err := mem.Write(dataAddr, rd.Data); err != nil {
		return NoData, err
	}
	return n, nil
}

// ServeSiblingInstruction answers
// sol_get_processed_sibling_instruction(index, meta, program_id, data, accounts)
// for an already resolved instruction.
//
// The meta record {data_len, accounts_len} selects the phase: both zero is a
// query, which writes the real sizes and the program id and reports found.
// Otherwise the sizes and program id must match exactly and the data and
// account metas are written. An instruction with no data and no accounts is
// therefore fully delivered by its query.
func ServeSiblingInstruction(mem sbfstubs.Memory, ix solana.Instruction, ok bool, metaAddr, programIDAddr, dataAddr, accountsAddr uint64) (uint64, error) {
	if !ok {
		return 0, nil
	}
	dataLen, err := mem.ReadU64(metaAddr)
	if err != nil {
		return 0, err
	}
	accountsLen, err := mem.ReadU64(metaAddr + 8)
	if err != nil {
		return 0, err
	}

	if dataLen == 0 && accountsLen == 0 {
		if err := mem.WriteU64(metaAddr, uint64(len(ix.Data))); err != nil {
			return 0, err
		}
		if err := mem.WriteU64(metaAddr+8, uint64(len(ix.Accounts))); err != nil {
			return 0, err
		}
		if err := WritePubkey(mem, programIDAddr, ix.ProgramID); err != nil {
			return 0, err
		}
		return 1, nil
	}

	if dataLen != uint64(len(ix.Data)) || accountsLen != uint64(len(ix.Accounts)) {
		return 0, nil
	}
	expected, err := ReadPubkey(mem, programIDAddr)
	if err != nil {
		return 0, err
	}
	if expected != ix.ProgramID {
		return 0, nil
	}

	if dataLen > 0 {
		if err := mem.Write(dataAddr, ix.Data); err != nil {
			return 0, err
		}
	}
	if accountsLen > 0 {
		raw, err := mem.Read(accountsAddr, accountsLen*AccountMetaSize)
		if err != nil {
			return 0, err
		}
		writeAccountMetas(raw, ix.Accounts)
	}
	return 1, nil
}
