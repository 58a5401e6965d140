package bank

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

// Step is one top-level instruction of a transaction with the accounts it
// may touch.
type Step struct {
	Instruction solana.Instruction
	Accounts    []solana.AccountInfo
}

// Process runs a single-instruction transaction.
func (b *Bank) Process(ix *solana.Instruction, accounts []solana.AccountInfo) error {
	return b.ProcessTransaction(Step{Instruction: *ix, Accounts: accounts})
}

// ProcessTransaction runs steps in order as top-level instructions. Sibling
// history and return data start empty; the first failing step aborts the
// rest.
func (b *Bank) ProcessTransaction(steps ...Step) error {
	b.mu.Lock()
	b.siblings = nil
	b.returnData = nil
	b.stack = nil
	b.mu.Unlock()
	b.meter.Store(b.budget)

	for i := range steps {
		s := &steps[i]
		accounts, err := b.accountsFor(&s.Instruction, s.Accounts, nil)
		if err != nil {
			return err
		}
		if err := b.execute(&s.Instruction, accounts); err != nil {
			return err
		}
	}
	return nil
}

// InvokeSigned runs a cross-program invocation from the executing program.
// Each seed set must derive a program address of the caller; those
// addresses count as signers.
func (b *Bank) InvokeSigned(ix *solana.Instruction, accounts []solana.AccountInfo, signerSeeds [][][]byte) error {
	b.Consume(1000)
	caller := b.currentProgram()

	signers := make(map[solana.Pubkey]bool, len(signerSeeds))
	for _, seeds := range signerSeeds {
		pda, err := solana.CreateProgramAddress(seeds, caller)
		if err != nil {
			return err
		}
		signers[pda] = true
	}

	callee, err := b.accountsFor(ix, accounts, signers)
	if err != nil {
		return err
	}
	return b.execute(ix, callee)
}

// accountsFor resolves ix's metas against the caller's accounts. Writable
// and signer privileges must already be held by the caller, or in the
// signer case granted by a derived address.
func (b *Bank) accountsFor(ix *solana.Instruction, accounts []solana.AccountInfo, signers map[solana.Pubkey]bool) ([]solana.AccountInfo, error) {
	out := make([]solana.AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		j := indexOf(accounts, meta.Pubkey)
		if j < 0 {
			return nil, solana.ErrNotEnoughAccountKeys
		}
		info := accounts[j]
		if meta.IsSigner && !info.IsSigner && !signers[meta.Pubkey] {
			b.logger.Debug("signer privilege escalation", zap.Stringer("account", meta.Pubkey))
			return nil, solana.ErrMissingRequiredSignatures
		}
		if meta.IsWritable && !info.IsWritable {
			b.logger.Debug("writable privilege escalation", zap.Stringer("account", meta.Pubkey))
			return nil, solana.ErrInvalidArgument
		}
		info.IsSigner = meta.IsSigner
		info.IsWritable = meta.IsWritable
		out[i] = info
	}
	return out, nil
}

func indexOf(accounts []solana.AccountInfo, key solana.Pubkey) int {
	for i := range accounts {
		if accounts[i].Key == key {
			return i
		}
	}
	return -1
}

// execute pushes a frame, runs the processor and records the instruction as
// processed at its height.
func (b *Bank) execute(ix *solana.Instruction, accounts []solana.AccountInfo) error {
	b.mu.Lock()
	p, ok := b.processors[ix.ProgramID]
	if !ok {
		b.mu.Unlock()
		return solana.ErrIncorrectProgramID
	}
	if len(b.stack) >= solana.MaxInstructionStackDepth {
		b.mu.Unlock()
		return solana.ErrMaxInstructionTraceLength
	}
	b.stack = append(b.stack, frame{programID: ix.ProgramID})
	height := len(b.stack)
	// children of this instruction start with an empty history
	if len(b.siblings) > height {
		b.siblings[height] = nil
	}
	b.returnData = nil
	b.mu.Unlock()

	b.record(fmt.Sprintf("Program %s invoke [%d]", ix.ProgramID, height))
	err := b.run(p, ix, accounts)

	b.mu.Lock()
	b.stack = b.stack[:height-1]
	for len(b.siblings) < height {
		b.siblings = append(b.siblings, nil)
	}
	b.siblings[height-1] = append(b.siblings[height-1], ix.Clone())
	b.mu.Unlock()

	if err != nil {
		b.record(fmt.Sprintf("Program %s failed: %v", ix.ProgramID, err))
		return err
	}
	b.record(fmt.Sprintf("Program %s success", ix.ProgramID))
	return nil
}

// run calls p and turns a program panic into a failure of this
// instruction. Boundary errors keep unwinding.
func (b *Bank) run(p Processor, ix *solana.Instruction, accounts []solana.AccountInfo) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(*errors.Error); ok {
			panic(r)
		}
		if pe, ok := r.(error); ok {
			err = pe
			return
		}
		err = fmt.Errorf("program panicked: %v", r)
	}()
	return p(ix.ProgramID, accounts, ix.Data)
}

func (b *Bank) GetStackHeight() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint64(len(b.stack))
}

// SetReturnData replaces the return data, attributing it to the executing
// program. Empty data clears it.
func (b *Bank) SetReturnData(data []byte) {
	if len(data) > solana.MaxReturnData {
		panic(errors.New(errors.PhaseInvoke, errors.KindOverflow).
			Syscall(solana.SyscallSetReturnData).
			Detail("return data is %d bytes, limit %d", len(data), solana.MaxReturnData).
			Build())
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(data) == 0 {
		b.returnData = nil
		return
	}
	b.returnData = &solana.ReturnData{
		ProgramID: b.currentProgram(),
		Data:      append([]byte(nil), data...),
	}
}

func (b *Bank) GetReturnData() (solana.ReturnData, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.returnData == nil {
		return solana.ReturnData{}, false
	}
	rd := *b.returnData
	rd.Data = append([]byte(nil), rd.Data...)
	return rd, true
}

// GetProcessedSiblingInstruction returns the index-th most recent
// instruction completed at the current stack height under the same parent.
func (b *Bank) GetProcessedSiblingInstruction(index uint64) (solana.Instruction, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	height := len(b.stack)
	if height == 0 || height > len(b.siblings) {
		return solana.Instruction{}, false
	}
	list := b.siblings[height-1]
	if index >= uint64(len(list)) {
		return solana.Instruction{}, false
	}
	return list[uint64(len(list))-1-index].Clone(), true
}
