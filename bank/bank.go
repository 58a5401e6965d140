package bank

import (
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/wippyai/sbf-stubs/solana"
)

// DefaultComputeUnits is the meter's starting budget.
const DefaultComputeUnits = 200_000

// Processor executes one instruction for a registered program. accounts
// holds the instruction's accounts in meta order, with the privileges the
// instruction granted.
type Processor func(programID solana.Pubkey, accounts []solana.AccountInfo, data []byte) error

type frame struct {
	programID solana.Pubkey
}

// Bank implements solana.Syscalls in memory. Configure it with the With
// methods before the first crossing.
type Bank struct {
	mu         sync.Mutex
	logger     *zap.Logger
	meter      *atomic.Uint64
	processors map[solana.Pubkey]Processor
	stakes     map[solana.Pubkey]uint64
	sysvarData map[solana.Pubkey][]byte
	returnData *solana.ReturnData
	sysvars    sysvars
	logs       []string
	stack      []frame
	siblings   [][]solana.Instruction
	programID  solana.Pubkey
	budget     uint64
}

var _ solana.Syscalls = (*Bank)(nil)

// New creates a bank with default sysvars and budget.
func New() *Bank {
	return &Bank{
		logger:     zap.NewNop(),
		meter:      atomic.NewUint64(DefaultComputeUnits),
		processors: make(map[solana.Pubkey]Processor),
		stakes:     make(map[solana.Pubkey]uint64),
		sysvarData: make(map[solana.Pubkey][]byte),
		sysvars:    defaultSysvars(),
		budget:     DefaultComputeUnits,
	}
}

// WithLogger mirrors program logs to l.
func (b *Bank) WithLogger(l *zap.Logger) *Bank {
	if l == nil {
		l = zap.NewNop()
	}
	b.logger = l
	return b
}

// WithProgramID sets the program reported as the source of return data when
// no instruction is executing.
func (b *Bank) WithProgramID(id solana.Pubkey) *Bank {
	b.programID = id
	return b
}

// WithComputeUnits sets the budget each transaction starts with.
func (b *Bank) WithComputeUnits(units uint64) *Bank {
	b.budget = units
	b.meter.Store(units)
	return b
}

func (b *Bank) WithClock(c solana.Clock) *Bank {
	b.sysvars.clock = c
	return b
}

func (b *Bank) WithRent(r solana.Rent) *Bank {
	b.sysvars.rent = r
	return b
}

func (b *Bank) WithEpochSchedule(s solana.EpochSchedule) *Bank {
	b.sysvars.epochSchedule = s
	return b
}

func (b *Bank) WithFees(f solana.Fees) *Bank {
	b.sysvars.fees = f
	return b
}

func (b *Bank) WithEpochRewards(r solana.EpochRewards) *Bank {
	b.sysvars.epochRewards = r
	return b
}

func (b *Bank) WithLastRestartSlot(slot uint64) *Bank {
	b.sysvars.lastRestartSlot = solana.LastRestartSlot{LastRestartSlot: slot}
	return b
}

// WithStake records the active stake delegated to a vote account.
func (b *Bank) WithStake(vote solana.Pubkey, stake uint64) *Bank {
	b.stakes[vote] = stake
	return b
}

// WithSysvarData serves raw account data for id through GetSysvar. It
// overrides the built-in encoding of known sysvars.
func (b *Bank) WithSysvarData(id solana.Pubkey, data []byte) *Bank {
	b.sysvarData[id] = append([]byte(nil), data...)
	return b
}

// Register installs the processor for a program id, replacing any previous one.
func (b *Bank) Register(programID solana.Pubkey, p Processor) *Bank {
	b.mu.Lock()
	b.processors[programID] = p
	b.mu.Unlock()
	return b
}

// Consume charges units against the meter. The meter saturates at zero and
// is never enforced.
func (b *Bank) Consume(units uint64) {
	for {
		cur := b.meter.Load()
		next := uint64(0)
		if cur > units {
			next = cur - units
		}
		if b.meter.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Logs returns a copy of everything logged so far.
func (b *Bank) Logs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.logs...)
}

// Reset clears logs, return data, sibling history and the meter.
func (b *Bank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logs = nil
	b.returnData = nil
	b.siblings = nil
	b.stack = nil
	b.meter.Store(b.budget)
}

func (b *Bank) currentProgram() solana.Pubkey {
	if n := len(b.stack); n > 0 {
		return b.stack[n-1].programID
	}
	return b.programID
}
