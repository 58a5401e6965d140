package bank

import (
	"github.com/near/borsh-go"

	"github.com/wippyai/sbf-stubs/solana"
)

type sysvars struct {
	clock           solana.Clock
	rent            solana.Rent
	epochSchedule   solana.EpochSchedule
	fees            solana.Fees
	epochRewards    solana.EpochRewards
	lastRestartSlot solana.LastRestartSlot
}

func defaultSysvars() sysvars {
	return sysvars{
		rent: solana.DefaultRent,
		epochSchedule: solana.EpochSchedule{
			SlotsPerEpoch:            432_000,
			LeaderScheduleSlotOffset: 432_000,
		},
		fees: solana.Fees{LamportsPerSignature: 5000},
	}
}

type marshaler interface {
	MarshalC(dst []byte)
}

func (b *Bank) fill(dst []byte, size int, v marshaler) uint64 {
	if len(dst) < size {
		return uint64(solana.ErrInvalidArgument)
	}
	v.MarshalC(dst[:size])
	return solana.Success
}

func (b *Bank) GetClockSysvar(dst []byte) uint64 {
	return b.fill(dst, solana.ClockSize, &b.sysvars.clock)
}

func (b *Bank) GetEpochScheduleSysvar(dst []byte) uint64 {
	return b.fill(dst, solana.EpochScheduleSize, &b.sysvars.epochSchedule)
}

func (b *Bank) GetFeesSysvar(dst []byte) uint64 {
	return b.fill(dst, solana.FeesSize, &b.sysvars.fees)
}

func (b *Bank) GetRentSysvar(dst []byte) uint64 {
	return b.fill(dst, solana.RentSize, &b.sysvars.rent)
}

func (b *Bank) GetLastRestartSlot(dst []byte) uint64 {
	return b.fill(dst, solana.LastRestartSlotSize, &b.sysvars.lastRestartSlot)
}

func (b *Bank) GetEpochRewardsSysvar(dst []byte) uint64 {
	return b.fill(dst, solana.EpochRewardsSize, &b.sysvars.epochRewards)
}

// GetEpochStake returns the stake delegated to a vote account, or the
// total active stake when voteAddress is nil.
func (b *Bank) GetEpochStake(voteAddress *solana.Pubkey) uint64 {
	if voteAddress != nil {
		return b.stakes[*voteAddress]
	}
	var total uint64
	for _, s := range b.stakes {
		total += s
	}
	return total
}

// SysvarData returns the account-data encoding of a sysvar: explicit data
// set with WithSysvarData, else the borsh encoding of a known sysvar.
func (b *Bank) SysvarData(id solana.Pubkey) ([]byte, bool) {
	if data, ok := b.sysvarData[id]; ok {
		return data, true
	}
	var v any
	switch id {
	case solana.ClockID:
		v = b.sysvars.clock
	case solana.RentID:
		v = b.sysvars.rent
	case solana.EpochScheduleID:
		v = b.sysvars.epochSchedule
	case solana.FeesID:
		v = b.sysvars.fees
	case solana.EpochRewardsID:
		v = b.sysvars.epochRewards
	case solana.LastRestartSlotID:
		v = b.sysvars.lastRestartSlot
	default:
		return nil, false
	}
	data, err := borsh.Serialize(v)
	if err != nil {
		return nil, false
	}
	return data, true
}

// GetSysvar copies len(dst) bytes of a sysvar's account data starting at offset.
func (b *Bank) GetSysvar(id solana.Pubkey, dst []byte, offset uint64) uint64 {
	data, ok := b.SysvarData(id)
	if !ok {
		return solana.SysvarNotFound
	}
	end := offset + uint64(len(dst))
	if end < offset || end > uint64(len(data)) {
		return solana.OffsetLengthExceedsSysvar
	}
	copy(dst, data[offset:end])
	return solana.Success
}
