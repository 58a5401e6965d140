package solana

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/sbf-stubs/errors"
)

// Well-known sysvar account addresses.
var (
	ClockID           = MustParsePubkey("SysvarC1ock11111111111111111111111111111111")
	RentID            = MustParsePubkey("SysvarRent111111111111111111111111111111111")
	EpochScheduleID   = MustParsePubkey("SysvarEpochSchedu1e111111111111111111111111")
	FeesID            = MustParsePubkey("SysvarFees111111111111111111111111111111111")
	EpochRewardsID    = MustParsePubkey("SysvarEpochRewards1111111111111111111111111")
	LastRestartSlotID = MustParsePubkey("SysvarLastRestartS1ot1111111111111111111111")
)

// Sizes of the C layouts written by the typed sysvar getters.
const (
	ClockSize           = 40
	RentSize            = 24
	EpochScheduleSize   = 40
	FeesSize            = 8
	EpochRewardsSize    = 96
	LastRestartSlotSize = 8
)

var le = binary.LittleEndian

func short(what string, need, got int) error {
	return errors.New(errors.PhaseDecode, errors.KindSizeMismatch).
		Path(what).
		Detail("need %d bytes, got %d", need, got).
		Build()
}

// Clock carries slot and time information.
type Clock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

// MarshalC writes the C layout into dst, which must hold ClockSize bytes.
func (c *Clock) MarshalC(dst []byte) {
	le.PutUint64(dst[0:], c.Slot)
	le.PutUint64(dst[8:], uint64(c.EpochStartTimestamp))
	le.PutUint64(dst[16:], c.Epoch)
	le.PutUint64(dst[24:], c.LeaderScheduleEpoch)
	le.PutUint64(dst[32:], uint64(c.UnixTimestamp))
}

func (c *Clock) UnmarshalC(src []byte) error {
	if len(src) < ClockSize {
		return short("clock", ClockSize, len(src))
	}
	c.Slot = le.Uint64(src[0:])
	c.EpochStartTimestamp = int64(le.Uint64(src[8:]))
	c.Epoch = le.Uint64(src[16:])
	c.LeaderScheduleEpoch = le.Uint64(src[24:])
	c.UnixTimestamp = int64(le.Uint64(src[32:]))
	return nil
}

// Rent carries the rent schedule.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
	BurnPercent         uint8
}

// DefaultRent mirrors the mainnet rent parameters.
var DefaultRent = Rent{
	LamportsPerByteYear: 3480,
	ExemptionThreshold:  2.0,
	BurnPercent:         50,
}

// accountStorageOverhead is the per-account byte overhead charged by rent.
const accountStorageOverhead = 128

// MinimumBalance returns the rent-exempt balance for dataLen bytes.
func (r *Rent) MinimumBalance(dataLen int) uint64 {
	bytes := uint64(dataLen) + accountStorageOverhead
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

func (r *Rent) MarshalC(dst []byte) {
	le.PutUint64(dst[0:], r.LamportsPerByteYear)
	le.PutUint64(dst[8:], math.Float64bits(r.ExemptionThreshold))
	dst[16] = r.BurnPercent
	clear(dst[17:RentSize])
}

func (r *Rent) UnmarshalC(src []byte) error {
	if len(src) < RentSize {
		return short("rent", RentSize, len(src))
	}
	r.LamportsPerByteYear = le.Uint64(src[0:])
	r.ExemptionThreshold = math.Float64frombits(le.Uint64(src[8:]))
	r.BurnPercent = src[16]
	return nil
}

// EpochSchedule describes how slots map to epochs.
type EpochSchedule struct {
	SlotsPerEpoch            uint64
	LeaderScheduleSlotOffset uint64
	Warmup                   bool
	FirstNormalEpoch         uint64
	FirstNormalSlot          uint64
}

func (e *EpochSchedule) MarshalC(dst []byte) {
	le.PutUint64(dst[0:], e.SlotsPerEpoch)
	le.PutUint64(dst[8:], e.LeaderScheduleSlotOffset)
	clear(dst[16:24])
	dst[16] = boolByte(e.Warmup)
	le.PutUint64(dst[24:], e.FirstNormalEpoch)
	le.PutUint64(dst[32:], e.FirstNormalSlot)
}

func (e *EpochSchedule) UnmarshalC(src []byte) error {
	if len(src) < EpochScheduleSize {
		return short("epoch_schedule", EpochScheduleSize, len(src))
	}
	e.SlotsPerEpoch = le.Uint64(src[0:])
	e.LeaderScheduleSlotOffset = le.Uint64(src[8:])
	e.Warmup = src[16] != 0
	e.FirstNormalEpoch = le.Uint64(src[24:])
	e.FirstNormalSlot = le.Uint64(src[32:])
	return nil
}

// Fees carries the legacy fee calculator.
type Fees struct {
	LamportsPerSignature uint64
}

func (f *Fees) MarshalC(dst []byte) {
	le.PutUint64(dst[0:], f.LamportsPerSignature)
}

func (f *Fees) UnmarshalC(src []byte) error {
	if len(src) < FeesSize {
		return short("fees", FeesSize, len(src))
	}
	f.LamportsPerSignature = le.Uint64(src)
	return nil
}

// Uint128 is a little-endian 128-bit unsigned integer.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// EpochRewards tracks the progress of epoch rewards distribution.
type EpochRewards struct {
	DistributionStartingBlockHeight uint64
	NumPartitions                   uint64
	ParentBlockhash                 [32]byte
	TotalPoints                     Uint128
	TotalRewards                    uint64
	DistributedRewards              uint64
	Active                          bool
}

func (e *EpochRewards) MarshalC(dst []byte) {
	le.PutUint64(dst[0:], e.DistributionStartingBlockHeight)
	le.PutUint64(dst[8:], e.NumPartitions)
	copy(dst[16:48], e.ParentBlockhash[:])
	le.PutUint64(dst[48:], e.TotalPoints.Lo)
	le.PutUint64(dst[56:], e.TotalPoints.Hi)
	le.PutUint64(dst[64:], e.TotalRewards)
	le.PutUint64(dst[72:], e.DistributedRewards)
	clear(dst[80:EpochRewardsSize])
	dst[80] = boolByte(e.Active)
}

func (e *EpochRewards) UnmarshalC(src []byte) error {
	if len(src) < EpochRewardsSize {
		return short("epoch_rewards", EpochRewardsSize, len(src))
	}
	e.DistributionStartingBlockHeight = le.Uint64(src[0:])
	e.NumPartitions = le.Uint64(src[8:])
	copy(e.ParentBlockhash[:], src[16:48])
	e.TotalPoints = Uint128{Lo: le.Uint64(src[48:]), Hi: le.Uint64(src[56:])}
	e.TotalRewards = le.Uint64(src[64:])
	e.DistributedRewards = le.Uint64(src[72:])
	e.Active = src[80] != 0
	return nil
}

// LastRestartSlot is the slot of the most recent cluster restart.
type LastRestartSlot struct {
	LastRestartSlot uint64
}

func (l *LastRestartSlot) MarshalC(dst []byte) {
	le.PutUint64(dst[0:], l.LastRestartSlot)
}

func (l *LastRestartSlot) UnmarshalC(src []byte) error {
	if len(src) < LastRestartSlotSize {
		return short("last_restart_slot", LastRestartSlotSize, len(src))
	}
	l.LastRestartSlot = le.Uint64(src)
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
