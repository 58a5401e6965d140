package main

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/sbf-stubs/bank"
	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

// defaultProgramID is used when no scenario names one.
var defaultProgramID = solana.Pubkey{1}

// Scenario describes the bank a guest runs against and the calls to make.
type Scenario struct {
	Clock           *Clock         `yaml:"clock,omitempty" json:"clock,omitempty"`
	Rent            *Rent          `yaml:"rent,omitempty" json:"rent,omitempty"`
	EpochSchedule   *EpochSchedule `yaml:"epoch_schedule,omitempty" json:"epoch_schedule,omitempty"`
	Fees            *Fees          `yaml:"fees,omitempty" json:"fees,omitempty"`
	LastRestartSlot *uint64        `yaml:"last_restart_slot,omitempty" json:"last_restart_slot,omitempty"`
	ProgramID       string         `yaml:"program_id" json:"program_id" validate:"required,pubkey" jsonschema:"description=base58 id the guest runs as"`
	Stakes          []Stake        `yaml:"stakes,omitempty" json:"stakes,omitempty" validate:"dive"`
	Sysvars         []SysvarData   `yaml:"sysvars,omitempty" json:"sysvars,omitempty" validate:"dive"`
	Calls           []Call         `yaml:"calls,omitempty" json:"calls,omitempty" validate:"dive"`
	ComputeUnits    uint64         `yaml:"compute_units,omitempty" json:"compute_units,omitempty" jsonschema:"description=meter budget per instruction"`
}

type Clock struct {
	Slot                uint64 `yaml:"slot" json:"slot"`
	EpochStartTimestamp int64  `yaml:"epoch_start_timestamp" json:"epoch_start_timestamp"`
	Epoch               uint64 `yaml:"epoch" json:"epoch"`
	LeaderScheduleEpoch uint64 `yaml:"leader_schedule_epoch" json:"leader_schedule_epoch"`
	UnixTimestamp       int64  `yaml:"unix_timestamp" json:"unix_timestamp"`
}

type Rent struct {
	LamportsPerByteYear uint64  `yaml:"lamports_per_byte_year" json:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `yaml:"exemption_threshold" json:"exemption_threshold" validate:"gte=0"`
	BurnPercent         uint8   `yaml:"burn_percent" json:"burn_percent" validate:"lte=100"`
}

type EpochSchedule struct {
	SlotsPerEpoch            uint64 `yaml:"slots_per_epoch" json:"slots_per_epoch" validate:"gt=0"`
	LeaderScheduleSlotOffset uint64 `yaml:"leader_schedule_slot_offset" json:"leader_schedule_slot_offset"`
	Warmup                   bool   `yaml:"warmup" json:"warmup"`
	FirstNormalEpoch         uint64 `yaml:"first_normal_epoch" json:"first_normal_epoch"`
	FirstNormalSlot          uint64 `yaml:"first_normal_slot" json:"first_normal_slot"`
}

type Fees struct {
	LamportsPerSignature uint64 `yaml:"lamports_per_signature" json:"lamports_per_signature"`
}

// Stake is the active stake delegated to one vote account.
type Stake struct {
	Vote  string `yaml:"vote" json:"vote" validate:"required,pubkey"`
	Stake uint64 `yaml:"stake" json:"stake"`
}

// SysvarData overrides the raw account data served by sol_get_sysvar.
type SysvarData struct {
	ID   string `yaml:"id" json:"id" validate:"required,pubkey"`
	Data string `yaml:"data" json:"data" validate:"omitempty,hexadecimal" jsonschema:"description=hex encoded account data"`
}

// Call is one top-level instruction: an export and its i64 arguments.
type Call struct {
	Func string   `yaml:"func" json:"func" validate:"required"`
	Args []uint64 `yaml:"args,omitempty" json:"args,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pubkey", func(fl validator.FieldLevel) bool {
		_, err := solana.ParsePubkey(fl.Field().String())
		return err == nil
	})
	return v
}

// DefaultScenario runs as defaultProgramID with the bank's defaults.
func DefaultScenario() *Scenario {
	return &Scenario{ProgramID: defaultProgramID.String()}
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "open scenario "+path)
	}
	defer f.Close()
	return ParseScenario(f)
}

// ParseScenario decodes YAML, rejecting unknown fields, and validates it.
func ParseScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks field constraints.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "invalid scenario")
	}
	return nil
}

// Schema returns the scenario's JSON schema.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	return json.MarshalIndent(reflector.Reflect(&Scenario{}), "", "  ")
}

// Bank builds the bank the scenario describes. The scenario must be valid.
func (s *Scenario) Bank(log *zap.Logger) (*bank.Bank, error) {
	id, err := solana.ParsePubkey(s.ProgramID)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "program_id")
	}

	b := bank.New().WithLogger(log).WithProgramID(id)
	if s.ComputeUnits > 0 {
		b.WithComputeUnits(s.ComputeUnits)
	}
	if c := s.Clock; c != nil {
		b.WithClock(solana.Clock{
			Slot:                c.Slot,
			EpochStartTimestamp: c.EpochStartTimestamp,
			Epoch:               c.Epoch,
			LeaderScheduleEpoch: c.LeaderScheduleEpoch,
			UnixTimestamp:       c.UnixTimestamp,
		})
	}
	if r := s.Rent; r != nil {
		b.WithRent(solana.Rent{
			LamportsPerByteYear: r.LamportsPerByteYear,
			ExemptionThreshold:  r.ExemptionThreshold,
			BurnPercent:         r.BurnPercent,
		})
	}
	if e := s.EpochSchedule; e != nil {
		b.WithEpochSchedule(solana.EpochSchedule{
			SlotsPerEpoch:            e.SlotsPerEpoch,
			LeaderScheduleSlotOffset: e.LeaderScheduleSlotOffset,
			Warmup:                   e.Warmup,
			FirstNormalEpoch:         e.FirstNormalEpoch,
			FirstNormalSlot:          e.FirstNormalSlot,
		})
	}
	if f := s.Fees; f != nil {
		b.WithFees(solana.Fees{LamportsPerSignature: f.LamportsPerSignature})
	}
	if s.LastRestartSlot != nil {
		b.WithLastRestartSlot(*s.LastRestartSlot)
	}
	for _, st := range s.Stakes {
		vote, err := solana.ParsePubkey(st.Vote)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "stake vote")
		}
		b.WithStake(vote, st.Stake)
	}
	for _, sv := range s.Sysvars {
		id, err := solana.ParsePubkey(sv.ID)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "sysvar id")
		}
		data, err := hex.DecodeString(sv.Data)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "sysvar data")
		}
		b.WithSysvarData(id, data)
	}
	return b, nil
}
