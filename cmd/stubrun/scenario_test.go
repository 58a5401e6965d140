package main

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wippyai/sbf-stubs/errors"
	"github.com/wippyai/sbf-stubs/solana"
)

var vote = solana.Pubkey{9, 9}

func TestParseScenario(t *testing.T) {
	src := `
program_id: ` + defaultProgramID.String() + `
compute_units: 5000
clock:
  slot: 42
  epoch: 3
  unix_timestamp: 1700000000
rent:
  lamports_per_byte_year: 10
  exemption_threshold: 1.5
  burn_percent: 50
last_restart_slot: 40
stakes:
  - vote: ` + vote.String() + `
    stake: 1000
sysvars:
  - id: ` + solana.RentID.String() + `
    data: "0102ff"
calls:
  - func: entrypoint
    args: [1, 2]
`
	sc, err := ParseScenario(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), sc.ComputeUnits)
	assert.Equal(t, uint64(42), sc.Clock.Slot)
	assert.Equal(t, uint8(50), sc.Rent.BurnPercent)
	require.NotNil(t, sc.LastRestartSlot)
	assert.Equal(t, uint64(40), *sc.LastRestartSlot)
	assert.Equal(t, []Call{{Func: "entrypoint", Args: []uint64{1, 2}}}, sc.Calls)

	b, err := sc.Bank(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), b.RemainingComputeUnits())
	assert.Equal(t, uint64(1000), b.GetEpochStake(&vote))

	clock := make([]byte, solana.ClockSize)
	require.Equal(t, uint64(solana.Success), b.GetClockSysvar(clock))
	var c solana.Clock
	require.NoError(t, c.UnmarshalC(clock))
	assert.Equal(t, uint64(42), c.Slot)
	assert.Equal(t, int64(1700000000), c.UnixTimestamp)

	raw := make([]byte, 3)
	require.Equal(t, uint64(solana.Success), b.GetSysvar(solana.RentID, raw, 0))
	assert.Equal(t, []byte{1, 2, 0xff}, raw)
}

func TestParseScenario_Empty(t *testing.T) {
	_, err := ParseScenario(strings.NewReader(""))
	assertConfigError(t, err)
}

func TestParseScenario_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", "program_id: " + defaultProgramID.String() + "\nbogus: 1\n"},
		{"bad program id", "program_id: not-a-key\n"},
		{"bad stake vote", "program_id: " + defaultProgramID.String() + "\nstakes:\n  - vote: xyz\n"},
		{"burn over 100", "program_id: " + defaultProgramID.String() + "\nrent:\n  burn_percent: 101\n"},
		{"call without func", "program_id: " + defaultProgramID.String() + "\ncalls:\n  - args: [1]\n"},
		{"bad sysvar data", "program_id: " + defaultProgramID.String() + "\nsysvars:\n  - id: " +
			solana.ClockID.String() + "\n    data: zz\n"},
		{"not yaml", "program_id: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenario(strings.NewReader(tc.src))
			assertConfigError(t, err)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("program_id: "+defaultProgramID.String()+"\n"), 0o600))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, defaultProgramID.String(), sc.ProgramID)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assertConfigError(t, err)
}

func TestDefaultScenario(t *testing.T) {
	sc := DefaultScenario()
	require.NoError(t, sc.Validate())

	b, err := sc.Bank(nil)
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestScenarioFlags(t *testing.T) {
	sc, err := scenario("", "run", "1,-1,0x10")
	require.NoError(t, err)
	assert.Equal(t, []Call{{Func: "run", Args: []uint64{1, ^uint64(0), 16}}}, sc.Calls)

	_, err = scenario("", "run", "1,x")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "program_id")
	assert.Contains(t, props, "calls")
	assert.Contains(t, doc["required"], "program_id")
}

func assertConfigError(t *testing.T, err error) {
	t.Helper()
	var se *errors.Error
	require.True(t, stderrors.As(err, &se), "got %v", err)
	assert.Equal(t, errors.PhaseConfig, se.Phase)
}
