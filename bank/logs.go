package bank

import (
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

func (b *Bank) record(line string) {
	b.mu.Lock()
	b.logs = append(b.logs, line)
	b.mu.Unlock()
	b.logger.Info(line)
}

func (b *Bank) Log(message string) {
	b.Consume(100)
	b.record("Program log: " + message)
}

func (b *Bank) LogComputeUnits() {
	b.record(fmt.Sprintf("Program consumption: %d units remaining", b.meter.Load()))
}

func (b *Bank) RemainingComputeUnits() uint64 {
	return b.meter.Load()
}

// LogData logs each field base64 encoded, space separated.
func (b *Bank) LogData(fields [][]byte) {
	b.Consume(100)
	enc := make([]string, len(fields))
	for i, f := range fields {
		enc[i] = base64.StdEncoding.EncodeToString(f)
	}
	b.record("Program data: " + strings.Join(enc, " "))
	b.logger.Debug("program data", zap.Int("fields", len(fields)))
}
