package solana

const (
	// MaxPermittedDataIncrease is how much account data may grow during one invocation.
	MaxPermittedDataIncrease = 10 * 1024

	// MaxReturnData caps the size of return data.
	MaxReturnData = 1024

	// MaxSeeds caps the number of seeds for a program derived address.
	MaxSeeds = 16

	// MaxSeedLen caps the length of one seed.
	MaxSeedLen = 32

	// TransactionLevelStackHeight is the stack height of a top-level instruction.
	TransactionLevelStackHeight = 1

	// MaxInstructionStackDepth bounds nested invocation.
	MaxInstructionStackDepth = 5
)

// Status codes returned by raw syscalls.
const (
	Success uint64 = 0

	// OffsetLengthExceedsSysvar is returned by get-sysvar when the requested range is out of bounds.
	OffsetLengthExceedsSysvar uint64 = 1

	// SysvarNotFound is returned by get-sysvar for an unknown id.
	SysvarNotFound uint64 = 2
)
