package solana

import (
	"errors"
	"fmt"
)

const builtinBitShift = 32

// ProgramError is a program failure in its numeric wire form.
// Builtin errors occupy the upper 32 bits; custom errors the lower 32.
type ProgramError uint64

func toBuiltin(n uint64) ProgramError {
	return ProgramError(n << builtinBitShift)
}

// Builtin program errors with the same codes the runtime uses.
var (
	ErrCustomZero                       = toBuiltin(1)
	ErrInvalidArgument                  = toBuiltin(2)
	ErrInvalidInstructionData           = toBuiltin(3)
	ErrInvalidAccountData               = toBuiltin(4)
	ErrAccountDataTooSmall              = toBuiltin(5)
	ErrInsufficientFunds                = toBuiltin(6)
	ErrIncorrectProgramID               = toBuiltin(7)
	ErrMissingRequiredSignatures        = toBuiltin(8)
	ErrAccountAlreadyInitialized        = toBuiltin(9)
	ErrUninitializedAccount             = toBuiltin(10)
	ErrNotEnoughAccountKeys             = toBuiltin(11)
	ErrAccountBorrowFailed              = toBuiltin(12)
	ErrMaxSeedLengthExceeded            = toBuiltin(13)
	ErrInvalidSeeds                     = toBuiltin(14)
	ErrBorshIO                          = toBuiltin(15)
	ErrAccountNotRentExempt             = toBuiltin(16)
	ErrUnsupportedSysvar                = toBuiltin(17)
	ErrIllegalOwner                     = toBuiltin(18)
	ErrMaxAccountsDataAllocationsExceed = toBuiltin(19)
	ErrInvalidRealloc                   = toBuiltin(20)
	ErrMaxInstructionTraceLength        = toBuiltin(21)
	ErrBuiltinMustConsumeComputeUnits   = toBuiltin(22)
	ErrInvalidAccountOwner              = toBuiltin(23)
	ErrArithmeticOverflow               = toBuiltin(24)
	ErrImmutable                        = toBuiltin(25)
	ErrIncorrectAuthority               = toBuiltin(26)
)

var builtinNames = map[ProgramError]string{
	ErrCustomZero:                       "custom program error: 0x0",
	ErrInvalidArgument:                  "invalid argument",
	ErrInvalidInstructionData:           "invalid instruction data",
	ErrInvalidAccountData:               "invalid account data",
	ErrAccountDataTooSmall:              "account data too small",
	ErrInsufficientFunds:                "insufficient funds",
	ErrIncorrectProgramID:               "incorrect program id",
	ErrMissingRequiredSignatures:        "missing required signatures",
	ErrAccountAlreadyInitialized:        "account already initialized",
	ErrUninitializedAccount:             "uninitialized account",
	ErrNotEnoughAccountKeys:             "not enough account keys",
	ErrAccountBorrowFailed:              "account borrow failed",
	ErrMaxSeedLengthExceeded:            "max seed length exceeded",
	ErrInvalidSeeds:                     "invalid seeds",
	ErrBorshIO:                          "borsh io error",
	ErrAccountNotRentExempt:             "account not rent exempt",
	ErrUnsupportedSysvar:                "unsupported sysvar",
	ErrIllegalOwner:                     "illegal owner",
	ErrMaxAccountsDataAllocationsExceed: "max accounts data allocations exceeded",
	ErrInvalidRealloc:                   "invalid account data realloc",
	ErrMaxInstructionTraceLength:        "max instruction trace length exceeded",
	ErrBuiltinMustConsumeComputeUnits:   "builtin programs must consume compute units",
	ErrInvalidAccountOwner:              "invalid account owner",
	ErrArithmeticOverflow:               "arithmetic overflow",
	ErrImmutable:                        "immutable",
	ErrIncorrectAuthority:               "incorrect authority",
}

// CustomError returns the program-defined error n.
func CustomError(n uint32) ProgramError {
	if n == 0 {
		return ErrCustomZero
	}
	return ProgramError(n)
}

// Custom reports the program-defined code, if e is one.
func (e ProgramError) Custom() (uint32, bool) {
	if e == ErrCustomZero {
		return 0, true
	}
	if uint64(e)>>builtinBitShift == 0 && e != 0 {
		return uint32(e), true
	}
	return 0, false
}

func (e ProgramError) Error() string {
	if name, ok := builtinNames[e]; ok {
		return name
	}
	if n, ok := e.Custom(); ok {
		return fmt.Sprintf("custom program error: 0x%x", n)
	}
	return fmt.Sprintf("unknown program error: 0x%x", uint64(e))
}

// ErrorCode maps a Go error to the numeric status carried across the boundary.
// nil maps to Success. Errors that are not ProgramErrors report
// ErrInvalidArgument.
func ErrorCode(err error) uint64 {
	if err == nil {
		return Success
	}
	var pe ProgramError
	if errors.As(err, &pe) {
		return uint64(pe)
	}
	return uint64(ErrInvalidArgument)
}

// ErrorFromCode is the inverse of ErrorCode.
func ErrorFromCode(code uint64) error {
	if code == Success {
		return nil
	}
	return ProgramError(code)
}
