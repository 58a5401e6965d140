package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:   PhaseDecode,
				Kind:    KindOutOfBounds,
				Syscall: "sol_invoke_signed_c",
				Path:    []string{"account_infos", "2", "data"},
				Addr:    0x4000,
				Detail:  "data_len exceeds space",
			},
			contains: []string{"[decode]", "out_of_bounds", "sol_invoke_signed_c", "account_infos.2.data", "0x4000", "data_len exceeds space"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseFill,
				Kind:  KindSizeMismatch,
			},
			contains: []string{"[fill]", "size_mismatch"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseMemory,
				Kind:   KindAllocation,
				Detail: "arena full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[memory]", "allocation", "arena full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindForeignBuffer,
		Cause: cause,
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:   PhaseInvoke,
		Kind:    KindUnimplemented,
		Syscall: "sol_log_",
	}

	if !errors.Is(err, &Error{Phase: PhaseInvoke, Kind: KindUnimplemented}) {
		t.Error("errors.Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindUnimplemented}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseInvoke, Kind: KindInvariant}) {
		t.Error("Is should not match different kind")
	}
}

func TestError_Fatal(t *testing.T) {
	if !Unimplemented("sol_log_").Fatal() {
		t.Error("unimplemented must be fatal")
	}
	if !Invariant("sol_invoke_signed_c", "data pointer moved").Fatal() {
		t.Error("invariant violation must be fatal")
	}
	if SizeMismatch("sol_get_return_data", 5, 6).Fatal() {
		t.Error("size mismatch is reported as absent data, not fatal")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindOutOfBounds).
		Syscall("sol_log_data").
		Path("fields", "1").
		Addr(0x10).
		Value(42).
		Cause(cause).
		Detail("len %d exceeds %d", 9, 8).
		Build()

	if err.Phase != PhaseDecode || err.Kind != KindOutOfBounds {
		t.Errorf("Phase/Kind = %v/%v", err.Phase, err.Kind)
	}
	if err.Syscall != "sol_log_data" {
		t.Errorf("Syscall = %v", err.Syscall)
	}
	if len(err.Path) != 2 || err.Path[0] != "fields" || err.Path[1] != "1" {
		t.Errorf("Path = %v, want [fields 1]", err.Path)
	}
	if err.Addr != 0x10 {
		t.Errorf("Addr = %x, want 0x10", err.Addr)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "len 9 exceeds 8" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
		want string
	}{
		{"OutOfBounds", OutOfBounds(PhaseMemory, 0x20, 16, 24), KindOutOfBounds, "24 bytes"},
		{"NullPointer", NullPointer(PhaseDecode, "instruction"), KindNullPointer, "null"},
		{"AllocationFailed", AllocationFailed(PhaseMemory, 1024, 8), KindAllocation, "1024"},
		{"DoubleFree", DoubleFree(PhaseMemory, 0x40), KindDoubleFree, "not live"},
		{"ForeignBuffer", ForeignBuffer(PhaseEncode, "data"), KindForeignBuffer, "not resident"},
		{"SizeMismatch", SizeMismatch("sol_get_return_data", 5, 7), KindSizeMismatch, "size 5"},
		{"Unimplemented", Unimplemented("sol_log_"), KindUnimplemented, "sol_log_"},
		{"Invariant", Invariant("sol_invoke_signed_c", "account %d moved", 3), KindInvariant, "account 3 moved"},
		{"InvalidUTF8", InvalidUTF8(PhaseDecode, "sol_log_", []byte{0xff, 0xfe}), KindInvalidUTF8, "fffe"},
		{"Overflow", Overflow(PhaseEncode, 300, "u8"), KindOverflow, "overflows u8"},
		{"NotFound", NotFound(PhaseLoad, "export", "run"), KindNotFound, `"run"`},
		{"InvalidInput", InvalidInput(PhaseConfig, "bad scenario"), KindInvalidInput, "bad scenario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.want) {
				t.Errorf("%q does not contain %q", tt.err.Error(), tt.want)
			}
		})
	}
}

func TestMissingImportsError(t *testing.T) {
	t.Run("single import", func(t *testing.T) {
		err := NewMissingImportsError([]string{"env#sol_log_64_"})
		if len(err.Imports) != 1 {
			t.Fatalf("expected 1 import, got %d", len(err.Imports))
		}
		if err.Imports[0].Namespace != "env" || err.Imports[0].Function != "sol_log_64_" {
			t.Errorf("import = %+v", err.Imports[0])
		}
	})

	t.Run("grouped by namespace", func(t *testing.T) {
		err := NewMissingImportsError([]string{
			"env#sol_log_64_",
			"wasi_snapshot_preview1#fd_write",
			"env#sol_log_pubkey",
		})
		msg := err.Error()
		for _, want := range []string{"missing 3", "env:", "wasi_snapshot_preview1:", "sol_log_pubkey"} {
			if !strings.Contains(msg, want) {
				t.Errorf("error %q should contain %q", msg, want)
			}
		}
	})

	t.Run("empty imports", func(t *testing.T) {
		err := NewMissingImportsError(nil)
		if !strings.Contains(err.Error(), "no imports specified") {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("errors.Is", func(t *testing.T) {
		err := NewMissingImportsError([]string{"ns#fn"})
		if !errors.Is(err, &MissingImportsError{}) {
			t.Error("errors.Is should match MissingImportsError")
		}
	})
}

func TestDemangleRust(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sol_log_", "sol_log_"},
		{"_ZN14solana_program3log7sol_log17ha931456e169eb010E", "solana_program::log::sol_log"},
		{"_ZN4core3ptr8write_fn17ha1b2c3d4e5f67890E", "core::ptr::write_fn"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := demangleRust(tt.input); got != tt.expected {
				t.Errorf("demangleRust(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
