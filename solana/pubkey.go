package solana

import (
	"bytes"

	"github.com/mr-tron/base58"

	"github.com/wippyai/sbf-stubs/errors"
)

// PubkeySize is the size of an account address in bytes.
const PubkeySize = 32

// Pubkey is a 32-byte account address.
type Pubkey [PubkeySize]byte

// SystemProgramID is the all-zero address of the system program.
var SystemProgramID = Pubkey{}

// ParsePubkey decodes a base58 address.
func ParsePubkey(s string) (Pubkey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "base58 pubkey")
	}
	if len(raw) != PubkeySize {
		return Pubkey{}, errors.New(errors.PhaseDecode, errors.KindSizeMismatch).
			Detail("pubkey %q decodes to %d bytes, want %d", s, len(raw), PubkeySize).
			Build()
	}
	var pk Pubkey
	copy(pk[:], raw)
	return pk, nil
}

// MustParsePubkey is like ParsePubkey but panics on error.
func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// PubkeyFromBytes copies b into a Pubkey. b must be exactly 32 bytes.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	if len(b) != PubkeySize {
		return Pubkey{}, errors.New(errors.PhaseDecode, errors.KindSizeMismatch).
			Detail("pubkey needs %d bytes, got %d", PubkeySize, len(b)).
			Build()
	}
	var pk Pubkey
	copy(pk[:], b)
	return pk, nil
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// IsZero reports whether p is the all-zero address.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// Equals compares p against raw bytes.
func (p Pubkey) Equals(b []byte) bool {
	return bytes.Equal(p[:], b)
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	pk, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = pk
	return nil
}
