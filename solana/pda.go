package solana

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
)

const pdaMarker = "ProgramDerivedAddress"

// CreateProgramAddress derives an address from seeds and a program id.
// The result is guaranteed to lie off the ed25519 curve, so no private key
// can sign for it; seeds that land on the curve yield ErrInvalidSeeds.
func CreateProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, error) {
	if len(seeds) > MaxSeeds {
		return Pubkey{}, ErrMaxSeedLengthExceeded
	}
	h := sha256.New()
	for _, s := range seeds {
		if len(s) > MaxSeedLen {
			return Pubkey{}, ErrMaxSeedLengthExceeded
		}
		h.Write(s)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var pk Pubkey
	h.Sum(pk[:0])
	if IsOnCurve(pk[:]) {
		return Pubkey{}, ErrInvalidSeeds
	}
	return pk, nil
}

// FindProgramAddress searches bump seeds from 255 down for the first
// off-curve address.
func FindProgramAddress(seeds [][]byte, programID Pubkey) (Pubkey, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	bump := []byte{0}
	withBump[len(seeds)] = bump

	for b := 255; b >= 0; b-- {
		bump[0] = uint8(b)
		pk, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return pk, uint8(b), nil
		}
		if err != ErrInvalidSeeds {
			return Pubkey{}, 0, err
		}
	}
	return Pubkey{}, 0, ErrInvalidSeeds
}

// IsOnCurve reports whether b is a valid compressed ed25519 point.
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
