// Package random provides seed generation for the session random sources.
//
// Distraction picks, cheer lines and domain-pick shuffles all draw from a
// per-session *rand.Rand so a fixed seed replays a playthrough exactly.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSource returns a deterministic generator for seed. A zero seed is
// replaced with a fresh crypto seed.
func NewSource(seed int64) (*rand.Rand, error) {
	if seed == 0 {
		var err error
		seed, err = NewSeed()
		if err != nil {
			return nil, err
		}
	}
	return rand.New(rand.NewSource(seed)), nil
}
