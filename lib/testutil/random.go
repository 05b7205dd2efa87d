// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "encoding/binary"

// PseudoRandom returns n bytes from a SplitMix64 stream seeded with
// seed. The same (seed, n) always yields the same bytes, and a longer
// request extends a shorter one with the same prefix.
func PseudoRandom(seed uint64, n int) []byte {
	output := make([]byte, n)
	state := seed
	var word [8]byte
	for i := 0; i < n; i += 8 {
		state += 0x9e3779b97f4a7c15
		z := state
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
		binary.LittleEndian.PutUint64(word[:], z)
		copy(output[i:], word[:])
	}
	return output
}
