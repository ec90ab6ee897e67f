// Copyright 2026 The unsizedhash Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package swiss provides an open-addressing table with Swisstable-style
// control bytes, generalized to accept arbitrary key representations via
// explicit hash/equal functions rather than a scalar-only Key constraint.
package swiss

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// hash is a split 64-bit digest: h1 selects the starting bucket, h2 is the
// control byte stashed in ctrl to reject most non-matching probes without
// touching the key itself.
//
// The mixing step is treated as a black box and delegated to xxhash rather
// than hand-rolled, since the hash function is an explicit external
// collaborator of this data structure.
type hash uint64

// HashBytes computes the digest of an arbitrary byte sequence. This is the
// sole entry point used both for T4's variable-length keys and, via
// HashWords, for the packed fixed-size word tuples backing T1-T3.
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// HashWords computes the digest of a fixed-size tuple of words by
// presenting its bytes to the same byte hasher used for T4, keeping a
// single hash implementation for both byte sequences and fixed-size word
// tuples.
func HashWords(words ...uint64) uint64 {
	var buf [3 * 8]byte
	n := 0
	for _, w := range words {
		binary.LittleEndian.PutUint64(buf[n:], w)
		n += 8
	}
	return HashBytes(buf[:n])
}

// h1 is the bucket-selection half of the hash.
func (h hash) h1() uint64 { return uint64(h >> 7) }

// h2 is the control byte stashed alongside a key. It always has its high
// bit set, so it can never collide with the zero byte used to mark an
// empty slot.
func (h hash) h2() byte { return ^(byte(h) & 0x7f) }

// String implements fmt.Stringer.
func (h hash) String() string {
	return fmt.Sprintf("%015x:%02x", h.h1(), h.h2())
}
