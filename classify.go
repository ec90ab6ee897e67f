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

package unsizedhash

import "github.com/arrowkv/unsizedhash/internal/swiss"

// subTable identifies which of the five sub-tables (or the tail list) owns
// a key.
type subTable uint8

const (
	subT0 subTable = iota // the empty key
	subT1                 // 1-8 bytes
	subT2                 // 9-16 bytes
	subT3                 // 17-24 bytes
	subT4                 // >=25 bytes, or any length with a trailing 0x00
)

// classify is the total function from key bytes to owning sub-table.
//
// A key whose last byte is 0x00 is always routed to T4, regardless of its
// length: storing it inline would make the packed length tag
// indistinguishable from a shorter key whose tail happens to be zero
// (see inlineN.unpack).
func classify(b []byte) subTable {
	switch n := len(b); {
	case n == 0:
		return subT0
	case b[n-1] == 0x00:
		return subT4
	case n <= 8:
		return subT1
	case n <= 16:
		return subT2
	case n <= 24:
		return subT3
	default:
		return subT4
	}
}

// inline1 packs a 1-8 byte key into a single machine word. The word is
// never zero for a valid key, since classify routes any key whose last
// byte is zero to T4; that guarantee is what makes the word a decodable
// length tag. Empty slots are marked by the table's own control bytes, not
// by the packed word.
type inline1 struct{ w0 uint64 }

// inline2 packs a 9-16 byte key into two words: w0 holds the first 8 bytes
// in full, w1 holds the tail and doubles as the length tag.
type inline2 struct{ w0, w1 uint64 }

// inline3 packs a 17-24 byte key into three words, analogous to inline2.
type inline3 struct{ w0, w1, w2 uint64 }

// readLE assembles the first n bytes of b (n in [1,8]) as a little-endian
// uint64, leaving higher bytes zero.
func readLE(b []byte, n int) uint64 {
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func packInline1(b []byte) inline1 {
	return inline1{w0: readLE(b, len(b))}
}

func packInline2(b []byte) inline2 {
	return inline2{
		w0: readLE(b[0:8], 8),
		w1: readLE(b[8:], len(b)-8),
	}
}

func packInline3(b []byte) inline3 {
	return inline3{
		w0: readLE(b[0:8], 8),
		w1: readLE(b[8:16], 8),
		w2: readLE(b[16:], len(b)-16),
	}
}

// tailLen returns the index of the highest non-zero byte in the
// little-endian encoding of w, i.e. the number of significant bytes minus
// one. w must be non-zero.
func tailLen(w uint64) int {
	for i := 7; i >= 0; i-- {
		if byte(w>>(8*i)) != 0 {
			return i
		}
	}
	panic("unsizedhash: tailLen called on a zero word")
}

func appendLE(dst []byte, w uint64, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, byte(w>>(8*i)))
	}
	return dst
}

// unpack reconstructs the original key bytes from a stored inline1 entry.
func (k inline1) unpack() []byte {
	i := tailLen(k.w0)
	return appendLE(make([]byte, 0, i+1), k.w0, i+1)
}

func (k inline2) unpack() []byte {
	i := tailLen(k.w1)
	out := appendLE(make([]byte, 0, 8+i+1), k.w0, 8)
	return appendLE(out, k.w1, i+1)
}

func (k inline3) unpack() []byte {
	i := tailLen(k.w2)
	out := appendLE(make([]byte, 0, 16+i+1), k.w0, 8)
	out = appendLE(out, k.w1, 8)
	return appendLE(out, k.w2, i+1)
}

func equalInline1(a, b inline1) bool { return a == b }
func equalInline2(a, b inline2) bool { return a == b }
func equalInline3(a, b inline3) bool { return a == b }

func hashInline1(k inline1) uint64 { return swiss.HashWords(k.w0) }
func hashInline2(k inline2) uint64 { return swiss.HashWords(k.w0, k.w1) }
func hashInline3(k inline3) uint64 { return swiss.HashWords(k.w0, k.w1, k.w2) }
