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

import "bytes"

// fallbackKey is the key representation used by T4: the fallback table for
// keys longer than 24 bytes, and for any key (of any length) whose last
// byte is 0x00.
//
// bytes points either at caller-owned memory (a transient key used only to
// probe or to seed an insert) or at arena-owned memory (once the key has
// been committed to the table); hash is precomputed so repeated probes
// during a single insert never rehash the key bytes.
type fallbackKey struct {
	bytes []byte
	hash  uint64
}

func newFallbackKey(b []byte, h uint64) fallbackKey {
	return fallbackKey{bytes: b, hash: h}
}

// fallbackEq compares two fallback keys. The hash is checked first since it
// is already resident in both values and almost always rules out a
// mismatch before the byte compare runs.
func fallbackEq(a, b fallbackKey) bool {
	return a.hash == b.hash && bytes.Equal(a.bytes, b.bytes)
}

func hashFallback(k fallbackKey) uint64 { return k.hash }
