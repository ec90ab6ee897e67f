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

// tailEntry is one record in the optional tail list: a key paired with its
// value slot. The key slice references whatever memory the caller passed
// to append; unlike fallbackKey in T4, it is never copied into the arena,
// since the tail list never deduplicates or looks a key back up, so there
// is nothing for a later probe to compare it against.
type tailEntry[V any] struct {
	key []byte
	val V
}

// tailList is an append-only list of entries, enabled by
// [Table.EnableTailArray]. Every non-empty insert bypasses the five
// sub-tables entirely and is appended here instead, so duplicate keys
// accumulate as separate entries rather than merging.
type tailList[V any] struct {
	entries []tailEntry[V]
}

func (l *tailList[V]) append(key []byte) *V {
	l.entries = append(l.entries, tailEntry[V]{key: key})
	return &l.entries[len(l.entries)-1].val
}

func (l *tailList[V]) len() int { return len(l.entries) }

func (l *tailList[V]) clear() { l.entries = l.entries[:0] }
