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

import (
	"unsafe"

	"github.com/arrowkv/unsizedhash/internal/arena"
	"github.com/arrowkv/unsizedhash/internal/swiss"
)

// Table is a hash table keyed by byte slices of any length. See the
// package doc for the routing strategy.
type Table[V any] struct {
	t0 emptyTable[V]
	t1 *swiss.Table[inline1, V]
	t2 *swiss.Table[inline2, V]
	t3 *swiss.Table[inline3, V]
	t4 *swiss.Table[fallbackKey, V]

	arena   arena.Arena
	tail    *tailList[V] // nil unless EnableTailArray was called
	keySize int          // sum of len(key) over every distinct non-empty key
}

// New creates an empty table with a small default capacity for each
// sub-table.
func New[V any]() *Table[V] {
	return NewWithCapacity[V](8)
}

// NewWithCapacity creates an empty table, sizing each of the four
// non-trivial sub-tables to hold at least capacity entries before their
// first growth.
func NewWithCapacity[V any](capacity int) *Table[V] {
	return &Table[V]{
		t1: swiss.New[inline1, V](capacity, hashInline1, equalInline1),
		t2: swiss.New[inline2, V](capacity, hashInline2, equalInline2),
		t3: swiss.New[inline3, V](capacity, hashInline3, equalInline3),
		t4: swiss.New[fallbackKey, V](capacity, hashFallback, fallbackEq),
	}
}

// EnableTailArray switches the table into append-only mode: every
// subsequent insert of a non-empty key is appended to an unordered list
// instead of being deduplicated against the sub-tables, and keys are
// referenced directly rather than copied into the arena. This trades
// lookups and deduplication for insert throughput in workloads that only
// ever iterate the result once.
func (t *Table[V]) EnableTailArray() {
	if t.tail == nil {
		t.tail = &tailList[V]{}
	}
}

// Len reports the number of stored entries, across every sub-table and
// the tail list.
func (t *Table[V]) Len() int {
	return t.t0.len() + t.t1.Len() + t.t2.Len() + t.t3.Len() + t.t4.Len() + t.tailLen()
}

func (t *Table[V]) tailLen() int {
	if t.tail == nil {
		return 0
	}
	return t.tail.len()
}

// Capacity reports the combined slot capacity of T0 through T4 (tail
// storage has no fixed capacity).
func (t *Table[V]) Capacity() int {
	return t.t0.cap() + t.t1.Cap() + t.t2.Cap() + t.t3.Cap() + t.t4.Cap()
}

// BytesLen approximates the total heap footprint of the table: its own
// struct size, every sub-table's allocated slots, and the arena's
// allocated bytes.
func (t *Table[V]) BytesLen() int {
	return int(unsafe.Sizeof(*t)) + t.arena.AllocatedBytes() +
		t.t1.HeapBytes() + t.t2.HeapBytes() + t.t3.HeapBytes() + t.t4.HeapBytes()
}

// UnsizeKeySize reports the sum of key lengths over every distinct
// non-empty key successfully inserted since the table was created or last
// cleared (T0 contributes nothing, since its key has length zero;
// duplicate inserts and tail-list entries are not counted, matching the
// original's key_size accounting). Keys added to dst by [SetMerge] are not
// counted either.
func (t *Table[V]) UnsizeKeySize() int {
	return t.keySize
}

// Get looks up key, returning its entry if present. Entries appended to
// the tail list (see [Table.EnableTailArray]) are never visible to Get,
// only to iteration.
func (t *Table[V]) Get(key []byte) (Entry[V], bool) {
	switch classify(key) {
	case subT0:
		v, ok := t.t0.get()
		if !ok {
			return Entry[V]{}, false
		}
		return entryT0(v), true
	case subT1:
		k := packInline1(key)
		v, ok := t.t1.Get(k)
		if !ok {
			return Entry[V]{}, false
		}
		return entryT1(&k, v), true
	case subT2:
		k := packInline2(key)
		v, ok := t.t2.Get(k)
		if !ok {
			return Entry[V]{}, false
		}
		return entryT2(&k, v), true
	case subT3:
		k := packInline3(key)
		v, ok := t.t3.Get(k)
		if !ok {
			return Entry[V]{}, false
		}
		return entryT3(&k, v), true
	default:
		h := swiss.HashBytes(key)
		fk := newFallbackKey(key, h)
		v, ok := t.t4.GetWithHash(fk, h)
		if !ok {
			return Entry[V]{}, false
		}
		return entryT4(&fk, v), true
	}
}

// Insert inserts key if absent, returning a pointer to its value slot and
// whether the key was newly inserted.
func (t *Table[V]) Insert(key []byte) (*V, bool) {
	e, created := t.InsertAndEntry(key)
	return e.Value(), created
}

// InsertAndEntry inserts key if absent (or appends it to the tail list, if
// enabled), returning its full entry.
func (t *Table[V]) InsertAndEntry(key []byte) (Entry[V], bool) {
	return t.InsertAndEntryWithHash(key, swiss.HashBytes(key))
}

// InsertAndEntryWithHash is like InsertAndEntry, but uses a
// caller-supplied hash for keys routed to T4. h must equal
// swiss.HashBytes(key); it is ignored for T0-T3, which hash their packed
// inline words instead.
func (t *Table[V]) InsertAndEntryWithHash(key []byte, h uint64) (Entry[V], bool) {
	if t.tail != nil && len(key) > 0 {
		v := t.tail.append(key)
		return entryTail[V](key, v), true
	}

	switch classify(key) {
	case subT0:
		v, created := t.t0.insert()
		return entryT0(v), created
	case subT1:
		k := packInline1(key)
		t.t1.CheckGrow()
		v, created := t.t1.Insert(k)
		if created {
			t.keySize += len(key)
		}
		return entryT1(&k, v), created
	case subT2:
		k := packInline2(key)
		t.t2.CheckGrow()
		v, created := t.t2.Insert(k)
		if created {
			t.keySize += len(key)
		}
		return entryT2(&k, v), created
	case subT3:
		k := packInline3(key)
		t.t3.CheckGrow()
		v, created := t.t3.Insert(k)
		if created {
			t.keySize += len(key)
		}
		return entryT3(&k, v), created
	default:
		transient := newFallbackKey(key, h)
		t.t4.CheckGrow()
		var stored fallbackKey
		v, created := t.t4.InsertThenFinalize(transient, h, func() fallbackKey {
			stored = newFallbackKey(t.arena.AllocSliceCopy(key), h)
			return stored
		})
		if created {
			t.keySize += len(key)
		} else {
			// finalize did not run, so stored was never set; the key bytes
			// are unchanged from what's already in the table.
			stored = transient
		}
		return entryT4(&stored, v), created
	}
}

// Clear empties the table, including the tail list and the arena backing
// T4's keys.
func (t *Table[V]) Clear() {
	t.t0.clear()
	t.t1.Clear()
	t.t2.Clear()
	t.t3.Clear()
	t.t4.Clear()
	t.arena.Free()
	t.keySize = 0
	if t.tail != nil {
		t.tail.clear()
	}
}

// SetMerge folds every key of src into dst, inserting it with the zero
// value of V. It is a free function rather than a method because Go
// generics cannot specialize [Table] for V = struct{} the way the
// original does for its unit-valued set tables.
//
// It merges T0 through T4 pairwise, mirroring the original's set_merge,
// and deliberately does not go through src.Iter(): the tail list (see
// [Table.EnableTailArray]) is never merged, since its entries were never
// deduplicated against src's own sub-tables in the first place.
func SetMerge(dst, src *Table[struct{}]) {
	if src.t0.has {
		dst.t0.insert()
	}
	dst.t1.SetMerge(src.t1)
	dst.t2.SetMerge(src.t2)
	dst.t3.SetMerge(src.t3)
	dst.t4.SetMerge(src.t4)
}
