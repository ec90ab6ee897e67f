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

package swiss

import (
	"math/bits"
	"unsafe"

	"github.com/arrowkv/unsizedhash/internal/dbg"
)

const empty = 0x00

// maxLoadNum/maxLoadDen bound how full a table may get before it is grown;
// 7/8 is the classic Swisstable load factor.
const (
	maxLoadNum = 7
	maxLoadDen = 8
)

// Table is an open-addressing hash table keyed by an arbitrary comparable
// representation K, using Swisstable-style control bytes to short-circuit
// most failed probes before touching keys at all.
//
// Unlike a table restricted to scalar keys, Table takes explicit hash and
// equality functions, so it can back composite key shapes (packed inline
// words, or a byte-slice-plus-hash fallback key) without requiring Go's
// built-in == operator to apply to K.
type Table[K any, V any] struct {
	ctrl  []byte
	keys  []K
	vals  []V
	n     int // number of occupied slots
	hash  func(K) uint64
	equal func(a, b K) bool
}

// New creates a table with room for at least capacity entries before its
// first growth.
func New[K any, V any](capacity int, hash func(K) uint64, equal func(a, b K) bool) *Table[K, V] {
	t := &Table[K, V]{hash: hash, equal: equal}
	// Size the slot array so that capacity entries fit under the load factor.
	t.init((capacity*maxLoadDen + maxLoadNum - 1) / maxLoadNum)
	return t
}

func (t *Table[K, V]) init(capacity int) {
	n := nextPow2(max(capacity, 8))
	t.ctrl = make([]byte, n)
	t.keys = make([]K, n)
	t.vals = make([]V, n)
	t.n = 0
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func maxLoad(cap int) int {
	return cap * maxLoadNum / maxLoadDen
}

// Len reports the number of stored entries.
func (t *Table[K, V]) Len() int { return t.n }

// Cap reports the table's current slot capacity.
func (t *Table[K, V]) Cap() int { return len(t.ctrl) }

// HeapBytes approximates the heap memory owned by this table: capacity
// times the per-slot footprint (one control byte, one key, one value).
func (t *Table[K, V]) HeapBytes() int {
	var k K
	var v V
	perSlot := 1 + int(unsafe.Sizeof(k)) + int(unsafe.Sizeof(v))
	return len(t.ctrl) * perSlot
}

// CheckGrow reserves capacity for one more insertion, growing the table if
// the next insert would exceed the load factor. Callers that already know
// they are about to insert should call this before probing.
func (t *Table[K, V]) CheckGrow() {
	if t.n+1 > maxLoad(len(t.ctrl)) {
		t.grow(len(t.ctrl) * 2)
	}
}

func (t *Table[K, V]) grow(newCap int) {
	old := *t
	t.init(newCap)

	for i, c := range old.ctrl {
		if c == empty {
			continue
		}
		k := old.keys[i]
		h := hash(old.hash(k))
		idx := t.findEmpty(h)
		t.ctrl[idx] = h.h2()
		t.keys[idx] = k
		t.vals[idx] = old.vals[i]
		t.n++
	}
	dbg.Assert(t.n <= maxLoad(len(t.ctrl)), "swiss: grow left table over its load factor: %d entries in %d slots", t.n, len(t.ctrl))
	dbg.Log("grow", "%v", dbg.Dict("table", "old_slots", len(old.ctrl), "new_slots", len(t.ctrl), "entries", t.n))
}

// findEmpty locates a free slot for h in a table known to contain no
// matching key (used during rehashing, where every key is already known
// to be distinct).
func (t *Table[K, V]) findEmpty(h hash) int {
	mask := uint64(len(t.ctrl) - 1)
	pos := h.h1() & mask
	var step uint64
	for t.ctrl[pos] != empty {
		step++
		pos = (pos + step) & mask
	}
	return int(pos)
}

// find implements the triangular-number probe sequence: for bucket index
// i at step s, the next index is (i + s+1) mod (cap), which visits every
// slot exactly once when cap is a power of two.
func (t *Table[K, V]) find(k K, h hash) (idx int, found bool) {
	mask := uint64(len(t.ctrl) - 1)
	pos := h.h1() & mask
	want := h.h2()
	var step uint64
	for {
		c := t.ctrl[pos]
		if c == empty {
			return int(pos), false
		}
		if c == want && t.equal(t.keys[pos], k) {
			return int(pos), true
		}
		step++
		pos = (pos + step) & mask
	}
}

// Get looks up k, returning a pointer to its value if present.
func (t *Table[K, V]) Get(k K) (*V, bool) {
	return t.GetWithHash(k, t.hash(k))
}

// GetWithHash is like Get, but uses a caller-supplied hash. h must equal
// hash(k); passing a mismatched hash produces incorrect lookups.
func (t *Table[K, V]) GetWithHash(k K, h uint64) (*V, bool) {
	if len(t.ctrl) == 0 {
		return nil, false
	}
	idx, found := t.find(k, hash(h))
	if !found {
		return nil, false
	}
	return &t.vals[idx], true
}

// Insert inserts k if absent, returning a pointer to its value slot and
// true if the key was newly inserted (the value is its zero value and the
// caller should initialize it), or a pointer to the existing value slot
// and false if the key was already present.
//
// Callers must call CheckGrow before Insert.
func (t *Table[K, V]) Insert(k K) (*V, bool) {
	return t.InsertWithHash(k, t.hash(k))
}

// InsertWithHash is like Insert, but uses a caller-supplied hash. h must
// equal hash(k); passing a mismatched hash corrupts the table.
func (t *Table[K, V]) InsertWithHash(k K, h uint64) (*V, bool) {
	hh := hash(h)
	idx, found := t.find(k, hh)
	if found {
		return &t.vals[idx], false
	}
	t.ctrl[idx] = hh.h2()
	t.keys[idx] = k
	t.n++
	return &t.vals[idx], true
}

// InsertThenFinalize inserts a transient key k if absent, exactly like
// InsertWithHash, except that on the newly-inserted branch it calls
// finalize to obtain the key that is actually stored, overwriting k in the
// slot. finalize is not called on the duplicate-insert path.
//
// This is the hook fallback keys use to avoid copying key bytes into the
// arena until an insert is known to be new: pass a transient key pointing
// at caller-owned memory, and let finalize return an arena-backed copy.
func (t *Table[K, V]) InsertThenFinalize(k K, h uint64, finalize func() K) (*V, bool) {
	hh := hash(h)
	idx, found := t.find(k, hh)
	if found {
		return &t.vals[idx], false
	}
	t.ctrl[idx] = hh.h2()
	t.keys[idx] = finalize()
	t.n++
	return &t.vals[idx], true
}

// Clear empties the table, dropping all stored keys and values, but keeps
// the currently allocated capacity.
func (t *Table[K, V]) Clear() {
	for i := range t.ctrl {
		t.ctrl[i] = empty
		var zk K
		var zv V
		t.keys[i] = zk
		t.vals[i] = zv
	}
	t.n = 0
}

// SetMerge folds every key in other into t, re-inserting it with the zero
// value of V. This mirrors the original's restriction to set-shaped tables
// (V the unit type): it never reads other's values.
func (t *Table[K, V]) SetMerge(other *Table[K, V]) {
	it := other.Iter()
	for {
		k, _, ok := it.Next()
		if !ok {
			return
		}
		t.CheckGrow()
		t.Insert(k)
	}
}

// Iter returns a fresh iterator over the table's entries, in unspecified
// but stable-within-one-pass order.
func (t *Table[K, V]) Iter() *Iter[K, V] {
	return &Iter[K, V]{t: t}
}

// Iter walks the occupied slots of a Table.
type Iter[K any, V any] struct {
	t *Table[K, V]
	i int
}

// Next advances the iterator, returning the next key/value pair, or
// ok=false once every slot has been visited.
func (it *Iter[K, V]) Next() (k K, v *V, ok bool) {
	for it.i < len(it.t.ctrl) {
		idx := it.i
		it.i++
		if it.t.ctrl[idx] != empty {
			return it.t.keys[idx], &it.t.vals[idx], true
		}
	}
	var zk K
	return zk, nil, false
}
