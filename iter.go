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
	"iter"

	"github.com/arrowkv/unsizedhash/internal/swiss"
)

// Iter walks every entry of a Table, in the order T0, T1, T2, T3, T4, then
// the tail list.
type Iter[V any] struct {
	t     *Table[V]
	stage subTable
	it1   *swiss.Iter[inline1, V]
	it2   *swiss.Iter[inline2, V]
	it3   *swiss.Iter[inline3, V]
	it4   *swiss.Iter[fallbackKey, V]
	tailI int
}

// Iter returns a fresh iterator positioned before the first entry.
func (t *Table[V]) Iter() *Iter[V] {
	return &Iter[V]{t: t, stage: subT0}
}

// Next advances the iterator, returning the next entry, or ok=false once
// every entry has been visited.
func (it *Iter[V]) Next() (Entry[V], bool) {
	if it.stage == subT0 {
		it.stage = subT1
		if v, ok := it.t.t0.get(); ok {
			return entryT0(v), true
		}
	}
	if it.stage == subT1 {
		if it.it1 == nil {
			it.it1 = it.t.t1.Iter()
		}
		if k, v, ok := it.it1.Next(); ok {
			kk := k
			return entryT1(&kk, v), true
		}
		it.stage = subT2
	}
	if it.stage == subT2 {
		if it.it2 == nil {
			it.it2 = it.t.t2.Iter()
		}
		if k, v, ok := it.it2.Next(); ok {
			kk := k
			return entryT2(&kk, v), true
		}
		it.stage = subT3
	}
	if it.stage == subT3 {
		if it.it3 == nil {
			it.it3 = it.t.t3.Iter()
		}
		if k, v, ok := it.it3.Next(); ok {
			kk := k
			return entryT3(&kk, v), true
		}
		it.stage = subT4
	}
	if it.stage == subT4 {
		if it.it4 == nil {
			it.it4 = it.t.t4.Iter()
		}
		if k, v, ok := it.it4.Next(); ok {
			kk := k
			return entryT4(&kk, v), true
		}
		it.stage = subT4 + 1 // past T4, now draining the tail list
	}
	if it.t.tail != nil && it.tailI < len(it.t.tail.entries) {
		e := &it.t.tail.entries[it.tailI]
		it.tailI++
		return entryTail[V](e.key, &e.val), true
	}
	return Entry[V]{}, false
}

// All returns a range-over-func iterator equivalent to repeatedly calling
// Next.
func (t *Table[V]) All() iter.Seq[Entry[V]] {
	return func(yield func(Entry[V]) bool) {
		it := t.Iter()
		for {
			e, ok := it.Next()
			if !ok || !yield(e) {
				return
			}
		}
	}
}
