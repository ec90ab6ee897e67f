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

// Package arena provides a bump allocator used to give stored fallback keys
// a stable home independent of the caller's buffer.
//
// # Design
//
// Unlike a classic arena over raw memory, this arena hands out ordinary Go
// byte slices, so there is no need to tie chunk liveness to outstanding
// pointers by hand: a chunk is just a field of the [Arena] value, and as
// long as something keeps the [Arena] (or a slice returned by it) alive,
// the Go garbage collector keeps the whole chunk alive with it. This is a
// deliberate simplification of the arena-with-self-referential-chunk-header
// trick used by lower-level Go arenas, since this package never needs a
// slice to outlive the [Arena] that produced it (see the package's callers
// for that invariant).
package arena

import "github.com/arrowkv/unsizedhash/internal/dbg"

// minChunk is the smallest chunk the arena will allocate from the OS
// allocator. Smaller requests still get a chunk of at least this size.
const minChunk = 4096

// Arena is a bump allocator that owns the backing bytes for every key
// copied into it via AllocSliceCopy.
//
// A zero Arena is empty and ready to use.
type Arena struct {
	cur       []byte // current chunk; the live region is cur[:len(cur)]
	allocated int    // total bytes ever handed out, across all chunks
	cap       int    // capacity of the current chunk
}

// AllocSliceCopy copies b into the arena and returns a slice backed by
// arena-owned memory, stable until the next Free.
//
// Once a chunk is full, AllocSliceCopy simply starts a new one: memory
// returned by a previous chunk stays valid because the caller's own slice
// keeps that chunk's backing array reachable, independent of whether the
// Arena itself still points at it.
func (a *Arena) AllocSliceCopy(b []byte) []byte {
	if len(b) == 0 {
		// A zero-length request gets a non-nil empty slice without touching
		// the current chunk. The table only copies keys of length >= 1, so
		// this branch is not reached from there.
		return []byte{}
	}

	if a.cap-len(a.cur) < len(b) {
		a.grow(len(b))
	}
	dbg.Assert(a.cap-len(a.cur) >= len(b), "arena: grow did not reserve enough room for %d bytes (cap=%d, used=%d)", len(b), a.cap, len(a.cur))

	start := len(a.cur)
	a.cur = append(a.cur, b...)
	out := a.cur[start:len(a.cur):len(a.cur)]
	a.allocated += len(b)
	dbg.Log("alloc", "%v", dbg.Dict("arena", "bytes", len(b), "total", a.allocated))
	return out
}

// grow allocates a fresh chunk with room for at least size bytes.
func (a *Arena) grow(size int) {
	n := minChunk
	for n < size {
		n *= 2
	}
	if prev := a.cap * 2; prev > n {
		n = prev
	}
	old := a.cap
	a.cur = make([]byte, 0, n)
	a.cap = n
	dbg.Log("grow", "%v", dbg.Dict("arena", "old_cap", old, "new_cap", n))
}

// AllocatedBytes reports the number of bytes actually allocated to callers
// so far (not the arena's spare capacity).
func (a *Arena) AllocatedBytes() int {
	return a.allocated
}

// Free resets the arena to an empty state. Any slice previously returned by
// AllocSliceCopy must not be used after this call.
func (a *Arena) Free() {
	a.cur = nil
	a.cap = 0
	a.allocated = 0
}
