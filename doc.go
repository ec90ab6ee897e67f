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

// Package unsizedhash is a hash table keyed by byte strings of arbitrary
// length, specialized for insert-heavy aggregation workloads followed by a
// single iteration pass.
//
// Instead of one general-purpose table, keys are routed to one of five
// sub-tables by length: a one-slot table for the empty key, three
// fixed-width tables for keys of 1-8, 9-16 and 17-24 bytes (packed into
// machine words to avoid a pointer indirection per key), and a fallback
// table for everything else, which stores keys by reference into an arena.
// Routing is entirely transparent to callers: [Table.Insert] and
// [Table.Get] take a plain []byte.
//
// # Uninitialized slots
//
// [Table.Insert] returns a pointer to the value slot whether the key was
// newly inserted or already present, plus a bool telling you which. On a
// fresh insert, the slot holds V's zero value; this is the mechanism by
// which aggregation accumulators are built: initialize on the true branch,
// fold in on the false branch.
//
// # Concurrency
//
// A Table is not safe for concurrent mutation. It is safe to share
// read-only across goroutines once building is complete, and safe to hand
// off between goroutines, provided V itself has no such restrictions.
package unsizedhash
