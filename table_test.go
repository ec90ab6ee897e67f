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
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyKey(t *testing.T) {
	tbl := New[int]()
	v, created := tbl.Insert(nil)
	require.True(t, created)
	*v = 7

	got, ok := tbl.Get([]byte{})
	require.True(t, ok)
	require.Equal(t, 7, *got.Value())
	require.Equal(t, 1, tbl.Len())
}

func TestBoundaryLengthsRouteCorrectly(t *testing.T) {
	lens := []int{1, 8, 9, 16, 17, 24, 25, 100}
	tbl := New[int]()
	for i, n := range lens {
		key := make([]byte, n)
		for j := range key {
			key[j] = byte(i + 1)
		}
		v, created := tbl.Insert(key)
		require.True(t, created)
		*v = i
	}

	require.Equal(t, len(lens), tbl.Len())
	require.Positive(t, tbl.BytesLen())

	sum := 0
	for _, n := range lens {
		sum += n
	}
	require.Equal(t, sum, tbl.UnsizeKeySize())

	for i, n := range lens {
		key := make([]byte, n)
		for j := range key {
			key[j] = byte(i + 1)
		}
		got, ok := tbl.Get(key)
		require.True(t, ok, "len=%d", n)
		require.Equal(t, i, *got.Value())
		require.Equal(t, key, got.Key())
	}
}

func TestTrailingNulDoesNotCollideWithShorterKey(t *testing.T) {
	tbl := New[int]()
	v1, created1 := tbl.Insert([]byte("ab"))
	require.True(t, created1)
	*v1 = 1

	v2, created2 := tbl.Insert([]byte("ab\x00"))
	require.True(t, created2, "\"ab\\x00\" must not collide with \"ab\"")
	*v2 = 2

	got1, ok := tbl.Get([]byte("ab"))
	require.True(t, ok)
	require.Equal(t, 1, *got1.Value())

	got2, ok := tbl.Get([]byte("ab\x00"))
	require.True(t, ok)
	require.Equal(t, 2, *got2.Value())

	require.Equal(t, 2, tbl.Len())
}

func TestDuplicateInsertAccumulates(t *testing.T) {
	tbl := New[int]()
	keys := [][]byte{[]byte(""), []byte("short"), []byte("nine-byte"), []byte("twenty-five-byte-long-key")}
	for _, k := range keys {
		for i := 0; i < 5; i++ {
			v, _ := tbl.Insert(k)
			*v += 1
		}
	}
	for _, k := range keys {
		got, ok := tbl.Get(k)
		require.True(t, ok)
		require.Equal(t, 5, *got.Value())
	}
	require.Equal(t, len(keys), tbl.Len())
}

func TestGrowthStabilityWithRandomKeys(t *testing.T) {
	tbl := New[int]()
	rng := rand.New(rand.NewSource(1))
	want := map[string]int{}

	for i := 0; i < 10000; i++ {
		n := rng.Intn(40)
		key := make([]byte, n)
		rng.Read(key)
		// a key may end in a NUL byte; T4 handles that case regardless, so
		// it's not excluded here.
		s := string(key)
		v, created := tbl.Insert(key)
		if _, exists := want[s]; exists {
			require.False(t, created)
		} else {
			require.True(t, created)
		}
		*v++
		want[s]++
	}

	require.Equal(t, len(want), tbl.Len())
	for s, count := range want {
		got, ok := tbl.Get([]byte(s))
		require.True(t, ok)
		require.Equal(t, count, *got.Value())
	}
}

func TestClearAndReuse(t *testing.T) {
	tbl := New[int]()
	for i := 0; i < 100; i++ {
		key := []byte(fmt.Sprintf("key-%d", i))
		v, _ := tbl.Insert(key)
		*v = i
	}
	require.Equal(t, 100, tbl.Len())

	tbl.Clear()
	require.Equal(t, 0, tbl.Len())
	require.Equal(t, 0, tbl.UnsizeKeySize())

	_, ok := tbl.Get([]byte("key-5"))
	require.False(t, ok)

	v, created := tbl.Insert([]byte("key-5"))
	require.True(t, created)
	*v = 99
	require.Equal(t, 1, tbl.Len())
}

func TestIterationVisitsEveryEntry(t *testing.T) {
	tbl := New[int]()
	keys := [][]byte{
		{},
		[]byte("a"),
		[]byte("twelve-bytes"),
		[]byte("this is twenty bytes"),
		[]byte("this key is well over twenty four bytes long"),
		[]byte("ab\x00"),
	}
	for i, k := range keys {
		v, _ := tbl.Insert(k)
		*v = i
	}

	seen := map[int]bool{}
	for e := range tbl.All() {
		seen[*e.Value()] = true
	}
	require.Equal(t, len(keys), len(seen))
}

func TestTailArrayBypassesDedup(t *testing.T) {
	tbl := New[int]()
	tbl.EnableTailArray()

	for i := 0; i < 3; i++ {
		v, created := tbl.Insert([]byte("dup"))
		require.True(t, created, "tail array must never report an existing entry")
		*v = i
	}
	require.Equal(t, 3, tbl.Len())

	var vals []int
	for e := range tbl.All() {
		vals = append(vals, *e.Value())
	}
	require.ElementsMatch(t, []int{0, 1, 2}, vals)
}

func TestSetMergeUnionsSets(t *testing.T) {
	a := New[struct{}]()
	b := New[struct{}]()

	for _, k := range [][]byte{[]byte("x"), []byte("y")} {
		a.Insert(k)
	}
	for _, k := range [][]byte{[]byte("y"), []byte("z")} {
		b.Insert(k)
	}

	SetMerge(a, b)
	for _, k := range [][]byte{[]byte("x"), []byte("y"), []byte("z")} {
		_, ok := a.Get(k)
		require.True(t, ok, "missing %q after SetMerge", k)
	}
	require.Equal(t, 3, a.Len())
}

func TestSetMergeExcludesTailList(t *testing.T) {
	a := New[struct{}]()
	b := New[struct{}]()

	b.Insert([]byte("sub-table-key"))
	b.EnableTailArray()
	for i := 0; i < 3; i++ {
		b.Insert([]byte("tail-key"))
	}
	require.Equal(t, 4, b.Len())

	SetMerge(a, b)
	_, ok := a.Get([]byte("sub-table-key"))
	require.True(t, ok, "SetMerge must still merge src's sub-table entries")
	_, ok = a.Get([]byte("tail-key"))
	require.False(t, ok, "SetMerge must not merge src's tail list")
	require.Equal(t, 1, a.Len())
}
