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

package arena_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowkv/unsizedhash/internal/arena"
)

func TestAllocSliceCopyStable(t *testing.T) {
	var a arena.Arena

	var slices [][]byte
	for i := 0; i < 1000; i++ {
		b := []byte(fmt.Sprintf("key-%d", i))
		slices = append(slices, a.AllocSliceCopy(b))
	}

	for i, s := range slices {
		require.True(t, bytes.Equal(s, []byte(fmt.Sprintf("key-%d", i))))
	}
}

func TestAllocSliceCopyIndependentOfCaller(t *testing.T) {
	var a arena.Arena

	src := []byte("mutate me")
	got := a.AllocSliceCopy(src)
	src[0] = 'X'

	require.Equal(t, "mutate me", string(got))
}

func TestAllocSliceCopyEmpty(t *testing.T) {
	var a arena.Arena
	got := a.AllocSliceCopy(nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestAllocatedBytes(t *testing.T) {
	var a arena.Arena
	require.Equal(t, 0, a.AllocatedBytes())

	a.AllocSliceCopy([]byte("abc"))
	a.AllocSliceCopy([]byte("de"))
	require.Equal(t, 5, a.AllocatedBytes())
}

func TestFreeResets(t *testing.T) {
	var a arena.Arena
	a.AllocSliceCopy([]byte("hello"))
	require.Equal(t, 5, a.AllocatedBytes())

	a.Free()
	require.Equal(t, 0, a.AllocatedBytes())

	got := a.AllocSliceCopy([]byte("world"))
	require.Equal(t, "world", string(got))
}

func TestGrowthAcrossChunks(t *testing.T) {
	var a arena.Arena

	// Force several chunk growths and make sure every returned slice keeps
	// its content, even the ones allocated from earlier, now-abandoned
	// chunks.
	var got [][]byte
	var want []string
	for i := 0; i < 5000; i++ {
		s := fmt.Sprintf("%08d-some-moderately-long-key-material", i)
		want = append(want, s)
		got = append(got, a.AllocSliceCopy([]byte(s)))
	}

	for i := range got {
		require.Equal(t, want[i], string(got[i]), "index %d", i)
	}
}
