// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package sortedmap

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dglib/go-dglib/pkg/util"
	"github.com/dglib/go-dglib/pkg/util/assert"
	"github.com/google/btree"
)

func Test_Map_01(t *testing.T) {
	m := New[int, string]()
	assert.True(t, m.Insert(5, "five"))
	assert.True(t, m.Insert(1, "one"))
	assert.True(t, m.Insert(3, "three"))
	//
	assert.Equal(t, []int{1, 3, 5}, m.Keys().Collect())
	//
	index, ok := m.Find(3)
	assert.True(t, ok)
	assert.Equal(t, 1, index)
	//
	assert.True(t, m.Erase(1))
	assert.Equal(t, []int{3, 5}, m.Keys().Collect())
	//
	index, ok = m.Find(1)
	assert.False(t, ok)
	assert.Equal(t, -1, index)
}

func Test_Map_02(t *testing.T) {
	m := New[int, string]()
	assert.True(t, m.Insert(2, "two"))
	before := m.String()
	// Duplicate insert changes nothing
	assert.False(t, m.Insert(2, "deux"))
	assert.Equal(t, before, m.String())
	assert.Equal(t, 1, m.Size())
	// Set only updates existing keys
	assert.True(t, m.Set(2, "deux"))
	assert.False(t, m.Set(4, "four"))
	v, ok := m.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "deux", v)
	_, ok = m.Get(4)
	assert.False(t, ok)
	// Erasing an absent key is a no-op
	assert.False(t, m.Erase(4))
	assert.Equal(t, "{2:deux}", m.String())
}

func Test_Map_03(t *testing.T) {
	m := New[int, int]()
	for _, k := range []int{10, 20, 30, 40} {
		m.Insert(k, k*10)
	}
	// Not found reports the index one below the insertion point
	checkFind(t, m, 5, -1, false)
	checkFind(t, m, 15, 0, false)
	checkFind(t, m, 35, 2, false)
	checkFind(t, m, 45, 3, false)
	checkFind(t, m, 40, 3, true)
	// Bounded searches
	index, ok := m.FindFrom(10, 1)
	assert.False(t, ok)
	assert.Equal(t, 0, index)
	index, ok = m.FindRange(30, 0, 1)
	assert.False(t, ok)
	assert.Equal(t, 1, index)
	index, ok = m.FindRange(20, -5, 100)
	assert.True(t, ok)
	assert.Equal(t, 1, index)
}

func Test_Map_04(t *testing.T) {
	m := New[int, int]()
	for _, k := range []int{1, 2, 3} {
		m.Insert(k, k)
	}
	//
	assert.True(t, m.EraseAt(0))
	assert.Equal(t, []int{2, 3}, m.Keys().Collect())
	assert.False(t, m.EraseAt(2))
	assert.False(t, m.EraseAt(-1))
	assert.True(t, m.EraseAt(1))
	assert.Equal(t, []int{2}, m.Keys().Collect())
}

func Test_Map_05(t *testing.T) {
	m := NewWithCapacity[int, int](8)
	for k := range 6 {
		m.Insert(k, k)
	}
	// Positional accessors
	assert.Equal(t, 4, m.Key(4))
	*m.ValueRef(4) = 44
	assert.Equal(t, 44, m.Value(4))
	// Clone is independent
	clone := m.Clone()
	clone.Erase(0)
	assert.Equal(t, 6, m.Size())
	assert.Equal(t, 5, clone.Size())
	// Assign copies content and ordering
	other := New[int, int]()
	other.Assign(m)
	assert.Equal(t, m.Entries().Collect(), other.Entries().Collect())
	// Resize truncates, reset returns to the default
	m.Resize(2)
	assert.Equal(t, []int{0, 1}, m.Keys().Collect())
	m.Reset()
	assert.True(t, m.Empty())
	assert.Equal(t, uint32(1), m.Capacity())
}

func Test_Map_06(t *testing.T) {
	// Descending order via a custom comparator
	m := NewFunc[string, int](func(a, b string) int { return -strings.Compare(a, b) }, 1)
	for i, k := range []string{"b", "a", "c"} {
		m.Insert(k, i)
	}
	//
	assert.Equal(t, []string{"c", "b", "a"}, m.Keys().Collect())
	assert.True(t, m.Contains("a"))
	assert.False(t, m.Contains("d"))
}

func Test_Map_07(t *testing.T) {
	// Repeated doubling from a single slot
	m := New[uint, uint]()
	for k := uint(0); k < 1024; k++ {
		before := m.Capacity()
		assert.True(t, m.Insert(1023-k, k))
		//
		if m.Capacity() != before {
			assert.Equal(t, 2*before, m.Capacity())
		}
	}
	//
	checkSorted(t, m)
	assert.Equal(t, uint32(1024), m.Capacity())
}

func Test_Map_08(t *testing.T) {
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("i=%d", i), func(t *testing.T) {
			check_Map_Ops(t, uint64(i), 1000, 64)
		})
	}
}

func Test_Map_09(t *testing.T) {
	check_Map_Ops(t, 12345, 100000, 4096)
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkFind(t *testing.T, m *Map[int, int], key int, index int, found bool) {
	t.Helper()
	//
	i, ok := m.Find(key)
	assert.Equal(t, found, ok, "key %d", key)
	assert.Equal(t, index, i, "key %d", key)
}

func checkSorted[K uint | int, V any](t *testing.T, m *Map[K, V]) {
	t.Helper()
	//
	for i := 0; i+1 < m.Size(); i++ {
		assert.True(t, m.Key(i) < m.Key(i+1), "keys %v and %v out of order", m.Key(i), m.Key(i+1))
	}
}

// Apply a random sequence of insertions / removals to a map and to a btree
// reference model, checking they agree throughout.
func check_Map_Ops(t *testing.T, seed uint64, n uint, m uint) {
	var (
		ops  = util.GenerateRandomOps(seed, n, 3)
		keys = util.GenerateRandomOps(seed+1, n, m)
		smap = New[uint, uint]()
		ref  = btree.NewG[Entry[uint, uint]](8, func(a, b Entry[uint, uint]) bool { return a.Key < b.Key })
	)
	//
	for i, op := range ops {
		key := keys[i]
		_, present := ref.Get(Entry[uint, uint]{Key: key})
		//
		switch op {
		case 0:
			assert.Equal(t, !present, smap.Insert(key, uint(i)))
			//
			if !present {
				ref.ReplaceOrInsert(Entry[uint, uint]{key, uint(i)})
			}
		case 1:
			assert.Equal(t, present, smap.Erase(key))
			ref.Delete(Entry[uint, uint]{Key: key})
		case 2:
			assert.Equal(t, present, smap.Set(key, uint(i)))
			//
			if present {
				ref.ReplaceOrInsert(Entry[uint, uint]{key, uint(i)})
			}
		}
		//
		assert.Equal(t, ref.Len(), smap.Size())
	}
	//
	checkSorted(t, smap)
	//
	index := 0
	//
	ref.Ascend(func(e Entry[uint, uint]) bool {
		assert.Equal(t, e, Entry[uint, uint]{smap.Key(index), smap.Value(index)})
		index++
		//
		return true
	})
}
