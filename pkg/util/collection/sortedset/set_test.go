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
package sortedset

import (
	"fmt"
	"testing"

	"github.com/dglib/go-dglib/pkg/util"
	"github.com/dglib/go-dglib/pkg/util/assert"
	"github.com/google/btree"
)

func Test_Set_01(t *testing.T) {
	set := New[int]()
	set.Insert(5)
	set.Insert(1)
	set.Insert(3)
	set.Insert(3)
	//
	assert.Equal(t, []int{1, 3, 3, 5}, set.Items())
	assert.True(t, set.Contains(3))
	assert.False(t, set.Contains(4))
	//
	index, ok := set.Find(4)
	assert.False(t, ok)
	assert.Equal(t, 2, index)
	index, ok = set.Find(0)
	assert.False(t, ok)
	assert.Equal(t, -1, index)
}

func Test_Set_02(t *testing.T) {
	set := New[int]()
	assert.True(t, set.InsertUnique(2))
	assert.False(t, set.InsertUnique(2))
	assert.Equal(t, []int{2}, set.Items())
	// Plain insert allows duplicates
	set.Insert(2)
	assert.Equal(t, []int{2, 2}, set.Items())
	// Single erase removes one
	assert.True(t, set.Erase(2))
	assert.Equal(t, []int{2}, set.Items())
	assert.False(t, set.Erase(7))
}

func Test_Set_03(t *testing.T) {
	set := New[int]()
	for _, v := range []int{4, 1, 4, 4, 9, 0, 4, 2} {
		set.Insert(v)
	}
	//
	assert.Equal(t, 4, set.EraseAll(4))
	assert.Equal(t, []int{0, 1, 2, 9}, set.Items())
	assert.Equal(t, 0, set.EraseAll(4))
	assert.Equal(t, 1, set.EraseAll(0))
	assert.Equal(t, 1, set.EraseAll(9))
	assert.Equal(t, []int{1, 2}, set.Items())
}

func Test_Set_04(t *testing.T) {
	set := New[int]()
	for range 5 {
		set.Insert(7)
	}
	// Run covering the whole set
	assert.Equal(t, 5, set.EraseAll(7))
	assert.True(t, set.Empty())
}

func Test_Set_05(t *testing.T) {
	set := NewWithCapacity[int](4)
	for _, v := range []int{10, 20, 30, 40} {
		set.Insert(v)
	}
	//
	index, ok := set.FindFrom(10, 2)
	assert.False(t, ok)
	assert.Equal(t, 1, index)
	index, ok = set.FindRange(40, 0, 2)
	assert.False(t, ok)
	assert.Equal(t, 2, index)
	//
	clone := set.Clone()
	clone.Erase(10)
	assert.Equal(t, 4, set.Size())
	//
	other := New[int]()
	other.Assign(set)
	assert.Equal(t, set.Items(), other.Items())
	assert.Equal(t, set.Capacity(), other.Capacity())
	//
	set.Resize(3)
	assert.Equal(t, []int{10, 20, 30}, set.Iter().Collect())
	set.Reset()
	assert.True(t, set.Empty())
	assert.Equal(t, uint32(1), set.Capacity())
}

func Test_Set_06(t *testing.T) {
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("i=%d", i), func(t *testing.T) {
			check_Set_Ops(t, uint64(i), 1000, 32)
		})
	}
}

func Test_Set_07(t *testing.T) {
	check_Set_Ops(t, 54321, 50000, 1024)
}

// ===================================================================
// Test Helpers
// ===================================================================

// occurrence distinguishes duplicate elements in the reference model.
type occurrence struct {
	item uint
	seq  int
}

func occurrenceLess(a, b occurrence) bool {
	if a.item != b.item {
		return a.item < b.item
	}
	//
	return a.seq < b.seq
}

// Apply a random sequence of operations to a set and to a btree reference
// model, checking they agree throughout.
func check_Set_Ops(t *testing.T, seed uint64, n uint, m uint) {
	var (
		ops   = util.GenerateRandomOps(seed, n, 4)
		items = util.GenerateRandomOps(seed+1, n, m)
		set   = New[uint]()
		ref   = btree.NewG[occurrence](8, occurrenceLess)
	)
	//
	for i, op := range ops {
		item := items[i]
		matches := matching(ref, item)
		//
		switch op {
		case 0:
			set.Insert(item)
			ref.ReplaceOrInsert(occurrence{item, i})
		case 1:
			assert.Equal(t, len(matches) == 0, set.InsertUnique(item))
			//
			if len(matches) == 0 {
				ref.ReplaceOrInsert(occurrence{item, i})
			}
		case 2:
			assert.Equal(t, len(matches) != 0, set.Erase(item))
			//
			if len(matches) != 0 {
				ref.Delete(matches[0])
			}
		case 3:
			assert.Equal(t, len(matches), set.EraseAll(item))
			//
			for _, o := range matches {
				ref.Delete(o)
			}
		}
		//
		assert.Equal(t, ref.Len(), set.Size())
	}
	//
	index := 0
	//
	ref.Ascend(func(o occurrence) bool {
		assert.Equal(t, o.item, set.Get(index))
		index++
		//
		return true
	})
}

// Determine all occurrences of a given item in the reference model.
func matching(ref *btree.BTreeG[occurrence], item uint) []occurrence {
	var matches []occurrence
	//
	ref.AscendGreaterOrEqual(occurrence{item, -1}, func(o occurrence) bool {
		if o.item != item {
			return false
		}
		//
		matches = append(matches, o)
		//
		return true
	})
	//
	return matches
}
