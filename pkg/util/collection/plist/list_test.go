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
package plist

import (
	"fmt"
	"slices"
	"testing"

	"github.com/dglib/go-dglib/pkg/util"
	"github.com/dglib/go-dglib/pkg/util/assert"
)

func Test_List_01(t *testing.T) {
	list := NewWithCapacity[string](2)
	assert.True(t, list.TryPushBack("A"))
	assert.True(t, list.TryPushBack("B"))
	// Non-growing variant fails when full
	assert.False(t, list.TryPushBack("C"))
	assert.Equal(t, []string{"A", "B"}, list.Iter().Collect())
	assert.Equal(t, uint32(2), list.Capacity())
	checkValid(t, list)
	// Growing variant doubles
	list.PushBack("C")
	assert.Equal(t, uint32(4), list.Capacity())
	assert.Equal(t, []string{"A", "B", "C"}, list.Iter().Collect())
	checkValid(t, list)
}

func Test_List_02(t *testing.T) {
	list := New[int]()
	list.PushFront(1)
	list.PushFront(2)
	list.PushBack(3)
	list.PushFront(4)
	//
	assert.Equal(t, []int{4, 2, 1, 3}, list.Iter().Collect())
	assert.Equal(t, 4, list.Front())
	assert.Equal(t, 3, list.Back())
	checkValid(t, list)
	//
	assert.True(t, list.PopFront())
	assert.True(t, list.PopBack())
	assert.Equal(t, []int{2, 1}, list.Iter().Collect())
	assert.True(t, list.PopBack())
	assert.True(t, list.PopBack())
	assert.False(t, list.PopBack())
	assert.False(t, list.PopFront())
	assert.True(t, list.Empty())
	checkValid(t, list)
}

func Test_List_03(t *testing.T) {
	list := NewWithCapacity[int](2)
	ref, ok := list.EmplaceBack()
	assert.True(t, ok)
	assert.Equal(t, 0, *ref)
	*ref = 7
	ref, ok = list.EmplaceFront()
	assert.True(t, ok)
	*ref = 6
	// Full
	_, ok = list.EmplaceBack()
	assert.False(t, ok)
	_, ok = list.EmplaceFront()
	assert.False(t, ok)
	assert.False(t, list.TryPushFront(5))
	//
	assert.Equal(t, []int{6, 7}, list.Iter().Collect())
	checkValid(t, list)
}

func Test_List_04(t *testing.T) {
	list := NewWithCapacity[int](8)
	for i := range 4 {
		list.PushBack(i)
	}
	// Insert before the third element, and at the end
	it := list.Begin().Next().Next()
	inserted := list.Insert(it, 10)
	assert.Equal(t, 10, inserted.Value())
	assert.Equal(t, 2, inserted.Next().Value())
	list.Insert(list.End(), 11)
	list.Insert(list.Begin(), 12)
	assert.Equal(t, []int{12, 0, 1, 10, 2, 3, 11}, list.Iter().Collect())
	// Untouched iterators remain valid
	assert.Equal(t, 2, it.Value())
	checkValid(t, list)
	// Erase returns following position
	next := list.Erase(inserted)
	assert.Equal(t, it, next)
	next = list.Erase(list.End().Prev())
	assert.Equal(t, list.End(), next)
	assert.Equal(t, []int{12, 0, 1, 2, 3}, list.Iter().Collect())
	checkValid(t, list)
}

func Test_List_05(t *testing.T) {
	list := NewWithCapacity[int](3)
	list.PushBack(1)
	list.PushBack(2)
	list.PushBack(3)
	// Insert into a full list extends, and the position is carried across
	it := list.Begin().Next()
	inserted := list.Insert(it, 9)
	assert.Equal(t, uint32(6), list.Capacity())
	assert.Equal(t, []int{1, 9, 2, 3}, list.Iter().Collect())
	assert.Equal(t, 2, inserted.Next().Value())
	checkValid(t, list)
	// Likewise at the end
	list.PushBack(4)
	list.PushBack(5)
	list.Insert(list.End(), 6)
	assert.Equal(t, []int{1, 9, 2, 3, 4, 5, 6}, list.Iter().Collect())
	checkValid(t, list)
}

func Test_List_06(t *testing.T) {
	list := NewWithCapacity[int](4)
	assert.Panics(t, func() { list.Insert(list.Begin().Prev(), 1) })
	assert.Panics(t, func() { list.Erase(list.End()) })
	assert.Panics(t, func() { list.Front() })
	assert.Panics(t, func() { list.Back() })
	assert.Panics(t, func() { list.End().Value() })
	//
	other := New[int]()
	assert.Panics(t, func() { list.Insert(other.End(), 1) })
	assert.Panics(t, func() { NewWithCapacity[int](0) })
	checkValid(t, list)
}

func Test_List_07(t *testing.T) {
	list := NewWithCapacity[int](4)
	for i := range 6 {
		list.PushBack(i)
	}
	// Erase out of order, so the free chain is scrambled before extending
	list.Erase(list.Begin().Next())
	list.Erase(list.Begin().Next().Next())
	list.PushFront(10)
	list.PushFront(11)
	list.PushFront(12)
	list.PushFront(13)
	//
	assert.Equal(t, uint32(8), list.Capacity())
	assert.Equal(t, []int{13, 12, 11, 10, 0, 2, 4, 5}, list.Iter().Collect())
	checkValid(t, list)
	// Extending directly preserves order
	list.Extend()
	assert.Equal(t, uint32(16), list.Capacity())
	assert.Equal(t, []int{13, 12, 11, 10, 0, 2, 4, 5}, list.Iter().Collect())
	checkValid(t, list)
}

func Test_List_08(t *testing.T) {
	list := NewWithCapacity[int](4)
	list.PushBack(1)
	list.PushBack(2)
	//
	clone := list.Clone()
	clone.PushBack(3)
	assert.Equal(t, []int{1, 2}, list.Iter().Collect())
	assert.Equal(t, list.Capacity(), clone.Capacity())
	//
	other := New[int]()
	other.Assign(clone)
	assert.Equal(t, []int{1, 2, 3}, other.Iter().Collect())
	other.Assign(other)
	assert.Equal(t, "[1 2 3]", other.String())
	//
	list.Clear()
	assert.True(t, list.Empty())
	assert.Equal(t, uint32(4), list.Capacity())
	checkValid(t, list)
	//
	other.Resize(2)
	assert.True(t, other.Empty())
	assert.Equal(t, uint32(2), other.Capacity())
	checkValid(t, other)
}

func Test_List_09(t *testing.T) {
	list := New[int]()
	for _, v := range []int{3, 1, 4, 1, 5} {
		list.PushBack(v)
	}
	//
	it := Find(list.Begin(), list.End(), 1)
	assert.Equal(t, list.Begin().Next(), it)
	it = Find(it.Next(), list.End(), 1)
	assert.Equal(t, list.End().Prev().Prev(), it)
	assert.Equal(t, list.End(), Find(list.Begin(), list.End(), 9))
	//
	*it.Ref() = 2
	assert.Equal(t, []int{3, 1, 4, 2, 5}, list.Iter().Collect())
}

func Test_List_10(t *testing.T) {
	list := NewWithCapacity[int](3)
	list.PushBack(1)
	list.PushBack(2)
	list.PopFront()
	//
	slots := list.Slots()
	assert.Equal(t, 3, len(slots))
	//
	active := 0
	for _, s := range slots {
		if s.Active {
			active++
		}
	}
	//
	assert.Equal(t, 1, active)
}

func Test_List_11(t *testing.T) {
	list := NewWithCapacity[int](4)
	list.PushBack(1)
	list.PushBack(2)
	// Break the back link of the second element
	list.nodes[list.nodes[end].previous].previous = end
	assert.ErrorIs(t, list.Validate(), ErrCorrupt)
}

func Test_List_12(t *testing.T) {
	// Repeated doubling from a single slot against a reference
	list := New[uint]()
	ref := []uint{}
	//
	for i := uint(0); i < 512; i++ {
		before := list.Capacity()
		//
		if i%2 == 0 {
			list.PushBack(i)
			ref = append(ref, i)
		} else {
			list.PushFront(i)
			ref = append([]uint{i}, ref...)
		}
		//
		if list.Capacity() != before {
			assert.Equal(t, 2*before, list.Capacity())
			assert.Equal(t, ref, list.Iter().Collect())
			checkValid(t, list)
		}
	}
}

func Test_List_13(t *testing.T) {
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("i=%d", i), func(t *testing.T) {
			check_List_Ops(t, uint64(i), 500)
		})
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkValid[T any](t *testing.T, list *List[T]) {
	t.Helper()
	assert.NoError(t, list.Validate())
}

// Apply a random sequence of operations to a list and a reference slice,
// checking the chain invariants and contents after every step.
func check_List_Ops(t *testing.T, seed uint64, n uint) {
	t.Parallel()
	//
	var (
		list = New[uint]()
		ref  []uint
		ops  = util.GenerateRandomOps(seed, n, 7)
		pos  = util.GenerateRandomOps(seed+1, n, 16)
	)
	//
	for i, op := range ops {
		item := uint(i)
		//
		switch op {
		case 0:
			list.PushBack(item)
			ref = append(ref, item)
		case 1:
			list.PushFront(item)
			ref = append([]uint{item}, ref...)
		case 2:
			if list.TryPushBack(item) {
				ref = append(ref, item)
			} else {
				assert.Equal(t, list.Capacity(), list.Size())
			}
		case 3:
			assert.Equal(t, len(ref) != 0, list.PopBack())
			if len(ref) != 0 {
				ref = ref[:len(ref)-1]
			}
		case 4:
			assert.Equal(t, len(ref) != 0, list.PopFront())
			if len(ref) != 0 {
				ref = ref[1:]
			}
		case 5:
			k := int(pos[i]) % (len(ref) + 1)
			list.Insert(advance(list, k), item)
			ref = append(ref[:k], append([]uint{item}, ref[k:]...)...)
		case 6:
			if len(ref) != 0 {
				k := int(pos[i]) % len(ref)
				list.Erase(advance(list, k))
				ref = append(ref[:k], ref[k+1:]...)
			}
		}
		//
		checkValid(t, list)
		assert.Equal(t, len(ref), list.Size())
		assert.True(t, slices.Equal(ref, list.Iter().Collect()), "expected %v, got %v", ref, list)
	}
}

func advance[T any](list *List[T], k int) Iterator[T] {
	it := list.Begin()
	//
	for range k {
		it = it.Next()
	}
	//
	return it
}
