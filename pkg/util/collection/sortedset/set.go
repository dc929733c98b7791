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
	"cmp"
	"fmt"

	"github.com/dglib/go-dglib/pkg/util/collection/arena"
	"github.com/dglib/go-dglib/pkg/util/collection/iter"
)

// Set is an ordered array of elements held in a contiguous block, sorted in
// ascending order.  Unlike a map, duplicate elements are permitted unless
// inserted via InsertUnique.  Elements are relocated by plain value copy.
type Set[T any] struct {
	// block of Capacity elements, of which the first size are live.
	data []T
	// number of live elements
	size int
	// comparator defining a strict total order over elements
	compare func(T, T) int
}

// New constructs an empty set over naturally ordered elements, with the
// default capacity.
func New[T cmp.Ordered]() *Set[T] {
	return NewFunc(cmp.Compare[T], arena.DefaultCapacity)
}

// NewWithCapacity constructs an empty set over naturally ordered elements
// which can hold n elements before growing.
func NewWithCapacity[T cmp.Ordered](n uint32) *Set[T] {
	return NewFunc(cmp.Compare[T], n)
}

// NewFunc constructs an empty set ordered by a given comparator which can hold
// n elements before growing.
func NewFunc[T any](compare func(T, T) int, n uint32) *Set[T] {
	return &Set[T]{arena.Alloc[T](n), 0, compare}
}

// Clone returns a copy of this set with the same capacity.
func (p *Set[T]) Clone() *Set[T] {
	var data = arena.Alloc[T](p.Capacity())
	//
	copy(data, p.data[:p.size])
	//
	return &Set[T]{data, p.size, p.compare}
}

// Assign replaces the contents of this set with those of another.
func (p *Set[T]) Assign(other *Set[T]) {
	if p == other {
		return
	}
	//
	p.data = arena.Alloc[T](other.Capacity())
	p.size = other.size
	p.compare = other.compare
	copy(p.data, other.data[:other.size])
}

// Get returns the ith element.  No range check is performed.
func (p *Set[T]) Get(i int) T {
	return p.data[i]
}

// Size returns the number of elements in this set.
func (p *Set[T]) Size() int {
	return p.size
}

// Capacity returns the number of elements this set can hold before growing.
func (p *Set[T]) Capacity() uint32 {
	return uint32(len(p.data))
}

// Empty checks whether this set has no elements.
func (p *Set[T]) Empty() bool {
	return p.size == 0
}

// Items returns the elements as a view onto the underlying block.  The view is
// invalidated by any insertion or removal.
func (p *Set[T]) Items() []T {
	return p.data[:p.size]
}

// Find searches the whole set for a given element.  See FindRange.
func (p *Set[T]) Find(item T) (int, bool) {
	return p.FindRange(item, 0, p.size-1)
}

// FindFrom searches the set from a given lower index.  See FindRange.
func (p *Set[T]) FindFrom(item T, lower int) (int, bool) {
	return p.FindRange(item, lower, p.size-1)
}

// FindRange performs a binary search for a given element between the lower
// and upper indices (inclusive), clamped to the live elements.  When found, the
// index of some matching element is returned along with true.  Otherwise, the
// index returned is one less than the position at which the element would be
// inserted.
func (p *Set[T]) FindRange(item T, lower int, upper int) (int, bool) {
	lower = max(lower, 0)
	upper = min(upper, p.size-1)
	//
	for lower <= upper {
		index := (lower + upper) >> 1
		c := p.compare(p.data[index], item)
		//
		if c < 0 {
			lower = index + 1
		} else if c > 0 {
			upper = index - 1
		} else {
			return index, true
		}
	}
	//
	return lower - 1, false
}

// Contains checks whether a given element is in this set.
func (p *Set[T]) Contains(item T) bool {
	_, ok := p.Find(item)
	return ok
}

// Insert an element into this set, regardless of whether an equal element is
// already present.
func (p *Set[T]) Insert(item T) {
	index, _ := p.Find(item)
	p.insertAfter(index, item)
}

// InsertUnique inserts an element into this set, unless an equal element is
// already present in which case the set is unchanged and false is returned.
func (p *Set[T]) InsertUnique(item T) bool {
	index, ok := p.Find(item)
	//
	if ok {
		return false
	}
	//
	p.insertAfter(index, item)
	//
	return true
}

// Erase removes a single element equal to the given element, returning false
// if there was none.
func (p *Set[T]) Erase(item T) bool {
	index, ok := p.Find(item)
	//
	if ok {
		p.removeRange(index, index+1)
	}
	//
	return ok
}

// EraseAll removes every element equal to the given element, returning the
// number of elements removed.
func (p *Set[T]) EraseAll(item T) int {
	index, ok := p.Find(item)
	//
	if !ok {
		return 0
	}
	// Scan outwards from the match
	lower, upper := index, index+1
	//
	for lower > 0 && p.compare(p.data[lower-1], item) == 0 {
		lower--
	}
	//
	for upper < p.size && p.compare(p.data[upper], item) == 0 {
		upper++
	}
	//
	p.removeRange(lower, upper)
	//
	return upper - lower
}

// Clear removes all elements.  The block is retained.
func (p *Set[T]) Clear() {
	p.size = 0
}

// Resize reallocates the block to hold exactly n elements.  Elements are kept
// up to the lesser of the old size and n.
func (p *Set[T]) Resize(n uint32) {
	p.data = arena.Realloc(p.data, n, uint32(p.size))
	p.size = min(p.size, int(n))
}

// Reset clears the set and returns it to the default capacity.
func (p *Set[T]) Reset() {
	p.Clear()
	p.Resize(arena.DefaultCapacity)
}

// Iter returns an iterator over a snapshot of the elements, in ascending
// order.
func (p *Set[T]) Iter() iter.Iterator[T] {
	var items = make([]T, p.size)
	//
	copy(items, p.data[:p.size])
	//
	return iter.NewArrayIterator(items)
}

func (p *Set[T]) String() string {
	return fmt.Sprintf("%v", p.Items())
}

// Insert an element immediately after a given index (which may be -1),
// growing as necessary.
func (p *Set[T]) insertAfter(index int, item T) {
	if p.size == len(p.data) {
		p.extend()
	}
	//
	index++
	copy(p.data[index+1:p.size+1], p.data[index:p.size])
	p.data[index] = item
	p.size++
}

// Remove elements in the range [start,end), shifting the suffix down.
func (p *Set[T]) removeRange(start int, end int) {
	var n = end - start
	//
	copy(p.data[start:p.size-n], p.data[end:p.size])
	clear(p.data[p.size-n : p.size])
	p.size -= n
}

// Double the capacity, keeping all elements.
func (p *Set[T]) extend() {
	p.data = arena.Realloc(p.data, arena.Grow(p.Capacity()), uint32(p.size))
}
