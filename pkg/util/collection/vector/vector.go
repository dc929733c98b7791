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
package vector

import (
	"errors"
	"fmt"

	"github.com/dglib/go-dglib/pkg/util/collection/arena"
	"github.com/dglib/go-dglib/pkg/util/collection/iter"
)

// ErrOutOfRange is returned by the range checked accessor when an index lies
// beyond the live elements of a vector.
var ErrOutOfRange = errors.New("vector: range error")

// Vector is a contiguous array of elements whose capacity grows by doubling.
// The live elements always occupy the prefix [0,Size) of the underlying
// block.  Elements are relocated by plain value copy, hence element types
// which exclusively own some other resource are not supported.
type Vector[T any] struct {
	// block of Capacity slots
	data []T
	// number of live elements
	size uint32
}

// New constructs an empty vector with the default capacity.
func New[T any]() *Vector[T] {
	return NewWithCapacity[T](arena.DefaultCapacity)
}

// NewWithCapacity constructs an empty vector able to hold n elements before
// growing.  A capacity of zero is a programmer error.
func NewWithCapacity[T any](n uint32) *Vector[T] {
	return &Vector[T]{arena.Alloc[T](n), 0}
}

// Clone returns a copy of this vector with the same capacity.  Only the live
// elements are copied.
func (p *Vector[T]) Clone() *Vector[T] {
	var data = arena.Alloc[T](p.Capacity())
	//
	copy(data, p.data[:p.size])
	//
	return &Vector[T]{data, p.size}
}

// Assign replaces the contents of this vector with those of another.  Only
// the live elements of the other are copied.
func (p *Vector[T]) Assign(other *Vector[T]) {
	if p == other {
		return
	}
	//
	p.data = arena.Alloc[T](other.Capacity())
	p.size = other.size
	copy(p.data, other.data[:other.size])
}

// CopyAll copies both the live elements and the reserved slots of another
// vector into this one, resizing first if the capacities differ.  The size of
// this vector is unaffected, other than by truncation.
func (p *Vector[T]) CopyAll(other *Vector[T]) {
	if p.Capacity() != other.Capacity() {
		p.Resize(other.Capacity())
	}
	//
	copy(p.data, other.data)
}

// Get returns the ith element.  No range check is performed beyond that of
// the underlying block, hence i must be less than Capacity.
func (p *Vector[T]) Get(i uint32) T {
	return p.data[i]
}

// Ref returns a pointer to the ith slot.  No range check is performed.  The
// pointer is invalidated by any operation which grows or shifts the vector.
func (p *Vector[T]) Ref(i uint32) *T {
	return &p.data[i]
}

// Set the ith slot.  No range check is performed.
func (p *Vector[T]) Set(i uint32, item T) {
	p.data[i] = item
}

// At returns the ith element, or ErrOutOfRange if i is not a live index.
func (p *Vector[T]) At(i uint32) (T, error) {
	if i >= p.size {
		var empty T
		return empty, fmt.Errorf("%w (index %d, size %d)", ErrOutOfRange, i, p.size)
	}
	//
	return p.data[i], nil
}

// Front returns the first element.
func (p *Vector[T]) Front() T {
	if p.size == 0 {
		panic("front of empty vector")
	}
	//
	return p.data[0]
}

// Back returns the last element.
func (p *Vector[T]) Back() T {
	if p.size == 0 {
		panic("back of empty vector")
	}
	//
	return p.data[p.size-1]
}

// Size returns the number of live elements.
func (p *Vector[T]) Size() uint32 {
	return p.size
}

// Capacity returns the number of elements which can be held before growing.
func (p *Vector[T]) Capacity() uint32 {
	return uint32(len(p.data))
}

// Empty checks whether there are no live elements.
func (p *Vector[T]) Empty() bool {
	return p.size == 0
}

// Items returns the live elements as a view onto the underlying block.  The
// view is invalidated by any operation which grows or shifts the vector.
func (p *Vector[T]) Items() []T {
	return p.data[:p.size]
}

// PushBack adds an element to the back of this vector.
func (p *Vector[T]) PushBack(item T) {
	if p.size == p.Capacity() {
		p.extend()
	}
	//
	p.data[p.size] = item
	p.size++
}

// PopBack removes the last element, if there is one.
func (p *Vector[T]) PopBack() {
	if p.size == 0 {
		return
	}
	//
	p.size--
}

// PushFront adds an element to the front of this vector, shifting all live
// elements up by one.
func (p *Vector[T]) PushFront(item T) {
	if p.size == p.Capacity() {
		p.extend()
	}
	//
	copy(p.data[1:p.size+1], p.data[:p.size])
	p.data[0] = item
	p.size++
}

// PopFront removes the first element (if there is one), shifting all
// remaining elements down by one.
func (p *Vector[T]) PopFront() {
	if p.size == 0 {
		return
	}
	//
	copy(p.data[:p.size-1], p.data[1:p.size])
	p.size--
}

// Clear marks this vector as empty.  The block is retained.
func (p *Vector[T]) Clear() {
	p.size = 0
}

// Resize reallocates the block to hold exactly n elements.  Live elements are
// kept up to the lesser of the old size and n.
func (p *Vector[T]) Resize(n uint32) {
	p.data = arena.Realloc(p.data, n, p.size)
	p.size = min(p.size, n)
}

// Iter returns an iterator over a snapshot of the live elements.
func (p *Vector[T]) Iter() iter.Iterator[T] {
	var items = make([]T, p.size)
	//
	copy(items, p.data[:p.size])
	//
	return iter.NewArrayIterator(items)
}

// String returns a human readable representation of the live elements.
func (p *Vector[T]) String() string {
	return fmt.Sprintf("%v", p.Items())
}

// Double the capacity, keeping all live elements.
func (p *Vector[T]) extend() {
	p.data = arena.Realloc(p.data, arena.Grow(p.Capacity()), p.size)
}

// Find returns the index of the first live element equal to a given value.
func Find[T comparable](vec *Vector[T], val T) (uint32, bool) {
	for i, ith := range vec.Items() {
		if ith == val {
			return uint32(i), true
		}
	}
	//
	return 0, false
}

// Fill overwrites every live element with a given value.
func Fill[T any](vec *Vector[T], val T) {
	items := vec.Items()
	//
	for i := range items {
		items[i] = val
	}
}
