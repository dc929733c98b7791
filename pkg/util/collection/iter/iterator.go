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
package iter

// Predicate abstracts the notion of a function which identifies something.
type Predicate[T any] func(T) bool

// Enumerator abstracts the process of iterating over a sequence of elements.
type Enumerator[T any] interface {
	// Check whether or not there are any items remaining to visit.
	HasNext() bool

	// Get the next item, and advanced the iterator.
	Next() T
}

// Iterator is an adapter which sits on top of an Enumerator and provides
// various useful and reusable functions.  Iterators returned by a container
// visit the elements in the container's order, and are invalidated by any
// mutation of that container.
type Iterator[T any] interface {
	Enumerator[T]

	// Append another iterator onto the end of this iterator.  Thus, when all
	// items are visited in this iterator, iteration continues into the other.
	Append(Iterator[T]) Iterator[T]

	// Clone creates a copy of this iterator at the given cursor position.
	// Modifying the clone (i.e. by calling Next) iterator will not modify the
	// original.
	Clone() Iterator[T]

	// Collect allocates a new array containing all items of this iterator.
	// This drains the iterator.
	Collect() []T

	// Find returns the index of the first match for a given predicate, or
	// return false if no match is found.  This will mutate the iterator.
	Find(Predicate[T]) (uint, bool)

	// Count the number of items left.  Note, this does not modify the iterator.
	Count() uint

	// Get the nth item in this iterator.  This will mutate the iterator.
	Nth(uint) T
}

// ===============================================================
// Base Iterator
// ===============================================================

// baseFind provides a default implementation of Iterator.Find which can be
// used by other iterator implementations.
func baseFind[T any, S Enumerator[T]](iter S, predicate Predicate[T]) (uint, bool) {
	index := uint(0)

	for iter.HasNext() {
		if predicate(iter.Next()) {
			return index, true
		}

		index++
	}
	// Failed to find it
	return 0, false
}

// baseNth provides a default implementation of Iterator.Nth which can be used
// by other iterator implementations.
func baseNth[T any, S Enumerator[T]](iter S, n uint) T {
	index := uint(0)

	for iter.HasNext() {
		ith := iter.Next()
		if index == n {
			return ith
		}

		index++
	}
	// Issue!
	panic("iterator out-of-bounds")
}

// baseCount provides a default implementation of Iterator.Count.  This drains
// the given enumerator, hence callers should pass a clone.
func baseCount[T any, S Enumerator[T]](iter S) uint {
	count := uint(0)

	for iter.HasNext() {
		iter.Next()
		//
		count++
	}

	return count
}

// baseCollect provides a default implementation of Iterator.Collect.
func baseCollect[T any, S Enumerator[T]](iter S) []T {
	var items = make([]T, 0)
	//
	for iter.HasNext() {
		items = append(items, iter.Next())
	}
	//
	return items
}

// ===============================================================
// Stepping Iterator
// ===============================================================

// Cursor abstracts a position within a linked sequence which can step to its
// successor.  Cursors are compared by value to determine when the end of the
// sequence has been reached.
type Cursor[C comparable, T any] interface {
	comparable
	// Value returns the item at this position.
	Value() T
	// Step returns the position following this one.
	Step() C
}

// NewCursorIterator constructs an iterator which visits every position from
// first up to (but not including) last.
func NewCursorIterator[C Cursor[C, T], T any](first C, last C) Iterator[T] {
	return &cursorIterator[C, T]{first, last}
}

type cursorIterator[C Cursor[C, T], T any] struct {
	current C
	last    C
}

// HasNext checks whether or not there are any items remaining to visit.
//
//nolint:revive
func (p *cursorIterator[C, T]) HasNext() bool {
	return p.current != p.last
}

// Next returns the next item, and advance the iterator.
//
//nolint:revive
func (p *cursorIterator[C, T]) Next() T {
	item := p.current.Value()
	p.current = p.current.Step()

	return item
}

// Append another iterator onto the end of this iterator.
//
//nolint:revive
func (p *cursorIterator[C, T]) Append(iter Iterator[T]) Iterator[T] {
	return NewAppendIterator[T](p, iter)
}

// Clone creates a copy of this iterator at the given cursor position.
//
//nolint:revive
func (p *cursorIterator[C, T]) Clone() Iterator[T] {
	return &cursorIterator[C, T]{p.current, p.last}
}

// Collect allocates a new array containing all items of this iterator.
//
//nolint:revive
func (p *cursorIterator[C, T]) Collect() []T {
	return baseCollect[T](p)
}

// Count returns the number of items left in the iterator
//
//nolint:revive
func (p *cursorIterator[C, T]) Count() uint {
	return baseCount[T](p.Clone())
}

// Find returns the index of the first match for a given predicate, or
// return false if no match is found.
//
//nolint:revive
func (p *cursorIterator[C, T]) Find(predicate Predicate[T]) (uint, bool) {
	return baseFind(p, predicate)
}

// Nth returns the nth item in this iterator
//
//nolint:revive
func (p *cursorIterator[C, T]) Nth(n uint) T {
	return baseNth[T](p, n)
}
