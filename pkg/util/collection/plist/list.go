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
	"errors"
	"fmt"
	"strings"

	"github.com/dglib/go-dglib/pkg/util/collection/arena"
	"github.com/dglib/go-dglib/pkg/util/collection/iter"
)

const (
	// Arena index of the root sentinel, which precedes the first element.
	root = 0
	// Arena index of the end sentinel, which follows the last element.
	end = 1
	// Number of sentinel slots at the start of every arena.  These are not
	// counted in the capacity.
	sentinels = 2
	// Link terminating the free chain.
	none = -1
)

// ErrCorrupt is returned by Validate when the chains of a list are
// inconsistent.
var ErrCorrupt = errors.New("list corrupted")

// node is a single slot in the arena.  An active node is linked in both
// directions between the sentinels, whilst a free node is linked only through
// next.
type node[T any] struct {
	next     int
	previous int
	element  T
}

// List is a doubly linked list whose nodes are preallocated in a single arena.
// Unused nodes are kept on a free chain, such that insertion and removal
// anywhere in the list are constant time and never shift other elements.
// When the arena is exhausted, the copying insertions double its capacity
// whilst the non-copying insertions fail instead.
//
// Links are arena indices rather than pointers.  Iterators to untouched nodes
// remain valid across insertion and removal of other nodes, but every iterator
// is invalidated by Extend, Resize and Clear.  Elements are relocated by
// plain value copy.
type List[T any] struct {
	// arena of Capacity+2 nodes, starting with the sentinels
	nodes []node[T]
	// head of the free chain (or none)
	free int
	// number of active nodes
	size uint32
}

// Slot describes the state of a single (non-sentinel) arena slot.
type Slot struct {
	Index    int
	Active   bool
	Next     int
	Previous int
}

// New constructs an empty list with the default capacity.
func New[T any]() *List[T] {
	return NewWithCapacity[T](arena.DefaultCapacity)
}

// NewWithCapacity constructs an empty list which can hold n elements before
// growing.  A capacity of zero is a programmer error.
func NewWithCapacity[T any](n uint32) *List[T] {
	var list List[T]
	//
	list.init(n)
	//
	return &list
}

// Clone returns a copy of this list with the same capacity, whose elements
// occupy the same order.
func (p *List[T]) Clone() *List[T] {
	var list = NewWithCapacity[T](p.Capacity())
	//
	for it := p.Begin(); it != p.End(); it = it.Next() {
		list.TryPushBack(it.Value())
	}
	//
	return list
}

// Assign replaces the contents of this list with those of another.
func (p *List[T]) Assign(other *List[T]) {
	if p == other {
		return
	}
	//
	p.init(other.Capacity())
	//
	for it := other.Begin(); it != other.End(); it = it.Next() {
		p.TryPushBack(it.Value())
	}
}

// Begin returns an iterator to the first element (or End if empty).
func (p *List[T]) Begin() Iterator[T] {
	return Iterator[T]{p, p.nodes[root].next}
}

// End returns the iterator following the last element.
func (p *List[T]) End() Iterator[T] {
	return Iterator[T]{p, end}
}

// Size returns the number of elements in this list.
func (p *List[T]) Size() uint32 {
	return p.size
}

// Capacity returns the number of elements this list can hold before growing.
func (p *List[T]) Capacity() uint32 {
	return uint32(len(p.nodes) - sentinels)
}

// Empty checks whether this list has no elements.
func (p *List[T]) Empty() bool {
	return p.size == 0
}

// Front returns the first element.
func (p *List[T]) Front() T {
	if p.size == 0 {
		panic("front of empty list")
	}
	//
	return p.nodes[p.nodes[root].next].element
}

// Back returns the last element.
func (p *List[T]) Back() T {
	if p.size == 0 {
		panic("back of empty list")
	}
	//
	return p.nodes[p.nodes[end].previous].element
}

// PushBack appends a copy of an element, extending the arena if it is full.
func (p *List[T]) PushBack(item T) {
	if p.full() {
		p.Extend()
	}
	//
	p.activate(end, item)
}

// PushFront prepends a copy of an element, extending the arena if it is
// full.
func (p *List[T]) PushFront(item T) {
	if p.full() {
		p.Extend()
	}
	//
	p.activate(p.nodes[root].next, item)
}

// TryPushBack appends a copy of an element, returning false (and leaving the
// list unchanged) if the arena is full.
func (p *List[T]) TryPushBack(item T) bool {
	if p.full() {
		return false
	}
	//
	p.activate(end, item)
	//
	return true
}

// TryPushFront prepends a copy of an element, returning false (and leaving
// the list unchanged) if the arena is full.
func (p *List[T]) TryPushFront(item T) bool {
	if p.full() {
		return false
	}
	//
	p.activate(p.nodes[root].next, item)
	//
	return true
}

// EmplaceBack activates a new last node holding the zero value, and returns a
// pointer through which the caller can fill it.  This returns false (and
// leaves the list unchanged) if the arena is full.  The pointer is invalidated
// by Extend.
func (p *List[T]) EmplaceBack() (*T, bool) {
	if p.full() {
		return nil, false
	}
	//
	var empty T
	//
	return &p.nodes[p.activate(end, empty)].element, true
}

// EmplaceFront activates a new first node holding the zero value, and returns a
// pointer through which the caller can fill it.  This returns false (and
// leaves the list unchanged) if the arena is full.
func (p *List[T]) EmplaceFront() (*T, bool) {
	if p.full() {
		return nil, false
	}
	//
	var empty T
	//
	return &p.nodes[p.activate(p.nodes[root].next, empty)].element, true
}

// Insert a copy of an element immediately before a given position, extending
// the arena if it is full.  Returns an iterator to the inserted element.  The
// position may be End, but must not precede Begin.
func (p *List[T]) Insert(position Iterator[T], item T) Iterator[T] {
	var before = p.owned(position)
	//
	if before == root {
		panic("insert before list root")
	} else if p.full() {
		// Extending relocates the active chain, so translate the position
		// via its ordinal.
		ordinal, ok := p.ordinal(before)
		//
		p.Extend()
		//
		if ok {
			before = sentinels + ordinal
		}
	}
	//
	return Iterator[T]{p, p.activate(before, item)}
}

// Erase removes the element at a given position, recycling its node, and
// returns an iterator to the following element.
func (p *List[T]) Erase(position Iterator[T]) Iterator[T] {
	var index = p.owned(position)
	//
	if index < sentinels {
		panic("erase of list sentinel")
	}
	//
	next := p.nodes[index].next
	p.deactivate(index)
	//
	return Iterator[T]{p, next}
}

// PopBack removes the last element, returning false if the list is empty.
func (p *List[T]) PopBack() bool {
	if p.size == 0 {
		return false
	}
	//
	p.deactivate(p.nodes[end].previous)
	//
	return true
}

// PopFront removes the first element, returning false if the list is empty.
func (p *List[T]) PopFront() bool {
	if p.size == 0 {
		return false
	}
	//
	p.deactivate(p.nodes[root].next)
	//
	return true
}

// Clear removes all elements, returning every node to the free chain.  The
// arena is retained.
func (p *List[T]) Clear() {
	clear(p.nodes)
	p.relink()
}

// Resize discards all elements and reallocates the arena to hold n elements.
func (p *List[T]) Resize(n uint32) {
	p.init(n)
}

// Extend doubles the capacity of the arena.  The active chain is walked in
// order and relocated into the leading slots of the new arena, with all links
// (including those of the sentinels) derived afresh.  The remaining slots form
// the new free chain.
func (p *List[T]) Extend() {
	var (
		nodes = allocNodes[T](arena.Grow(p.Capacity()))
		prev  = root
		slot  = sentinels
	)
	// Relocate active chain
	for i := p.nodes[root].next; i != end; i = p.nodes[i].next {
		nodes[slot].element = p.nodes[i].element
		nodes[slot].previous = prev
		nodes[prev].next = slot
		prev = slot
		slot++
	}
	// Close active chain
	nodes[prev].next = end
	nodes[end].previous = prev
	nodes[root].previous = none
	nodes[end].next = none
	// Rebuild free chain
	p.free = none
	//
	for i := len(nodes) - 1; i >= slot; i-- {
		nodes[i].next = p.free
		nodes[i].previous = none
		p.free = i
	}
	//
	p.nodes = nodes
}

// Iter returns an iterator over the elements from first to last.
func (p *List[T]) Iter() iter.Iterator[T] {
	return iter.NewCursorIterator[Iterator[T], T](p.Begin(), p.End())
}

// Validate checks that every slot is on exactly one of the active and free
// chains, that the active chain is consistently linked in both directions
// between the sentinels, and that the chain lengths agree with the size and
// capacity.
func (p *List[T]) Validate() error {
	var (
		n       = len(p.nodes)
		visited = make([]bool, n)
		count   = uint32(0)
		prev    = root
	)
	// Active chain
	for i := p.nodes[root].next; i != end; i = p.nodes[i].next {
		if i < sentinels || i >= n || visited[i] {
			return fmt.Errorf("%w: invalid active link %d", ErrCorrupt, i)
		} else if p.nodes[i].previous != prev {
			return fmt.Errorf("%w: slot %d links back to %d (expected %d)", ErrCorrupt, i, p.nodes[i].previous, prev)
		}
		//
		visited[i] = true
		prev = i
		count++
	}
	//
	if p.nodes[end].previous != prev {
		return fmt.Errorf("%w: end links back to %d (expected %d)", ErrCorrupt, p.nodes[end].previous, prev)
	} else if count != p.size {
		return fmt.Errorf("%w: %d active slots (size %d)", ErrCorrupt, count, p.size)
	}
	// Free chain
	count = 0
	//
	for i := p.free; i != none; i = p.nodes[i].next {
		if i < sentinels || i >= n || visited[i] {
			return fmt.Errorf("%w: invalid free link %d", ErrCorrupt, i)
		}
		//
		visited[i] = true
		count++
	}
	//
	if count != p.Capacity()-p.size {
		return fmt.Errorf("%w: %d free slots (capacity %d, size %d)", ErrCorrupt, count, p.Capacity(), p.size)
	}
	//
	return nil
}

// Slots returns the state of every non-sentinel slot in the arena, in arena
// order.
func (p *List[T]) Slots() []Slot {
	var (
		slots  = make([]Slot, len(p.nodes)-sentinels)
		active = make([]bool, len(p.nodes))
	)
	//
	for i := p.nodes[root].next; i != end; i = p.nodes[i].next {
		active[i] = true
	}
	//
	for i := range slots {
		index := i + sentinels
		slots[i] = Slot{index, active[index], p.nodes[index].next, p.nodes[index].previous}
	}
	//
	return slots
}

func (p *List[T]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for it := p.Begin(); it != p.End(); it = it.Next() {
		if it != p.Begin() {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(fmt.Sprintf("%v", it.Value()))
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// ===================================================================
// Helpers
// ===================================================================

func (p *List[T]) full() bool {
	return p.free == none
}

// Allocate a fresh arena of n nodes and link them.
func (p *List[T]) init(n uint32) {
	p.nodes = allocNodes[T](n)
	p.relink()
}

// Link every node of the arena onto the free chain, leaving the active chain
// empty.
func (p *List[T]) relink() {
	var n = len(p.nodes)
	//
	p.nodes[root] = node[T]{next: end, previous: none}
	p.nodes[end] = node[T]{next: none, previous: root}
	//
	for i := sentinels; i < n; i++ {
		p.nodes[i].next = i + 1
		p.nodes[i].previous = none
	}
	//
	p.nodes[n-1].next = none
	p.free = sentinels
	p.size = 0
}

// Take the head of the free chain, store an element in it and splice it in
// immediately before a given node.  The free chain must be non-empty.
func (p *List[T]) activate(before int, item T) int {
	index := p.free
	p.free = p.nodes[index].next
	//
	prev := p.nodes[before].previous
	p.nodes[index] = node[T]{next: before, previous: prev, element: item}
	p.nodes[prev].next = index
	p.nodes[before].previous = index
	p.size++
	//
	return index
}

// Unlink an active node and push it onto the head of the free chain.
func (p *List[T]) deactivate(index int) {
	next, prev := p.nodes[index].next, p.nodes[index].previous
	p.nodes[prev].next = next
	p.nodes[next].previous = prev
	p.nodes[index] = node[T]{next: p.free, previous: none}
	p.free = index
	p.size--
}

// Determine the position of an active node within the active chain, or false
// for the end sentinel.
func (p *List[T]) ordinal(index int) (int, bool) {
	var ordinal = 0
	//
	for i := p.nodes[root].next; i != end; i = p.nodes[i].next {
		if i == index {
			return ordinal, true
		}
		//
		ordinal++
	}
	//
	return 0, false
}

// Check an iterator refers to this list.
func (p *List[T]) owned(position Iterator[T]) int {
	if position.list != p {
		panic("iterator does not belong to list")
	}
	//
	return position.index
}

// Allocate an arena of n nodes plus the sentinels.
func allocNodes[T any](n uint32) []node[T] {
	if n == 0 {
		panic(arena.ErrZeroCapacity)
	} else if n > arena.MaxCapacity-sentinels {
		panic(arena.ErrCapacityOverflow)
	}
	//
	return arena.Alloc[node[T]](n + sentinels)
}

// Find returns the first position in the range [first,last) holding a given
// value, or last if there is none.
func Find[T comparable](first Iterator[T], last Iterator[T], val T) Iterator[T] {
	for ; first != last; first = first.Next() {
		if first.Value() == val {
			return first
		}
	}
	//
	return last
}
