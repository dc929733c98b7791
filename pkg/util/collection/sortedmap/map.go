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
	"cmp"
	"fmt"
	"strings"

	"github.com/dglib/go-dglib/pkg/util/collection/arena"
	"github.com/dglib/go-dglib/pkg/util/collection/iter"
)

// Entry is a single key/value pair held in a map.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Map is an ordered associative array.  Entries are held in a contiguous block
// sorted in ascending order of key, with no duplicate keys.  Lookups use binary
// search, whilst insertion and removal shift the suffix of the block.  Keys and
// values are relocated by plain value copy, hence types which exclusively own
// some other resource are not supported.
type Map[K any, V any] struct {
	// block of Capacity entries, of which the first size are live.
	data []Entry[K, V]
	// number of live entries
	size int
	// comparator defining a strict total order over keys
	compare func(K, K) int
}

// New constructs an empty map over naturally ordered keys, with the default
// capacity.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	return NewFunc[K, V](cmp.Compare[K], arena.DefaultCapacity)
}

// NewWithCapacity constructs an empty map over naturally ordered keys which can
// hold n entries before growing.
func NewWithCapacity[K cmp.Ordered, V any](n uint32) *Map[K, V] {
	return NewFunc[K, V](cmp.Compare[K], n)
}

// NewFunc constructs an empty map ordered by a given comparator, which can hold
// n entries before growing.  The comparator returns < 0, 0 or > 0 when its
// first argument is less than, equal to or greater than its second.  Behaviour
// is undefined if it does not define a strict total order.
func NewFunc[K any, V any](compare func(K, K) int, n uint32) *Map[K, V] {
	return &Map[K, V]{arena.Alloc[Entry[K, V]](n), 0, compare}
}

// Clone returns a copy of this map with the same capacity.
func (p *Map[K, V]) Clone() *Map[K, V] {
	var data = arena.Alloc[Entry[K, V]](p.Capacity())
	//
	copy(data, p.data[:p.size])
	//
	return &Map[K, V]{data, p.size, p.compare}
}

// Assign replaces the contents of this map with those of another.
func (p *Map[K, V]) Assign(other *Map[K, V]) {
	if p == other {
		return
	}
	//
	p.data = arena.Alloc[Entry[K, V]](other.Capacity())
	p.size = other.size
	p.compare = other.compare
	copy(p.data, other.data[:other.size])
}

// Size returns the number of entries in this map.
func (p *Map[K, V]) Size() int {
	return p.size
}

// Capacity returns the number of entries this map can hold before growing.
func (p *Map[K, V]) Capacity() uint32 {
	return uint32(len(p.data))
}

// Empty checks whether this map has no entries.
func (p *Map[K, V]) Empty() bool {
	return p.size == 0
}

// Key returns the key of the ith entry.  No range check is performed.
func (p *Map[K, V]) Key(i int) K {
	return p.data[i].Key
}

// Value returns the value of the ith entry.  No range check is performed.
func (p *Map[K, V]) Value(i int) V {
	return p.data[i].Value
}

// ValueRef returns a pointer to the value of the ith entry.  No range check is
// performed.  The pointer is invalidated by any insertion or removal.
func (p *Map[K, V]) ValueRef(i int) *V {
	return &p.data[i].Value
}

// Find searches the whole map for a given key.  See FindRange.
func (p *Map[K, V]) Find(key K) (int, bool) {
	return p.FindRange(key, 0, p.size-1)
}

// FindFrom searches the map from a given lower index.  See FindRange.
func (p *Map[K, V]) FindFrom(key K, lower int) (int, bool) {
	return p.FindRange(key, lower, p.size-1)
}

// FindRange performs a binary search for a given key between the lower and
// upper indices (inclusive), which are first clamped to the live entries.  If
// the key is found, its index is returned along with true.  Otherwise, the
// index returned is one less than the position at which the key would be
// inserted (hence -1 when it would be the new first entry), along with false.
func (p *Map[K, V]) FindRange(key K, lower int, upper int) (int, bool) {
	lower = max(lower, 0)
	upper = min(upper, p.size-1)
	//
	for lower <= upper {
		// Midpoint, rounding down
		index := (lower + upper) >> 1
		c := p.compare(p.data[index].Key, key)
		//
		if c < 0 {
			lower = index + 1
		} else if c > 0 {
			upper = index - 1
		} else {
			return index, true
		}
	}
	// Index closest to (but below) key
	return lower - 1, false
}

// Get returns the value associated with a given key, if it exists.
func (p *Map[K, V]) Get(key K) (V, bool) {
	if index, ok := p.Find(key); ok {
		return p.data[index].Value, true
	}
	//
	var empty V
	//
	return empty, false
}

// Contains checks whether a given key has an entry in this map.
func (p *Map[K, V]) Contains(key K) bool {
	_, ok := p.Find(key)
	return ok
}

// Insert a new entry into this map, growing it if necessary.  This fails
// (leaving the map unchanged) if the key already exists.
func (p *Map[K, V]) Insert(key K, value V) bool {
	index, ok := p.Find(key)
	//
	if ok {
		return false
	} else if p.size == len(p.data) {
		p.extend()
	}
	// Shift suffix right by one
	index++
	copy(p.data[index+1:p.size+1], p.data[index:p.size])
	p.data[index] = Entry[K, V]{key, value}
	p.size++
	//
	return true
}

// Set updates the value associated with an existing key.  This fails (leaving
// the map unchanged) if the key does not exist.
func (p *Map[K, V]) Set(key K, value V) bool {
	index, ok := p.Find(key)
	//
	if ok {
		p.data[index].Value = value
	}
	//
	return ok
}

// Erase removes the entry for a given key, returning false if there was none.
func (p *Map[K, V]) Erase(key K) bool {
	if index, ok := p.Find(key); ok {
		p.removeAt(index)
		return true
	}
	//
	return false
}

// EraseAt removes the entry at a given position, returning false if the
// position is not a live index.
func (p *Map[K, V]) EraseAt(i int) bool {
	if i < 0 || i >= p.size {
		return false
	}
	//
	p.removeAt(i)
	//
	return true
}

// Clear removes all entries.  The block is retained.
func (p *Map[K, V]) Clear() {
	p.size = 0
}

// Resize reallocates the block to hold exactly n entries.  Entries are kept up
// to the lesser of the old size and n.
func (p *Map[K, V]) Resize(n uint32) {
	p.data = arena.Realloc(p.data, n, uint32(p.size))
	p.size = min(p.size, int(n))
}

// Reset clears the map and returns it to the default capacity.
func (p *Map[K, V]) Reset() {
	p.Clear()
	p.Resize(arena.DefaultCapacity)
}

// Keys returns an iterator over a snapshot of the keys, in ascending order.
func (p *Map[K, V]) Keys() iter.Iterator[K] {
	var keys = make([]K, p.size)
	//
	for i := range p.size {
		keys[i] = p.data[i].Key
	}
	//
	return iter.NewArrayIterator(keys)
}

// Entries returns an iterator over a snapshot of the entries, in ascending
// order of key.
func (p *Map[K, V]) Entries() iter.Iterator[Entry[K, V]] {
	var entries = make([]Entry[K, V], p.size)
	//
	copy(entries, p.data[:p.size])
	//
	return iter.NewArrayIterator(entries)
}

func (p *Map[K, V]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i := range p.size {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("%v:%v", p.data[i].Key, p.data[i].Value))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

func (p *Map[K, V]) removeAt(index int) {
	copy(p.data[index:p.size-1], p.data[index+1:p.size])
	p.size--
	// Drop stale references held by the vacated slot
	p.data[p.size] = Entry[K, V]{}
}

// Double the capacity, keeping all entries.
func (p *Map[K, V]) extend() {
	p.data = arena.Realloc(p.data, arena.Grow(p.Capacity()), uint32(p.size))
}
