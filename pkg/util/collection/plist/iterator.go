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

// Iterator identifies a position within a list: either an element, or the
// position following the last element (End).  Iterators are plain values and
// can be compared with ==.
type Iterator[T any] struct {
	list  *List[T]
	index int
}

// Next returns the iterator to the following position.  Advancing End is
// undefined.
func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{it.list, it.list.nodes[it.index].next}
}

// Prev returns the iterator to the preceding position.  Retreating from Begin
// is undefined.
func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{it.list, it.list.nodes[it.index].previous}
}

// Value returns a copy of the element at this position.
func (it Iterator[T]) Value() T {
	return *it.Ref()
}

// Ref returns a pointer to the element at this position, which remains valid
// until the list is extended.
func (it Iterator[T]) Ref() *T {
	if it.index < sentinels {
		panic("dereferencing list sentinel")
	}
	//
	return &it.list.nodes[it.index].element
}

// Step implementation for the iter.Cursor interface.
func (it Iterator[T]) Step() Iterator[T] {
	return it.Next()
}
