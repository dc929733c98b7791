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
package arena

import (
	"errors"
	"math"
)

// DefaultCapacity is the number of slots allocated by containers constructed
// without an explicit capacity.
const DefaultCapacity = uint32(1)

// MaxCapacity is the largest capacity which any block can have.
const MaxCapacity = uint32(math.MaxUint32)

// ErrCapacityOverflow is raised (as a panic) when doubling a capacity would
// exceed MaxCapacity.  A container which raises this cannot be used further.
var ErrCapacityOverflow = errors.New("container capacity overflow")

// ErrZeroCapacity is raised (as a panic) when a block of zero slots is
// requested.
var ErrZeroCapacity = errors.New("container capacity must be positive")

// Alloc returns a fresh block of exactly n slots, all holding the zero value
// of T.  The block is never resized in place; growing always goes through
// Realloc.
func Alloc[T any](n uint32) []T {
	if n == 0 {
		panic(ErrZeroCapacity)
	}
	//
	return make([]T, n)
}

// Grow determines the capacity following a given capacity under the doubling
// policy shared by all containers.
func Grow(capacity uint32) uint32 {
	var next = capacity << 1
	// Check whether doubling wrapped around
	if next <= capacity {
		panic(ErrCapacityOverflow)
	}
	//
	return next
}

// Realloc allocates a new block of n slots and relocates the first live slots
// of the given block into it, truncating if n is smaller than live.  The old
// block is left untouched and can be dropped by the caller.
func Realloc[T any](block []T, n uint32, live uint32) []T {
	var nblock = Alloc[T](n)
	//
	copy(nblock, block[:min(live, n)])
	//
	return nblock
}
