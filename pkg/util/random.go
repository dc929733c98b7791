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
package util

import "math/rand/v2"

// GenerateRandomUints generates n random unsigned integers in the range 0..m.
func GenerateRandomUints(n, m uint) []uint {
	items := make([]uint, n)

	for i := uint(0); i < n; i++ {
		items[i] = rand.UintN(m)
	}

	return items
}

// GenerateRandomOps generates n random operation codes in the range 0..m,
// drawn from a seeded source so that failing sequences can be replayed.
func GenerateRandomOps(seed uint64, n uint, m uint) []uint {
	var (
		rng   = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		items = make([]uint, n)
	)
	//
	for i := uint(0); i < n; i++ {
		items[i] = rng.UintN(m)
	}

	return items
}
