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
package cmd

import (
	"strings"
	"testing"

	"github.com/dglib/go-dglib/pkg/config"
	"github.com/dglib/go-dglib/pkg/util/assert"
)

func Test_Stress_01(t *testing.T) {
	for _, capacity := range []uint32{1, 3, 16} {
		cfg := config.Default()
		cfg.Containers.DefaultCapacity = capacity
		cfg.Stress.Operations = 2000
		cfg.Stress.MaxKey = 32
		//
		table, failed := runStress(cfg)
		assert.False(t, failed, "capacity", capacity)
		assert.Equal(t, uint(1+len(stressTests)), table.Height())
		//
		for row := uint(1); row < table.Height(); row++ {
			assert.Equal(t, "ok", table.Get(1, row))
		}
	}
}

func Test_Stress_02(t *testing.T) {
	// Only ever inserting at the end grows the list without shuffling
	ops := []uint{4, 4, 4, 4, 4}
	keys := []uint{0, 1, 2, 3, 4}
	size, capacity, err := stressList(ops, keys, 1)
	assert.NoError(t, err)
	assert.Equal(t, 5, size)
	assert.Equal(t, uint32(8), capacity)
}

func Test_Demo_01(t *testing.T) {
	for name, demo := range demos {
		table := demo(1)
		table.AnsiEscapes(false)
		//
		var out strings.Builder
		assert.NoError(t, table.Print(&out), name)
		assert.True(t, table.Height() > 1, name)
	}
}

func Test_Demo_02(t *testing.T) {
	table := demoMap(1)
	// Scenario rows follow the header
	assert.Equal(t, "[1 3 5]", keysOf(table.Get(4, 3)))
	assert.Equal(t, "true@1", table.Get(1, 5))
	assert.Equal(t, "false@-1", table.Get(1, 8))
}

func Test_Demo_03(t *testing.T) {
	table := demoList(2)
	assert.Equal(t, "false", table.Get(1, 3))
	assert.Equal(t, "4", table.Get(3, 4))
	assert.Equal(t, "[A B C]", table.Get(4, 4))
	assert.Equal(t, "true", table.Get(1, table.Height()-1))
}

// keysOf extracts the keys of a printed map, such as "{1:v1,3:v3}".
func keysOf(text string) string {
	var keys []string
	//
	for _, entry := range strings.Split(strings.Trim(text, "{}"), ",") {
		key, _, _ := strings.Cut(entry, ":")
		keys = append(keys, key)
	}
	//
	return "[" + strings.Join(keys, " ") + "]"
}
