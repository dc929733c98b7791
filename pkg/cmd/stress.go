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
	"fmt"
	"os"
	"slices"

	"github.com/dglib/go-dglib/pkg/config"
	"github.com/dglib/go-dglib/pkg/util"
	"github.com/dglib/go-dglib/pkg/util/collection/plist"
	"github.com/dglib/go-dglib/pkg/util/collection/sortedmap"
	"github.com/dglib/go-dglib/pkg/util/collection/sortedset"
	"github.com/dglib/go-dglib/pkg/util/collection/vector"
	"github.com/dglib/go-dglib/pkg/util/termio"
	"github.com/google/btree"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var stressCmd = &cobra.Command{
	Use:   "stress [flags]",
	Short: "Check containers against reference models using random operations.",
	Long: `Apply a random sequence of operations to each container, checking its contents
	against an independent reference model after every operation.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig(cmd)
		//
		if cfg.Stress.MaxKey == 0 {
			fmt.Println("max-key must be positive")
			os.Exit(2)
		}
		//
		log.Debugf("stress testing with seed %d (%d operations, keys < %d, capacity %d)", cfg.Stress.Seed,
			cfg.Stress.Operations, cfg.Stress.MaxKey, cfg.Containers.DefaultCapacity)
		//
		table, failed := runStress(cfg)
		ansi, _ := termio.Probe(os.Stdout)
		table.AnsiEscapes(ansi)
		//
		if err := table.Print(cmd.OutOrStdout()); err != nil {
			fmt.Println(err)
			os.Exit(1)
		} else if failed {
			os.Exit(3)
		}
	},
}

// stressTest applies a sequence of operations, each paired with a key, to a
// container and its reference model.  The final size and capacity of the
// container are returned.
type stressTest func(ops []uint, keys []uint, capacity uint32) (int, uint32, error)

var stressTests = []struct {
	name  string
	kinds uint
	run   stressTest
}{
	{"vector", 5, stressVector},
	{"map", 5, stressMap},
	{"set", 5, stressSet},
	{"list", 6, stressList},
}

// runStress runs every stress test, reporting the outcome in a table.
func runStress(cfg *config.Config) (*termio.TablePrinter, bool) {
	var (
		table  = termio.NewTablePrinter(5)
		failed = false
		keys   = util.GenerateRandomOps(cfg.Stress.Seed^0xFF, cfg.Stress.Operations, cfg.Stress.MaxKey)
	)
	//
	header := table.AddRow("container", "outcome", "size", "capacity", "cost")
	table.SetRowEscape(header, termio.BoldAnsiEscape())
	//
	for _, test := range stressTests {
		var (
			outcome = "ok"
			escape  = termio.AnsiEscape{}.FgColour(termio.Green)
			ops     = util.GenerateRandomOps(cfg.Stress.Seed, cfg.Stress.Operations, test.kinds)
			stats   = util.NewPerfStats()
		)
		//
		size, capacity, err := test.run(ops, keys, cfg.Containers.DefaultCapacity)
		report := stats.Report()
		stats.Log(test.name)
		//
		if err != nil {
			log.Errorf("%s: %v", test.name, err)
			outcome, escape, failed = err.Error(), termio.AnsiEscape{}.FgColour(termio.Red), true
		}
		//
		row := table.AddRow(test.name, outcome, fmt.Sprint(size), fmt.Sprint(capacity), report.String())
		table.SetEscape(1, row, escape)
	}
	//
	return table, failed
}

func stressVector(ops []uint, keys []uint, capacity uint32) (int, uint32, error) {
	var (
		vec = vector.NewWithCapacity[uint](capacity)
		ref []uint
	)
	//
	for i, op := range ops {
		key := keys[i]
		//
		switch op {
		case 0:
			vec.PushBack(key)
			ref = append(ref, key)
		case 1:
			vec.PopBack()
			//
			if len(ref) > 0 {
				ref = ref[:len(ref)-1]
			}
		case 2:
			vec.PushFront(key)
			ref = slices.Insert(ref, 0, key)
		case 3:
			vec.PopFront()
			//
			if len(ref) > 0 {
				ref = ref[1:]
			}
		default:
			if len(ref) > 0 {
				index := key % uint(len(ref))
				vec.Set(uint32(index), key)
				ref[index] = key
			}
		}
		//
		if !slices.Equal(vec.Items(), ref) {
			return int(vec.Size()), vec.Capacity(), fmt.Errorf("operation %d: expected %v, got %v", i, ref, vec)
		}
	}
	//
	return int(vec.Size()), vec.Capacity(), nil
}

type stressEntry struct {
	key   uint
	value uint
}

func stressMap(ops []uint, keys []uint, capacity uint32) (int, uint32, error) {
	var (
		m   = sortedmap.NewWithCapacity[uint, uint](capacity)
		ref = btree.NewG[stressEntry](8, func(l, r stressEntry) bool { return l.key < r.key })
	)
	//
	for i, op := range ops {
		var (
			key         = keys[i]
			_, exists   = ref.Get(stressEntry{key, 0})
			ok, outcome bool
		)
		//
		switch op {
		case 0, 1:
			ok, outcome = m.Insert(key, uint(i)), !exists
			//
			if !exists {
				ref.ReplaceOrInsert(stressEntry{key, uint(i)})
			}
		case 2:
			ok, outcome = m.Erase(key), exists
			ref.Delete(stressEntry{key, 0})
		case 3:
			ok, outcome = m.Set(key, uint(i)), exists
			//
			if exists {
				ref.ReplaceOrInsert(stressEntry{key, uint(i)})
			}
		default:
			index := int(key) % max(ref.Len(), 1)
			ok, outcome = m.EraseAt(index), ref.Len() > 0
			//
			if ref.Len() > 0 {
				ref.Delete(nthEntry(ref, index))
			}
		}
		//
		if ok != outcome {
			return m.Size(), m.Capacity(), fmt.Errorf("operation %d (%d on key %d): expected %t", i, op, key, outcome)
		} else if err := compareMap(m, ref); err != nil {
			return m.Size(), m.Capacity(), fmt.Errorf("operation %d: %w", i, err)
		}
	}
	//
	return m.Size(), m.Capacity(), nil
}

func nthEntry(ref *btree.BTreeG[stressEntry], n int) stressEntry {
	var nth stressEntry
	//
	ref.Ascend(func(e stressEntry) bool {
		nth = e
		n--
		//
		return n >= 0
	})
	//
	return nth
}

func compareMap(m *sortedmap.Map[uint, uint], ref *btree.BTreeG[stressEntry]) error {
	var (
		index = 0
		err   error
	)
	//
	if m.Size() != ref.Len() {
		return fmt.Errorf("expected %d entries, got %d", ref.Len(), m.Size())
	}
	//
	ref.Ascend(func(e stressEntry) bool {
		if m.Key(index) != e.key || m.Value(index) != e.value {
			err = fmt.Errorf("expected %d:%d at %d, got %d:%d", e.key, e.value, index, m.Key(index), m.Value(index))
			return false
		}
		//
		index++
		//
		return true
	})
	//
	return err
}

func stressSet(ops []uint, keys []uint, capacity uint32) (int, uint32, error) {
	var (
		set = sortedset.NewWithCapacity[uint](capacity)
		// Reference model maps each key to its number of occurrences
		ref = btree.NewG[stressEntry](8, func(l, r stressEntry) bool { return l.key < r.key })
	)
	//
	for i, op := range ops {
		var (
			key      = keys[i]
			entry, _ = ref.Get(stressEntry{key, 0})
			count    = entry.value
			expected any
			actual   any
		)
		//
		switch op {
		case 0, 1:
			set.Insert(key)
			count++
		case 2:
			actual, expected = set.Erase(key), count > 0
			count = max(count, 1) - 1
		case 3:
			actual, expected = set.EraseAll(key), int(count)
			count = 0
		default:
			actual, expected = set.InsertUnique(key), count == 0
			count = max(count, 1)
		}
		//
		if count == 0 {
			ref.Delete(stressEntry{key, 0})
		} else {
			ref.ReplaceOrInsert(stressEntry{key, count})
		}
		//
		if actual != expected {
			return set.Size(), set.Capacity(), fmt.Errorf("operation %d (%d on %d): expected %v, got %v", i, op, key,
				expected, actual)
		} else if items := expandCounts(ref); !slices.Equal(set.Items(), items) {
			return set.Size(), set.Capacity(), fmt.Errorf("operation %d: expected %v, got %v", i, items, set)
		}
	}
	//
	return set.Size(), set.Capacity(), nil
}

func expandCounts(ref *btree.BTreeG[stressEntry]) []uint {
	var items []uint
	//
	ref.Ascend(func(e stressEntry) bool {
		for range e.value {
			items = append(items, e.key)
		}
		//
		return true
	})
	//
	return items
}

func stressList(ops []uint, keys []uint, capacity uint32) (int, uint32, error) {
	var (
		list = plist.NewWithCapacity[uint](capacity)
		ref  []uint
	)
	//
	for i, op := range ops {
		key := keys[i]
		//
		switch op {
		case 0:
			list.PushBack(key)
			ref = append(ref, key)
		case 1:
			list.PushFront(key)
			ref = slices.Insert(ref, 0, key)
		case 2:
			if list.PopBack() {
				ref = ref[:len(ref)-1]
			}
		case 3:
			if list.PopFront() {
				ref = ref[1:]
			}
		case 4:
			index := int(key) % (len(ref) + 1)
			list.Insert(listPosition(list, index), key)
			ref = slices.Insert(ref, index, key)
		default:
			if len(ref) > 0 {
				index := int(key) % len(ref)
				list.Erase(listPosition(list, index))
				ref = slices.Delete(ref, index, index+1)
			}
		}
		//
		if err := list.Validate(); err != nil {
			return int(list.Size()), list.Capacity(), fmt.Errorf("operation %d: %w", i, err)
		} else if items := list.Iter().Collect(); !slices.Equal(items, ref) {
			return int(list.Size()), list.Capacity(), fmt.Errorf("operation %d: expected %v, got %v", i, ref, items)
		}
	}
	//
	return int(list.Size()), list.Capacity(), nil
}

// listPosition returns an iterator to the nth element of a list.
func listPosition[T any](list *plist.List[T], n int) plist.Iterator[T] {
	it := list.Begin()
	//
	for range n {
		it = it.Next()
	}
	//
	return it
}

func init() {
	rootCmd.AddCommand(stressCmd)
	stressCmd.Flags().Uint("capacity", 1, "initial capacity of each container")
	stressCmd.Flags().Uint64("seed", 1, "seed for the random operation sequence")
	stressCmd.Flags().Uint("ops", 10000, "number of operations per container")
	stressCmd.Flags().Uint("max-key", 256, "upper bound (exclusive) on keys")
}
