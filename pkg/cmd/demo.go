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

	"github.com/dglib/go-dglib/pkg/resource"
	"github.com/dglib/go-dglib/pkg/util/collection/plist"
	"github.com/dglib/go-dglib/pkg/util/collection/sortedmap"
	"github.com/dglib/go-dglib/pkg/util/collection/sortedset"
	"github.com/dglib/go-dglib/pkg/util/collection/vector"
	"github.com/dglib/go-dglib/pkg/util/termio"
	"github.com/spf13/cobra"
)

var demos = map[string]func(uint32) *termio.TablePrinter{
	"vector":   demoVector,
	"map":      demoMap,
	"set":      demoSet,
	"list":     demoList,
	"slots":    demoSlots,
	"resource": demoResource,
}

var demoCmd = &cobra.Command{
	Use:   "demo [flags] [container...]",
	Short: "Demonstrate the behaviour of each container.",
	Long: `Run a short scenario against each container, showing its state after every step.
	Containers are vector, map, set, list, slots and resource (default: all).`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig(cmd)
		ansi, width := termio.Probe(os.Stdout)
		ansi = ansi && !GetFlag(cmd, "no-colour")
		//
		if len(args) == 0 {
			args = []string{"vector", "map", "set", "list", "slots", "resource"}
		}
		//
		for _, name := range args {
			demo, ok := demos[name]
			if !ok {
				fmt.Printf("unknown container \"%s\"\n", name)
				os.Exit(2)
			}
			//
			table := demo(cfg.Containers.DefaultCapacity)
			table.AnsiEscapes(ansi)
			//
			if width != 0 {
				// Bound the contents column so rows fit on the terminal
				table.SetMaxWidth(table.Width()-1, max(width/2, 8))
			}
			//
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", name)
			//
			if err := table.Print(cmd.OutOrStdout()); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			//
			fmt.Fprintln(cmd.OutOrStdout())
		}
	},
}

// stepTable records the state of a container after each step of a scenario.
type stepTable struct {
	*termio.TablePrinter
}

func newStepTable() stepTable {
	table := stepTable{termio.NewTablePrinter(5)}
	row := table.AddRow("operation", "result", "size", "capacity", "contents")
	table.SetRowEscape(row, termio.BoldAnsiEscape())
	//
	return table
}

func (p stepTable) step(op string, result any, size any, capacity uint32, contents fmt.Stringer) {
	row := p.AddRow(op, fmt.Sprint(result), fmt.Sprint(size), fmt.Sprint(capacity), contents.String())
	// Highlight outcomes
	switch result {
	case "":
	case false:
		p.SetEscape(1, row, termio.AnsiEscape{}.FgColour(termio.Red))
	default:
		p.SetEscape(1, row, termio.AnsiEscape{}.FgColour(termio.Green))
	}
}

func demoVector(capacity uint32) *termio.TablePrinter {
	var (
		table = newStepTable()
		vec   = vector.NewWithCapacity[int](capacity)
	)
	//
	record := func(op string, result any) {
		table.step(op, result, vec.Size(), vec.Capacity(), vec)
	}
	//
	for i := 1; i <= 4; i++ {
		vec.PushBack(i)
		record(fmt.Sprintf("push_back(%d)", i), "")
	}
	//
	vec.PushFront(0)
	record("push_front(0)", "")
	//
	_, err := vec.At(vec.Size())
	record(fmt.Sprintf("at(%d)", vec.Size()), err == nil)
	//
	index, ok := vector.Find(vec, 3)
	record("find(3)", fmt.Sprintf("%t@%d", ok, index))
	//
	vec.PopFront()
	record("pop_front()", "")
	vec.PopBack()
	record("pop_back()", "")
	vec.Resize(2)
	record("resize(2)", "")
	vector.Fill(vec, 7)
	record("fill(7)", "")
	vec.Clear()
	record("clear()", "")
	//
	return table.TablePrinter
}

func demoMap(capacity uint32) *termio.TablePrinter {
	var (
		table = newStepTable()
		m     = sortedmap.NewWithCapacity[int, string](capacity)
	)
	//
	record := func(op string, result any) {
		table.step(op, result, m.Size(), m.Capacity(), m)
	}
	//
	for _, k := range []int{5, 1, 3} {
		ok := m.Insert(k, fmt.Sprintf("v%d", k))
		record(fmt.Sprintf("insert(%d)", k), ok)
	}
	//
	record("insert(3)", m.Insert(3, "dup"))
	//
	index, ok := m.Find(3)
	record("find(3)", fmt.Sprintf("%t@%d", ok, index))
	record("set(5)", m.Set(5, "five"))
	record("erase(1)", m.Erase(1))
	//
	index, ok = m.Find(1)
	record("find(1)", fmt.Sprintf("%t@%d", ok, index))
	record("erase_at(0)", m.EraseAt(0))
	m.Reset()
	record("reset()", "")
	//
	return table.TablePrinter
}

func demoSet(capacity uint32) *termio.TablePrinter {
	var (
		table = newStepTable()
		set   = sortedset.NewWithCapacity[int](capacity)
	)
	//
	record := func(op string, result any) {
		table.step(op, result, set.Size(), set.Capacity(), set)
	}
	//
	for _, v := range []int{4, 2, 4, 9, 4} {
		set.Insert(v)
		record(fmt.Sprintf("insert(%d)", v), "")
	}
	//
	record("insert_unique(2)", set.InsertUnique(2))
	record("insert_unique(7)", set.InsertUnique(7))
	record("erase(9)", set.Erase(9))
	record("erase_all(4)", set.EraseAll(4))
	record("contains(4)", set.Contains(4))
	//
	return table.TablePrinter
}

func demoList(capacity uint32) *termio.TablePrinter {
	var (
		table = newStepTable()
		list  = plist.NewWithCapacity[string](max(capacity, 2))
	)
	//
	record := func(op string, result any) {
		table.step(op, result, list.Size(), list.Capacity(), list)
	}
	// Fill to capacity first
	for i := uint32(0); list.Size() < list.Capacity(); i++ {
		item := string(rune('A' + i%26))
		record(fmt.Sprintf("try_push_back(%s)", item), list.TryPushBack(item))
	}
	//
	record("try_push_back(C)", list.TryPushBack("C"))
	list.PushBack("C")
	record("push_back(C)", "")
	//
	it := list.Insert(list.Begin().Next(), "X")
	record("insert(1, X)", it.Value())
	it = list.Erase(list.Begin())
	record("erase(0)", it.Value())
	record("pop_front()", list.PopFront())
	list.PushFront("Z")
	record("push_front(Z)", "")
	//
	if err := list.Validate(); err != nil {
		record("validate()", err)
	} else {
		record("validate()", true)
	}
	//
	return table.TablePrinter
}

// demoSlots shows the arena layout of a list before and after it is extended.
func demoSlots(capacity uint32) *termio.TablePrinter {
	var (
		table = termio.NewTablePrinter(5)
		list  = plist.NewWithCapacity[int](max(capacity, 2))
	)
	//
	header := table.AddRow("stage", "slot", "state", "next", "prev")
	table.SetRowEscape(header, termio.BoldAnsiEscape())
	//
	record := func(stage string) {
		for _, slot := range list.Slots() {
			state, escape := "free", termio.AnsiEscape{}.FgColour(termio.Blue)
			if slot.Active {
				state, escape = "active", termio.AnsiEscape{}.FgColour(termio.Green)
			}
			//
			row := table.AddRow(stage, fmt.Sprint(slot.Index), state, fmt.Sprint(slot.Next), fmt.Sprint(slot.Previous))
			table.SetEscape(2, row, escape)
			stage = ""
		}
	}
	//
	for i := 0; uint32(i) < list.Capacity(); i++ {
		list.PushFront(i)
	}
	// Scramble the free chain
	list.Erase(list.Begin().Next())
	list.PushBack(-1)
	record("full")
	list.Extend()
	record("extended")
	//
	return table
}

// bufferResource is a resource owning a block of bytes, allocated on
// initialisation.
type bufferResource struct {
	key    resource.RKey
	size   uint32
	buffer *vector.Vector[byte]
}

func newBufferResource(size uint32) resource.Factory {
	return func(key resource.RKey) resource.Resource {
		return &bufferResource{key: key, size: size}
	}
}

func (p *bufferResource) Key() resource.RKey {
	return p.key
}

func (p *bufferResource) IsInitialised() bool {
	return p.buffer != nil
}

func (p *bufferResource) Init() error {
	p.buffer = vector.NewWithCapacity[byte](p.size)
	vector.Fill(p.buffer, 0)
	//
	return nil
}

func (p *bufferResource) DeInit() error {
	p.buffer = nil
	return nil
}

// resourceState describes the state of every resource held by a manager.
type resourceState struct {
	manager *resource.Manager
}

func (p resourceState) String() string {
	var states []string
	//
	for it := p.manager.Keys(); it.HasNext(); {
		key := it.Next()
		users, _ := p.manager.Users(key)
		states = append(states, fmt.Sprintf("%s#%d", key, users))
	}
	//
	return fmt.Sprint(states)
}

func demoResource(capacity uint32) *termio.TablePrinter {
	var (
		table   = newStepTable()
		manager = resource.NewManager(resource.AutoDeinit)
		keys    = []resource.RKey{resource.NewRKey(2, 1), resource.NewRKey(1, 7), resource.NewRKey(1, 3)}
		handles []*resource.Handle
	)
	//
	record := func(op string, result any) {
		table.step(op, result, manager.Size(), 0, resourceState{manager})
	}
	//
	for _, key := range keys {
		err := manager.Register(key, newBufferResource(max(capacity, 16)), false)
		record(fmt.Sprintf("register(%s)", key), err == nil)
	}
	//
	err := manager.Register(keys[0], newBufferResource(1), false)
	record(fmt.Sprintf("register(%s)", keys[0]), err == nil)
	//
	for _, key := range slices.Concat(keys, keys[1:]) {
		handle, err := manager.Get(key)
		if err == nil {
			handles = append(handles, handle)
		}
		//
		record(fmt.Sprintf("get(%s)", key), err == nil)
	}
	//
	for _, handle := range handles {
		handle.Release()
		record(fmt.Sprintf("release(%s)", handle.Key()), handle.Resource() == nil)
	}
	//
	return table.TablePrinter
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Uint("capacity", 1, "initial capacity of each container")
	demoCmd.Flags().Bool("no-colour", false, "disable coloured output")
}
