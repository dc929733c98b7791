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

import (
	"fmt"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records the time, allocation and garbage collection counters at
// some point, so that the cost of the work done since can be reported.
type PerfStats struct {
	startTime time.Time
	// Total bytes allocated at the start
	startMem uint64
	// Number of gc events at the start
	startGc uint32
}

// PerfReport summarises the cost of the work done since a PerfStats snapshot
// was taken.
type PerfReport struct {
	Elapsed   time.Duration
	Allocated uint64
	GCs       uint32
}

// NewPerfStats takes a snapshot of the current counters.
func NewPerfStats() *PerfStats {
	var m runtime.MemStats

	startTime := time.Now()

	runtime.ReadMemStats(&m)

	return &PerfStats{startTime, m.TotalAlloc, m.NumGC}
}

// Report computes the difference between the counters now and as they were
// when this snapshot was taken.
func (p *PerfStats) Report() PerfReport {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	return PerfReport{time.Since(p.startTime), m.TotalAlloc - p.startMem, m.NumGC - p.startGc}
}

// Log the difference between the counters now and as they were when this
// snapshot was taken.
func (p *PerfStats) Log(prefix string) {
	log.Debugf("%s %s", prefix, p.Report())
}

func (p PerfReport) String() string {
	return fmt.Sprintf("took %0.3fs allocating %d Kb (%d GC events)", p.Elapsed.Seconds(), p.Allocated/1024, p.GCs)
}
