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
package termio

import (
	"os"

	"golang.org/x/term"
)

// Probe determines whether a given file is a terminal and, if so, its width
// in columns.  Escapes should only be enabled for terminals.  The width is
// zero when unknown.
func Probe(file *os.File) (bool, uint) {
	fd := int(file.Fd())
	//
	if !term.IsTerminal(fd) {
		return false, 0
	}
	//
	width, _, err := term.GetSize(fd)
	if err != nil || width < 0 {
		return true, 0
	}
	//
	return true, uint(width)
}
