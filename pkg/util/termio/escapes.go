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
	"strconv"
	"strings"
)

// Colour identifies one of the eight basic terminal colours.
type Colour uint

const (
	// Black represents black
	Black Colour = iota
	// Red represents red
	Red
	// Green represents green
	Green
	// Yellow represents yellow
	Yellow
	// Blue represents blue
	Blue
	// Magenta represents magenta
	Magenta
	// Cyan represents cyan
	Cyan
	// White represents white
	White
)

// AnsiEscape represents an ANSI escape sequence used for formatting text in a
// terminal, built up from a sequence of graphic rendition codes.  The zero
// value is the empty escape.
type AnsiEscape struct {
	codes []uint
}

// ResetAnsiEscape constructs an escape which resets all formatting.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{0}}
}

// BoldAnsiEscape constructs an escape which emboldens text.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{1}}
}

// FgColour adds a foreground colour to this escape.
func (p AnsiEscape) FgColour(col Colour) AnsiEscape {
	return p.with(30 + uint(col))
}

// BgColour adds a background colour to this escape.
func (p AnsiEscape) BgColour(col Colour) AnsiEscape {
	return p.with(40 + uint(col))
}

// IsEmpty checks whether this escape has no effect.
func (p AnsiEscape) IsEmpty() bool {
	return len(p.codes) == 0
}

// Build constructs the final escape sequence.
func (p AnsiEscape) Build() string {
	var builder strings.Builder
	//
	builder.WriteString("\033[")
	//
	for i, code := range p.codes {
		if i != 0 {
			builder.WriteString(";")
		}
		//
		builder.WriteString(strconv.FormatUint(uint64(code), 10))
	}
	//
	builder.WriteString("m")
	//
	return builder.String()
}

func (p AnsiEscape) with(code uint) AnsiEscape {
	codes := make([]uint, len(p.codes)+1)
	copy(codes, p.codes)
	codes[len(p.codes)] = code
	//
	return AnsiEscape{codes}
}
