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
	"fmt"
	"io"
	"strings"
)

// TablePrinter lays out rows of cells in aligned columns.  Rows are added
// incrementally, and columns widen to fit their largest cell unless bounded.
type TablePrinter struct {
	widths        []uint
	bounds        []uint
	rows          [][]string
	escapes       [][]AnsiEscape
	enableEscapes bool
}

// NewTablePrinter constructs an empty table with a given number of columns.
func NewTablePrinter(columns uint) *TablePrinter {
	return &TablePrinter{
		widths:        make([]uint, columns),
		bounds:        make([]uint, columns),
		enableEscapes: true,
	}
}

// Width returns the number of columns in this table.
func (p *TablePrinter) Width() uint {
	return uint(len(p.widths))
}

// Height returns the number of rows in this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// AddRow appends a row to this table, returning its index.  Missing trailing
// cells are left blank.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if len(vals) > len(p.widths) {
		panic("incorrect number of columns")
	}
	//
	row := make([]string, len(p.widths))
	copy(row, vals)
	p.rows = append(p.rows, row)
	p.escapes = append(p.escapes, make([]AnsiEscape, len(p.widths)))
	//
	for i, val := range vals {
		p.widths[i] = max(p.widths[i], uint(len(val)))
	}
	//
	return uint(len(p.rows) - 1)
}

// Set the contents of a given cell in this table.
func (p *TablePrinter) Set(col uint, row uint, val string) {
	p.widths[col] = max(p.widths[col], uint(len(val)))
	p.rows[row][col] = val
}

// Get the contents of a given cell in this table.
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// SetEscape sets the formatting used when printing a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape
}

// SetRowEscape sets the formatting used for every cell of a given row.
func (p *TablePrinter) SetRowEscape(row uint, escape AnsiEscape) {
	for i := range p.escapes[row] {
		p.escapes[row][i] = escape
	}
}

// AnsiEscapes enables or disables the use of ANSI escapes.  Disabling escapes
// is useful when the output is not a terminal, as otherwise the escape
// characters end up in the output.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidths puts an upper bound on the width of every column.
func (p *TablePrinter) SetMaxWidths(width uint) {
	for i := range p.bounds {
		p.bounds[i] = width
	}
}

// SetMaxWidth puts an upper bound on the width of a given column.  A bound of
// zero removes any bound.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.bounds[col] = width
}

// Print the table to a given writer.
func (p *TablePrinter) Print(w io.Writer) error {
	var builder strings.Builder
	//
	for i, row := range p.rows {
		for j, cell := range row {
			width := p.widths[j]
			escape := p.escapes[i][j]
			//
			if p.bounds[j] != 0 {
				width = min(width, max(p.bounds[j], 3))
			}
			// Formatting (if applicable)
			if p.enableEscapes && !escape.IsEmpty() {
				builder.WriteString(escape.Build())
			}
			// Data, truncated if too wide
			if uint(len(cell)) > width {
				fmt.Fprintf(&builder, " %s..", cell[0:width-2])
			} else {
				fmt.Fprintf(&builder, " %*s", width, cell)
			}
			//
			if p.enableEscapes && !escape.IsEmpty() {
				builder.WriteString(ResetAnsiEscape().Build())
			}
			//
			builder.WriteString(" |")
		}
		//
		builder.WriteString("\n")
	}
	//
	_, err := io.WriteString(w, builder.String())
	//
	return err
}
