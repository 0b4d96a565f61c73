// Package grid lays report data out as an abstract spreadsheet: cells holding
// literals or formulas, merge regions, column widths and page setup. It knows
// nothing about any document format; see package xlsx for the encoder.
package grid

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind tells what a cell holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindFormula
)

// Align is the horizontal alignment of a cell. Centered cells are also
// vertically centered.
type Align int

const (
	AlignGeneral Align = iota
	AlignCenter
	AlignLeft
)

// NumberFormat is the display format of numeric cells.
type NumberFormat int

const (
	FormatGeneral NumberFormat = iota
	FormatTwoDecimals
)

// Style is the static formatting attached to a cell.
type Style struct {
	Border       bool
	Align        Align
	NumberFormat NumberFormat
}

// Cell is one addressable cell. Col and Row are 1-based.
type Cell struct {
	Col     int
	Row     int
	Kind    Kind
	Text    string
	Number  float64
	Formula string
	Style   Style
}

// Address returns the A1-style address of the cell.
func (c Cell) Address() string {
	return Address(c.Col, c.Row)
}

// Region is a rectangular cell range, bounds included.
type Region struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// Ref returns the range in "A1:B2" notation.
func (r Region) Ref() string {
	return Address(r.Left, r.Top) + ":" + Address(r.Right, r.Bottom)
}

// Height is the number of rows the region spans.
func (r Region) Height() int {
	return r.Bottom - r.Top + 1
}

// Single reports whether the region is a single cell.
func (r Region) Single() bool {
	return r.Top == r.Bottom && r.Left == r.Right
}

// Overlaps reports whether two regions share at least one cell.
func (r Region) Overlaps(o Region) bool {
	return r.Left <= o.Right && o.Left <= r.Right && r.Top <= o.Bottom && o.Top <= r.Bottom
}

// PageSetup holds print settings. A zero FitToHeight means "as many pages as
// needed". Footer uses the &P/&N page markers.
type PageSetup struct {
	FitToWidth      int
	FitToHeight     int
	FirstPageNumber int
	Footer          string
}

// Run is the block of rows allocated to one receiving.
type Run struct {
	ReceivingID string
	First       int
	Last        int
}

// Grid is an immutable report layout. Accessors return copies.
type Grid struct {
	sheetName string
	cells     map[cellKey]Cell
	merges    []Region
	widths    []float64
	runs      []Run
	page      PageSetup
}

type cellKey struct {
	col int
	row int
}

// SheetName is the worksheet title.
func (g *Grid) SheetName() string {
	return g.sheetName
}

// Cell returns the cell at col/row if anything (value or style) was placed there.
func (g *Grid) Cell(col, row int) (Cell, bool) {
	c, ok := g.cells[cellKey{col: col, row: row}]
	return c, ok
}

// Cells returns all placed cells in row-major order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, 0, len(g.cells))
	for _, c := range g.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Merges returns the merge regions in the order they were laid out.
func (g *Grid) Merges() []Region {
	return append([]Region(nil), g.merges...)
}

// ColumnWidths returns the width hint of each column starting at column A.
func (g *Grid) ColumnWidths() []float64 {
	return append([]float64(nil), g.widths...)
}

// Runs returns the row blocks allocated per receiving, in input order.
func (g *Grid) Runs() []Run {
	return append([]Run(nil), g.runs...)
}

// Page returns the print settings.
func (g *Grid) Page() PageSetup {
	return g.page
}

// ColumnName converts a 1-based column number to its letters (1 -> A, 27 -> AA).
func ColumnName(col int) string {
	if col < 1 {
		panic(fmt.Sprintf("grid: invalid column %d", col))
	}
	var name []byte
	for col > 0 {
		col--
		name = append([]byte{byte('A' + col%26)}, name...)
		col /= 26
	}
	return string(name)
}

// Address converts 1-based column and row numbers to an A1-style address.
func Address(col, row int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

type builder struct {
	sheetName string
	cells     map[cellKey]Cell
	merges    []Region
	runs      []Run
}

func newBuilder(sheetName string) *builder {
	return &builder{sheetName: sheetName, cells: make(map[cellKey]Cell)}
}

func (b *builder) put(c Cell) {
	b.cells[cellKey{col: c.Col, row: c.Row}] = c
}

func (b *builder) text(col, row int, value string, style Style) {
	b.put(Cell{Col: col, Row: row, Kind: KindText, Text: value, Style: style})
}

func (b *builder) number(col, row int, value float64, style Style) {
	b.put(Cell{Col: col, Row: row, Kind: KindNumber, Number: value, Style: style})
}

func (b *builder) formula(col, row int, expr string, style Style) {
	b.put(Cell{Col: col, Row: row, Kind: KindFormula, Formula: expr, Style: style})
}

func (b *builder) blank(col, row int, style Style) {
	b.put(Cell{Col: col, Row: row, Kind: KindEmpty, Style: style})
}

// merge records a region whose content lives in its top-left cell. Covered
// cells inherit the top-left style so borders are drawn around the whole block.
func (b *builder) merge(r Region) {
	b.merges = append(b.merges, r)
	anchor, ok := b.cells[cellKey{col: r.Left, row: r.Top}]
	if !ok {
		return
	}
	for row := r.Top; row <= r.Bottom; row++ {
		for col := r.Left; col <= r.Right; col++ {
			if row == r.Top && col == r.Left {
				continue
			}
			b.blank(col, row, anchor.Style)
		}
	}
}

func (b *builder) build(widths []float64, page PageSetup) *Grid {
	return &Grid{
		sheetName: b.sheetName,
		cells:     b.cells,
		merges:    b.merges,
		widths:    append([]float64(nil), widths...),
		runs:      b.runs,
		page:      page,
	}
}
