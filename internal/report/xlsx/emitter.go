// Package xlsx encodes a grid.Grid as an Office Open XML workbook.
package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/report/grid"
)

// ContentType is the MIME type of the emitted document.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// builtin "#,##0.00"
const numFmtTwoDecimals = 4

// Options carry document properties.
type Options struct {
	Creator string
	Created time.Time
}

// Emit renders g and writes the complete document to w. Nothing is written
// unless the whole document encoded successfully; every failure is an
// *models.EmissionError.
func Emit(w io.Writer, g *grid.Grid, opts Options) error {
	f, err := build(g, opts)
	if err != nil {
		return &models.EmissionError{Stage: "build", Err: err}
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return &models.EmissionError{Stage: "encode", Err: err}
	}

	if _, err := buf.WriteTo(w); err != nil {
		return &models.EmissionError{Stage: "write", Err: err}
	}

	return nil
}

func build(g *grid.Grid, opts Options) (*excelize.File, error) {
	if g == nil {
		return nil, fmt.Errorf("grid is nil")
	}

	f := excelize.NewFile()
	sheet := g.SheetName()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	steps := []func(*excelize.File, *grid.Grid, string) error{
		writeCells,
		writeMerges,
		writeColumns,
		writePageSetup,
	}
	for _, step := range steps {
		if err := step(f, g, sheet); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if err := writeDocProps(f, opts); err != nil {
		_ = f.Close()
		return nil, err
	}

	return f, nil
}

func writeCells(f *excelize.File, g *grid.Grid, sheet string) error {
	styles := newStyleCache(f)

	for _, cell := range g.Cells() {
		addr := cell.Address()

		var err error
		switch cell.Kind {
		case grid.KindText:
			err = f.SetCellStr(sheet, addr, cell.Text)
		case grid.KindNumber:
			err = f.SetCellFloat(sheet, addr, cell.Number, -1, 64)
		case grid.KindFormula:
			err = f.SetCellFormula(sheet, addr, cell.Formula)
		}
		if err != nil {
			return fmt.Errorf("set cell %s: %w", addr, err)
		}

		if cell.Style == (grid.Style{}) {
			continue
		}
		id, err := styles.get(cell.Style)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, addr, addr, id); err != nil {
			return fmt.Errorf("style cell %s: %w", addr, err)
		}
	}

	return nil
}

func writeMerges(f *excelize.File, g *grid.Grid, sheet string) error {
	for _, region := range g.Merges() {
		if region.Single() {
			continue
		}
		top := grid.Address(region.Left, region.Top)
		bottom := grid.Address(region.Right, region.Bottom)
		if err := f.MergeCell(sheet, top, bottom); err != nil {
			return fmt.Errorf("merge %s: %w", region.Ref(), err)
		}
	}
	return nil
}

func writeColumns(f *excelize.File, g *grid.Grid, sheet string) error {
	for i, width := range g.ColumnWidths() {
		col := grid.ColumnName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("column %s width: %w", col, err)
		}
	}
	return nil
}

func writePageSetup(f *excelize.File, g *grid.Grid, sheet string) error {
	page := g.Page()

	fitToPage := page.FitToWidth > 0 || page.FitToHeight > 0
	if err := f.SetSheetProps(sheet, &excelize.SheetPropsOptions{FitToPage: &fitToPage}); err != nil {
		return fmt.Errorf("sheet props: %w", err)
	}

	layout := &excelize.PageLayoutOptions{
		FitToWidth:  &page.FitToWidth,
		FitToHeight: &page.FitToHeight,
	}
	if page.FirstPageNumber > 0 {
		first := uint(page.FirstPageNumber)
		layout.FirstPageNumber = &first
	}
	if err := f.SetPageLayout(sheet, layout); err != nil {
		return fmt.Errorf("page layout: %w", err)
	}

	if page.Footer == "" {
		return nil
	}
	if err := f.SetHeaderFooter(sheet, &excelize.HeaderFooterOptions{
		DifferentFirst:   true,
		DifferentOddEven: true,
		OddFooter:        page.Footer,
		EvenFooter:       page.Footer,
		FirstFooter:      page.Footer,
	}); err != nil {
		return fmt.Errorf("header footer: %w", err)
	}
	return nil
}

func writeDocProps(f *excelize.File, opts Options) error {
	if opts.Creator == "" && opts.Created.IsZero() {
		return nil
	}
	props := &excelize.DocProperties{Creator: opts.Creator}
	if !opts.Created.IsZero() {
		props.Created = opts.Created.UTC().Format(time.RFC3339)
	}
	if err := f.SetDocProps(props); err != nil {
		return fmt.Errorf("doc props: %w", err)
	}
	return nil
}

type styleCache struct {
	f   *excelize.File
	ids map[grid.Style]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: make(map[grid.Style]int)}
}

func (c *styleCache) get(s grid.Style) (int, error) {
	if id, ok := c.ids[s]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	if s.Border {
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}
	switch s.Align {
	case grid.AlignCenter:
		style.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	case grid.AlignLeft:
		style.Alignment = &excelize.Alignment{Horizontal: "left"}
	}
	if s.NumberFormat == grid.FormatTwoDecimals {
		style.NumFmt = numFmtTwoDecimals
	}

	id, err := c.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("new style: %w", err)
	}
	c.ids[s] = id
	return id, nil
}
