package grid

import (
	"fmt"
	"time"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

const (
	colDate = iota + 1
	colClient
	colWeight
	colPrice
	colSum
	colGeneralWeight
	colGeneralSum

	columnCount = colGeneralSum
)

var columnWidths = []float64{15, 20, 15, 15, 15, 20, 20}

var (
	headerStyle  = Style{Border: true, Align: AlignCenter}
	valueStyle   = Style{Border: true, NumberFormat: FormatTwoDecimals}
	generalStyle = Style{Border: true, Align: AlignCenter, NumberFormat: FormatTwoDecimals}
	summaryStyle = Style{Align: AlignLeft, NumberFormat: FormatTwoDecimals}
	titleStyle   = Style{Align: AlignCenter}
)

// SaleFigures are the sale totals shown by the sale variant of the report.
type SaleFigures struct {
	SoldWeight float64
	Earned     float64
}

// Options configure Layout.
type Options struct {
	// SheetName defaults to the receivings sheet title.
	SheetName string
	// RangeLabel is the human readable period, e.g. "від 01.06.2024 до 07.06.2024".
	RangeLabel string
	// ClientLabel is appended to the title when the report is filtered by client.
	ClientLabel string
	// Location renders receiving dates. Defaults to time.Local.
	Location *time.Location
	// Sales switches on the sold/earned/remaining/profit rows.
	Sales *SaleFigures
}

// Layout builds the receivings report grid. Receivings are laid out in the
// given order; callers sort them first. Every aggregate is a formula over the
// cells it summarizes.
func Layout(receivings []models.Receiving, opts Options) (*Grid, error) {
	if opts.SheetName == "" {
		opts.SheetName = sheetTitle
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	b := newBuilder(opts.SheetName)

	b.text(colDate, 1, title(opts), titleStyle)
	b.merge(Region{Top: 1, Left: colDate, Bottom: 1, Right: columnCount})

	summary := layoutSummaryLabels(b, opts.Sales != nil)

	headerRow := summary.last + 2
	layoutColumnHeaders(b, headerRow)

	firstDataRow := headerRow + 2
	row := firstDataRow
	for _, receiving := range receivings {
		if receiving.Client == nil {
			return nil, &models.ReferenceError{ReceivingID: receiving.ID, ClientID: receiving.ClientID}
		}
		row = layoutReceiving(b, receiving, row, opts.Location)
	}

	// An empty report keeps a one-row data range so aggregates evaluate to 0.
	lastDataRow := row - 1
	if lastDataRow < firstDataRow {
		lastDataRow = firstDataRow
	}
	layoutSummaryValues(b, summary, firstDataRow, lastDataRow, opts.Sales)

	return b.build(columnWidths, PageSetup{
		FitToWidth:      1,
		FitToHeight:     0,
		FirstPageNumber: 1,
		Footer:          "&P/&N",
	}), nil
}

func title(opts Options) string {
	t := titlePrefix
	if opts.RangeLabel != "" {
		t += " " + opts.RangeLabel
	}
	if opts.ClientLabel != "" {
		t += " " + clientPrefix + " " + opts.ClientLabel
	}
	return t
}

// summaryRows remembers where each summary value lives. Sale rows are zero
// when the sale variant is off.
type summaryRows struct {
	collected, spent, maxPrice, minPrice, avgPrice int
	sold, earned, remaining, profit                int
	last                                           int
}

func layoutSummaryLabels(b *builder, withSales bool) summaryRows {
	var rows summaryRows
	row := 2
	next := func(label string) int {
		b.text(colDate, row, label, Style{})
		row++
		return row - 1
	}

	rows.collected = next(labelCollected)
	rows.spent = next(labelSpent)
	rows.maxPrice = next(labelMaxPrice)
	rows.minPrice = next(labelMinPrice)
	rows.avgPrice = next(labelAvgPrice)
	if withSales {
		rows.sold = next(labelSold)
		rows.earned = next(labelEarned)
		rows.remaining = next(labelRemaining)
		rows.profit = next(labelProfit)
	}
	rows.last = row - 1
	return rows
}

func layoutColumnHeaders(b *builder, row int) {
	b.text(colDate, row, headerDate, headerStyle)
	b.merge(Region{Top: row, Left: colDate, Bottom: row + 1, Right: colDate})

	b.text(colClient, row, headerClient, headerStyle)
	b.merge(Region{Top: row, Left: colClient, Bottom: row + 1, Right: colClient})

	b.text(colWeight, row, headerReceipts, headerStyle)
	b.merge(Region{Top: row, Left: colWeight, Bottom: row, Right: colSum})
	b.text(colWeight, row+1, headerWeight, headerStyle)
	b.text(colPrice, row+1, headerUnitPrice, headerStyle)
	b.text(colSum, row+1, headerSum, headerStyle)

	b.text(colGeneralWeight, row, headerGeneral, headerStyle)
	b.merge(Region{Top: row, Left: colGeneralWeight, Bottom: row, Right: colGeneralSum})
	b.text(colGeneralWeight, row+1, headerWeight, headerStyle)
	b.text(colGeneralSum, row+1, headerSum, headerStyle)
}

// layoutReceiving writes one receiving starting at first and returns the next
// free row. A receiving without records still takes one row.
func layoutReceiving(b *builder, receiving models.Receiving, first int, loc *time.Location) int {
	height := len(receiving.Records)
	if height < 1 {
		height = 1
	}
	last := first + height - 1

	b.text(colDate, first, receiving.Timestamp.In(loc).Format(dateLayout), headerStyle)
	b.merge(Region{Top: first, Left: colDate, Bottom: last, Right: colDate})

	b.text(colClient, first, receiving.ClientName(), headerStyle)
	b.merge(Region{Top: first, Left: colClient, Bottom: last, Right: colClient})

	if len(receiving.Records) == 0 {
		b.blank(colWeight, first, valueStyle)
		b.blank(colPrice, first, valueStyle)
		b.blank(colSum, first, valueStyle)
	}
	for i, record := range receiving.Records {
		row := first + i
		b.number(colWeight, row, record.Weight, valueStyle)
		b.number(colPrice, row, record.Price, valueStyle)
		b.formula(colSum, row, Address(colWeight, row)+"*"+Address(colPrice, row), valueStyle)
	}

	b.formula(colGeneralWeight, first, sumOf(colWeight, first, last), generalStyle)
	b.merge(Region{Top: first, Left: colGeneralWeight, Bottom: last, Right: colGeneralWeight})

	b.formula(colGeneralSum, first, sumOf(colSum, first, last), generalStyle)
	b.merge(Region{Top: first, Left: colGeneralSum, Bottom: last, Right: colGeneralSum})

	b.runs = append(b.runs, Run{ReceivingID: receiving.ID, First: first, Last: last})
	return last + 1
}

func layoutSummaryValues(b *builder, rows summaryRows, firstDataRow, lastDataRow int, sales *SaleFigures) {
	value := func(row int) string { return Address(colClient, row) }

	// Totals run over the line columns; the general columns are merged per run.
	b.formula(colClient, rows.collected, sumOf(colWeight, firstDataRow, lastDataRow), summaryStyle)
	b.formula(colClient, rows.spent, sumOf(colSum, firstDataRow, lastDataRow), summaryStyle)
	b.formula(colClient, rows.maxPrice, rangeFunc("MAX", colPrice, firstDataRow, lastDataRow), summaryStyle)
	b.formula(colClient, rows.minPrice, rangeFunc("MIN", colPrice, firstDataRow, lastDataRow), summaryStyle)
	b.formula(colClient, rows.avgPrice,
		fmt.Sprintf("IF(%s=0,0,%s/%s)", value(rows.collected), value(rows.spent), value(rows.collected)),
		summaryStyle)

	if sales == nil {
		return
	}
	b.number(colClient, rows.sold, sales.SoldWeight, summaryStyle)
	b.number(colClient, rows.earned, sales.Earned, summaryStyle)
	b.formula(colClient, rows.remaining, value(rows.collected)+"-"+value(rows.sold), summaryStyle)
	b.formula(colClient, rows.profit, value(rows.earned)+"-"+value(rows.spent), summaryStyle)
}

func sumOf(col, first, last int) string {
	return rangeFunc("SUM", col, first, last)
}

func rangeFunc(fn string, col, first, last int) string {
	return fmt.Sprintf("%s(%s:%s)", fn, Address(col, first), Address(col, last))
}
