package reporting

import (
	"fmt"
	"io"
	"time"

	"github.com/mamadbah2/malynka/internal/domain/models"
	"github.com/mamadbah2/malynka/internal/report/grid"
	"github.com/mamadbah2/malynka/internal/report/xlsx"
)

const labelDateLayout = "02.01.2006"

// RangeReport is the input of a range workbook.
type RangeReport struct {
	Receivings []models.Receiving
	Sales      []models.Sale
	Window     Window
	// Client narrows the report to one client's receivings when set.
	Client       *models.Client
	Location     *time.Location
	IncludeSales bool
	Creator      string
	Created      time.Time
}

// BuildRangeWorkbook selects the report slice, lays it out and writes the
// finished xlsx document to w.
func BuildRangeWorkbook(w io.Writer, report RangeReport) error {
	loc := report.Location
	if loc == nil {
		loc = time.Local
	}

	clientID, clientLabel := "", ""
	if report.Client != nil {
		clientID, clientLabel = report.Client.ID, report.Client.Name
	}

	receivings, err := SelectReceivings(report.Receivings, report.Window.Start, report.Window.End, clientID)
	if err != nil {
		return err
	}
	sales, err := SelectSales(report.Sales, report.Window.Start, report.Window.End)
	if err != nil {
		return err
	}

	opts := grid.Options{
		RangeLabel:  RangeLabel(report.Window, loc),
		ClientLabel: clientLabel,
		Location:    loc,
	}
	if report.IncludeSales {
		summary := Summarize(receivings, sales)
		opts.Sales = &grid.SaleFigures{SoldWeight: summary.SoldWeight, Earned: summary.Earned}
	}

	layout, err := grid.Layout(receivings, opts)
	if err != nil {
		return err
	}

	return xlsx.Emit(w, layout, xlsx.Options{Creator: report.Creator, Created: report.Created})
}

// RangeLabel renders the window for report titles.
func RangeLabel(window Window, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	start := window.Start.In(loc).Format(labelDateLayout)
	if window.SameDay(loc) {
		return "за " + start
	}
	return fmt.Sprintf("від %s до %s", start, window.End.In(loc).Format(labelDateLayout))
}

// Filename is the attachment name of a range workbook.
func Filename(window Window, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return fmt.Sprintf("raport-%s-%s.xlsx",
		window.Start.In(loc).Format(labelDateLayout),
		window.End.In(loc).Format(labelDateLayout))
}
