package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Column describes one table column; widths are grid units and must
// sum to 12 across the column set.
type Column struct {
	Header string
	Width  int
}

// SummaryLine is one label/value pair in the summary block under the
// title.
type SummaryLine struct {
	Label string
	Value string
}

// Document is a tabular listing to be rendered as a PDF. Pagination
// is handled by the layout engine.
type Document struct {
	Title   string
	Summary []SummaryLine
	Columns []Column
	Rows    [][]string
}

var printer = message.NewPrinter(language.English)

// Amount formats a monetary value with thousands separators.
func Amount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// Render lays the document out and returns the PDF bytes.
func Render(doc Document) ([]byte, error) {
	if err := validateColumns(doc.Columns); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, doc.Title, props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Left,
	}))

	for _, line := range doc.Summary {
		m.AddRow(6,
			text.NewCol(4, line.Label, props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(8, line.Value, props.Text{Size: 9}),
		)
	}
	if len(doc.Summary) > 0 {
		m.AddRow(4, col.New(12))
	}

	headerCols := make([]core.Col, 0, len(doc.Columns))
	for _, c := range doc.Columns {
		headerCols = append(headerCols, text.NewCol(c.Width, c.Header, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
		}))
	}
	m.AddRows(row.New(8).Add(headerCols...))

	for _, r := range doc.Rows {
		cells := make([]core.Col, 0, len(doc.Columns))
		for i, c := range doc.Columns {
			value := ""
			if i < len(r) {
				value = r[i]
			}
			cells = append(cells, text.NewCol(c.Width, value, props.Text{Size: 8}))
		}
		m.AddRows(row.New(6).Add(cells...))
	}

	rendered, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return rendered.GetBytes(), nil
}

func validateColumns(cols []Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("render pdf: no columns")
	}
	total := 0
	for _, c := range cols {
		total += c.Width
	}
	if total != 12 {
		return fmt.Errorf("render pdf: column widths sum to %d, want 12", total)
	}
	return nil
}
