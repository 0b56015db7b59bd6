package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567.50", Amount(1234567.5))
	assert.Equal(t, "0.00", Amount(0))
	assert.Equal(t, "99.90", Amount(99.9))
}

func TestRenderProducesPDF(t *testing.T) {
	doc := Document{
		Title: "Orders Report",
		Summary: []SummaryLine{
			{Label: "Orders", Value: "2"},
			{Label: "Total value", Value: Amount(450)},
		},
		Columns: []Column{
			{Header: "Number", Width: 4},
			{Header: "Customer", Width: 5},
			{Header: "Total", Width: 3},
		},
		Rows: [][]string{
			{"ORD-1", "Acme", Amount(300)},
			{"ORD-2", "Globex", Amount(150)},
		},
	}

	data, err := Render(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderManyRowsPaginates(t *testing.T) {
	doc := Document{
		Title:   "Products Report",
		Columns: []Column{{Header: "SKU", Width: 6}, {Header: "Name", Width: 6}},
	}
	for i := 0; i < 200; i++ {
		doc.Rows = append(doc.Rows, []string{"SKU", "Name"})
	}

	data, err := Render(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderRejectsBadColumnWidths(t *testing.T) {
	_, err := Render(Document{
		Title:   "Broken",
		Columns: []Column{{Header: "A", Width: 5}},
	})
	require.Error(t, err)

	_, err = Render(Document{Title: "Empty"})
	require.Error(t, err)
}
