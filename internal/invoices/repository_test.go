package invoices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachItemsKeepsInsertionOrderPerInvoice(t *testing.T) {
	invoices := []Invoice{{ID: 10}, {ID: 20}, {ID: 30}}
	items := []InvoiceItem{
		{ID: 1, InvoiceID: 10, Item: "Keyboard"},
		{ID: 2, InvoiceID: 20, Item: "Monitor"},
		{ID: 3, InvoiceID: 10, Item: "Mouse"},
		{ID: 4, InvoiceID: 20, Item: "Stand"},
	}

	attachItems(invoices, items)

	assert.Equal(t, []string{"Keyboard", "Mouse"}, itemNames(invoices[0].Items))
	assert.Equal(t, []string{"Monitor", "Stand"}, itemNames(invoices[1].Items))
	assert.Empty(t, invoices[2].Items)
}

func TestAttachItemsIgnoresOrphans(t *testing.T) {
	invoices := []Invoice{{ID: 10}}
	items := []InvoiceItem{
		{ID: 1, InvoiceID: 99, Item: "Stray"},
		{ID: 2, InvoiceID: 10, Item: "Keyboard"},
	}

	attachItems(invoices, items)

	assert.Equal(t, []string{"Keyboard"}, itemNames(invoices[0].Items))
}

func itemNames(items []InvoiceItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Item
	}
	return out
}
