package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDomains(r *Registry) []Domain {
	return []Domain{
		r.OrderStatus,
		r.InvoiceStatus,
		r.QuoteStatus,
		r.TransactionType,
		r.TransactionCat,
		r.TransactionStatus,
		r.PaymentMode,
		r.PaymentStatus,
		r.SalePaymentMethod,
		r.DiscountTier,
		r.EmployeeDepartment,
		r.EmployeeRole,
		r.EmployeeStatus,
		r.UserRole,
		r.UserStatus,
	}
}

func TestRoundTripEveryLabel(t *testing.T) {
	r := NewRegistry()
	for _, d := range allDomains(r) {
		for _, label := range d.Labels() {
			code, ok := d.Code(label)
			require.True(t, ok, "%s: label %q has no code", d.Name(), label)

			back, ok := d.Label(code)
			require.True(t, ok, "%s: code %q has no label", d.Name(), code)
			assert.Equal(t, label, back, "%s round trip", d.Name())
		}
	}
}

func TestUnknownLabelAndCode(t *testing.T) {
	r := NewRegistry()

	_, ok := r.OrderStatus.Code("Teleported")
	assert.False(t, ok)

	_, ok = r.OrderStatus.Label("TELEPORTED")
	assert.False(t, ok)

	// Projection falls back to the raw code for legacy rows.
	assert.Equal(t, "TELEPORTED", r.OrderStatus.LabelOr("TELEPORTED"))
	assert.Equal(t, "Pending", r.OrderStatus.LabelOr("PENDING"))
}

func TestDiscountPercent(t *testing.T) {
	r := NewRegistry()

	cases := []struct {
		code string
		pct  float64
	}{
		{"NONE", 0},
		{"FIVE", 5},
		{"TEN", 10},
		{"FIFTEEN", 15},
		{"TWENTY", 20},
	}
	for _, tc := range cases {
		pct, ok := r.DiscountPercent(tc.code)
		require.True(t, ok, tc.code)
		assert.Equal(t, tc.pct, pct)
	}

	_, ok := r.DiscountPercent("FIFTY")
	assert.False(t, ok)

	// Every tier code must carry a percentage.
	for _, label := range r.DiscountTier.Labels() {
		code, _ := r.DiscountTier.Code(label)
		_, ok := r.DiscountPercent(code)
		assert.True(t, ok, "tier %s missing percent", code)
	}
}

func TestValidCode(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.TransactionType.ValidCode("INCOME"))
	assert.True(t, r.TransactionType.ValidCode("EXPENSE"))
	assert.False(t, r.TransactionType.ValidCode("TRANSFER"))
}

func TestSwappableLabelSet(t *testing.T) {
	d := NewDomain("order status", []Pair{
		{"En attente", "PENDING"},
		{"Livré", "DELIVERED"},
	})
	code, ok := d.Code("En attente")
	require.True(t, ok)
	assert.Equal(t, "PENDING", code)
	assert.Equal(t, "Livré", d.LabelOr("DELIVERED"))
}
