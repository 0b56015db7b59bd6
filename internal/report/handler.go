package report

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/atlas-biz/atlas/internal/invoices"
	"github.com/atlas-biz/atlas/internal/orders"
	"github.com/atlas-biz/atlas/internal/payments"
	"github.com/atlas-biz/atlas/internal/platform/httpx"
	"github.com/atlas-biz/atlas/internal/products"
	"github.com/atlas-biz/atlas/internal/quotes"
	"github.com/atlas-biz/atlas/internal/sales"
	"github.com/atlas-biz/atlas/internal/shared"
	"github.com/atlas-biz/atlas/internal/transactions"
)

// reportLimit caps how many rows a listing report includes.
const reportLimit = 1000

type Handler struct {
	logger       *slog.Logger
	orders       *orders.Service
	invoices     *invoices.Service
	quotes       *quotes.Service
	sales        *sales.Service
	transactions *transactions.Service
	payments     *payments.Service
	products     *products.Service
}

type Services struct {
	Orders       *orders.Service
	Invoices     *invoices.Service
	Quotes       *quotes.Service
	Sales        *sales.Service
	Transactions *transactions.Service
	Payments     *payments.Service
	Products     *products.Service
}

func NewHandler(logger *slog.Logger, svcs Services) *Handler {
	return &Handler{
		logger:       logger,
		orders:       svcs.Orders,
		invoices:     svcs.Invoices,
		quotes:       svcs.Quotes,
		sales:        svcs.Sales,
		transactions: svcs.Transactions,
		payments:     svcs.Payments,
		products:     svcs.Products,
	}
}

// MountRoutes registers the PDF endpoints. Rendering is expensive, so
// these routes carry a tighter rate limit than the rest of the API.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Get("/orders/pdf", h.Orders)
		r.Get("/invoices/pdf", h.Invoices)
		r.Get("/quotes/pdf", h.Quotes)
		r.Get("/sales/pdf", h.Sales)
		r.Get("/transactions/pdf", h.Transactions)
		r.Get("/payments/pdf", h.Payments)
		r.Get("/products/pdf", h.Products)
	})
}

func (h *Handler) send(w http.ResponseWriter, filename string, doc Document) {
	data, err := Render(doc)
	if err != nil {
		h.logger.Error("report rendering failed", slog.String("filename", filename), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func listQuery() shared.ListQuery {
	return shared.ListQuery{Page: 1, Limit: reportLimit}
}

func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.orders.List(r.Context(), listQuery())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var value float64
	for _, o := range items {
		value += o.Total
	}
	doc := Document{
		Title: "Orders Report",
		Summary: []SummaryLine{
			{Label: "Orders", Value: strconv.Itoa(total)},
			{Label: "Total value", Value: Amount(value)},
		},
		Columns: []Column{
			{Header: "Number", Width: 2},
			{Header: "Customer", Width: 3},
			{Header: "Product", Width: 3},
			{Header: "Qty", Width: 1},
			{Header: "Total", Width: 2},
			{Header: "Status", Width: 1},
		},
	}
	for _, o := range items {
		doc.Rows = append(doc.Rows, []string{
			o.Number, o.CustomerName, o.ProductName,
			strconv.Itoa(o.Quantity), Amount(o.Total), o.Status,
		})
	}
	h.send(w, "orders.pdf", doc)
}

func (h *Handler) Invoices(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.invoices.List(r.Context(), listQuery())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var billed, paid float64
	for _, inv := range items {
		billed += inv.Total
		paid += inv.Paid
	}
	doc := Document{
		Title: "Invoices Report",
		Summary: []SummaryLine{
			{Label: "Invoices", Value: strconv.Itoa(total)},
			{Label: "Total billed", Value: Amount(billed)},
			{Label: "Total paid", Value: Amount(paid)},
			{Label: "Outstanding", Value: Amount(billed - paid)},
		},
		Columns: []Column{
			{Header: "Number", Width: 2},
			{Header: "Customer", Width: 3},
			{Header: "Date", Width: 2},
			{Header: "Total", Width: 2},
			{Header: "Paid", Width: 2},
			{Header: "Status", Width: 1},
		},
	}
	for _, inv := range items {
		doc.Rows = append(doc.Rows, []string{
			inv.Number, inv.CustomerName, inv.Date.Format("2006-01-02"),
			Amount(inv.Total), Amount(inv.Paid), inv.Status,
		})
	}
	h.send(w, "invoices.pdf", doc)
}

func (h *Handler) Quotes(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.quotes.List(r.Context(), listQuery())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var value float64
	for _, q := range items {
		value += q.Total
	}
	doc := Document{
		Title: "Quotes Report",
		Summary: []SummaryLine{
			{Label: "Quotes", Value: strconv.Itoa(total)},
			{Label: "Total value", Value: Amount(value)},
		},
		Columns: []Column{
			{Header: "Number", Width: 2},
			{Header: "Customer", Width: 4},
			{Header: "Date", Width: 2},
			{Header: "Total", Width: 2},
			{Header: "Status", Width: 2},
		},
	}
	for _, q := range items {
		doc.Rows = append(doc.Rows, []string{
			q.Number, q.CustomerName, q.Date.Format("2006-01-02"),
			Amount(q.Total), q.Status,
		})
	}
	h.send(w, "quotes.pdf", doc)
}

func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.sales.List(r.Context(), listQuery())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var revenue float64
	for _, s := range items {
		revenue += s.Amount
	}
	doc := Document{
		Title: "Sales Report",
		Summary: []SummaryLine{
			{Label: "Sales", Value: strconv.Itoa(total)},
			{Label: "Revenue", Value: Amount(revenue)},
		},
		Columns: []Column{
			{Header: "Sale", Width: 2},
			{Header: "Customer", Width: 3},
			{Header: "Product", Width: 3},
			{Header: "Qty", Width: 1},
			{Header: "Amount", Width: 2},
			{Header: "Method", Width: 1},
		},
	}
	for _, s := range items {
		doc.Rows = append(doc.Rows, []string{
			s.SaleID, s.CustomerName, s.ProductName,
			strconv.Itoa(s.Quantity), Amount(s.Amount), s.PaymentMethod,
		})
	}
	h.send(w, "sales.pdf", doc)
}

func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.transactions.List(r.Context(), listQuery())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	balance, err := h.transactions.Balance(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	doc := Document{
		Title: "Transactions Report",
		Summary: []SummaryLine{
			{Label: "Transactions", Value: strconv.Itoa(total)},
			{Label: "Income", Value: Amount(balance.Income)},
			{Label: "Expense", Value: Amount(balance.Expense)},
			{Label: "Balance", Value: Amount(balance.Balance)},
		},
		Columns: []Column{
			{Header: "Date", Width: 2},
			{Header: "Type", Width: 2},
			{Header: "Category", Width: 2},
			{Header: "Bank", Width: 2},
			{Header: "Amount", Width: 2},
			{Header: "Status", Width: 2},
		},
	}
	for _, t := range items {
		doc.Rows = append(doc.Rows, []string{
			t.Date.Format("2006-01-02"), t.Type, t.Category,
			t.Bank, Amount(t.Amount), t.Status,
		})
	}
	h.send(w, "transactions.pdf", doc)
}

func (h *Handler) Payments(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.payments.List(r.Context(), listQuery())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var collected float64
	for _, p := range items {
		collected += p.Amount
	}
	doc := Document{
		Title: "Payments Report",
		Summary: []SummaryLine{
			{Label: "Payments", Value: strconv.Itoa(total)},
			{Label: "Collected", Value: Amount(collected)},
		},
		Columns: []Column{
			{Header: "Receipt", Width: 2},
			{Header: "Customer", Width: 4},
			{Header: "Amount", Width: 2},
			{Header: "Mode", Width: 2},
			{Header: "Status", Width: 2},
		},
	}
	for _, p := range items {
		doc.Rows = append(doc.Rows, []string{
			p.ReceiptNumber, p.CustomerName, Amount(p.Amount),
			p.PaymentMode, p.Status,
		})
	}
	h.send(w, "payments.pdf", doc)
}

func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.products.List(r.Context(), listQuery())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var units int
	var value float64
	for _, p := range items {
		units += p.Quantity
		value += float64(p.Quantity) * p.Price
	}
	doc := Document{
		Title: "Products Report",
		Summary: []SummaryLine{
			{Label: "Products", Value: strconv.Itoa(total)},
			{Label: "Stock units", Value: strconv.Itoa(units)},
			{Label: "Stock value", Value: Amount(value)},
		},
		Columns: []Column{
			{Header: "SKU", Width: 2},
			{Header: "Name", Width: 5},
			{Header: "Price", Width: 2},
			{Header: "Qty", Width: 3},
		},
	}
	for _, p := range items {
		doc.Rows = append(doc.Rows, []string{
			p.SKU, p.Name, Amount(p.Price), strconv.Itoa(p.Quantity),
		})
	}
	h.send(w, "products.pdf", doc)
}
