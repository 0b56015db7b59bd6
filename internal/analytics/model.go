package analytics

// DashboardReport is the combined payload returned by the dashboard
// endpoint. Each block comes from its own aggregate query.
type DashboardReport struct {
	Orders    OrderStats    `json:"orders"`
	Quotes    QuoteStats    `json:"quotes"`
	Invoices  InvoiceStats  `json:"invoices"`
	Products  ProductStats  `json:"products"`
	Sales     SaleStats     `json:"sales"`
	Customers CustomerStats `json:"customers"`
	Summary   Summary       `json:"summary"`
}

type OrderStats struct {
	Count      int              `json:"count"`
	TotalValue float64          `json:"totalValue"`
	ByStatus   []StatusBreakdown `json:"byStatus"`
}

type QuoteStats struct {
	Count      int              `json:"count"`
	TotalValue float64          `json:"totalValue"`
	ByStatus   []StatusBreakdown `json:"byStatus"`
}

type InvoiceStats struct {
	Count      int              `json:"count"`
	TotalValue float64          `json:"totalValue"`
	TotalPaid  float64          `json:"totalPaid"`
	ByStatus   []StatusBreakdown `json:"byStatus"`
}

type ProductStats struct {
	Count      int     `json:"count"`
	StockUnits int     `json:"stockUnits"`
	StockValue float64 `json:"stockValue"`
}

type SaleStats struct {
	Count         int     `json:"count"`
	Revenue       float64 `json:"revenue"`
	DiscountTotal float64 `json:"discountTotal"`
}

type CustomerStats struct {
	Count int `json:"count"`
}

type StatusBreakdown struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Value  float64 `json:"value"`
}

// Summary holds the derived scalars. Profit is revenue after the
// discounts given away on sales.
type Summary struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}
