// Package enums translates between user-facing labels and stored codes for
// every enumerated field family. The registry is injected into services so an
// alternate label set can be swapped in without code changes.
package enums

// Pair binds a display label to its stored code.
type Pair struct {
	Label string
	Code  string
}

// Domain is one field family's bidirectional label<->code table.
type Domain struct {
	name    string
	toCode  map[string]string
	toLabel map[string]string
	labels  []string
}

// NewDomain builds a Domain from ordered label/code pairs.
func NewDomain(name string, pairs []Pair) Domain {
	d := Domain{
		name:    name,
		toCode:  make(map[string]string, len(pairs)),
		toLabel: make(map[string]string, len(pairs)),
		labels:  make([]string, 0, len(pairs)),
	}
	for _, p := range pairs {
		d.toCode[p.Label] = p.Code
		d.toLabel[p.Code] = p.Label
		d.labels = append(d.labels, p.Label)
	}
	return d
}

// Name returns the family name, used in validation messages.
func (d Domain) Name() string { return d.name }

// Code resolves a display label to its stored code.
func (d Domain) Code(label string) (string, bool) {
	code, ok := d.toCode[label]
	return code, ok
}

// Label resolves a stored code to its display label. Unknown codes report
// ok=false; callers projecting rows pass the raw code through so reads never
// fail on legacy data.
func (d Domain) Label(code string) (string, bool) {
	label, ok := d.toLabel[code]
	return label, ok
}

// LabelOr resolves code, falling back to the code itself when unknown.
func (d Domain) LabelOr(code string) string {
	if label, ok := d.toLabel[code]; ok {
		return label
	}
	return code
}

// ValidCode reports whether code belongs to the family.
func (d Domain) ValidCode(code string) bool {
	_, ok := d.toLabel[code]
	return ok
}

// Labels returns every display label in declaration order.
func (d Domain) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

// Registry groups every field family used by the API.
type Registry struct {
	OrderStatus        Domain
	InvoiceStatus      Domain
	QuoteStatus        Domain
	TransactionType    Domain
	TransactionCat     Domain
	TransactionStatus  Domain
	PaymentMode        Domain
	PaymentStatus      Domain
	SalePaymentMethod  Domain
	DiscountTier       Domain
	EmployeeDepartment Domain
	EmployeeRole       Domain
	EmployeeStatus     Domain
	UserRole           Domain
	UserStatus         Domain

	discountPercent map[string]float64
}

// NewRegistry returns the registry with the default label tables.
func NewRegistry() *Registry {
	return &Registry{
		OrderStatus: NewDomain("order status", []Pair{
			{"Pending", "PENDING"},
			{"Processing", "PROCESSING"},
			{"Shipped", "SHIPPED"},
			{"Delivered", "DELIVERED"},
			{"Cancelled", "CANCELLED"},
		}),
		InvoiceStatus: NewDomain("invoice status", []Pair{
			{"Draft", "DRAFT"},
			{"Pending", "PENDING"},
			{"Unpaid", "UNPAID"},
			{"Overdue", "OVERDUE"},
			{"Partially Paid", "PARTIALLY_PAID"},
			{"Paid", "PAID"},
		}),
		QuoteStatus: NewDomain("quote status", []Pair{
			{"Draft", "DRAFT"},
			{"Pending", "PENDING"},
			{"Sent", "SENT"},
			{"Accepted", "ACCEPTED"},
			{"Declined", "DECLINED"},
			{"Expired", "EXPIRED"},
		}),
		TransactionType: NewDomain("transaction type", []Pair{
			{"Income", "INCOME"},
			{"Expense", "EXPENSE"},
		}),
		TransactionCat: NewDomain("transaction category", []Pair{
			{"Sales", "SALES"},
			{"Services", "SERVICES"},
			{"Rent", "RENT"},
			{"Salary", "SALARY"},
			{"Utilities", "UTILITIES"},
			{"Other", "OTHER"},
		}),
		TransactionStatus: NewDomain("transaction status", []Pair{
			{"Pending", "PENDING"},
			{"Completed", "COMPLETED"},
			{"Failed", "FAILED"},
		}),
		PaymentMode: NewDomain("payment mode", []Pair{
			{"Cash", "CASH"},
			{"Card", "CARD"},
			{"Bank Transfer", "BANK_TRANSFER"},
			{"Cheque", "CHEQUE"},
			{"Online", "ONLINE"},
		}),
		PaymentStatus: NewDomain("payment status", []Pair{
			{"Pending", "PENDING"},
			{"Completed", "COMPLETED"},
			{"Failed", "FAILED"},
		}),
		SalePaymentMethod: NewDomain("sale payment method", []Pair{
			{"Cash", "CASH"},
			{"Card", "CARD"},
			{"Mobile Money", "MOBILE_MONEY"},
			{"Bank Transfer", "BANK_TRANSFER"},
		}),
		DiscountTier: NewDomain("discount tier", []Pair{
			{"None", "NONE"},
			{"5%", "FIVE"},
			{"10%", "TEN"},
			{"15%", "FIFTEEN"},
			{"20%", "TWENTY"},
		}),
		EmployeeDepartment: NewDomain("department", []Pair{
			{"Engineering", "ENGINEERING"},
			{"Sales", "SALES"},
			{"Marketing", "MARKETING"},
			{"Finance", "FINANCE"},
			{"Operations", "OPERATIONS"},
			{"Human Resources", "HUMAN_RESOURCES"},
		}),
		EmployeeRole: NewDomain("employee role", []Pair{
			{"Manager", "MANAGER"},
			{"Staff", "STAFF"},
			{"Intern", "INTERN"},
			{"Contractor", "CONTRACTOR"},
		}),
		EmployeeStatus: NewDomain("employee status", []Pair{
			{"Active", "ACTIVE"},
			{"Inactive", "INACTIVE"},
			{"On Leave", "ON_LEAVE"},
		}),
		UserRole: NewDomain("user role", []Pair{
			{"Admin", "ADMIN"},
			{"Manager", "MANAGER"},
			{"Staff", "STAFF"},
		}),
		UserStatus: NewDomain("user status", []Pair{
			{"Active", "ACTIVE"},
			{"Inactive", "INACTIVE"},
		}),
		discountPercent: map[string]float64{
			"NONE":    0,
			"FIVE":    5,
			"TEN":     10,
			"FIFTEEN": 15,
			"TWENTY":  20,
		},
	}
}

// DiscountPercent maps a discount tier code to its numeric percentage.
func (r *Registry) DiscountPercent(code string) (float64, bool) {
	pct, ok := r.discountPercent[code]
	return pct, ok
}
