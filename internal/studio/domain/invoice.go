package domain

import "time"

// InvoiceStatus tracks an invoice through its life. Transitions are forward
// only; see CanTransition.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
	InvoiceVoid  InvoiceStatus = "void"
)

// CanTransition reports whether an invoice may move from one status to
// another. Draft invoices can be sent or voided, sent invoices paid or
// voided; paid and void are terminal.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	switch s {
	case InvoiceDraft:
		return next == InvoiceSent || next == InvoiceVoid
	case InvoiceSent:
		return next == InvoicePaid || next == InvoiceVoid
	}
	return false
}

// InvoiceLine is a single billable line. Amounts are integer cents; no
// floating point anywhere near money.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	Position    int
	Description string
	Quantity    int64
	UnitCents   int64
}

// Amount returns the line total in cents.
func (l InvoiceLine) Amount() int64 {
	return l.Quantity * l.UnitCents
}

// Invoice bills a client for studio work. Tax is expressed in basis points
// (e.g. 1000 = 10%) so totals stay in integer arithmetic.
type Invoice struct {
	ID          string
	StudioID    string
	Number      string
	ClientName  string
	ClientEmail string
	Status      InvoiceStatus
	TaxRateBps  int64
	Lines       []InvoiceLine
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Totals computes subtotal, tax, and total in cents. Tax rounds half up away
// from zero on the subtotal as a whole, not per line.
func (inv Invoice) Totals() (subtotal, tax, total int64) {
	for _, l := range inv.Lines {
		subtotal += l.Amount()
	}
	tax = (subtotal*inv.TaxRateBps + 5000) / 10000
	total = subtotal + tax
	return subtotal, tax, total
}
