package model

// PaymentStatus is the settlement state shared by clients, invoices and
// payments. Values are kept in French because they are user-facing and
// flow into spreadsheet exports unchanged.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "Payé"
	StatusUnpaid PaymentStatus = "Non Payé"
)

func (s PaymentStatus) Valid() bool {
	return s == StatusPaid || s == StatusUnpaid
}
