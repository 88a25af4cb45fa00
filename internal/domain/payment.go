package domain

import (
	"strconv"
	"time"
)

// PaymentStatus is the closed set of payment states. The core API encodes it
// as a bare integer on the wire; the named constants are the only values the
// backend currently emits. Unknown codes are carried through untouched so the
// console never invents a transition the backend does not know about.
type PaymentStatus int

const (
	PaymentPending   PaymentStatus = 0
	PaymentPaid      PaymentStatus = 1
	PaymentOverdue   PaymentStatus = 2
	PaymentCancelled PaymentStatus = 3
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentPending:
		return "Pending"
	case PaymentPaid:
		return "Paid"
	case PaymentOverdue:
		return "Overdue"
	case PaymentCancelled:
		return "Cancelled"
	}
	return strconv.Itoa(int(s))
}

// BadgeColor returns the portal badge color for a status. Centralized here so
// every page renders the same palette.
func (s PaymentStatus) BadgeColor() string {
	switch s {
	case PaymentPending:
		return "yellow"
	case PaymentPaid:
		return "green"
	case PaymentOverdue:
		return "red"
	case PaymentCancelled:
		return "gray"
	}
	return "gray"
}

// PaymentMethod mirrors the backend's integer method codes.
type PaymentMethod int

const (
	MethodCreditCard   PaymentMethod = 0
	MethodDebitCard    PaymentMethod = 1
	MethodBankTransfer PaymentMethod = 2
	MethodPix          PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	switch m {
	case MethodCreditCard:
		return "Credit Card"
	case MethodDebitCard:
		return "Debit Card"
	case MethodBankTransfer:
		return "Bank Transfer"
	case MethodPix:
		return "PIX"
	}
	return strconv.Itoa(int(m))
}

// Payment is the billing record a company owes for its subscription.
// Status transitions are backend-authoritative: the console only requests a
// transition and merges whatever the backend returns.
type Payment struct {
	ID          string        `json:"id"`
	Reference   string        `json:"reference"`
	CompanyID   string        `json:"companyId"`
	CompanyName string        `json:"companyName"`
	Amount      float64       `json:"amount"`
	Status      PaymentStatus `json:"status"`
	PaymentDate *time.Time    `json:"paymentDate,omitempty"`
	Method      PaymentMethod `json:"method"`
}

// PaymentStatistics is the aggregate view rendered on the payments page and
// the company dashboard. It is a pure fold over a payment list; Cancelled
// records count toward the totals but none of the three partitions.
type PaymentStatistics struct {
	TotalAmount     float64 `json:"totalAmount"`
	PendingAmount   float64 `json:"pendingAmount"`
	OverdueAmount   float64 `json:"overdueAmount"`
	CompletedAmount float64 `json:"completedAmount"`
	TotalCount      int     `json:"totalCount"`
	PendingCount    int     `json:"pendingCount"`
	OverdueCount    int     `json:"overdueCount"`
	CompletedCount  int     `json:"completedCount"`
}

// UpdatePaymentStatusRequest asks the backend to move a payment to a new
// status (e.g. "mark paid" from the admin portal).
type UpdatePaymentStatusRequest struct {
	Status PaymentStatus `json:"status"`
}
