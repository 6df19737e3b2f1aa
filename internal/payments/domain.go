// internal/payments/domain.go
package payments

import (
	"github.com/shopspring/decimal"

	"gymdesk/internal/billing"
	"gymdesk/internal/membership"
	"gymdesk/internal/receipt"
)

// PaymentInput is a payment as typed on the dashboard.
type PaymentInput struct {
	Amount billing.FormValue `json:"amount"`
	Note   string            `json:"note"`
}

// PaymentRequest is the payment body sent to the directory.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// HistoryEntry is a recorded payment with its position in the stored history.
// Corrections address payments by that position.
type HistoryEntry struct {
	Index int `json:"index"`
	billing.PaymentEvent
}

// History lists a member's payments, newest first.
type History struct {
	MemberID    string                `json:"member_id"`
	MemberName  string                `json:"member_name"`
	Payments    []HistoryEntry        `json:"payments"`
	LastPayment *billing.PaymentEvent `json:"last_payment,omitempty"`
	Outstanding billing.Outstanding   `json:"outstanding"`
}

// Result is the directory's member after a payment mutation.
type Result struct {
	Member      *membership.Member  `json:"member"`
	Outstanding billing.Outstanding `json:"outstanding"`
}

// Payslip is the printable summary of one payment.
type Payslip struct {
	MemberID string                 `json:"member_id"`
	Index    int                    `json:"index"`
	Summary  billing.PayslipSummary `json:"summary"`
	Receipt  *receipt.Receipt       `json:"receipt"`
}
