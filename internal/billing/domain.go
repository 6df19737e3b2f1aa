// internal/billing/domain.go
package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the billing state shown for a member.
type PaymentStatus string

const (
	StatusPaid      PaymentStatus = "Paid"
	StatusPending   PaymentStatus = "Pending"
	StatusFreeTrial PaymentStatus = "Free Trial"
)

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusFreeTrial:
		return true
	}
	return false
}

// Cycle is one billing period of a membership.
type Cycle struct {
	ID              string          `json:"_id,omitempty"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	Fee             decimal.Decimal `json:"fee"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
}

// Reconciled returns the cycle with RemainingAmount derived from Fee and PaidAmount.
func (c Cycle) Reconciled() Cycle {
	c.RemainingAmount = ComputeCycleRemaining(c.Fee, c.PaidAmount)
	return c
}

// Receiver identifies the staff member who took a payment.
type Receiver struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Allocation records which cycle a payment (or part of it) was applied to.
type Allocation struct {
	CycleID   string    `json:"cycle,omitempty"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// PaymentEvent is one recorded payment transaction.
type PaymentEvent struct {
	Amount        decimal.Decimal `json:"amount"`
	At            time.Time       `json:"at"`
	By            Receiver        `json:"by"`
	Note          string          `json:"note,omitempty"`
	PaymentStatus PaymentStatus   `json:"paymentStatus,omitempty"`
	Allocations   []Allocation    `json:"allocations,omitempty"`
}

// Member holds the balance-relevant part of a member record as served by the
// directory. Contact and membership metadata live with the membership package.
// RemainingAmount is invalid when the directory omitted it.
type Member struct {
	ID               string              `json:"_id,omitempty"`
	Fee              decimal.Decimal     `json:"fee"`
	PaidAmount       decimal.Decimal     `json:"paidAmount"`
	RemainingAmount  decimal.NullDecimal `json:"remainingAmount"`
	PaymentStatus    PaymentStatus       `json:"paymentStatus"`
	TotalOutstanding decimal.Decimal     `json:"totalOutstanding"`
	CarryForward     decimal.Decimal     `json:"carryForward"`
	CurrentCycle     *Cycle              `json:"currentCycle,omitempty"`
	Cycles           []Cycle             `json:"cycles,omitempty"`
	PaymentHistory   []PaymentEvent      `json:"paymentHistory,omitempty"`
	LastPayment      *PaymentEvent       `json:"lastPayment,omitempty"`
}

// Remaining returns the current cycle's remaining amount, zero when the
// directory did not report one.
func (m Member) Remaining() decimal.Decimal {
	return m.RemainingAmount.Decimal
}

// SetRemaining records the current cycle's remaining amount.
func (m *Member) SetRemaining(d decimal.Decimal) {
	m.RemainingAmount = decimal.NewNullDecimal(d)
}

// Outstanding reports the member's debt with the directory's total as is.
func (m Member) Outstanding() Outstanding {
	current := m.Remaining()
	return Outstanding{
		CurrentCycleRemaining: current,
		CarryForward:          ComputeCarryForward(m.TotalOutstanding, current),
		TotalOutstanding:      m.TotalOutstanding,
	}
}

// LatestCycle returns the member's current cycle: the explicit snapshot when
// present, otherwise the last entry of Cycles.
func (m Member) LatestCycle() (Cycle, bool) {
	if m.CurrentCycle != nil {
		return *m.CurrentCycle, true
	}
	if len(m.Cycles) == 0 {
		return Cycle{}, false
	}
	return m.Cycles[len(m.Cycles)-1], true
}

// Outstanding is the derived debt view of a member.
type Outstanding struct {
	CurrentCycleRemaining decimal.Decimal `json:"currentCycleRemaining"`
	CarryForward          decimal.Decimal `json:"carryForward"`
	TotalOutstanding      decimal.Decimal `json:"totalOutstanding"`
}

// PayslipSummary is what a receipt prints for one payment.
type PayslipSummary struct {
	CyclePeriodLabel string          `json:"cyclePeriodLabel"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	CarryForward     decimal.Decimal `json:"carryForward"`
	CurrentRemaining decimal.Decimal `json:"currentRemaining"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}
