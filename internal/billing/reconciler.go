// internal/billing/reconciler.go
package billing

import (
	"github.com/shopspring/decimal"
)

// Field names an editable balance input on the member forms.
type Field string

const (
	FieldFee        Field = "fee"
	FieldPaidAmount Field = "paidAmount"
)

// ComputeCycleRemaining returns fee - paid floored at zero.
func ComputeCycleRemaining(fee, paid decimal.Decimal) decimal.Decimal {
	return ClampAmount(fee.Sub(paid))
}

// DerivePaymentStatus maps a remaining amount to Paid or Pending. A zero-fee
// free trial keeps its status; it only changes through SelectPaymentStatus.
func DerivePaymentStatus(remaining, fee decimal.Decimal, current PaymentStatus) PaymentStatus {
	if current == StatusFreeTrial && fee.IsZero() {
		return current
	}
	if remaining.IsPositive() {
		return StatusPending
	}
	return StatusPaid
}

// ComputeCarryForward returns the debt accumulated before the current cycle.
func ComputeCarryForward(totalOutstanding, currentCycleRemaining decimal.Decimal) decimal.Decimal {
	return ClampAmount(totalOutstanding.Sub(currentCycleRemaining))
}

// DeriveOutstanding sums the remaining amounts of every cycle. The last cycle
// is the current one.
func DeriveOutstanding(cycles []Cycle) Outstanding {
	total := decimal.Zero
	for _, c := range cycles {
		total = total.Add(ComputeCycleRemaining(c.Fee, c.PaidAmount))
	}
	current := decimal.Zero
	if n := len(cycles); n > 0 {
		current = ComputeCycleRemaining(cycles[n-1].Fee, cycles[n-1].PaidAmount)
	}
	return OutstandingFrom(total, current)
}

// OutstandingFrom builds the outstanding view from a server-maintained total
// and the current cycle's remaining amount.
func OutstandingFrom(totalOutstanding, currentCycleRemaining decimal.Decimal) Outstanding {
	carry := ComputeCarryForward(totalOutstanding, currentCycleRemaining)
	return Outstanding{
		CurrentCycleRemaining: currentCycleRemaining,
		CarryForward:          carry,
		TotalOutstanding:      carry.Add(currentCycleRemaining),
	}
}

// ReconcileOnEdit previews the effect of editing fee or paidAmount on a member
// snapshot. The input is not modified. paidAmount is read-only unless
// adjustCurrentCyclePayment is set; any other field is returned untouched.
func ReconcileOnEdit(m Member, field Field, value string, adjustCurrentCyclePayment bool) Member {
	switch field {
	case FieldFee:
		m.Fee = ParseAmount(value)
	case FieldPaidAmount:
		if !adjustCurrentCyclePayment {
			return m
		}
		m.PaidAmount = ParseAmount(value)
	default:
		return m
	}

	baseline := OutstandingFrom(m.TotalOutstanding, m.Remaining())

	m.SetRemaining(ComputeCycleRemaining(m.Fee, m.PaidAmount))
	m.CarryForward = baseline.CarryForward
	m.TotalOutstanding = baseline.CarryForward.Add(m.Remaining())
	m.PaymentStatus = DerivePaymentStatus(m.Remaining(), m.Fee, m.PaymentStatus)

	if field == FieldPaidAmount && m.CurrentCycle != nil {
		c := *m.CurrentCycle
		c.PaidAmount = m.PaidAmount
		c = c.Reconciled()
		m.CurrentCycle = &c
	}
	return m
}

// SelectPaymentStatus applies an explicit status choice made by staff. It is the
// only way into or out of StatusFreeTrial; unknown statuses are ignored.
func SelectPaymentStatus(m Member, status PaymentStatus) Member {
	if !status.Valid() {
		return m
	}
	m.PaymentStatus = status
	return m
}

// Normalize fills derived fields of a directory snapshot that the directory
// left out, so listings and forms show the same figures. Reported amounts are
// kept even when they disagree with fee and paid amount.
func Normalize(m Member) Member {
	if !m.RemainingAmount.Valid {
		m.SetRemaining(ComputeCycleRemaining(m.Fee, m.PaidAmount))
	}
	if m.PaymentStatus == "" {
		m.PaymentStatus = DerivePaymentStatus(m.Remaining(), m.Fee, m.PaymentStatus)
	}
	if m.TotalOutstanding.IsZero() {
		if len(m.Cycles) > 0 {
			m.TotalOutstanding = DeriveOutstanding(m.Cycles).TotalOutstanding
		} else {
			m.TotalOutstanding = m.Remaining()
		}
	}
	m.CarryForward = ComputeCarryForward(m.TotalOutstanding, m.Remaining())
	if m.LastPayment == nil && len(m.PaymentHistory) > 0 {
		last := m.PaymentHistory[len(m.PaymentHistory)-1]
		m.LastPayment = &last
	}
	return m
}
