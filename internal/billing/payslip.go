// internal/billing/payslip.go
package billing

import (
	"strings"
	"time"
)

const (
	periodLayout    = "Jan 2006"
	periodSeparator = " & "
)

// BuildPayslipSummary reports a payment against the member's latest cycle
// snapshot. Amounts are read, not recomputed.
func BuildPayslipSummary(m Member, ev PaymentEvent) PayslipSummary {
	current := m.Remaining()
	if c, ok := m.LatestCycle(); ok {
		current = c.RemainingAmount
	}
	return PayslipSummary{
		CyclePeriodLabel: CyclePeriodLabel(m, ev),
		AmountPaid:       ev.Amount,
		CarryForward:     ComputeCarryForward(m.TotalOutstanding, current),
		CurrentRemaining: current,
		TotalOutstanding: m.TotalOutstanding,
	}
}

// CyclePeriodLabel names the billing months a payment was applied to, e.g.
// "Mar 2025" or "Feb 2025 & Mar 2025". Without allocations it falls back to the
// latest cycle and then to the payment date.
func CyclePeriodLabel(m Member, ev PaymentEvent) string {
	var labels []string
	seen := make(map[string]bool)
	add := func(t time.Time) {
		if t.IsZero() {
			return
		}
		l := t.Format(periodLayout)
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}

	for _, a := range ev.Allocations {
		add(a.StartDate)
	}
	if len(labels) == 0 {
		if c, ok := m.LatestCycle(); ok {
			add(c.StartDate)
		}
	}
	if len(labels) == 0 {
		add(ev.At)
	}
	return strings.Join(labels, periodSeparator)
}
