package billing

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

func amountGen() *rapid.Generator[decimal.Decimal] {
	return rapid.Custom(func(t *rapid.T) decimal.Decimal {
		cents := rapid.Int64Range(0, 10_000_000).Draw(t, "cents")
		return decimal.New(cents, -2)
	})
}

func TestProperty_RemainingNeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fee := amountGen().Draw(t, "fee")
		paid := amountGen().Draw(t, "paid")

		got := ComputeCycleRemaining(fee, paid)
		if got.IsNegative() {
			t.Fatalf("negative remaining %s for fee %s paid %s", got, fee, paid)
		}
		if diff := fee.Sub(paid); !diff.IsNegative() && !got.Equal(diff) {
			t.Fatalf("remaining %s, want %s", got, diff)
		}
	})
}

func TestProperty_CarryForwardInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		current := amountGen().Draw(t, "current")
		extra := amountGen().Draw(t, "extra")
		total := current.Add(extra)

		carry := ComputeCarryForward(total, current)
		if !carry.Add(current).Equal(total) {
			t.Fatalf("carry %s + current %s != total %s", carry, current, total)
		}
	})
}

func TestProperty_CarryForwardFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := amountGen().Draw(t, "total")
		current := amountGen().Draw(t, "current")
		if ComputeCarryForward(total, current).IsNegative() {
			t.Fatalf("negative carry forward for total %s current %s", total, current)
		}
	})
}

func TestProperty_ReconcileOnEditIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fee := amountGen().Draw(t, "fee")
		paid := amountGen().Draw(t, "paid")
		m := Member{
			Fee:              fee,
			PaidAmount:       paid,
			RemainingAmount:  decimal.NewNullDecimal(ComputeCycleRemaining(fee, paid)),
			TotalOutstanding: amountGen().Draw(t, "total"),
			PaymentStatus:    rapid.SampledFrom([]PaymentStatus{StatusPaid, StatusPending, StatusFreeTrial}).Draw(t, "status"),
		}
		field := rapid.SampledFrom([]Field{FieldFee, FieldPaidAmount}).Draw(t, "field")
		value := strconv.FormatInt(rapid.Int64Range(-1000, 1_000_000).Draw(t, "value"), 10)
		adjust := rapid.Bool().Draw(t, "adjust")

		once := ReconcileOnEdit(m, field, value, adjust)
		twice := ReconcileOnEdit(once, field, value, adjust)

		if !once.Fee.Equal(twice.Fee) || !once.PaidAmount.Equal(twice.PaidAmount) ||
			!once.Remaining().Equal(twice.Remaining()) ||
			!once.CarryForward.Equal(twice.CarryForward) ||
			!once.TotalOutstanding.Equal(twice.TotalOutstanding) ||
			once.PaymentStatus != twice.PaymentStatus {
			t.Fatalf("not idempotent: once=%+v twice=%+v", once, twice)
		}
		applied := field == FieldFee || adjust
		if applied && !once.TotalOutstanding.Equal(once.CarryForward.Add(once.Remaining())) {
			t.Fatalf("total %s != carry %s + remaining %s", once.TotalOutstanding, once.CarryForward, once.Remaining())
		}
	})
}

func TestProperty_ReadOnlyPaidAmount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fee := amountGen().Draw(t, "fee")
		paid := amountGen().Draw(t, "paid")
		m := Member{Fee: fee, PaidAmount: paid, RemainingAmount: decimal.NewNullDecimal(ComputeCycleRemaining(fee, paid)), PaymentStatus: StatusPending}

		got := ReconcileOnEdit(m, FieldPaidAmount, rapid.String().Draw(t, "value"), false)
		if !got.PaidAmount.Equal(m.PaidAmount) || !got.Remaining().Equal(m.Remaining()) {
			t.Fatalf("read-only edit changed member: %+v", got)
		}
	})
}

func TestProperty_NormalizeKeepsReportedRemaining(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		remaining := amountGen().Draw(t, "remaining")
		m := Member{
			Fee:              amountGen().Draw(t, "fee"),
			PaidAmount:       amountGen().Draw(t, "paid"),
			RemainingAmount:  decimal.NewNullDecimal(remaining),
			TotalOutstanding: remaining.Add(amountGen().Draw(t, "carry")),
		}

		got := Normalize(m)
		if !got.Remaining().Equal(remaining) {
			t.Fatalf("remaining %s replaced by %s", remaining, got.Remaining())
		}
		if !got.TotalOutstanding.Equal(got.CarryForward.Add(got.Remaining())) {
			t.Fatalf("total %s != carry %s + remaining %s", got.TotalOutstanding, got.CarryForward, got.Remaining())
		}
	})
}
