// internal/payments/implementation.go
package payments

import (
	"context"
	"fmt"
	"log"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"gymdesk/internal/apperr"
	"gymdesk/internal/billing"
	"gymdesk/internal/membership"
	"gymdesk/internal/receipt"
)

// LatestPayment addresses the most recent payment in the stored history.
const LatestPayment = -1

// service implements the Service interface.
type service struct {
	directory Directory
	receipts  receipt.Config
	tracer    trace.Tracer
	recorded  metric.Int64Counter
}

// NewService creates a new payments service instance. Receipts are printed
// with the organization details in receipts.
func NewService(directory Directory, receipts receipt.Config) Service {
	recorded, _ := otel.Meter("gymdesk/payments").Int64Counter(
		"gymdesk.payments.submitted",
		metric.WithDescription("Payments and corrections submitted to the directory"),
	)
	return &service{
		directory: directory,
		receipts:  receipts,
		tracer:    otel.Tracer("gymdesk/payments"),
		recorded:  recorded,
	}
}

// History returns the member's payments, newest first.
func (s *service) History(ctx context.Context, memberID string) (*History, error) {
	m, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, len(m.PaymentHistory))
	for i, ev := range m.PaymentHistory {
		entries[i] = HistoryEntry{Index: i, PaymentEvent: ev}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].At.Equal(entries[j].At) {
			return entries[i].Index > entries[j].Index
		}
		return entries[i].At.After(entries[j].At)
	})

	return &History{
		MemberID:    m.ID,
		MemberName:  m.Name,
		Payments:    entries,
		LastPayment: m.LastPayment,
		Outstanding: m.Outstanding(),
	}, nil
}

// RecordPayment submits a new payment. The directory allocates it across open
// cycles and answers with the recomputed member.
func (s *service) RecordPayment(ctx context.Context, memberID string, in PaymentInput) (*Result, error) {
	if err := apperr.CheckID("member", memberID); err != nil {
		return nil, err
	}
	req, err := toRequest(in)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "payments.record",
		trace.WithAttributes(attribute.String("member.id", memberID)))
	defer span.End()

	m, err := s.directory.SubmitPayment(ctx, memberID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment for member %s: %w", memberID, err)
	}
	s.recorded.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "payment")))

	return s.result(memberID, m), nil
}

// CorrectPayment replaces the amount and note of a recorded payment. Dependent
// balances are recomputed by the directory; the returned member is its copy.
func (s *service) CorrectPayment(ctx context.Context, memberID string, index int, in PaymentInput) (*Result, error) {
	req, err := toRequest(in)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "payments.correct",
		trace.WithAttributes(
			attribute.String("member.id", memberID),
			attribute.Int("payment.index", index),
		))
	defer span.End()

	// Step 1: Make sure the payment exists before asking for a correction
	current, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(current.PaymentHistory) {
		return nil, apperr.Invalid("member %s has no payment at index %d", memberID, index)
	}

	// Step 2: Submit the correction
	m, err := s.directory.CorrectPayment(ctx, memberID, index, req)
	if err != nil {
		return nil, fmt.Errorf("failed to correct payment %d for member %s: %w", index, memberID, err)
	}
	s.recorded.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "correction")))

	return s.result(memberID, m), nil
}

// Payslip prints the receipt for one payment. LatestPayment selects the most
// recent one.
func (s *service) Payslip(ctx context.Context, memberID string, index int) (*Payslip, error) {
	ctx, span := s.tracer.Start(ctx, "payments.payslip",
		trace.WithAttributes(attribute.String("member.id", memberID)))
	defer span.End()

	m, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if index == LatestPayment {
		index = len(m.PaymentHistory) - 1
	}
	if index < 0 || index >= len(m.PaymentHistory) {
		return nil, fmt.Errorf("member %s has no payment at index %d: %w", memberID, index, apperr.ErrNotFound)
	}

	ev := m.PaymentHistory[index]
	summary := billing.BuildPayslipSummary(m.Member, ev)

	rc, err := receipt.Render(s.receipts, receipt.Input{
		MemberName:  m.Name,
		MemberPhone: m.Phone,
		Plan:        plan(m),
		Payment:     ev,
		Summary:     summary,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render payslip for member %s: %w", memberID, err)
	}

	return &Payslip{
		MemberID: m.ID,
		Index:    index,
		Summary:  summary,
		Receipt:  rc,
	}, nil
}

func (s *service) getMember(ctx context.Context, id string) (*membership.Member, error) {
	if err := apperr.CheckID("member", id); err != nil {
		return nil, err
	}
	m, err := s.directory.GetMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member %s: %w", id, err)
	}
	m.Member = billing.Normalize(m.Member)
	return m, nil
}

func (s *service) result(memberID string, m *membership.Member) *Result {
	m.Member = billing.Normalize(m.Member)
	if m.TotalOutstanding.LessThan(m.Remaining()) {
		log.Printf("Directory returned total outstanding %s below current remaining %s for member %s",
			m.TotalOutstanding, m.Remaining(), memberID)
	}
	return &Result{
		Member:      m,
		Outstanding: m.Outstanding(),
	}
}

func toRequest(in PaymentInput) (PaymentRequest, error) {
	amount := in.Amount.Amount()
	if !amount.IsPositive() {
		return PaymentRequest{}, apperr.Invalid("payment amount must be greater than zero")
	}
	return PaymentRequest{Amount: amount, Note: in.Note}, nil
}

func plan(m *membership.Member) string {
	switch {
	case m.MembershipType != "" && m.Duration != "":
		return m.MembershipType + " / " + m.Duration
	case m.MembershipType != "":
		return m.MembershipType
	default:
		return m.Duration
	}
}
