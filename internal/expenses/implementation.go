// internal/expenses/implementation.go
package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gymdesk/internal/apperr"
	"gymdesk/internal/calendar"
	"gymdesk/internal/paging"
)

// service implements the Service interface.
type service struct {
	directory Directory
	tracer    trace.Tracer
}

// NewService creates a new expenses service instance.
func NewService(directory Directory) Service {
	return &service{
		directory: directory,
		tracer:    otel.Tracer("gymdesk/expenses"),
	}
}

// ListExpenses returns one page of expenses in the query's date range.
func (s *service) ListExpenses(ctx context.Context, q Query) (*ExpensePage, error) {
	q.Params = q.Params.Normalize()
	ctx, span := s.tracer.Start(ctx, "expenses.list",
		trace.WithAttributes(
			attribute.String("from", q.From.Format(DateLayout)),
			attribute.String("to", q.To.Format(DateLayout)),
		))
	defer span.End()

	items, total, err := s.directory.ListExpenses(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if items == nil {
		items = []Expense{}
	}

	sum := decimal.Zero
	for _, e := range items {
		sum = sum.Add(e.Amount)
	}

	return &ExpensePage{
		Expenses:   items,
		Total:      total,
		Sum:        sum,
		From:       q.From.Format(DateLayout),
		To:         q.To.Format(DateLayout),
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: paging.TotalPages(total, q.Limit),
	}, nil
}

// CreateExpense records a new expense. A blank date means today.
func (s *service) CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error) {
	e, err := fromInput(in, time.Now())
	if err != nil {
		return nil, err
	}

	created, err := s.directory.CreateExpense(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

// UpdateExpense saves an edited expense and returns the directory's copy.
func (s *service) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (*Expense, error) {
	if err := apperr.CheckID("expense", id); err != nil {
		return nil, err
	}
	e, err := fromInput(in, time.Now())
	if err != nil {
		return nil, err
	}
	e.ID = id

	updated, err := s.directory.UpdateExpense(ctx, id, e)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense %s: %w", id, err)
	}
	return updated, nil
}

// DeleteExpense removes an expense.
func (s *service) DeleteExpense(ctx context.Context, id string) error {
	if err := apperr.CheckID("expense", id); err != nil {
		return err
	}
	if err := s.directory.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	return nil
}

// Summarize counts and sums every expense dated within [from, to], walking
// the listing at the largest page size.
func (s *service) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	ctx, span := s.tracer.Start(ctx, "expenses.summarize")
	defer span.End()

	sum := decimal.Zero
	seen := 0
	for page := 1; ; page++ {
		q := Query{From: from, To: to, Params: paging.Params{Page: page, Limit: paging.MaxLimit}}
		items, total, err := s.directory.ListExpenses(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize expenses (page %d): %w", page, err)
		}
		for _, e := range items {
			sum = sum.Add(e.Amount)
		}
		seen += len(items)
		if len(items) == 0 || seen >= total {
			return &Summary{Count: total, Sum: sum}, nil
		}
	}
}

func fromInput(in ExpenseInput, now time.Time) (*Expense, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Invalid("expense name is required")
	}
	amount := in.Amount.Amount()
	if !amount.IsPositive() {
		return nil, apperr.Invalid("expense amount must be greater than zero")
	}
	date, err := parseDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	return &Expense{
		Name:   name,
		Amount: amount,
		Date:   date,
		Note:   strings.TrimSpace(in.Note),
	}, nil
}

// parseDate reads a calendar date or an RFC 3339 timestamp. Blank input yields
// the day of fallback.
func parseDate(s string, fallback time.Time) (time.Time, error) {
	t, err := calendar.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	if t.IsZero() {
		t = fallback
	}
	return calendar.Day(t), nil
}

func errRange(from, to time.Time) error {
	return apperr.Invalid("start date %s is after end date %s", from.Format(DateLayout), to.Format(DateLayout))
}
