// internal/dashboard/implementation.go
package dashboard

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"gymdesk/internal/billing"
	"gymdesk/internal/expenses"
	"gymdesk/internal/inquiries"
	"gymdesk/internal/membership"
	"gymdesk/internal/paging"
)

const (
	categoryMembers   = "members"
	categoryInquiries = "inquiries"
	categoryExpenses  = "expenses"
)

type service struct {
	members   Members
	inquiries Inquiries
	expenses  Expenses
	tracer    trace.Tracer
	now       func() time.Time
}

// NewService creates the dashboard overview service.
func NewService(members Members, inq Inquiries, exp Expenses) Service {
	return &service{
		members:   members,
		inquiries: inq,
		expenses:  exp,
		tracer:    otel.Tracer("gymdesk/dashboard"),
		now:       time.Now,
	}
}

type failure struct {
	category string
	err      error
}

// Stats loads every category concurrently. One failing category does not hold
// back the others; the call only fails when nothing could be loaded. A category
// with any failed count is reported as zero alongside its error.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.stats")
	defer span.End()

	now := s.now()
	to := now
	from := now.Add(-expenses.DefaultWindow)

	stats := &Stats{
		GeneratedAt: now.UTC(),
		Expenses: ExpenseStats{
			From: from.Format(expenses.DateLayout),
			To:   to.Format(expenses.DateLayout),
		},
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	failures := make(chan failure, 6)

	run := func(category string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				failures <- failure{category: category, err: err}
			}
		}()
	}

	memberCount := func(status billing.PaymentStatus, dst *int) func() error {
		return func() error {
			page, err := s.members.ListMembers(ctx, membership.Filter{
				PaymentStatus: status,
				Params:        paging.Params{Page: 1, Limit: 1},
			})
			if err != nil {
				return err
			}
			mu.Lock()
			*dst = page.Total
			mu.Unlock()
			return nil
		}
	}
	inquiryCount := func(status inquiries.Status, dst *int) func() error {
		return func() error {
			n, err := s.inquiries.Count(ctx, status)
			if err != nil {
				return err
			}
			mu.Lock()
			*dst = n
			mu.Unlock()
			return nil
		}
	}

	run(categoryMembers, memberCount("", &stats.Members.Total))
	run(categoryMembers, memberCount(billing.StatusPending, &stats.Members.Pending))
	run(categoryMembers, memberCount(billing.StatusFreeTrial, &stats.Members.FreeTrial))
	run(categoryInquiries, inquiryCount("", &stats.Inquiries.Total))
	run(categoryInquiries, inquiryCount(inquiries.StatusNew, &stats.Inquiries.New))
	run(categoryExpenses, func() error {
		sum, err := s.expenses.Summarize(ctx, from, to)
		if err != nil {
			return err
		}
		mu.Lock()
		stats.Expenses.Count = sum.Count
		stats.Expenses.Sum = sum.Sum
		mu.Unlock()
		return nil
	})

	wg.Wait()
	close(failures)

	var first error
	for f := range failures {
		if stats.Errors == nil {
			stats.Errors = make(map[string]string)
		}
		if _, seen := stats.Errors[f.category]; !seen {
			stats.Errors[f.category] = f.err.Error()
			log.Printf("Dashboard stats: failed to load %s: %v", f.category, f.err)
		}
		stats.reset(f.category)
		if first == nil {
			first = f.err
		}
	}
	if len(stats.Errors) == 3 {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", first)
	}

	return stats, nil
}

func (s *Stats) reset(category string) {
	switch category {
	case categoryMembers:
		s.Members = MemberStats{}
	case categoryInquiries:
		s.Inquiries = InquiryStats{}
	case categoryExpenses:
		s.Expenses.Count = 0
		s.Expenses.Sum = decimal.Zero
	}
}
