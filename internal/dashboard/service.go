// internal/dashboard/service.go
package dashboard

import (
	"context"
	"time"

	"gymdesk/internal/expenses"
	"gymdesk/internal/inquiries"
	"gymdesk/internal/membership"
)

// Service defines the interface for the dashboard overview.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

// Members is the member listing the overview counts from.
type Members interface {
	ListMembers(ctx context.Context, filter membership.Filter) (*membership.MemberPage, error)
}

// Inquiries counts inquiries by status.
type Inquiries interface {
	Count(ctx context.Context, status inquiries.Status) (int, error)
}

// Expenses totals expenses over a date range.
type Expenses interface {
	Summarize(ctx context.Context, from, to time.Time) (*expenses.Summary, error)
}
