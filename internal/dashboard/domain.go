// internal/dashboard/domain.go
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberStats counts members by billing state.
type MemberStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	FreeTrial int `json:"freeTrial"`
}

// InquiryStats counts prospects.
type InquiryStats struct {
	Total int `json:"total"`
	New   int `json:"new"`
}

// ExpenseStats totals the expenses of the reporting window.
type ExpenseStats struct {
	Count int             `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
	From  string          `json:"startDate"`
	To    string          `json:"endDate"`
}

// Stats is the dashboard overview. A category that could not be loaded is
// left zero and named in Errors.
type Stats struct {
	Members     MemberStats       `json:"members"`
	Inquiries   InquiryStats      `json:"inquiries"`
	Expenses    ExpenseStats      `json:"expenses"`
	Errors      map[string]string `json:"errors,omitempty"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
