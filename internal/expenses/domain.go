// internal/expenses/domain.go
package expenses

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"gymdesk/internal/billing"
	"gymdesk/internal/calendar"
	"gymdesk/internal/paging"
)

// DateLayout is the calendar date format used in expense queries and forms.
const DateLayout = calendar.Layout

// DefaultWindow is how far back the expense listing looks when no range is given.
const DefaultWindow = 30 * 24 * time.Hour

// Expense is a gym running cost such as rent or equipment.
type Expense struct {
	ID        string          `json:"_id,omitempty"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Note      string          `json:"note,omitempty"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

// ExpenseInput is an expense as typed on the dashboard form.
type ExpenseInput struct {
	Name   string            `json:"name"`
	Amount billing.FormValue `json:"amount"`
	Date   string            `json:"date"`
	Note   string            `json:"note"`
}

// Query selects expenses dated within [From, To].
type Query struct {
	From time.Time
	To   time.Time
	paging.Params
}

// ParseQuery reads startDate and endDate from q. Missing bounds default to the
// DefaultWindow ending at now.
func ParseQuery(q url.Values, now time.Time) (Query, error) {
	query := Query{Params: paging.FromQuery(q)}

	var err error
	if query.To, err = parseDate(q.Get("endDate"), now); err != nil {
		return Query{}, err
	}
	if query.From, err = parseDate(q.Get("startDate"), query.To.Add(-DefaultWindow)); err != nil {
		return Query{}, err
	}
	if query.From.After(query.To) {
		return Query{}, errRange(query.From, query.To)
	}
	return query, nil
}

// Values encodes the query as directory query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if !q.From.IsZero() {
		v.Set("startDate", q.From.Format(DateLayout))
	}
	if !q.To.IsZero() {
		v.Set("endDate", q.To.Format(DateLayout))
	}
	q.Params.Encode(v)
	return v
}

// ExpensePage is one page of the expense listing. Sum covers the page only.
type ExpensePage struct {
	Expenses   []Expense       `json:"expenses"`
	Total      int             `json:"total"`
	Sum        decimal.Decimal `json:"sum"`
	From       string          `json:"startDate"`
	To         string          `json:"endDate"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// Summary totals the expenses of a date range.
type Summary struct {
	Count int             `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
}
