// internal/expenses/service.go
package expenses

import (
	"context"
	"time"
)

// Service defines the interface for the expenses service.
type Service interface {
	ListExpenses(ctx context.Context, q Query) (*ExpensePage, error)
	CreateExpense(ctx context.Context, in ExpenseInput) (*Expense, error)
	UpdateExpense(ctx context.Context, id string, in ExpenseInput) (*Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	Summarize(ctx context.Context, from, to time.Time) (*Summary, error)
}

// Directory is the part of the member directory that stores expenses.
type Directory interface {
	ListExpenses(ctx context.Context, q Query) ([]Expense, int, error)
	CreateExpense(ctx context.Context, e *Expense) (*Expense, error)
	UpdateExpense(ctx context.Context, id string, e *Expense) (*Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}
