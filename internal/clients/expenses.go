// internal/clients/expenses.go
package clients

import (
	"context"
	"net/http"

	"gymdesk/internal/expenses"
)

var _ expenses.Directory = (*DirectoryClient)(nil)

func (c *DirectoryClient) ListExpenses(ctx context.Context, q expenses.Query) ([]expenses.Expense, int, error) {
	var items []expenses.Expense
	var total int
	err := c.do(ctx, call{
		method:  http.MethodGet,
		path:    "/expenses",
		query:   q.Values(),
		results: map[string]interface{}{"expenses": &items, "total": &total},
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (c *DirectoryClient) CreateExpense(ctx context.Context, e *expenses.Expense) (*expenses.Expense, error) {
	return c.expenseCall(ctx, http.MethodPost, "/expenses", e)
}

func (c *DirectoryClient) UpdateExpense(ctx context.Context, id string, e *expenses.Expense) (*expenses.Expense, error) {
	return c.expenseCall(ctx, http.MethodPut, "/expenses/"+escape(id), e)
}

func (c *DirectoryClient) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/expenses/" + escape(id)})
}

func (c *DirectoryClient) expenseCall(ctx context.Context, method, path string, body interface{}) (*expenses.Expense, error) {
	var e expenses.Expense
	err := c.do(ctx, call{
		method:  method,
		path:    path,
		body:    body,
		results: map[string]interface{}{"expense": &e},
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}
