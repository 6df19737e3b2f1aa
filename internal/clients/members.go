// internal/clients/members.go
package clients

import (
	"context"
	"fmt"
	"net/http"

	"gymdesk/internal/membership"
	"gymdesk/internal/payments"
)

var (
	_ membership.Directory = (*DirectoryClient)(nil)
	_ payments.Directory   = (*DirectoryClient)(nil)
)

func (c *DirectoryClient) ListMembers(ctx context.Context, filter membership.Filter) ([]membership.Member, int, error) {
	var members []membership.Member
	var total int
	err := c.do(ctx, call{
		method:  http.MethodGet,
		path:    "/members",
		query:   filter.Values(),
		results: map[string]interface{}{"members": &members, "total": &total},
	})
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (c *DirectoryClient) GetMember(ctx context.Context, id string) (*membership.Member, error) {
	return c.memberCall(ctx, http.MethodGet, "/members/"+escape(id), nil)
}

func (c *DirectoryClient) CreateMember(ctx context.Context, m *membership.Member) (*membership.Member, error) {
	return c.memberCall(ctx, http.MethodPost, "/members", m)
}

func (c *DirectoryClient) UpdateMember(ctx context.Context, id string, m *membership.Member) (*membership.Member, error) {
	return c.memberCall(ctx, http.MethodPut, "/members/"+escape(id), m)
}

func (c *DirectoryClient) DeleteMember(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/members/" + escape(id)})
}

// SubmitPayment records a payment; the directory allocates it across open cycles.
func (c *DirectoryClient) SubmitPayment(ctx context.Context, memberID string, req payments.PaymentRequest) (*membership.Member, error) {
	return c.memberCall(ctx, http.MethodPost, fmt.Sprintf("/members/%s/payments", escape(memberID)), req)
}

// CorrectPayment edits the payment at index in the member's stored history.
func (c *DirectoryClient) CorrectPayment(ctx context.Context, memberID string, index int, req payments.PaymentRequest) (*membership.Member, error) {
	path := fmt.Sprintf("/members/%s/payments/%d", escape(memberID), index)
	return c.memberCall(ctx, http.MethodPut, path, req)
}

func (c *DirectoryClient) memberCall(ctx context.Context, method, path string, body interface{}) (*membership.Member, error) {
	var m membership.Member
	err := c.do(ctx, call{
		method:  method,
		path:    path,
		body:    body,
		results: map[string]interface{}{"member": &m},
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}
