// internal/clients/inquiries.go
package clients

import (
	"context"
	"net/http"

	"gymdesk/internal/inquiries"
)

var _ inquiries.Directory = (*DirectoryClient)(nil)

func (c *DirectoryClient) ListInquiries(ctx context.Context, q inquiries.Query) ([]inquiries.Inquiry, int, error) {
	var items []inquiries.Inquiry
	var total int
	err := c.do(ctx, call{
		method:  http.MethodGet,
		path:    "/inquiries",
		query:   q.Values(),
		results: map[string]interface{}{"inquiries": &items, "total": &total},
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (c *DirectoryClient) CreateInquiry(ctx context.Context, in *inquiries.Inquiry) (*inquiries.Inquiry, error) {
	return c.inquiryCall(ctx, http.MethodPost, "/inquiries", in)
}

func (c *DirectoryClient) UpdateInquiry(ctx context.Context, id string, in *inquiries.Inquiry) (*inquiries.Inquiry, error) {
	return c.inquiryCall(ctx, http.MethodPut, "/inquiries/"+escape(id), in)
}

func (c *DirectoryClient) DeleteInquiry(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/inquiries/" + escape(id)})
}

// AddFollowUp appends f to the inquiry's follow-ups. The directory takes
// follow-ups through the regular update route.
func (c *DirectoryClient) AddFollowUp(ctx context.Context, id string, f inquiries.FollowUp) (*inquiries.Inquiry, error) {
	body := struct {
		FollowUp inquiries.FollowUp `json:"followUp"`
	}{FollowUp: f}
	return c.inquiryCall(ctx, http.MethodPut, "/inquiries/"+escape(id), body)
}

func (c *DirectoryClient) inquiryCall(ctx context.Context, method, path string, body interface{}) (*inquiries.Inquiry, error) {
	var in inquiries.Inquiry
	err := c.do(ctx, call{
		method:  method,
		path:    path,
		body:    body,
		results: map[string]interface{}{"inquiry": &in},
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}
