// internal/inquiries/service.go
package inquiries

import "context"

// Service defines the interface for the inquiries service.
type Service interface {
	ListInquiries(ctx context.Context, q Query) (*InquiryPage, error)
	CreateInquiry(ctx context.Context, in Inquiry) (*Inquiry, error)
	UpdateInquiry(ctx context.Context, id string, in Inquiry) (*Inquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
	AddFollowUp(ctx context.Context, id string, f FollowUp) (*Inquiry, error)
	Count(ctx context.Context, status Status) (int, error)
}

// Directory is the part of the member directory that stores inquiries.
type Directory interface {
	ListInquiries(ctx context.Context, q Query) ([]Inquiry, int, error)
	CreateInquiry(ctx context.Context, in *Inquiry) (*Inquiry, error)
	UpdateInquiry(ctx context.Context, id string, in *Inquiry) (*Inquiry, error)
	DeleteInquiry(ctx context.Context, id string) error
	AddFollowUp(ctx context.Context, id string, f FollowUp) (*Inquiry, error)
}
