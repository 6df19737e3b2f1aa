// internal/payments/service.go
package payments

import (
	"context"

	"gymdesk/internal/membership"
)

// Service defines the interface for the payments service.
type Service interface {
	History(ctx context.Context, memberID string) (*History, error)
	RecordPayment(ctx context.Context, memberID string, in PaymentInput) (*Result, error)
	CorrectPayment(ctx context.Context, memberID string, index int, in PaymentInput) (*Result, error)
	Payslip(ctx context.Context, memberID string, index int) (*Payslip, error)
}

// Directory is the part of the member directory that records payments.
type Directory interface {
	GetMember(ctx context.Context, id string) (*membership.Member, error)
	SubmitPayment(ctx context.Context, memberID string, req PaymentRequest) (*membership.Member, error)
	CorrectPayment(ctx context.Context, memberID string, index int, req PaymentRequest) (*membership.Member, error)
}
