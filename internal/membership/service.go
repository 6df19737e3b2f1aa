// internal/membership/service.go
package membership

import (
	"context"
)

// Service defines the interface for the membership service.
type Service interface {
	ListMembers(ctx context.Context, filter Filter) (*MemberPage, error)
	GetMember(ctx context.Context, id string) (*Member, error)
	CreateMember(ctx context.Context, m Member) (*Member, error)
	UpdateMember(ctx context.Context, id string, m Member) (*Member, error)
	DeleteMember(ctx context.Context, id string) error
	PreviewEdit(ctx context.Context, id string, edit Edit) (*Preview, error)
	PreviewDraft(ctx context.Context, draft Member, edit Edit) *Preview
}

// Directory is the remote member store.
type Directory interface {
	ListMembers(ctx context.Context, filter Filter) ([]Member, int, error)
	GetMember(ctx context.Context, id string) (*Member, error)
	CreateMember(ctx context.Context, m *Member) (*Member, error)
	UpdateMember(ctx context.Context, id string, m *Member) (*Member, error)
	DeleteMember(ctx context.Context, id string) error
}
