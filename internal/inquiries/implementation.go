// internal/inquiries/implementation.go
package inquiries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gymdesk/internal/apperr"
	"gymdesk/internal/paging"
)

type service struct {
	directory Directory
	tracer    trace.Tracer
	now       func() time.Time
}

// NewService creates a new inquiries service instance.
func NewService(directory Directory) Service {
	return &service{
		directory: directory,
		tracer:    otel.Tracer("gymdesk/inquiries"),
		now:       time.Now,
	}
}

func (s *service) ListInquiries(ctx context.Context, q Query) (*InquiryPage, error) {
	q.Params = q.Params.Normalize()
	ctx, span := s.tracer.Start(ctx, "inquiries.list",
		trace.WithAttributes(attribute.String("status", string(q.Status))))
	defer span.End()

	items, total, err := s.directory.ListInquiries(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	if items == nil {
		items = []Inquiry{}
	}

	return &InquiryPage{
		Inquiries:  items,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: paging.TotalPages(total, q.Limit),
	}, nil
}

// CreateInquiry records a new prospect. Status defaults to New.
func (s *service) CreateInquiry(ctx context.Context, in Inquiry) (*Inquiry, error) {
	if in.Status == "" {
		in.Status = StatusNew
	}
	if err := validate(&in); err != nil {
		return nil, err
	}

	created, err := s.directory.CreateInquiry(ctx, &in)
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return created, nil
}

func (s *service) UpdateInquiry(ctx context.Context, id string, in Inquiry) (*Inquiry, error) {
	if err := apperr.CheckID("inquiry", id); err != nil {
		return nil, err
	}
	if err := validate(&in); err != nil {
		return nil, err
	}
	in.ID = id

	updated, err := s.directory.UpdateInquiry(ctx, id, &in)
	if err != nil {
		return nil, fmt.Errorf("failed to update inquiry %s: %w", id, err)
	}
	return updated, nil
}

func (s *service) DeleteInquiry(ctx context.Context, id string) error {
	if err := apperr.CheckID("inquiry", id); err != nil {
		return err
	}
	if err := s.directory.DeleteInquiry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inquiry %s: %w", id, err)
	}
	return nil
}

// AddFollowUp appends a follow-up to an inquiry. A missing date means now and
// a missing status means Planned.
func (s *service) AddFollowUp(ctx context.Context, id string, f FollowUp) (*Inquiry, error) {
	if err := apperr.CheckID("inquiry", id); err != nil {
		return nil, err
	}
	if f.Date.IsZero() {
		f.Date = s.now().UTC()
	}
	if f.Status == "" {
		f.Status = FollowUpPlanned
	}
	if !f.Status.Valid() {
		return nil, apperr.Invalid("unknown follow-up status %q", f.Status)
	}
	f.Note = strings.TrimSpace(f.Note)

	ctx, span := s.tracer.Start(ctx, "inquiries.follow_up",
		trace.WithAttributes(attribute.String("inquiry.id", id)))
	defer span.End()

	updated, err := s.directory.AddFollowUp(ctx, id, f)
	if err != nil {
		return nil, fmt.Errorf("failed to add follow-up to inquiry %s: %w", id, err)
	}
	return updated, nil
}

// Count returns how many inquiries have status, or all of them when status
// is empty.
func (s *service) Count(ctx context.Context, status Status) (int, error) {
	_, total, err := s.directory.ListInquiries(ctx, Query{Status: status, Params: paging.Params{Page: 1, Limit: 1}})
	if err != nil {
		return 0, fmt.Errorf("failed to count inquiries: %w", err)
	}
	return total, nil
}

func validate(in *Inquiry) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" {
		return apperr.Invalid("inquiry name is required")
	}
	if in.Phone == "" {
		return apperr.Invalid("inquiry phone is required")
	}
	if !in.Status.Valid() {
		return apperr.Invalid("unknown inquiry status %q", in.Status)
	}
	return nil
}
