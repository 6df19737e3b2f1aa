// internal/membership/implementation.go
package membership

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"gymdesk/internal/apperr"
	"gymdesk/internal/billing"
	"gymdesk/internal/paging"
)

// service implements the Service interface.
type service struct {
	directory Directory
	tracer    trace.Tracer
	previews  metric.Int64Counter
}

// NewService creates a new membership service instance.
func NewService(directory Directory) Service {
	previews, _ := otel.Meter("gymdesk/membership").Int64Counter(
		"gymdesk.member.previews",
		metric.WithDescription("Balance previews computed for member form edits"),
	)
	return &service{
		directory: directory,
		tracer:    otel.Tracer("gymdesk/membership"),
		previews:  previews,
	}
}

// ListMembers returns one page of members with derived balance fields filled in.
func (s *service) ListMembers(ctx context.Context, filter Filter) (*MemberPage, error) {
	filter = filter.withDefaults()
	ctx, span := s.tracer.Start(ctx, "membership.list",
		trace.WithAttributes(
			attribute.Int("page", filter.Page),
			attribute.Int("limit", filter.Limit),
		),
	)
	defer span.End()

	members, total, err := s.directory.ListMembers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	for i := range members {
		members[i].Member = billing.Normalize(members[i].Member)
	}
	if members == nil {
		members = []Member{}
	}

	return &MemberPage{
		Members:    members,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: paging.TotalPages(total, filter.Limit),
	}, nil
}

// GetMember retrieves a member by their ID.
func (s *service) GetMember(ctx context.Context, id string) (*Member, error) {
	if err := apperr.CheckID("member", id); err != nil {
		return nil, err
	}
	m, err := s.directory.GetMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member %s: %w", id, err)
	}
	m.Member = billing.Normalize(m.Member)
	return m, nil
}

// CreateMember submits a new member. Remaining amount is derived from the
// submitted fee and paid amount; the status is the one the form carries.
func (s *service) CreateMember(ctx context.Context, m Member) (*Member, error) {
	if err := validate(m); err != nil {
		return nil, err
	}
	m.Member = reconcileSubmission(m.Member)

	created, err := s.directory.CreateMember(ctx, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	created.Member = billing.Normalize(created.Member)
	return created, nil
}

// UpdateMember saves an edited member and returns the directory's copy.
func (s *service) UpdateMember(ctx context.Context, id string, m Member) (*Member, error) {
	if err := apperr.CheckID("member", id); err != nil {
		return nil, err
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	m.ID = id
	m.Member = reconcileSubmission(m.Member)

	updated, err := s.directory.UpdateMember(ctx, id, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to update member %s: %w", id, err)
	}
	updated.Member = billing.Normalize(updated.Member)
	return updated, nil
}

// DeleteMember removes a member from the directory.
func (s *service) DeleteMember(ctx context.Context, id string) error {
	if err := apperr.CheckID("member", id); err != nil {
		return err
	}
	if err := s.directory.DeleteMember(ctx, id); err != nil {
		return fmt.Errorf("failed to delete member %s: %w", id, err)
	}
	return nil
}

// PreviewEdit applies an edit to the stored member without saving it.
func (s *service) PreviewEdit(ctx context.Context, id string, edit Edit) (*Preview, error) {
	m, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.PreviewDraft(ctx, *m, edit), nil
}

// PreviewDraft applies an edit to an unsaved form state.
func (s *service) PreviewDraft(ctx context.Context, draft Member, edit Edit) *Preview {
	s.previews.Add(ctx, 1, metric.WithAttributes(attribute.String("field", string(edit.Field))))
	draft.Member = billing.Normalize(draft.Member)

	if edit.Field == fieldPaymentStatus {
		draft.Member = billing.SelectPaymentStatus(draft.Member, billing.PaymentStatus(edit.Value))
	} else {
		draft.Member = billing.ReconcileOnEdit(draft.Member, edit.Field, string(edit.Value), edit.AdjustCurrentCyclePayment)
	}

	return &Preview{
		Member:                  draft,
		Outstanding:             billing.OutstandingFrom(draft.TotalOutstanding, draft.Remaining()),
		FeeAppliesFromNextCycle: edit.Field == billing.FieldFee && draft.ID != "",
		PaidAmountReadOnly:      !edit.AdjustCurrentCyclePayment,
	}
}

func validate(m Member) error {
	if strings.TrimSpace(m.Name) == "" {
		return apperr.Invalid("member name is required")
	}
	if m.PaymentStatus != "" && !m.PaymentStatus.Valid() {
		return apperr.Invalid("unknown payment status %q", m.PaymentStatus)
	}
	return nil
}

// reconcileSubmission derives the remaining amount of a submitted form. A
// status chosen on the form is sent as is; previews keep it in step with the
// amounts, so only a missing one is derived.
func reconcileSubmission(m billing.Member) billing.Member {
	m.Fee = billing.ClampAmount(m.Fee)
	m.PaidAmount = billing.ClampAmount(m.PaidAmount)
	m.SetRemaining(billing.ComputeCycleRemaining(m.Fee, m.PaidAmount))
	if m.PaymentStatus == "" {
		m.PaymentStatus = billing.DerivePaymentStatus(m.Remaining(), m.Fee, m.PaymentStatus)
	}
	return m
}
