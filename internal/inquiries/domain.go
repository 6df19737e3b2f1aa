// internal/inquiries/domain.go
package inquiries

import (
	"net/url"
	"time"

	"gymdesk/internal/calendar"
	"gymdesk/internal/paging"
)

// Status tracks a walk-in or phone inquiry through to joining.
type Status string

const (
	StatusNew           Status = "New"
	StatusContacted     Status = "Contacted"
	StatusInterested    Status = "Interested"
	StatusNotInterested Status = "Not Interested"
	StatusJoined        Status = "Joined"
	StatusFollowUp      Status = "Follow Up"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusInterested, StatusNotInterested, StatusJoined, StatusFollowUp:
		return true
	}
	return false
}

// FollowUpStatus is the outcome of a scheduled follow-up.
type FollowUpStatus string

const (
	FollowUpPlanned FollowUpStatus = "Planned"
	FollowUpDone    FollowUpStatus = "Done"
	FollowUpMissed  FollowUpStatus = "Missed"
)

func (s FollowUpStatus) Valid() bool {
	switch s {
	case FollowUpPlanned, FollowUpDone, FollowUpMissed:
		return true
	}
	return false
}

// FollowUp is one contact attempt logged against an inquiry.
type FollowUp struct {
	Date   time.Time      `json:"date"`
	Note   string         `json:"note,omitempty"`
	Status FollowUpStatus `json:"status"`
}

// FollowUpInput is a follow-up as typed on the dashboard. Date is a calendar
// date or an RFC 3339 timestamp and may be blank.
type FollowUpInput struct {
	Date   string         `json:"date"`
	Note   string         `json:"note"`
	Status FollowUpStatus `json:"status"`
}

// FollowUp converts the input, leaving a blank date zero.
func (in FollowUpInput) FollowUp() (FollowUp, error) {
	date, err := calendar.Parse(in.Date)
	if err != nil {
		return FollowUp{}, err
	}
	return FollowUp{Date: date, Note: in.Note, Status: in.Status}, nil
}

// Inquiry is a prospective member.
type Inquiry struct {
	ID               string         `json:"_id,omitempty"`
	Name             string         `json:"name"`
	Phone            string         `json:"phone"`
	Email            string         `json:"email,omitempty"`
	Source           string         `json:"source,omitempty"`
	Status           Status         `json:"status"`
	NextFollowUpDate *calendar.Date `json:"nextFollowUpDate,omitempty"`
	LastContactedAt  *calendar.Date `json:"lastContactedAt,omitempty"`
	Note             string         `json:"note,omitempty"`
	FollowUps        []FollowUp     `json:"followUps,omitempty"`
	CreatedAt        *time.Time     `json:"createdAt,omitempty"`
}

// Query narrows the inquiry listing.
type Query struct {
	Status Status
	Search string
	paging.Params
}

// ParseQuery reads a listing query from dashboard parameters. Unknown statuses
// are dropped.
func ParseQuery(q url.Values) Query {
	query := Query{
		Status: Status(q.Get("status")),
		Search: q.Get("search"),
		Params: paging.FromQuery(q),
	}
	if !query.Status.Valid() {
		query.Status = ""
	}
	return query
}

// Values encodes the query as directory query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Status.Valid() {
		v.Set("status", string(q.Status))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	q.Params.Encode(v)
	return v
}

// InquiryPage is one page of the inquiry listing.
type InquiryPage struct {
	Inquiries  []Inquiry `json:"inquiries"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
