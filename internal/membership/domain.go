// internal/membership/domain.go
package membership

import (
	"net/url"
	"time"

	"gymdesk/internal/billing"
	"gymdesk/internal/calendar"
	"gymdesk/internal/paging"
)

// Member is a gym member record as stored by the directory.
type Member struct {
	billing.Member

	Name            string         `json:"name"`
	Email           string         `json:"email,omitempty"`
	Phone           string         `json:"phone"`
	DOB             *calendar.Date `json:"dob,omitempty"`
	Gender          string         `json:"gender,omitempty"`
	Address         string         `json:"address,omitempty"`
	EmergencyName   string         `json:"emergencyName,omitempty"`
	EmergencyPhone  string         `json:"emergencyPhone,omitempty"`
	HealthNotes     string         `json:"healthNotes,omitempty"`
	MembershipType  string         `json:"membershipType"`
	StartDate       *calendar.Date `json:"startDate,omitempty"`
	Duration        string         `json:"duration"`
	PersonalTrainer string         `json:"personalTrainer,omitempty"`
	AssignedTrainer string         `json:"assignedTrainer,omitempty"`
	ProfilePic      string         `json:"profilePic,omitempty"`
	CreatedAt       *time.Time     `json:"createdAt,omitempty"`
}

// Filter narrows the member listing. Empty fields are not sent.
type Filter struct {
	Search          string
	PaymentStatus   billing.PaymentStatus
	MembershipType  string
	PersonalTrainer string
	MinFee          string
	MaxFee          string
	MinPaid         string
	MaxPaid         string
	MinRemaining    string
	MaxRemaining    string
	StartFrom       string
	StartTo         string
	SortBy          string
	SortOrder       string
	paging.Params
}

var sortable = map[string]bool{
	"createdAt":       true,
	"name":            true,
	"fee":             true,
	"paidAmount":      true,
	"remainingAmount": true,
	"startDate":       true,
}

// ParseFilter reads a listing filter from dashboard query parameters. Unknown
// sort keys and out-of-range paging fall back to the defaults.
func ParseFilter(q url.Values) Filter {
	f := Filter{
		Search:          q.Get("search"),
		PaymentStatus:   billing.PaymentStatus(q.Get("paymentStatus")),
		MembershipType:  q.Get("membershipType"),
		PersonalTrainer: q.Get("personalTrainer"),
		MinFee:          q.Get("minFee"),
		MaxFee:          q.Get("maxFee"),
		MinPaid:         q.Get("minPaid"),
		MaxPaid:         q.Get("maxPaid"),
		MinRemaining:    q.Get("minRemaining"),
		MaxRemaining:    q.Get("maxRemaining"),
		StartFrom:       q.Get("startFrom"),
		StartTo:         q.Get("startTo"),
		SortBy:          q.Get("sortBy"),
		SortOrder:       q.Get("sortOrder"),
		Params:          paging.FromQuery(q),
	}
	return f.withDefaults()
}

func (f Filter) withDefaults() Filter {
	if !sortable[f.SortBy] {
		f.SortBy = "createdAt"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
	f.Params = f.Params.Normalize()
	if !f.PaymentStatus.Valid() {
		f.PaymentStatus = ""
	}
	return f
}

// Values encodes the filter as directory query parameters.
func (f Filter) Values() url.Values {
	f = f.withDefaults()
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("search", f.Search)
	set("paymentStatus", string(f.PaymentStatus))
	set("membershipType", f.MembershipType)
	set("personalTrainer", f.PersonalTrainer)
	set("minFee", f.MinFee)
	set("maxFee", f.MaxFee)
	set("minPaid", f.MinPaid)
	set("maxPaid", f.MaxPaid)
	set("minRemaining", f.MinRemaining)
	set("maxRemaining", f.MaxRemaining)
	set("startFrom", f.StartFrom)
	set("startTo", f.StartTo)
	set("sortBy", f.SortBy)
	set("sortOrder", f.SortOrder)
	f.Params.Encode(q)
	return q
}

// MemberPage is one page of the member listing.
type MemberPage struct {
	Members    []Member `json:"members"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
}

// fieldPaymentStatus is the status select on the member forms.
const fieldPaymentStatus billing.Field = "paymentStatus"

// Edit is a single live change on the add or edit member form.
type Edit struct {
	Field                     billing.Field     `json:"field"`
	Value                     billing.FormValue `json:"value"`
	AdjustCurrentCyclePayment bool              `json:"adjustCurrentCyclePayment"`
}

// Preview is the locally recomputed view of a member after an edit. The
// directory recomputes authoritatively when the edit is saved.
type Preview struct {
	Member                  Member              `json:"member"`
	Outstanding             billing.Outstanding `json:"outstanding"`
	FeeAppliesFromNextCycle bool                `json:"feeAppliesFromNextCycle"`
	PaidAmountReadOnly      bool                `json:"paidAmountReadOnly"`
}
