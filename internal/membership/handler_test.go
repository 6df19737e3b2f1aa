package membership

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/apperr"
	"gymdesk/internal/billing"
	"gymdesk/internal/paging"
)

type fakeDirectory struct {
	members    map[string]Member
	lastFilter Filter
	saved      *Member
	err        error
}

func (f *fakeDirectory) ListMembers(ctx context.Context, filter Filter) ([]Member, int, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []Member
	for _, m := range f.members {
		out = append(out, m)
	}
	return out, len(out), nil
}

func (f *fakeDirectory) GetMember(ctx context.Context, id string) (*Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.members[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &m, nil
}

func (f *fakeDirectory) CreateMember(ctx context.Context, m *Member) (*Member, error) {
	f.saved = m
	created := *m
	created.ID = "m-new"
	return &created, nil
}

func (f *fakeDirectory) UpdateMember(ctx context.Context, id string, m *Member) (*Member, error) {
	f.saved = m
	// the directory answers with its own copy, which the handler must return
	stored := *m
	stored.TotalOutstanding = decimal.NewFromInt(1234)
	return &stored, nil
}

func (f *fakeDirectory) DeleteMember(ctx context.Context, id string) error {
	if _, ok := f.members[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.members, id)
	return nil
}

func amt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newTestServer(dir *fakeDirectory) *httptest.Server {
	r := chi.NewRouter()
	r.Route("/members", NewHandler(NewService(dir)).Routes)
	return httptest.NewServer(r)
}

func seeded() *fakeDirectory {
	return &fakeDirectory{members: map[string]Member{
		"m1": {
			Member: billing.Member{
				ID:               "m1",
				Fee:              amt(500),
				PaidAmount:       amt(100),
				RemainingAmount:  decimal.NewNullDecimal(amt(400)),
				PaymentStatus:    billing.StatusPending,
				TotalOutstanding: amt(900),
			},
			Name:  "Ravi",
			Phone: "555-0102",
		},
	}}
}

func TestListMembers(t *testing.T) {
	dir := &fakeDirectory{members: map[string]Member{
		"m2": {Member: billing.Member{ID: "m2", Fee: amt(300), PaidAmount: amt(100)}, Name: "Neha"},
	}}
	srv := newTestServer(dir)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/members?paymentStatus=Pending&sortBy=bogus&limit=500&page=0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page MemberPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, paging.DefaultLimit, page.Limit)
	require.Len(t, page.Members, 1)
	assert.True(t, page.Members[0].Remaining().Equal(amt(200)), "missing remaining is derived")

	assert.Equal(t, billing.StatusPending, dir.lastFilter.PaymentStatus)
	assert.Equal(t, "createdAt", dir.lastFilter.SortBy)
	assert.Equal(t, 1, dir.lastFilter.Page)
}

func TestGetMember_NotFound(t *testing.T) {
	srv := newTestServer(seeded())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/members/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateMember_DerivesBalance(t *testing.T) {
	dir := seeded()
	srv := newTestServer(dir)
	defer srv.Close()

	body := `{"name":"Kiran","phone":"555-0199","fee":800,"paidAmount":300}`
	resp, err := http.Post(srv.URL+"/members", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NotNil(t, dir.saved)
	assert.True(t, dir.saved.Remaining().Equal(amt(500)))
	assert.Equal(t, billing.StatusPending, dir.saved.PaymentStatus)
	raw, err := json.Marshal(dir.saved)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "createdAt", "unset timestamps are not sent")

	var created Member
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "m-new", created.ID)
}

func TestCreateMember_KeepsChosenStatus(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status billing.PaymentStatus
	}{
		{"free trial with a fee", `{"name":"Asha","fee":800,"paidAmount":0,"paymentStatus":"Free Trial"}`, billing.StatusFreeTrial},
		{"paid with a balance", `{"name":"Kiran","fee":800,"paidAmount":300,"paymentStatus":"Paid"}`, billing.StatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := seeded()
			srv := newTestServer(dir)
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/members", "application/json", bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			require.NotNil(t, dir.saved)
			assert.Equal(t, tt.status, dir.saved.PaymentStatus)

			var created Member
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
			assert.Equal(t, tt.status, created.PaymentStatus)
		})
	}
}

func TestCreateMember_RequiresName(t *testing.T) {
	srv := newTestServer(seeded())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/members", "application/json", bytes.NewBufferString(`{"fee":100}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateMember_ReturnsDirectoryCopy(t *testing.T) {
	dir := seeded()
	srv := newTestServer(dir)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/members/m1",
		bytes.NewBufferString(`{"name":"Ravi","fee":500,"paidAmount":500,"paymentStatus":"Paid"}`))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated Member
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, billing.StatusPaid, updated.PaymentStatus)
	assert.True(t, updated.Remaining().IsZero())
	assert.True(t, updated.TotalOutstanding.Equal(amt(1234)))
	assert.Equal(t, "m1", dir.saved.ID)
}

func TestUpdateMember_KeepsFreeTrialWithFee(t *testing.T) {
	dir := seeded()
	srv := newTestServer(dir)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/members/m1",
		bytes.NewBufferString(`{"name":"Ravi","fee":500,"paidAmount":100,"paymentStatus":"Free Trial"}`))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, billing.StatusFreeTrial, dir.saved.PaymentStatus)
	assert.True(t, dir.saved.Remaining().Equal(amt(400)))
}

func TestGetMember_KeepsReportedZeroRemaining(t *testing.T) {
	dir := &fakeDirectory{members: map[string]Member{
		"m3": {
			Member: billing.Member{
				ID:              "m3",
				Fee:             amt(800),
				PaidAmount:      amt(500),
				RemainingAmount: decimal.NewNullDecimal(decimal.Zero),
				PaymentStatus:   billing.StatusPaid,
			},
			Name: "Meera",
		},
	}}
	srv := newTestServer(dir)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/members/m3")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got Member
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.RemainingAmount.Valid)
	assert.True(t, got.Remaining().IsZero())
	assert.Equal(t, billing.StatusPaid, got.PaymentStatus)
	assert.True(t, got.TotalOutstanding.Equal(got.CarryForward.Add(got.Remaining())))
}

func TestDeleteMember(t *testing.T) {
	dir := seeded()
	srv := newTestServer(dir)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/members/m1", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, dir.members)
}

func TestPreviewEdit_Fee(t *testing.T) {
	srv := newTestServer(seeded())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/members/m1/preview", "application/json",
		bytes.NewBufferString(`{"field":"fee","value":"700"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p Preview
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.True(t, p.FeeAppliesFromNextCycle)
	assert.True(t, p.Member.Remaining().Equal(amt(600)))
	assert.True(t, p.Outstanding.CarryForward.Equal(amt(500)))
	assert.True(t, p.Outstanding.TotalOutstanding.Equal(amt(1100)))
	assert.Equal(t, billing.StatusPending, p.Member.PaymentStatus)
}

func TestPreviewEdit_PaidAmountNeedsAdjustFlag(t *testing.T) {
	srv := newTestServer(seeded())
	defer srv.Close()

	post := func(body string) Preview {
		resp, err := http.Post(srv.URL+"/members/m1/preview", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var p Preview
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
		return p
	}

	locked := post(`{"field":"paidAmount","value":500}`)
	assert.True(t, locked.PaidAmountReadOnly)
	assert.True(t, locked.Member.PaidAmount.Equal(amt(100)))
	assert.True(t, locked.Member.Remaining().Equal(amt(400)))

	adjusted := post(`{"field":"paidAmount","value":500,"adjustCurrentCyclePayment":true}`)
	assert.False(t, adjusted.PaidAmountReadOnly)
	assert.True(t, adjusted.Member.Remaining().IsZero())
	assert.Equal(t, billing.StatusPaid, adjusted.Member.PaymentStatus)
	assert.True(t, adjusted.Outstanding.CarryForward.Equal(amt(500)))
}

func TestPreviewDraft_FreeTrialSelection(t *testing.T) {
	srv := newTestServer(seeded())
	defer srv.Close()

	body := `{"member":{"name":"Trial","fee":0,"paymentStatus":"Paid"},"edit":{"field":"paymentStatus","value":"Free Trial"}}`
	resp, err := http.Post(srv.URL+"/members/preview", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var p Preview
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, billing.StatusFreeTrial, p.Member.PaymentStatus)
	assert.False(t, p.FeeAppliesFromNextCycle)
}

func TestFilterValues(t *testing.T) {
	q := Filter{Search: "ravi", MinFee: "100", SortBy: "fee", SortOrder: "asc", Params: paging.Params{Page: 2, Limit: 50}}.Values()

	assert.Equal(t, url.Values{
		"search":    {"ravi"},
		"minFee":    {"100"},
		"sortBy":    {"fee"},
		"sortOrder": {"asc"},
		"page":      {"2"},
		"limit":     {"50"},
	}, q)
}
