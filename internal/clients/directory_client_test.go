package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/apperr"
	"gymdesk/internal/billing"
	"gymdesk/internal/config"
	"gymdesk/internal/inquiries"
	"gymdesk/internal/membership"
	"gymdesk/internal/paging"
	"gymdesk/internal/payments"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *DirectoryClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewDirectoryClient(config.DirectoryConfig{
		BaseURL:         srv.URL + "/",
		Timeout:         2 * time.Second,
		RatePerSecond:   1000,
		Burst:           1000,
		BreakerFailures: 3,
		BreakerCooldown: time.Minute,
	})
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestListMembers(t *testing.T) {
	var gotPath, gotQuery, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get("X-Request-ID")
		reply(w, http.StatusOK, `{"success":true,"members":[{"_id":"m1","name":"Ravi","fee":500,"paidAmount":"100"}],"total":31}`)
	})

	members, total, err := c.ListMembers(context.Background(), membership.Filter{
		PaymentStatus: billing.StatusPending,
		Params:        paging.Params{Page: 2, Limit: 10},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/members", gotPath)
	assert.Contains(t, gotQuery, "paymentStatus=Pending")
	assert.Contains(t, gotQuery, "page=2")
	assert.NotEmpty(t, gotRequestID)

	assert.Equal(t, 31, total)
	require.Len(t, members, 1)
	assert.Equal(t, "m1", members[0].ID)
	assert.True(t, members[0].PaidAmount.Equal(decimal.NewFromInt(100)))
}

func TestGetMember_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusNotFound, `{"success":false,"message":"Member not found"}`)
	})

	_, err := c.GetMember(context.Background(), "m404")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "Member not found")
}

func TestEnvelopeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, `{"success":false,"message":"Phone already registered"}`)
	})

	_, err := c.CreateMember(context.Background(), &membership.Member{Name: "Kiran"})
	var remote *apperr.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnprocessableEntity, remote.Status)
	assert.Equal(t, "Phone already registered", remote.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, apperr.HTTPStatus(err))
}

func TestRemoteClientError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusConflict, `{"success":false,"message":"cycle already closed"}`)
	})

	_, err := c.CorrectPayment(context.Background(), "m1", 0, payments.PaymentRequest{Amount: decimal.NewFromInt(10)})
	assert.Equal(t, http.StatusConflict, apperr.HTTPStatus(err))
}

func TestNonJSONResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream down</html>"))
	})

	_, err := c.GetMember(context.Background(), "m1")
	var remote *apperr.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadGateway, remote.Status)
	assert.Equal(t, http.StatusBadGateway, apperr.HTTPStatus(err))
}

func TestSubmitPayment(t *testing.T) {
	var body struct {
		Amount decimal.Decimal `json:"amount"`
		Note   string          `json:"note"`
	}
	var gotPath, gotMethod string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		reply(w, http.StatusOK, `{"success":true,"message":"Payment recorded","member":{"_id":"m1","fee":500,"paidAmount":500,"remainingAmount":0,"paymentStatus":"Paid","totalOutstanding":0}}`)
	})

	m, err := c.SubmitPayment(context.Background(), "m1", payments.PaymentRequest{Amount: decimal.NewFromInt(400), Note: "upi"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/members/m1/payments", gotPath)
	assert.True(t, body.Amount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, "upi", body.Note)
	assert.Equal(t, billing.StatusPaid, m.PaymentStatus)
}

func TestAddFollowUp(t *testing.T) {
	var body map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/inquiries/q1", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		reply(w, http.StatusOK, `{"success":true,"inquiry":{"_id":"q1","name":"Asha","phone":"1","status":"Follow Up"}}`)
	})

	in, err := c.AddFollowUp(context.Background(), "q1", inquiries.FollowUp{Status: inquiries.FollowUpPlanned, Note: "call"})
	require.NoError(t, err)
	assert.Equal(t, inquiries.StatusFollowUp, in.Status)
	assert.Contains(t, body, "followUp")
}

func TestDelete_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.DeleteExpense(context.Background(), "e1"))
}

func TestBreaker_OpensOnServerErrorsOnly(t *testing.T) {
	status := http.StatusNotFound
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		reply(w, status, `{"success":false,"message":"nope"}`)
	})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.GetMember(ctx, "m1")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	}

	status = http.StatusInternalServerError
	for i := 0; i < 3; i++ {
		_, err := c.GetMember(ctx, "m1")
		assert.NotErrorIs(t, err, apperr.ErrUnavailable)
	}

	_, err := c.GetMember(ctx, "m1")
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, apperr.HTTPStatus(err))
	assert.Equal(t, 8, calls, "an open breaker must not reach the directory")
}
