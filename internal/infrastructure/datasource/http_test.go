package datasource

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hesab/backend/internal/domain/datasource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"
)

const testBaseURL = "http://hesab.test"

func ok(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

func TestHTTPSource_Accounts(t *testing.T) {
	defer gock.Off()
	gock.New(testBaseURL).
		Get("/api/v1/accounts").
		Reply(http.StatusOK).
		JSON(ok([]map[string]any{
			{"id": "a1", "code": "1102", "name": "Cash", "type": "asset", "created_at": "2024-06-01T10:00:00Z"},
			{"id": "a2", "name": "Bank", "type": "asset", "created_at": "2024-06-01T10:00:00Z"},
		}))

	src := NewHTTPSource(testBaseURL+"/", time.Second)
	accounts, err := src.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "1102", accounts[0].Code)
	assert.Empty(t, accounts[1].Code)
	assert.True(t, gock.IsDone())
}

func TestHTTPSource_LogsInOnceAndReusesToken(t *testing.T) {
	defer gock.Off()
	gock.New(testBaseURL).
		Post("/api/v1/auth/login").
		MatchType("json").
		JSON(map[string]string{"username": "admin", "password": "secret123"}).
		Reply(http.StatusOK).
		JSON(ok(map[string]any{"token": map[string]any{"access_token": "tok-1"}}))
	gock.New(testBaseURL).
		Get("/api/v1/stats/summary").
		MatchHeader("Authorization", "^Bearer tok-1$").
		Reply(http.StatusOK).
		JSON(ok(map[string]any{"total_balance": "1250.5", "accounts_count": 4, "transactions_count": 12}))
	gock.New(testBaseURL).
		Get("/api/v1/stats/recent").
		MatchHeader("Authorization", "^Bearer tok-1$").
		Reply(http.StatusOK).
		JSON(ok([]map[string]any{{"id": "t1", "account_id": "a1", "amount": "-20.25", "date": "2024-06-01T00:00:00Z"}}))

	src := NewHTTPSource(testBaseURL, time.Second, WithCredentials("admin", "secret123"))
	ctx := context.Background()

	summary, err := src.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1250.5", summary.TotalBalance.String())
	assert.EqualValues(t, 4, summary.AccountsCount)

	recent, err := src.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "-20.25", recent[0].Amount.String())

	assert.True(t, gock.IsDone())
}

func TestHTTPSource_RelogsInAfterUnauthorized(t *testing.T) {
	defer gock.Off()
	for _, token := range []string{"stale", "fresh"} {
		gock.New(testBaseURL).
			Post("/api/v1/auth/login").
			Reply(http.StatusOK).
			JSON(ok(map[string]any{"token": map[string]any{"access_token": token}}))
	}
	gock.New(testBaseURL).
		Get("/api/v1/accounts").
		MatchHeader("Authorization", "^Bearer stale$").
		Reply(http.StatusUnauthorized).
		JSON(map[string]any{"success": false, "error": map[string]string{"code": "ERR_TOKEN_EXPIRED", "message": "expired"}})
	gock.New(testBaseURL).
		Get("/api/v1/accounts").
		MatchHeader("Authorization", "^Bearer fresh$").
		Reply(http.StatusOK).
		JSON(ok([]map[string]any{}))

	src := NewHTTPSource(testBaseURL, time.Second, WithCredentials("admin", "secret123"))
	accounts, err := src.Accounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.True(t, gock.IsDone())
}

func TestHTTPSource_Transactions_Query(t *testing.T) {
	defer gock.Off()
	gock.New(testBaseURL).
		Get("/api/v1/transactions").
		MatchParam("account_id", "a1").
		MatchParam("limit", "5").
		Reply(http.StatusOK).
		JSON(ok([]map[string]any{{"id": "t1", "account_id": "a1", "amount": 10, "date": "2024-06-01T00:00:00Z"}}))

	src := NewHTTPSource(testBaseURL, time.Second)
	txs, err := src.Transactions(context.Background(), datasource.TransactionQuery{AccountID: "a1", Limit: 5})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "10", txs[0].Amount.String())
}

func TestHTTPSource_Chart(t *testing.T) {
	defer gock.Off()
	gock.New(testBaseURL).
		Get("/api/v1/stats/chart").
		MatchParam("days", "7").
		Reply(http.StatusOK).
		JSON(ok([]map[string]any{{"date": "2024-06-01", "value": "12.3400"}}))

	src := NewHTTPSource(testBaseURL, time.Second)
	points, err := src.Chart(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-06-01", points[0].Date)
	assert.Equal(t, "12.34", points[0].Value.String())
}

func TestHTTPSource_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "error envelope",
			status:     http.StatusNotFound,
			body:       map[string]any{"success": false, "error": map[string]string{"code": "NOT_FOUND", "message": "Account not found"}},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "success false with 200",
			status:     http.StatusOK,
			body:       map[string]any{"success": false, "error": map[string]string{"code": "ERR_INTERNAL", "message": "boom"}},
			wantStatus: http.StatusOK,
			wantCode:   "ERR_INTERNAL",
		},
		{
			name:       "bare 502",
			status:     http.StatusBadGateway,
			body:       map[string]any{},
			wantStatus: http.StatusBadGateway,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()
			gock.New(testBaseURL).Get("/api/v1/accounts").Reply(tt.status).JSON(tt.body)

			_, err := NewHTTPSource(testBaseURL, time.Second).Accounts(context.Background())
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestHTTPSource_LoginFailure(t *testing.T) {
	defer gock.Off()
	gock.New(testBaseURL).
		Post("/api/v1/auth/login").
		Reply(http.StatusUnauthorized).
		JSON(map[string]any{"success": false, "error": map[string]string{"code": "INVALID_CREDENTIALS", "message": "Invalid username or password"}})

	src := NewHTTPSource(testBaseURL, time.Second, WithCredentials("admin", "wrong"))
	_, err := src.Accounts(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	assert.ErrorContains(t, err, "login failed")
}

func TestHTTPSource_Health(t *testing.T) {
	defer gock.Off()
	gock.New(testBaseURL).
		Get("/health").
		Reply(http.StatusOK).
		JSON(map[string]any{"status": "ok", "database": "ok", "time": "2024-06-01T10:00:00Z"})

	h, err := NewHTTPSource(testBaseURL, time.Second).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Database)

	gock.New(testBaseURL).
		Get("/health").
		Reply(http.StatusServiceUnavailable).
		JSON(map[string]any{"status": "degraded", "database": "down", "time": "2024-06-01T10:00:00Z"})

	h, err = NewHTTPSource(testBaseURL, time.Second).Health(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "degraded", h.Status)
}
