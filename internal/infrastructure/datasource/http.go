package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hesab/backend/internal/domain/datasource"
	"github.com/hesab/backend/internal/domain/ledger"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

// APIError is a failed call against the hesab API: a non-2xx status or an
// envelope with success=false.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("hesab api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("hesab api: status %d: %s: %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Credentials are used to obtain a bearer token on first use
type Credentials struct {
	Username string
	Password string
}

// HTTPSource reads the books from a running hesab server
type HTTPSource struct {
	baseURL string
	client  *http.Client
	creds   *Credentials
	logger  *zap.Logger

	mu    sync.Mutex
	token string
}

// HTTPOption configures an HTTPSource
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithCredentials makes the source log in once and reuse the token
func WithCredentials(username, password string) HTTPOption {
	return func(s *HTTPSource) {
		if username != "" {
			s.creds = &Credentials{Username: username, Password: password}
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) HTTPOption {
	return func(s *HTTPSource) { s.logger = l }
}

// NewHTTPSource creates a live source against baseURL
func NewHTTPSource(baseURL string, timeout time.Duration, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Accounts lists the chart of accounts
func (s *HTTPSource) Accounts(ctx context.Context) ([]datasource.Account, error) {
	var out []datasource.Account
	if err := s.get(ctx, apiPrefix+"/accounts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Transactions lists transactions, newest first
func (s *HTTPSource) Transactions(ctx context.Context, q datasource.TransactionQuery) ([]datasource.Transaction, error) {
	params := url.Values{}
	if q.AccountID != "" {
		params.Set("account_id", q.AccountID)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	var out []datasource.Transaction
	if err := s.get(ctx, apiPrefix+"/transactions", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary returns the dashboard headline
func (s *HTTPSource) Summary(ctx context.Context) (*ledger.Summary, error) {
	var out ledger.Summary
	if err := s.get(ctx, apiPrefix+"/stats/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recent returns the latest transactions
func (s *HTTPSource) Recent(ctx context.Context) ([]datasource.Transaction, error) {
	var out []datasource.Transaction
	if err := s.get(ctx, apiPrefix+"/stats/recent", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Chart returns daily sums for the last days days
func (s *HTTPSource) Chart(ctx context.Context, days int) ([]ledger.ChartPoint, error) {
	params := url.Values{}
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}
	var out []ledger.ChartPoint
	if err := s.get(ctx, apiPrefix+"/stats/chart", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health calls the unversioned health endpoint, which is not enveloped.
func (s *HTTPSource) Health(ctx context.Context) (*datasource.Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	var out datasource.Health
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: "unreadable health response"}
	}
	if resp.StatusCode != http.StatusOK {
		return &out, &APIError{Status: resp.StatusCode, Code: "UNHEALTHY", Message: "database " + out.Database}
	}
	return &out, nil
}

func (s *HTTPSource) get(ctx context.Context, path string, params url.Values, out any) error {
	token, err := s.bearer(ctx)
	if err != nil {
		return err
	}
	err = s.call(ctx, http.MethodGet, path, params, nil, token, out)

	var apiErr *APIError
	if s.creds != nil && errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		s.logger.Debug("token rejected, logging in again", zap.String("path", path))
		s.resetToken(token)
		if token, err = s.bearer(ctx); err != nil {
			return err
		}
		return s.call(ctx, http.MethodGet, path, params, nil, token, out)
	}
	return err
}

func (s *HTTPSource) bearer(ctx context.Context) (string, error) {
	if s.creds == nil {
		return "", nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		return s.token, nil
	}

	var login struct {
		Token struct {
			AccessToken string `json:"access_token"`
		} `json:"token"`
	}
	body := map[string]string{"username": s.creds.Username, "password": s.creds.Password}
	if err := s.call(ctx, http.MethodPost, apiPrefix+"/auth/login", nil, body, "", &login); err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	s.token = login.Token.AccessToken
	s.logger.Debug("logged in", zap.String("username", s.creds.Username))
	return s.token, nil
}

func (s *HTTPSource) resetToken(stale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == stale {
		s.token = ""
	}
}

func (s *HTTPSource) call(ctx context.Context, method, path string, params url.Values, body any, token string, out any) error {
	target := s.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("unreadable response: %v", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

var _ datasource.DataSource = (*HTTPSource)(nil)
