package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/events"
	"github.com/LazorAmorie/Masterkey.01/internal/handler"
	"github.com/LazorAmorie/Masterkey.01/internal/middleware"
	"github.com/LazorAmorie/Masterkey.01/internal/repository/memory"
	"github.com/LazorAmorie/Masterkey.01/internal/router"
	"github.com/LazorAmorie/Masterkey.01/internal/usecase"
	"github.com/LazorAmorie/Masterkey.01/pkg/jwtutil"
	"github.com/LazorAmorie/Masterkey.01/pkg/response"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	store := memory.NewStore()

	authUC := usecase.NewAuthUsecase(store, decimal.NewFromInt(10000), logger)
	txUC := usecase.NewTransactionUsecase(store, events.NoopPublisher{}, logger)

	issuer := jwtutil.NewIssuer("test-secret", time.Hour)
	verifier := jwtutil.NewVerifier("test-secret")

	authHandler := handler.NewAuthHandler(authUC, issuer, "test", logger)
	txHandler := handler.NewTransactionHandler(txUC, logger)
	authMW := middleware.NewAuthMiddleware(verifier, store, logger)

	// Redis is unreachable here, so the rate limiter fails open.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 10 * time.Millisecond})

	r := chi.NewRouter()
	router.SetupRoutes(r, authHandler, txHandler, authMW, rdb, logger)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, response.APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func signup(t *testing.T, srv *httptest.Server) (token string, user map[string]any) {
	t.Helper()

	resp, out := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username":        "alice1",
		"email":           "alice@example.com",
		"password":        "Str0ng!pass",
		"confirmPassword": "Str0ng!pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, out.Success)

	data, ok := out.Data.(map[string]any)
	require.True(t, ok)
	token, _ = data["token"].(string)
	require.NotEmpty(t, token)
	user, _ = data["user"].(map[string]any)
	require.NotNil(t, user)
	return token, user
}

func TestSignupAndProfile(t *testing.T) {
	srv := newTestServer(t)

	token, user := signup(t, srv)
	assert.Equal(t, "alice1", user["username"])
	assert.NotEmpty(t, user["walletAddress"])

	resp, out := doJSON(t, srv, http.MethodGet, "/api/auth/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.Success)

	data, ok := out.Data.(map[string]any)
	require.True(t, ok)
	profile, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", profile["email"])
}

func TestSignupValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, out := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username":        "al",
		"email":           "not-an-email",
		"password":        "Str0ng!pass",
		"confirmPassword": "different",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Errors)
}

func TestSendThenHistory(t *testing.T) {
	srv := newTestServer(t)
	token, _ := signup(t, srv)

	resp, out := doJSON(t, srv, http.MethodPost, "/api/transaction/send", token, map[string]any{
		"receiverIdentifier": "bob@example.com",
		"amount":             50,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, out.Success)

	data, ok := out.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CRYPTO_TRANSFER", data["route"])
	assert.Equal(t, "5.1", data["fee"])
	assert.Equal(t, "55.1", data["totalAmount"])
	assert.Equal(t, "9944.9", data["newBalance"])
	assert.Equal(t, "SUCCESS", data["status"])

	txnID, _ := data["transactionId"].(string)
	require.NotEmpty(t, txnID)

	resp, out = doJSON(t, srv, http.MethodGet, "/api/transaction/"+txnID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.Success)

	resp, out = doJSON(t, srv, http.MethodGet, "/api/transaction/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	hist, ok := out.Data.(map[string]any)
	require.True(t, ok)
	items, ok := hist["transactions"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)

	pagination, ok := hist["pagination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), pagination["totalItems"])
}

func TestSendInsufficientBalance(t *testing.T) {
	srv := newTestServer(t)
	token, _ := signup(t, srv)

	resp, out := doJSON(t, srv, http.MethodPost, "/api/transaction/send", token, map[string]any{
		"receiverIdentifier": "bob@example.com",
		"amount":             9999,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "Insufficient balance")
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	resp, out := doJSON(t, srv, http.MethodGet, "/api/transaction/history", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, out.Success)

	resp, out = doJSON(t, srv, http.MethodGet, "/api/transaction/history", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, out.Success)
}

func TestNotFoundEnvelope(t *testing.T) {
	srv := newTestServer(t)

	resp, out := doJSON(t, srv, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, out.Success)
	assert.Equal(t, "Endpoint not found", out.Message)
}
