package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentmoney/internal/auth"
	"studentmoney/internal/kv"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := kv.NewMemoryStore()
	srv := NewServer(":0", store, auth.NewService(store))
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

// signupAndLogin creates a fresh account and returns a valid bearer token.
func signupAndLogin(t *testing.T, srv *Server) string {
	t.Helper()
	rr := doJSON(t, srv, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": "an@example.com", "password": "secret1", "name": "An"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, srv, http.MethodPost, "/auth/login", "",
		map[string]string{"email": "an@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	token, _ := decode(t, rr)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestRecordsRequireToken(t *testing.T) {
	srv := newTestServer(t)
	rr := doJSON(t, srv, http.MethodGet, "/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/transactions", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUnknownCollection(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv)
	rr := doJSON(t, srv, http.MethodGet, "/accounts", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSignupSeedsDefaultCategories(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv)

	rr := doJSON(t, srv, http.MethodGet, "/categories", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	cats, _ := decode(t, rr)["categories"].([]any)
	require.Len(t, cats, 15)

	var income, expense int
	for _, c := range cats {
		rec := c.(map[string]any)
		require.Equal(t, true, rec["isDefault"])
		switch rec["type"] {
		case "income":
			income++
		case "expense":
			expense++
		}
	}
	assert.Equal(t, 5, income)
	assert.Equal(t, 10, expense)
}

func TestSignupRejectsDuplicateAndShortPassword(t *testing.T) {
	srv := newTestServer(t)
	signupAndLogin(t, srv)

	rr := doJSON(t, srv, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": "an@example.com", "password": "secret1", "name": "An"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, srv, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": "b@example.com", "password": "abc", "name": "B"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTransactionCRUDRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv)

	rr := doJSON(t, srv, http.MethodPost, "/transactions", token, map[string]any{
		"type":        "expense",
		"amount":      50000,
		"description": "bún chả",
		"categoryId":  "default_5",
		"date":        "2025-06-10",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	created, _ := decode(t, rr)["transaction"].(map[string]any)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	require.NotEmpty(t, created["createdAt"])
	// every created record is stamped with its owner
	require.NotEmpty(t, created["userId"])

	// list includes the created record
	rr = doJSON(t, srv, http.MethodGet, "/transactions", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	txs, _ := decode(t, rr)["transactions"].([]any)
	require.Len(t, txs, 1)

	// update merges only the patched fields
	rr = doJSON(t, srv, http.MethodPut, "/transactions/"+id, token, map[string]any{
		"amount": 60000,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	merged, _ := decode(t, rr)["transaction"].(map[string]any)
	assert.EqualValues(t, 60000, merged["amount"])
	assert.Equal(t, "bún chả", merged["description"])
	assert.Equal(t, id, merged["id"])

	// update of a missing id is a 404
	rr = doJSON(t, srv, http.MethodPut, "/transactions/absent", token, map[string]any{"amount": 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// delete removes the record; deleting again still succeeds
	rr = doJSON(t, srv, http.MethodDelete, "/transactions/"+id, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode(t, rr)["success"])

	rr = doJSON(t, srv, http.MethodDelete, "/transactions/"+id, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/transactions", token, nil)
	txs, _ = decode(t, rr)["transactions"].([]any)
	assert.Empty(t, txs)
}

func TestDefaultCategoryGuards(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv)

	rr := doJSON(t, srv, http.MethodPut, "/categories/default_0", token, map[string]any{"name": "renamed"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, srv, http.MethodDelete, "/categories/default_0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// custom categories can be created and removed
	rr = doJSON(t, srv, http.MethodPost, "/categories", token, map[string]any{
		"name": "Cà phê", "type": "expense", "icon": "☕",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	created, _ := decode(t, rr)["category"].(map[string]any)
	assert.Equal(t, false, created["isDefault"])
	id, _ := created["id"].(string)

	rr = doJSON(t, srv, http.MethodDelete, "/categories/"+id, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/categories", token, nil)
	cats, _ := decode(t, rr)["categories"].([]any)
	assert.Len(t, cats, 15)
}

func TestProfileReadAndUpdate(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv)

	rr := doJSON(t, srv, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	user, _ := decode(t, rr)["user"].(map[string]any)
	assert.Equal(t, "an@example.com", user["email"])

	rr = doJSON(t, srv, http.MethodPut, "/profile", token, map[string]string{"name": "An Nguyễn"})
	require.Equal(t, http.StatusOK, rr.Code)
	user, _ = decode(t, rr)["user"].(map[string]any)
	assert.Equal(t, "An Nguyễn", user["name"])
}

func TestLogoutInvalidatesSession(t *testing.T) {
	srv := newTestServer(t)
	token := signupAndLogin(t, srv)

	rr := doJSON(t, srv, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, srv, http.MethodGet, "/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
