package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazantsev/bookmart-api/internal/api/shared"
	"github.com/mkazantsev/bookmart-api/internal/config"
	"github.com/mkazantsev/bookmart-api/internal/service"
	"github.com/mkazantsev/bookmart-api/internal/service/auth"
	"github.com/mkazantsev/bookmart-api/internal/testutils"
)

const testJWTSecret = "api-test-secret-that-is-32-chars!!!!"

type testServer struct {
	router http.Handler
	store  *testutils.MemStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	m := testutils.NewMemStore()
	hasher := auth.NewBcryptHasher()
	sellerService := service.NewSellerService(m.SellerStore(), m.BookStore(), hasher, nil)
	bookService := service.NewBookService(m.BookStore(), nil)

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 30,
	})
	require.NoError(t, err)

	return &testServer{
		router: NewRouter(sellerService, bookService, jwtService),
		store:  m,
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// register creates a seller account through the API and returns its ID.
func (ts *testServer) register(t *testing.T, email string) int64 {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/v1/seller", "", map[string]any{
		"first_name": "Ivan",
		"last_name":  "Petrov",
		"email":      email,
		"password":   "secret-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp SellerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

// login exchanges credentials for a bearer token through the API.
func (ts *testServer) login(t *testing.T, email string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/v1/token", "", map[string]any{
		"email":    email,
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}

func (ts *testServer) createBook(t *testing.T, token string) int64 {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/v1/books", token, map[string]any{
		"title":  "Eugene Onegin",
		"author": "Pushkin",
		"year":   1833,
		"pages":  224,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp BookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestRegisterSeller(t *testing.T) {
	t.Parallel()

	t.Run("creates seller without exposing credentials", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)

		rec := ts.do(t, http.MethodPost, "/api/v1/seller", "", map[string]any{
			"first_name": "Anna",
			"last_name":  "Orlova",
			"email":      "anna@example.com",
			"password":   "secret-password",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "anna@example.com")
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "secret-password")
	})

	t.Run("duplicate email conflicts and leaves one row", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.register(t, "dup@example.com")

		rec := ts.do(t, http.MethodPost, "/api/v1/seller", "", map[string]any{
			"first_name": "Other",
			"last_name":  "Person",
			"email":      "dup@example.com",
			"password":   "another-password",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, 1, ts.store.SellerCount())
	})

	t.Run("invalid payload is unprocessable", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)

		rec := ts.do(t, http.MethodPost, "/api/v1/seller", "", map[string]any{
			"first_name": "No",
			"last_name":  "Email",
			"email":      "not-an-email",
			"password":   "secret-password",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, 0, ts.store.SellerCount())
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials yield a usable token", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		sellerID := ts.register(t, "login@example.com")
		token := ts.login(t, "login@example.com")

		// The token authenticates a protected endpoint.
		rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/seller/%d", sellerID), token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.register(t, "login@example.com")

		wrongPass := ts.do(t, http.MethodPost, "/api/v1/token", "", map[string]any{
			"email":    "login@example.com",
			"password": "wrong-password",
		})
		unknown := ts.do(t, http.MethodPost, "/api/v1/token", "", map[string]any{
			"email":    "nobody@example.com",
			"password": "secret-password",
		})

		require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		require.Equal(t, http.StatusUnauthorized, unknown.Code)

		var wrongPassResp, unknownResp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(wrongPass.Body.Bytes(), &wrongPassResp))
		require.NoError(t, json.Unmarshal(unknown.Body.Bytes(), &unknownResp))
		assert.Equal(t, wrongPassResp.Error, unknownResp.Error)
	})
}

func TestBookEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated create is rejected and nothing is stored", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)

		rec := ts.do(t, http.MethodPost, "/api/v1/books", "", map[string]any{
			"title":  "Anna Karenina",
			"author": "Tolstoy",
			"year":   1878,
			"pages":  864,
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, 0, ts.store.BookCount())
	})

	t.Run("owner is the authenticated seller regardless of payload", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ownerID := ts.register(t, "owner@example.com")
		token := ts.login(t, "owner@example.com")

		rec := ts.do(t, http.MethodPost, "/api/v1/books", token, map[string]any{
			"title":     "War and Peace",
			"author":    "Tolstoy",
			"year":      1869,
			"pages":     1225,
			"seller_id": 42,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp BookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, ownerID, resp.SellerID)
	})

	t.Run("reads are public", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.register(t, "owner@example.com")
		token := ts.login(t, "owner@example.com")
		bookID := ts.createBook(t, token)

		list := ts.do(t, http.MethodGet, "/api/v1/books", "", nil)
		require.Equal(t, http.StatusOK, list.Code)
		assert.Contains(t, list.Body.String(), "Eugene Onegin")

		get := ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d", bookID), "", nil)
		assert.Equal(t, http.StatusOK, get.Code)
	})

	t.Run("missing book is not found", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)

		rec := ts.do(t, http.MethodGet, "/api/v1/books/9999", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-owner delete is forbidden and the book survives", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.register(t, "owner@example.com")
		ts.register(t, "other@example.com")
		ownerToken := ts.login(t, "owner@example.com")
		otherToken := ts.login(t, "other@example.com")
		bookID := ts.createBook(t, ownerToken)

		rec := ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", bookID), otherToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, 1, ts.store.BookCount())

		// The owner still can.
		rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/books/%d", bookID), ownerToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 0, ts.store.BookCount())
	})

	t.Run("non-owner update is forbidden", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.register(t, "owner@example.com")
		ts.register(t, "other@example.com")
		ownerToken := ts.login(t, "owner@example.com")
		otherToken := ts.login(t, "other@example.com")
		bookID := ts.createBook(t, ownerToken)

		rec := ts.do(t, http.MethodPut, fmt.Sprintf("/api/v1/books/%d", bookID), otherToken, map[string]any{
			"title":  "Stolen",
			"author": "Nobody",
			"year":   2000,
			"pages":  1,
		})
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Eugene Onegin", ts.store.Books[bookID].Title)
	})
}

func TestSellerEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("detail requires authentication", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		sellerID := ts.register(t, "detail@example.com")

		rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/seller/%d", sellerID), "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("detail includes books and never the password hash", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		sellerID := ts.register(t, "detail@example.com")
		token := ts.login(t, "detail@example.com")
		ts.createBook(t, token)

		// Any authenticated seller may view, not only the owner.
		ts.register(t, "viewer@example.com")
		viewerToken := ts.login(t, "viewer@example.com")

		rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/seller/%d", sellerID), viewerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp SellerDetailResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, sellerID, resp.ID)
		require.Len(t, resp.Books, 1)

		body := strings.ToLower(rec.Body.String())
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "$2a$") // bcrypt prefix
	})

	t.Run("update own profile succeeds, foreign profile is forbidden", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		targetID := ts.register(t, "target@example.com")
		ts.register(t, "other@example.com")
		targetToken := ts.login(t, "target@example.com")
		otherToken := ts.login(t, "other@example.com")

		own := ts.do(t, http.MethodPut, fmt.Sprintf("/api/v1/seller/%d", targetID), targetToken, map[string]any{
			"first_name": "Renamed",
		})
		require.Equal(t, http.StatusOK, own.Code)
		assert.Equal(t, "Renamed", ts.store.Sellers[targetID].FirstName)

		foreign := ts.do(t, http.MethodPut, fmt.Sprintf("/api/v1/seller/%d", targetID), otherToken, map[string]any{
			"first_name": "Hacked",
		})
		require.Equal(t, http.StatusForbidden, foreign.Code)
		assert.Equal(t, "Renamed", ts.store.Sellers[targetID].FirstName)
	})

	t.Run("delete cascades to owned books", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		sellerID := ts.register(t, "cascade@example.com")
		token := ts.login(t, "cascade@example.com")
		ts.createBook(t, token)
		ts.createBook(t, token)

		rec := ts.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/seller/%d", sellerID), token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		assert.Equal(t, 0, ts.store.SellerCount())
		assert.Equal(t, 0, ts.store.BookCount())
	})

	t.Run("list is public", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t)
		ts.register(t, "visible@example.com")

		rec := ts.do(t, http.MethodGet, "/api/v1/seller", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "visible@example.com")
		assert.NotContains(t, rec.Body.String(), "password")
	})
}

func TestExpiredToken(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.register(t, "expired@example.com")
	expired := issueExpiredToken(t, testJWTSecret, "expired@example.com")

	rec := ts.do(t, http.MethodPost, "/api/v1/books", expired, map[string]any{
		"title":  "Too Late",
		"author": "Anyone",
		"year":   2020,
		"pages":  100,
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, ts.store.BookCount())
	assert.Contains(t, rec.Body.String(), "expired")
}

// issueExpiredToken signs a token whose expiry is already in the past.
func issueExpiredToken(t *testing.T, secret, email string) string {
	t.Helper()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
