package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"crg-site/internal/auth"
)

// fakeRevocations lets tests control the revocation answer without Redis.
type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[jti], nil
}

func protectedRouter(t *testing.T, tokens *auth.TokenService, revoked auth.RevocationChecker, invoked *bool) *chi.Mux {
	t.Helper()

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokens, revoked, "crg_session"))
		r.Post("/api/talks", func(w http.ResponseWriter, r *http.Request) {
			*invoked = true
			identity := auth.IdentityFromContext(r.Context())
			assert.NotNil(t, identity)
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func TestMiddlewareRejectsMissingCredential(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	invoked := false
	router := protectedRouter(t, tokens, auth.NewRevocationList(nil), &invoked)

	req := httptest.NewRequest(http.MethodPost, "/api/talks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked, "gated handler must not run without a session")
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	invoked := false
	router := protectedRouter(t, tokens, auth.NewRevocationList(nil), &invoked)

	req := httptest.NewRequest(http.MethodPost, "/api/talks", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked)
}

func TestMiddlewareAcceptsCookieSession(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	token, err := tokens.Issue(testAdmin())
	assert.NoError(t, err)

	invoked := false
	router := protectedRouter(t, tokens, auth.NewRevocationList(nil), &invoked)

	req := httptest.NewRequest(http.MethodPost, "/api/talks", nil)
	req.AddCookie(&http.Cookie{Name: "crg_session", Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, invoked)
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	token, err := tokens.Issue(testAdmin())
	assert.NoError(t, err)

	invoked := false
	router := protectedRouter(t, tokens, auth.NewRevocationList(nil), &invoked)

	req := httptest.NewRequest(http.MethodPost, "/api/talks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, invoked)
}

func TestMiddlewareRejectsRevokedSession(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	token, err := tokens.Issue(testAdmin())
	assert.NoError(t, err)
	identity, err := tokens.Verify(token)
	assert.NoError(t, err)

	invoked := false
	revoked := &fakeRevocations{revoked: map[string]bool{identity.JTI: true}}
	router := protectedRouter(t, tokens, revoked, &invoked)

	req := httptest.NewRequest(http.MethodPost, "/api/talks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked, "a logged-out session must not reach the handler")
}

func TestMiddlewareFailsClosedOnRevocationError(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	token, err := tokens.Issue(testAdmin())
	assert.NoError(t, err)

	invoked := false
	revoked := &fakeRevocations{err: errors.New("redis: connection refused")}
	router := protectedRouter(t, tokens, revoked, &invoked)

	req := httptest.NewRequest(http.MethodPost, "/api/talks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// When the revocation check cannot run the session is treated as invalid
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, invoked)
}

func TestExtractTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := auth.ExtractTokenFromRequest(req, "crg_session")
	assert.Error(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	_, err = auth.ExtractTokenFromRequest(req, "crg_session")
	assert.Error(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	token, err := auth.ExtractTokenFromRequest(req, "crg_session")
	assert.NoError(t, err)
	assert.Equal(t, "sometoken", token)

	// Cookie wins over the header
	req.AddCookie(&http.Cookie{Name: "crg_session", Value: "cookietoken"})
	token, err = auth.ExtractTokenFromRequest(req, "crg_session")
	assert.NoError(t, err)
	assert.Equal(t, "cookietoken", token)
}
