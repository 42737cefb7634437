package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-lending/internal/auth"
	"library-lending/internal/middleware"
)

type stubVerifier struct {
	claims map[string]interface{}
	err    error
}

func (v stubVerifier) VerifyIDToken(_ context.Context, _ string) (*fbauth.Token, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &fbauth.Token{Claims: v.claims}, nil
}

func newHandler(t *testing.T) (http.Handler, *auth.Identity) {
	t.Helper()

	var captured auth.Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := auth.IdentityFromContext(r.Context())
		require.NoError(t, err)
		captured = identity
		w.WriteHeader(http.StatusOK)
	})
	return inner, &captured
}

func Test_Auth_AttachesVerifiedIdentity(t *testing.T) {
	// arrange
	inner, captured := newHandler(t)
	verifier := stubVerifier{claims: map[string]interface{}{
		"email": "u1@example.com",
		"roles": []interface{}{"admin", "user"},
	}}
	handler := middleware.Auth(verifier, auth.DefaultRolesClaim)(inner)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	// act
	handler.ServeHTTP(rec, req)

	// assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1@example.com", captured.Email)
	assert.Equal(t, []string{"admin", "user"}, captured.Roles)
}

func Test_Auth_Rejects_WithoutAuthorizationHeader(t *testing.T) {
	handler := middleware.Auth(stubVerifier{}, auth.DefaultRolesClaim)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler must not run")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/secure", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Auth_Rejects_NonBearerScheme(t *testing.T) {
	handler := middleware.Auth(stubVerifier{}, auth.DefaultRolesClaim)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler must not run")
		}))

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_Auth_Rejects_InvalidToken(t *testing.T) {
	handler := middleware.Auth(stubVerifier{err: errors.New("expired")}, auth.DefaultRolesClaim)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler must not run")
		}))

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_StubAuth_BuildsIdentityFromHeaders(t *testing.T) {
	inner, captured := newHandler(t)
	handler := middleware.StubAuth()(inner)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("X-User-Email", "dev@example.com")
	req.Header.Set("X-User-Roles", "admin,user")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev@example.com", captured.Email)
	assert.Equal(t, []string{"admin", "user"}, captured.Roles)
}
