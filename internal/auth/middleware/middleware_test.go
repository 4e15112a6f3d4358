package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	auth "github.com/mathhub/mathhub/internal/auth/middleware"
	"github.com/mathhub/mathhub/internal/rbac"
)

func TestIssueAndParse(t *testing.T) {
	a := auth.NewAuthService("test-secret")
	tok, err := a.IssueJWT("u1", "learner")
	require.NoError(t, err)

	c, err := a.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "u1", c.Subject)
	require.Equal(t, "learner", c.Role)

	_, err = auth.NewAuthService("other-secret").Parse(tok)
	require.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	a := auth.NewAuthService("test-secret")
	var gotSub, gotRole string
	h := auth.JWTMiddleware(a)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = auth.SubjectFromContext(r.Context())
		gotRole = rbac.RoleFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := a.IssueJWT("u7", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "u7", gotSub)
	require.Equal(t, "admin", gotRole)
}
