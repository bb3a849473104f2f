package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventfesta/eventfesta-api/internal/domain"
	"github.com/eventfesta/eventfesta-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func newProtectedRouter(requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authenticator := NewAuthenticator(testSigningKey)
	handlers := []gin.HandlerFunc{authenticator.VerifySession()}
	if requiredRole != "" {
		handlers = append(handlers, authenticator.RequireRole(requiredRole))
	}
	handlers = append(handlers, func(ctx *gin.Context) {
		claims := SessionClaims(ctx)
		ctx.JSON(http.StatusOK, gin.H{"account_id": claims.AccountID, "role": claims.Role})
	})

	router.GET("/protected", handlers...)

	return router
}

func mustToken(t *testing.T, role string) string {
	t.Helper()

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, "a@example.com", role)
	require.NoError(t, err)

	return token
}

func TestVerifySession_BearerHeader(t *testing.T) {
	router := newProtectedRouter("")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, domain.RoleParticipant))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"account_id":42`)
}

func TestVerifySession_Cookie(t *testing.T) {
	router := newProtectedRouter("")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: mustToken(t, domain.RoleParticipant)})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestVerifySession_MissingToken(t *testing.T) {
	router := newProtectedRouter("")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":false`)
}

func TestVerifySession_TamperedToken(t *testing.T) {
	router := newProtectedRouter("")

	token, err := jwthelper.GenerateToken([]byte("another-key"), 42, "a@example.com", domain.RoleParticipant)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRequireRole(t *testing.T) {
	router := newProtectedRouter(domain.RoleOrganization)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, domain.RoleOrganization))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRequireRole_Mismatch(t *testing.T) {
	router := newProtectedRouter(domain.RoleOrganization)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, domain.RoleParticipant))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
