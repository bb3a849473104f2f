package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventfesta/eventfesta-api/internal/pkg/jwthelper"
)

const (
	// SessionCookieName is the cookie the login handlers set.
	SessionCookieName = "session"

	// ClaimsContextKey is where VerifySession stores the parsed claims.
	ClaimsContextKey = "session_claims"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifySession accepts the session token either as a bearer Authorization
// header or as the session cookie, and attaches the parsed claims to the
// request context.
func (a *Authenticator) VerifySession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			if cookie, err := ctx.Cookie(SessionCookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "missing session token",
			})
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid session token",
			})
			return
		}

		ctx.Set(ClaimsContextKey, claims)
		ctx.Next()
	}
}

// RequireRole rejects sessions whose role claim differs from the required
// one. Must run after VerifySession.
func (a *Authenticator) RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := SessionClaims(ctx)
		if claims == nil || claims.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "insufficient permissions",
			})
			return
		}

		ctx.Next()
	}
}

// SessionClaims returns the claims VerifySession stored, or nil.
func SessionClaims(ctx *gin.Context) *jwthelper.SessionClaims {
	value, exists := ctx.Get(ClaimsContextKey)
	if !exists {
		return nil
	}

	claims, ok := value.(*jwthelper.SessionClaims)
	if !ok {
		return nil
	}

	return claims
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}
