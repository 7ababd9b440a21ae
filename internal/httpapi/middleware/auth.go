package middleware

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/auth"
	"github.com/suPer8Hu/clinic-inbox/internal/common"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

const (
	UserIDKey = "user_id"
	CallerKey = "caller"
	ClaimsKey = "claims"
)

// UserLoader resolves the user behind a token subject. A nil user with nil error
// means the account no longer exists.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uint64) (*models.User, error)
}

type Denylist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Authenticate resolves the caller from an optional bearer token. A missing,
// malformed, revoked or orphaned token leaves the request anonymous and the
// route guard decides whether that is enough.
func Authenticate(secret string, users UserLoader, deny Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		rid := c.GetString(RequestIDKey)

		claims, err := auth.ParseJWT(token, secret)
		if err != nil {
			log.Printf("[Auth] rejected token request_id=%s err=%v", rid, err)
			c.Next()
			return
		}
		uid, err := claims.UserID()
		if err != nil {
			log.Printf("[Auth] bad token subject request_id=%s err=%v", rid, err)
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if deny != nil && claims.ID != "" {
			revoked, err := deny.IsRevoked(ctx, claims.ID)
			if err != nil {
				log.Printf("[Auth] denylist check failed request_id=%s err=%v", rid, err)
			} else if revoked {
				c.Next()
				return
			}
		}

		user, err := users.GetUserByID(ctx, uid)
		if err != nil {
			log.Printf("[Auth] load user failed request_id=%s user_id=%d err=%v", rid, uid, err)
			status, code, msg := common.Classify(err)
			common.Fail(c, status, code, msg)
			return
		}
		if user == nil {
			c.Next()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(CallerKey, user)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func bearerToken(h string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(h), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

// CallerFromContext returns the authenticated user, or nil for anonymous requests.
func CallerFromContext(c *gin.Context) *models.User {
	v, ok := c.Get(CallerKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

func ClaimsFromContext(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	cl, _ := v.(*auth.Claims)
	return cl
}

// RemainingTTL is how long the token in claims stays valid from now.
func RemainingTTL(claims *auth.Claims, now time.Time) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Sub(now)
}
