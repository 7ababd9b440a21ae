package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/common"
	"github.com/suPer8Hu/clinic-inbox/internal/httpapi/middleware"
)

// Me returns the caller, or null for anonymous requests.
func (h *Handler) Me(c *gin.Context) {
	common.OK(c, caller(c))
}

// Logout denylists the presented token until it would have expired.
func (h *Handler) Logout(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil || claims.ID == "" {
		common.Success(c)
		return
	}
	if h.Revoker == nil {
		log.Printf("[Auth] logout without denylist request_id=%s jti=%s", c.GetString(middleware.RequestIDKey), claims.ID)
		common.Success(c)
		return
	}
	ttl := middleware.RemainingTTL(claims, h.now())
	h.ack(c, h.Revoker.RevokeToken(c.Request.Context(), claims.ID, ttl))
}
