package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/common"
	"github.com/suPer8Hu/clinic-inbox/internal/rbac"
)

// Require guards a route with the tier registered for op.
func Require(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rbac.Check(op, CallerFromContext(c)); err != nil {
			status, code, msg := common.Classify(err)
			common.Fail(c, status, code, msg)
			return
		}
		c.Next()
	}
}
