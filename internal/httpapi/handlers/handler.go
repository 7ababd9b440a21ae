package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/common"
	"github.com/suPer8Hu/clinic-inbox/internal/config"
	"github.com/suPer8Hu/clinic-inbox/internal/httpapi/middleware"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

// Revoker denylists token ids; satisfied by redisstore.Store.
type Revoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Uploader stores attachment bodies and returns their URL; satisfied by s3store.Store.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
}

type Handler struct {
	Repo     *clinic.Repo
	Svc      *clinic.Service
	Cfg      config.Config
	Revoker  Revoker
	Uploader Uploader
	now      func() time.Time
}

// NewHandler accepts a nil revoker or uploader; the matching feature is then disabled.
func NewHandler(svc *clinic.Service, cfg config.Config, rev Revoker, up Uploader) *Handler {
	return &Handler{
		Repo:     svc.Repo(),
		Svc:      svc,
		Cfg:      cfg,
		Revoker:  rev,
		Uploader: up,
		now:      time.Now,
	}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}

func (h *Handler) respond(c *gin.Context, data any, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	common.OK(c, data)
}

func (h *Handler) ack(c *gin.Context, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, code, msg := common.Classify(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[Handler] %s %s failed request_id=%s err=%v",
			c.Request.Method, c.FullPath(), c.GetString(middleware.RequestIDKey), err)
	}
	common.Fail(c, status, code, msg)
}

func invalid(c *gin.Context, msg string) {
	common.Fail(c, http.StatusBadRequest, common.CodeValidation, msg)
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		invalid(c, "invalid request: "+err.Error())
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		invalid(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// dateRange reads the required startDate and endDate query parameters (RFC 3339).
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, c.Query("startDate"))
	if err != nil {
		invalid(c, "invalid startDate")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query("endDate"))
	if err != nil {
		invalid(c, "invalid endDate")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func caller(c *gin.Context) *models.User {
	return middleware.CallerFromContext(c)
}
