package handlers

import "github.com/gin-gonic/gin"

func (h *Handler) AttendantMetrics(c *gin.Context) {
	aid, ok := pathID(c, "attendantId")
	if !ok {
		return
	}
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	ms, err := h.Repo.ListAttendantMetrics(c.Request.Context(), aid, start, end)
	h.respond(c, ms, err)
}

func (h *Handler) AllMetrics(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	ms, err := h.Repo.ListAllMetrics(c.Request.Context(), start, end)
	h.respond(c, ms, err)
}

func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.Svc.DashboardStats(c.Request.Context())
	h.respond(c, stats, err)
}

func (h *Handler) AttendantPerformance(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	perf, err := h.Svc.AttendantPerformance(c.Request.Context(), start, end)
	h.respond(c, perf, err)
}
