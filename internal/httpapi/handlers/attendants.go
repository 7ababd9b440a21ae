package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

func (h *Handler) ListAttendants(c *gin.Context) {
	as, err := h.Repo.ListAttendants(c.Request.Context())
	h.respond(c, as, err)
}

func (h *Handler) MyAttendantProfile(c *gin.Context) {
	a, err := h.Repo.GetAttendantByUserID(c.Request.Context(), caller(c).ID)
	h.respond(c, a, err)
}

type updateAttendantStatusReq struct {
	Status models.AttendantStatus `json:"status" binding:"required,oneof=available busy offline"`
}

func (h *Handler) UpdateAttendantStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateAttendantStatusReq
	if !bind(c, &req) {
		return
	}
	h.ack(c, h.Repo.UpdateAttendantStatus(c.Request.Context(), id, req.Status))
}
