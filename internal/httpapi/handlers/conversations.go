package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

func (h *Handler) ListConversations(c *gin.Context) {
	cs, err := h.Repo.ListConversations(c.Request.Context())
	h.respond(c, cs, err)
}

// ListOpenConversations is the triage queue: urgent first, newest first within a priority.
func (h *Handler) ListOpenConversations(c *gin.Context) {
	cs, err := h.Repo.ListOpenConversations(c.Request.Context())
	h.respond(c, cs, err)
}

func (h *Handler) GetConversationByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	conv, err := h.Repo.GetConversationByID(c.Request.Context(), id)
	h.respond(c, conv, err)
}

func (h *Handler) ListConversationsByPatient(c *gin.Context) {
	pid, ok := pathID(c, "patientId")
	if !ok {
		return
	}
	cs, err := h.Repo.ListConversationsByPatient(c.Request.Context(), pid)
	h.respond(c, cs, err)
}

func (h *Handler) ListConversationsByAttendant(c *gin.Context) {
	aid, ok := pathID(c, "attendantId")
	if !ok {
		return
	}
	cs, err := h.Repo.ListConversationsByAttendant(c.Request.Context(), aid)
	h.respond(c, cs, err)
}

type createConversationReq struct {
	PatientID uint64          `json:"patientId" binding:"required"`
	ChannelID uint64          `json:"channelId" binding:"required"`
	Subject   *string         `json:"subject" binding:"omitempty,max=255"`
	Priority  models.Priority `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
}

func (h *Handler) CreateConversation(c *gin.Context) {
	var req createConversationReq
	if !bind(c, &req) {
		return
	}
	_, err := h.Svc.CreateConversation(c.Request.Context(), clinic.CreateConversationInput{
		PatientID: req.PatientID,
		ChannelID: req.ChannelID,
		Subject:   req.Subject,
		Priority:  req.Priority,
	})
	h.ack(c, err)
}

type updateConversationStatusReq struct {
	Status models.ConversationStatus `json:"status" binding:"required,oneof=open waiting closed escalated"`
}

func (h *Handler) UpdateConversationStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateConversationStatusReq
	if !bind(c, &req) {
		return
	}
	h.ack(c, h.Svc.UpdateConversationStatus(c.Request.Context(), id, req.Status))
}

type assignConversationReq struct {
	AttendantID uint64 `json:"attendantId" binding:"required"`
}

func (h *Handler) AssignConversation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req assignConversationReq
	if !bind(c, &req) {
		return
	}
	h.ack(c, h.Svc.AssignConversation(c.Request.Context(), id, req.AttendantID))
}
