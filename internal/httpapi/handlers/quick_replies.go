package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

func (h *Handler) ListQuickReplies(c *gin.Context) {
	qs, err := h.Repo.ListQuickReplies(c.Request.Context())
	h.respond(c, qs, err)
}

func (h *Handler) ListQuickRepliesByCategory(c *gin.Context) {
	qs, err := h.Repo.ListQuickRepliesByCategory(c.Request.Context(), c.Param("category"))
	h.respond(c, qs, err)
}

type createQuickReplyReq struct {
	Title    string  `json:"title" binding:"required,max=100"`
	Content  string  `json:"content" binding:"required"`
	Category *string `json:"category" binding:"omitempty,max=50"`
}

func (h *Handler) CreateQuickReply(c *gin.Context) {
	var req createQuickReplyReq
	if !bind(c, &req) {
		return
	}
	q := &models.QuickReply{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		CreatedBy: caller(c).ID,
	}
	h.ack(c, h.Repo.CreateQuickReply(c.Request.Context(), q))
}
