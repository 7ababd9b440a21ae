package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
)

func (h *Handler) ListMessages(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ms, err := h.Repo.ListMessagesByConversation(c.Request.Context(), id)
	h.respond(c, ms, err)
}

// content must be present but may be empty, as for a captionless attachment.
type sendMessageReq struct {
	ConversationID uint64             `json:"conversationId" binding:"required"`
	Content        *string            `json:"content" binding:"required"`
	MessageType    models.MessageType `json:"messageType" binding:"omitempty,oneof=text image file audio video"`
	AttachmentURL  *string            `json:"attachmentUrl"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageReq
	if !bind(c, &req) {
		return
	}
	_, err := h.Svc.SendMessage(c.Request.Context(), caller(c), clinic.SendMessageInput{
		ConversationID: req.ConversationID,
		Content:        *req.Content,
		MessageType:    req.MessageType,
		AttachmentURL:  req.AttachmentURL,
	})
	h.ack(c, err)
}

func (h *Handler) MarkMessagesAsRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.ack(c, h.Repo.MarkMessagesAsRead(c.Request.Context(), id))
}

func (h *Handler) UnreadCount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	n, err := h.Repo.CountUnreadMessages(c.Request.Context(), id)
	h.respond(c, n, err)
}
