package handlers

import "github.com/gin-gonic/gin"

func (h *Handler) ListNotes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ns, err := h.Repo.ListNotesByConversation(c.Request.Context(), id)
	h.respond(c, ns, err)
}

type createNoteReq struct {
	Note string `json:"note" binding:"required"`
}

func (h *Handler) CreateNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req createNoteReq
	if !bind(c, &req) {
		return
	}
	_, err := h.Svc.CreateNote(c.Request.Context(), caller(c), id, req.Note)
	h.ack(c, err)
}
