package handlers

import "github.com/gin-gonic/gin"

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Repo.ListUsers(c.Request.Context())
	h.respond(c, users, err)
}

func (h *Handler) GetUserByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.Repo.GetUserByID(c.Request.Context(), id)
	h.respond(c, user, err)
}
