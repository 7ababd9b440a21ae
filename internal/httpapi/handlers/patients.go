package handlers

import "github.com/gin-gonic/gin"

// MyPatientProfile returns the caller's patient record, null when there is none.
func (h *Handler) MyPatientProfile(c *gin.Context) {
	p, err := h.Repo.GetPatientByUserID(c.Request.Context(), caller(c).ID)
	h.respond(c, p, err)
}

func (h *Handler) ListPatients(c *gin.Context) {
	ps, err := h.Repo.ListPatients(c.Request.Context())
	h.respond(c, ps, err)
}

func (h *Handler) GetPatientByUserID(c *gin.Context) {
	uid, ok := pathID(c, "userId")
	if !ok {
		return
	}
	p, err := h.Repo.GetPatientByUserID(c.Request.Context(), uid)
	h.respond(c, p, err)
}
