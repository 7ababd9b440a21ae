package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/models"
	"gorm.io/datatypes"
)

func (h *Handler) ListChannels(c *gin.Context) {
	chs, err := h.Repo.ListActiveChannels(c.Request.Context())
	h.respond(c, chs, err)
}

func (h *Handler) GetChannelByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ch, err := h.Repo.GetChannelByID(c.Request.Context(), id)
	h.respond(c, ch, err)
}

type createChannelReq struct {
	Name   string             `json:"name" binding:"required,max=100"`
	Type   models.ChannelType `json:"type" binding:"required,oneof=whatsapp instagram facebook email webchat"`
	Config json.RawMessage    `json:"config"`
}

func (h *Handler) CreateChannel(c *gin.Context) {
	var req createChannelReq
	if !bind(c, &req) {
		return
	}
	ch := &models.Channel{Name: req.Name, Type: req.Type}
	if len(req.Config) > 0 && string(req.Config) != "null" {
		ch.Config = datatypes.JSON(req.Config)
	}
	h.ack(c, h.Repo.CreateChannel(c.Request.Context(), ch))
}
