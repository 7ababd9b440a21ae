package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/clinic-inbox/internal/common"
)

const maxAttachmentSize = 10 << 20

// UploadAttachment stores a multipart "file" and returns its URL for use as a
// message attachmentUrl.
func (h *Handler) UploadAttachment(c *gin.Context) {
	if h.Uploader == nil {
		h.fail(c, common.ErrStoreUnavailable)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAttachmentSize+(1<<20))

	fh, err := c.FormFile("file")
	if err != nil {
		invalid(c, "file is required")
		return
	}
	if fh.Size > maxAttachmentSize {
		invalid(c, fmt.Sprintf("file exceeds %d bytes", maxAttachmentSize))
		return
	}
	f, err := fh.Open()
	if err != nil {
		invalid(c, "unreadable file")
		return
	}
	defer f.Close()

	url, err := h.Uploader.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	h.respond(c, gin.H{"url": url}, err)
}
