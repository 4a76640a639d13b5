package works

import (
	"io"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /events  (SSE; one "snapshot" event per store replacement)
// ------------------------------
func (h *Handler) Events(c *gin.Context) {
	changes, stop := h.store.Changes()
	defer stop()

	ctx := c.Request.Context()
	c.SSEvent("snapshot", gin.H{"version": h.store.Snapshot().Version})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case v := <-changes:
			c.SSEvent("snapshot", gin.H{"version": v})
			return true
		}
	})
}
