package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminListEntries returns every entry including unapproved ones, newest
// first. Guarded by the admin token middleware.
func (h *GuestbookHandler) AdminListEntries(c *gin.Context) {
	entries, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to fetch entries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
