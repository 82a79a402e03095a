package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PublicFeed returns approved entries, newest first. The approval flag is not
// part of the projection.
func (h *GuestbookHandler) PublicFeed(c *gin.Context) {
	feed, err := h.service.PublicFeed(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to fetch public feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": feed})
}
