package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	approvalmodels "github.com/rowanberg/guestbook-server/internal/models/set_approval"
	"github.com/rowanberg/guestbook-server/internal/store"
)

// SetApproval flips an entry's public visibility. Guarded by the admin token
// middleware.
func (h *GuestbookHandler) SetApproval(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	var req approvalmodels.SetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Approved == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be a boolean"})
		return
	}

	entry, err := h.service.SetApproval(c.Request.Context(), id, *req.Approved)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}
	if err != nil {
		h.logger.Errorw("failed to update entry approval", "entry_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}

	c.JSON(http.StatusOK, entry)
}
