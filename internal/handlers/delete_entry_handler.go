package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rowanberg/guestbook-server/internal/store"
)

// DeleteEntry handles the permanent deletion of an entry. Photos in object
// storage are not cleaned up. Guarded by the admin token middleware.
func (h *GuestbookHandler) DeleteEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry id"})
		return
	}

	err = h.service.Remove(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}
	if err != nil {
		h.logger.Errorw("failed to delete entry", "entry_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isDeleted": true, "message": "Entry deleted successfully"})
}
