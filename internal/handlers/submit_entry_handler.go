package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rowanberg/guestbook-server/internal/guestbook"
	"github.com/rowanberg/guestbook-server/internal/media"
	submitmodels "github.com/rowanberg/guestbook-server/internal/models/submit_entry"
)

// SubmitEntry handles creation of new guestbook entries from the public form.
// Expects a multipart form with name, note, an optional private flag and up
// to five photos.
func (h *GuestbookHandler) SubmitEntry(c *gin.Context) {
	name := c.PostForm("name")
	note := c.PostForm("note")
	private := c.PostForm("private") == "true"

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	files := form.File["photos"]
	if len(files) > guestbook.MaxPhotosPerEntry {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("At most %d photos are allowed", guestbook.MaxPhotosPerEntry),
		})
		return
	}

	photos := make([]guestbook.PhotoUpload, 0, len(files))
	for _, f := range files {
		// Oversized files are dropped here rather than read into memory;
		// a failed photo never fails the submission.
		if f.Size > media.MaxFileSize {
			h.logger.Warnw("dropping oversized photo", "filename", f.Filename, "size", f.Size)
			continue
		}
		src, err := f.Open()
		if err != nil {
			h.logger.Warnw("failed to open uploaded photo", "filename", f.Filename, "error", err)
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			h.logger.Warnw("failed to read uploaded photo", "filename", f.Filename, "error", err)
			continue
		}
		photos = append(photos, guestbook.PhotoUpload{
			Data:     data,
			MimeType: f.Header.Get("Content-Type"),
		})
	}

	entry, err := h.service.Submit(c.Request.Context(), guestbook.SubmitInput{
		Name:    name,
		Note:    note,
		Photos:  photos,
		Private: private,
	})
	if errors.Is(err, guestbook.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Errorw("failed to create entry", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	response := submitmodels.SubmitEntryResponse{
		ID:         entry.ID,
		Name:       entry.Name,
		PhotoCount: len(entry.Photos),
		CreatedAt:  entry.CreatedAt,
		Message:    "Thank you for signing the guestbook!",
	}
	c.JSON(http.StatusCreated, response)
}
