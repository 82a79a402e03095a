package handlers

import (
	"go.uber.org/zap"

	"github.com/rowanberg/guestbook-server/internal/guestbook"
)

type GuestbookHandler struct {
	service *guestbook.Service
	logger  *zap.SugaredLogger
}

// NewGuestbookHandler creates a new guestbook handler
func NewGuestbookHandler(service *guestbook.Service, logger *zap.SugaredLogger) *GuestbookHandler {
	return &GuestbookHandler{
		service: service,
		logger:  logger,
	}
}
