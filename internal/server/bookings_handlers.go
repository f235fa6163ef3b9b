package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutorhive/backend/internal/bookings"
)

func (h *httpHandler) handleListBookings(c *gin.Context) {
	docs, err := h.bookings.ListByStudent(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.internalError(c, "failed to list booked sessions", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *httpHandler) handleGetBooking(c *gin.Context) {
	doc, err := h.bookings.Get(c.Request.Context(), c.Query("id"))
	if err != nil {
		h.internalError(c, "failed to load booked session", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *httpHandler) handleCreateBooking(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	created, err := h.bookings.Create(c.Request.Context(), doc)
	if errors.Is(err, bookings.ErrDuplicateBooking) {
		c.JSON(http.StatusConflict, gin.H{"message": "Session already booked"})
		return
	}
	if err != nil {
		h.internalError(c, "failed to create booked session", err)
		return
	}
	c.JSON(http.StatusOK, created)
}
