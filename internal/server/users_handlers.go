package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tutorhive/backend/internal/users"
)

func (h *httpHandler) handleGetUser(c *gin.Context) {
	doc, err := h.users.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.internalError(c, "failed to load user", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *httpHandler) handleListUsers(c *gin.Context) {
	docs, err := h.users.List(c.Request.Context(), c.Query("search"), c.Query("role"))
	if err != nil {
		h.internalError(c, "failed to list users", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *httpHandler) handleRegisterUser(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}
	socialLogin := c.Query("socialLogin") == "true"

	created, err := h.users.Register(c.Request.Context(), doc, socialLogin)
	if errors.Is(err, users.ErrAlreadyRegistered) {
		// Duplicate registrations answer a flat 200 message; clients
		// branch on the body, not the status.
		c.JSON(http.StatusOK, gin.H{"message": "User already registered"})
		return
	}
	if err != nil {
		h.internalError(c, "failed to register user", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *httpHandler) handleUpdateUser(c *gin.Context) {
	patch, ok := bindDocument(c)
	if !ok {
		return
	}

	modified, err := h.users.UpdateFields(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.internalError(c, "failed to update user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}
