package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *httpHandler) handleListSessions(c *gin.Context) {
	docs, err := h.sessions.List(c.Request.Context(), c.Query("email"), c.Query("status"))
	if err != nil {
		h.internalError(c, "failed to list study sessions", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *httpHandler) handleGetSession(c *gin.Context) {
	doc, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "failed to load study session", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *httpHandler) handleCreateSession(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	created, err := h.sessions.Create(c.Request.Context(), doc)
	if err != nil {
		h.internalError(c, "failed to create study session", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *httpHandler) handleUpdateSession(c *gin.Context) {
	patch, ok := bindDocument(c)
	if !ok {
		return
	}

	modified, err := h.sessions.UpdateFields(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.internalError(c, "failed to update study session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

func (h *httpHandler) handleDeleteSession(c *gin.Context) {
	deleted, err := h.sessions.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "failed to delete study session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
