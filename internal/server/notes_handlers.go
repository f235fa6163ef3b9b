package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *httpHandler) handleListNotes(c *gin.Context) {
	docs, err := h.notes.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.internalError(c, "failed to list notes", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *httpHandler) handleCreateNote(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	created, err := h.notes.Create(c.Request.Context(), doc)
	if err != nil {
		h.internalError(c, "failed to create note", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *httpHandler) handleUpdateNote(c *gin.Context) {
	patch, ok := bindDocument(c)
	if !ok {
		return
	}

	modified, err := h.notes.UpdateFields(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.internalError(c, "failed to update note", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

func (h *httpHandler) handleDeleteNote(c *gin.Context) {
	deleted, err := h.notes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "failed to delete note", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
