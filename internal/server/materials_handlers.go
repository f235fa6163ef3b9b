package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *httpHandler) handleListMaterials(c *gin.Context) {
	docs, err := h.materials.ListByTutor(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.internalError(c, "failed to list session materials", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *httpHandler) handleListSessionMaterials(c *gin.Context) {
	docs, err := h.materials.ListBySession(c.Request.Context(), c.Query("sessionId"))
	if err != nil {
		h.internalError(c, "failed to list materials for session", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *httpHandler) handleGetMaterial(c *gin.Context) {
	doc, err := h.materials.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "failed to load session material", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *httpHandler) handleCreateMaterial(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	created, err := h.materials.Create(c.Request.Context(), doc)
	if err != nil {
		h.internalError(c, "failed to create session material", err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *httpHandler) handleUpdateMaterial(c *gin.Context) {
	patch, ok := bindDocument(c)
	if !ok {
		return
	}

	modified, err := h.materials.UpdateFields(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.internalError(c, "failed to update session material", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

func (h *httpHandler) handleDeleteMaterial(c *gin.Context) {
	deleted, err := h.materials.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "failed to delete session material", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
