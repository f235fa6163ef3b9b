package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The :id path parameter on the ratings list is a study session id, not a
// rating id. Clients already depend on this shape.
func (h *httpHandler) handleListRatings(c *gin.Context) {
	docs, err := h.ratings.ListBySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internalError(c, "failed to list ratings", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *httpHandler) handleCreateRating(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	created, err := h.ratings.Create(c.Request.Context(), doc)
	if err != nil {
		h.internalError(c, "failed to create rating", err)
		return
	}
	c.JSON(http.StatusOK, created)
}
