package http

import (
	"net/http"

	"lingora/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError maps the domain sentinels onto HTTP statuses; anything
// unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	switch err {
	case entity.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case entity.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case entity.ErrBadRequest:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case entity.ErrInsufficientPoints:
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient points"})
	case entity.ErrDraftLimit:
		c.JSON(http.StatusBadRequest, gin.H{"error": "draft limit reached"})
	case entity.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": "post has unresolved activity"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
