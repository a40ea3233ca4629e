package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"lingora/pkg/logger"
	"lingora/pkg/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct {
	s3Client *s3.Client
	logger   *logger.Logger
}

func NewMediaHandler(s3Client *s3.Client, logger *logger.Logger) *MediaHandler {
	return &MediaHandler{s3Client: s3Client, logger: logger}
}

// Upload godoc
// @Summary      Upload a media file
// @Description  Stores the file and returns the URL to reference from a post's media list.
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Media file"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /media/upload [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open file"})
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	mediaType := "IMAGE"
	if strings.HasPrefix(contentType, "video/") {
		mediaType = "VIDEO"
	} else if strings.HasPrefix(contentType, "audio/") {
		mediaType = "AUDIO"
	}

	fileKey := fmt.Sprintf("media/%s/%s%s", userID, uuid.New().String(), filepath.Ext(file.Filename))
	url, err := h.s3Client.UploadFile(fileKey, src, contentType)
	if err != nil {
		h.logger.Error("Failed to upload media: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"media_url": url, "media_type": mediaType})
}
