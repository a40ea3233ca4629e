package http

import (
	"net/http"
	"strconv"

	"lingora/internal/usecase"

	"github.com/gin-gonic/gin"
)

type WordHandler struct {
	wordUseCase usecase.WordUseCase
}

func NewWordHandler(wordUseCase usecase.WordUseCase) *WordHandler {
	return &WordHandler{wordUseCase: wordUseCase}
}

type CreateWordRequest struct {
	Word         string `json:"word" binding:"required"`
	PartOfSpeech string `json:"part_of_speech"`
}

// TodayWords godoc
// @Summary      Today's practice words
// @Description  The words selected for today's rotation. Triggers the rotation if it has not run yet.
// @Tags         words
// @Produce      json
// @Success      200  {array}  entity.SelectedWord
// @Router       /words/today [get]
func (h *WordHandler) TodayWords(c *gin.Context) {
	selections, err := h.wordUseCase.TodayWords(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": selections})
}

// Rotate godoc
// @Summary      Force the daily word rotation
// @Tags         words
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.SelectedWord
// @Router       /words/rotate [post]
func (h *WordHandler) Rotate(c *gin.Context) {
	selections, err := h.wordUseCase.RotateDaily(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": selections})
}

// CreateWord godoc
// @Summary      Add a word to the rotation pool
// @Tags         words
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateWordRequest true "Word payload"
// @Success      201  {object}  entity.Word
// @Router       /words [post]
func (h *WordHandler) CreateWord(c *gin.Context) {
	var req CreateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	word, err := h.wordUseCase.CreateWord(req.Word, req.PartOfSpeech)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, word)
}

// ListWords godoc
// @Summary      List the word pool
// @Tags         words
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /words [get]
func (h *WordHandler) ListWords(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	words, total, err := h.wordUseCase.ListWords(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": words, "total": total})
}
