package http

import (
	"net/http"
	"strconv"

	"lingora/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PointsHandler struct {
	pointsUseCase usecase.PointsUseCase
}

func NewPointsHandler(pointsUseCase usecase.PointsUseCase) *PointsHandler {
	return &PointsHandler{pointsUseCase: pointsUseCase}
}

// Balance godoc
// @Summary      Current point balance
// @Tags         points
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Router       /points/balance [get]
func (h *PointsHandler) Balance(c *gin.Context) {
	balance, err := h.pointsUseCase.Balance(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": balance})
}

// History godoc
// @Summary      Point ledger history
// @Description  Newest-first ledger entries for the caller.
// @Tags         points
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200  {array}  entity.PointEntry
// @Router       /points/history [get]
func (h *PointsHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.pointsUseCase.History(c.GetString("user_id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
