package http

import (
	"net/http"

	"lingora/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CountryHandler struct {
	countryUseCase usecase.CountryUseCase
}

func NewCountryHandler(countryUseCase usecase.CountryUseCase) *CountryHandler {
	return &CountryHandler{countryUseCase: countryUseCase}
}

// ListCountries godoc
// @Summary      List countries
// @Tags         countries
// @Produce      json
// @Success      200  {array}  entity.Country
// @Router       /countries [get]
func (h *CountryHandler) ListCountries(c *gin.Context) {
	countries, err := h.countryUseCase.ListCountries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": countries})
}
