package http

import (
	"net/http"
	"strconv"
	"time"

	"lingora/internal/entity"
	"lingora/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	bannerUseCase usecase.BannerUseCase
}

func NewBannerHandler(bannerUseCase usecase.BannerUseCase) *BannerHandler {
	return &BannerHandler{bannerUseCase: bannerUseCase}
}

type BannerRequest struct {
	Position       int       `json:"position" binding:"required"`
	CompanyName    string    `json:"company_name" binding:"required"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"image_url" binding:"required"`
	LinkURL        string    `json:"link_url"`
	ContractPeriod int       `json:"contract_period" binding:"required"`
	ContractDate   time.Time `json:"contract_date"`
	StartDate      time.Time `json:"start_date" binding:"required"`
	EndDate        time.Time `json:"end_date" binding:"required"`
	Status         string    `json:"status"`
}

func (r *BannerRequest) toEntity() *entity.AdBanner {
	return &entity.AdBanner{
		Position:       r.Position,
		CompanyName:    r.CompanyName,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		LinkURL:        r.LinkURL,
		ContractPeriod: r.ContractPeriod,
		ContractDate:   r.ContractDate,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Status:         entity.AdBannerStatus(r.Status),
	}
}

// ListBanners godoc
// @Summary      List ad banners
// @Tags         banners
// @Produce      json
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Param        active query bool false "Active banners only"
// @Success      200  {object}  map[string]interface{}
// @Router       /ad-banners [get]
func (h *BannerHandler) ListBanners(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	activeOnly := c.Query("active") == "true"

	banners, total, err := h.bannerUseCase.ListBanners(page, limit, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banners, "total": total})
}

// GetBanner godoc
// @Summary      Get an ad banner
// @Tags         banners
// @Produce      json
// @Param        id path string true "Banner ID"
// @Success      200  {object}  entity.AdBanner
// @Failure      404  {object}  map[string]string
// @Router       /ad-banners/{id} [get]
func (h *BannerHandler) GetBanner(c *gin.Context) {
	banner, err := h.bannerUseCase.GetBanner(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

// CreateBanner godoc
// @Summary      Create an ad banner
// @Tags         banners
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BannerRequest true "Banner payload"
// @Success      201  {object}  entity.AdBanner
// @Failure      400  {object}  map[string]string
// @Router       /ad-banners [post]
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	banner, err := h.bannerUseCase.CreateBanner(req.toEntity())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, banner)
}

// UpdateBanner godoc
// @Summary      Update an ad banner
// @Tags         banners
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Param        request body BannerRequest true "Banner payload"
// @Success      200  {object}  entity.AdBanner
// @Failure      404  {object}  map[string]string
// @Router       /ad-banners/{id} [patch]
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	banner, err := h.bannerUseCase.UpdateBanner(c.Param("id"), req.toEntity())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

// DeleteBanner godoc
// @Summary      Delete an ad banner
// @Tags         banners
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /ad-banners/{id} [delete]
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	if err := h.bannerUseCase.DeleteBanner(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "banner deleted"})
}
