package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marosa/locator-service/internal/brochure"
)

// BrochureHandler handles brochure HTTP endpoints
type BrochureHandler struct {
	svc         *brochure.Service
	defaultSlug string
}

// NewBrochureHandler creates a new brochure handler. defaultSlug, when
// non-empty, is served for requests that omit the slug parameter.
func NewBrochureHandler(svc *brochure.Service, defaultSlug string) *BrochureHandler {
	return &BrochureHandler{svc: svc, defaultSlug: defaultSlug}
}

// GetBrochureRequest represents query parameters for fetching a brochure
type GetBrochureRequest struct {
	Slug     string `form:"slug"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"pageSize" binding:"min=0,max=50"`
}

// GetBrochureResponse represents one window of brochure pages
type GetBrochureResponse struct {
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	PageCount int             `json:"pageCount"`
	Pages     []brochure.Page `json:"pages"`
}

// GetBrochure returns brochure pages
// @Summary Get brochure pages
// @Description Returns the brochure manifest window for the requested pages. Without page/pageSize the whole brochure is returned.
// @Tags brochure
// @Produce json
// @Param slug query string false "Brochure slug (defaults to the configured current brochure)"
// @Param page query int false "1-based page window" default(1) minimum(1)
// @Param pageSize query int false "Pages per window" maximum(50)
// @Success 200 {object} GetBrochureResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Brochure not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/brochure [get]
func (h *BrochureHandler) GetBrochure(c *gin.Context) {
	var req GetBrochureRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Slug == "" {
		req.Slug = h.defaultSlug
	}
	if req.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug is required"})
		return
	}

	ctx := c.Request.Context()

	manifest, err := h.svc.Get(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, brochure.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brochure not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load brochure"})
		return
	}

	pages, total, err := h.svc.GetPages(ctx, req.Slug, req.Page, req.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load brochure pages"})
		return
	}

	c.JSON(http.StatusOK, GetBrochureResponse{
		Slug:      manifest.Slug,
		Title:     manifest.Title,
		PageCount: total,
		Pages:     pages,
	})
}
