package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"brokerage/internal/domain"
	"brokerage/internal/pkg/response"
	"brokerage/internal/pkg/validator"
	"brokerage/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	props := rg.Group("/properties")
	{
		props.POST("", h.CreateProperty)
		props.GET("", h.ListProperties)
		props.GET("/:id", h.GetProperty)
		props.PATCH("/:id/pricing", h.UpdatePricing)
		props.POST("/:id/quote", h.QuotePrice)
	}
}

// CreateProperty handles POST /api/v1/properties
func (h *Handler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.CreateProperty(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"property": p})
}

// ListProperties handles GET /api/v1/properties?operation=rent&city=La+Plata
func (h *Handler) ListProperties(c *gin.Context) {
	f := repository.PropertyFilter{
		Operation: domain.PropertyOperation(c.Query("operation")),
		City:      c.Query("city"),
	}
	f.Limit, f.Offset = pagination(c)

	items, total, err := h.service.ListProperties(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.List(c, items, total, f.Limit, f.Offset)
}

// GetProperty handles GET /api/v1/properties/:id
func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.service.GetProperty(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": p})
}

// UpdatePricing handles PATCH /api/v1/properties/:id/pricing
func (h *Handler) UpdatePricing(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.UpdatePricing(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": p})
}

// QuotePrice handles POST /api/v1/properties/:id/quote. An empty body quotes
// the stored pricing.
func (h *Handler) QuotePrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req QuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	q, err := h.service.QuotePrice(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quote": q})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

func handleError(c *gin.Context, err error) {
	var ve *validator.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Validation(c, ve)
	case errors.Is(err, ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, ErrDuplicateCode):
		response.Error(c, http.StatusConflict, "DUPLICATE_CODE", "Property code already in use")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
