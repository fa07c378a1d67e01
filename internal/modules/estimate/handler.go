package estimate

import (
	"errors"
	"net/http"
	"strconv"

	"tourquote/internal/modules/pricing"
	"tourquote/internal/pkg/response"
	"tourquote/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/estimates", h.Create)
	rg.GET("/estimates", h.List)
	rg.GET("/estimates/:id", h.Get)
	rg.PATCH("/estimates/:id", h.Update)
	rg.DELETE("/estimates/:id", h.Delete)
	rg.POST("/estimates/:id/price", h.Price)
	rg.POST("/estimates/:id/adjust", h.Adjust)
	rg.POST("/activities/suggest", h.Suggest)
}

func currentUserID(c *gin.Context) int64 {
	v, _ := c.Get("user_id")
	id, _ := v.(int64)
	return id
}

func estimateID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid estimate ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Estimate not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Estimate belongs to another user")
	case errors.Is(err, pricing.ErrValidation):
		response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	default:
		var ie *pricing.IntegrityError
		if errors.As(err, &ie) {
			response.Error(c, http.StatusInternalServerError, "INTEGRITY_ERROR", ie.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid estimate data", fields)
		return
	}

	e, err := h.service.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"estimate": e})
}

func (h *Handler) List(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = (n - 1) * limit
		}
	}

	estimates, total, err := h.service.List(c.Request.Context(), currentUserID(c), limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"estimates": estimates,
		"pagination": gin.H{
			"total": total,
			"limit": limit,
			"page":  offset/limit + 1,
		},
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"estimate": e})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	var req UpdateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	e, err := h.service.Update(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"estimate": e})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Price(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	mode, err := pricing.ParseDisplayMode(c.Query("mode"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_MODE", "Display mode must be with_markup or without_markup")
		return
	}

	totals, err := h.service.Price(c.Request.Context(), currentUserID(c), id, mode)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"totals": totals})
}

func (h *Handler) Adjust(c *gin.Context) {
	id, ok := estimateID(c)
	if !ok {
		return
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	result, err := h.service.Adjust(c.Request.Context(), currentUserID(c), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"adjustment": result})
}

// Suggest returns an advisory pricing guess for an activity name. The
// caller reviews it before sending the values back as ordinary input.
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid suggestion request", fields)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"suggestion": pricing.SuggestActivityPricing(req.Name)})
}
