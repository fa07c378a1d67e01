package flightquote

import (
	"errors"
	"net/http"

	"tourquote/internal/domain"
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
	rg.POST("/flights/quote", h.Quote)
	rg.POST("/flights/alternatives", h.Alternatives)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownCabinClass):
		response.Error(c, http.StatusBadRequest, "INVALID_CABIN_CLASS", "Unknown cabin class")
	case errors.Is(err, pricing.ErrValidation):
		response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}

func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid flight data", fields)
		return
	}

	flight, err := req.toDomain()
	if err != nil {
		h.handleError(c, err)
		return
	}

	quote, err := h.service.Quote(c.Request.Context(), flight)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}

func (h *Handler) Alternatives(c *gin.Context) {
	var req AlternativesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid route request", fields)
		return
	}

	routeReq, err := req.toRouteRequest()
	if err != nil {
		h.handleError(c, err)
		return
	}

	options, cached, err := h.service.Alternatives(c.Request.Context(), routeReq)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, AlternativesResponse{Options: options, Cached: cached})
}
