package linerates

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bottling-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the line-rate service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches line-rate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/line-rates", h.get)
	rg.PUT("/line-rates", h.put)
}

func (h *Handler) get(c *gin.Context) {
	rates, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load line rates", nil)
		return
	}
	respond.JSON(c, http.StatusOK, rates)
}

func (h *Handler) put(c *gin.Context) {
	var req Rates
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	stored, err := h.Svc.Put(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store line rates", nil)
		return
	}
	respond.JSON(c, http.StatusOK, stored)
}
