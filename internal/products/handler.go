package products

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bottling-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the product service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches product routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.list)
	rg.POST("/products", h.create)
	rg.PUT("/products/:id", h.update)
	rg.DELETE("/products/:id", h.remove)
}

// ProductResponse is the outward-facing representation of a product.
type ProductResponse struct {
	ProductID                string    `json:"productId"`
	Name                     string    `json:"name"`
	ArticleNumber            string    `json:"articleNumber"`
	ManufacturingDurationMin int       `json:"manufacturingDurationMin"`
	CreatedAt                time.Time `json:"createdAt"`
}

func toResponse(p Product) ProductResponse {
	return ProductResponse{
		ProductID:                p.ID,
		Name:                     p.Name,
		ArticleNumber:            p.ArticleNumber,
		ManufacturingDurationMin: p.ManufacturingDurationMin,
		CreatedAt:                p.CreatedAt,
	}
}

type productRequest struct {
	Name                     string `json:"name"`
	ArticleNumber            string `json:"articleNumber"`
	ManufacturingDurationMin int    `json:"manufacturingDurationMin"`
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list products", nil)
		return
	}

	resp := make([]ProductResponse, 0, len(all))
	for _, p := range all {
		resp = append(resp, toResponse(p))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p, err := h.Svc.Create(c.Request.Context(), req.Name, req.ArticleNumber, req.ManufacturingDurationMin)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(p))
}

func (h *Handler) update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.ArticleNumber, req.ManufacturingDurationMin)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(p))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", "name, article number and a positive manufacturing duration are required", nil)
	case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrDuplicateNumber):
		respond.Error(c, http.StatusConflict, "duplicate", err.Error(), nil)
	case errors.Is(err, ErrInUse):
		respond.Error(c, http.StatusConflict, "in_use", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store product", nil)
	}
}
