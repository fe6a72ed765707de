package schedule

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bottling-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the schedule service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches planning routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/plan", h.plan)
	rg.GET("/lines", h.lines)
	rg.GET("/mixers", h.mixers)
	rg.POST("/orders", h.createOrder)
	rg.DELETE("/orders/:id", h.deleteOrder)
	rg.POST("/orders/:id/assign", h.assign)
	rg.POST("/orders/:id/unassign", h.unassign)
	rg.POST("/orders/:id/lock", h.lock)
	rg.POST("/orders/:id/unlock", h.unlock)
	rg.POST("/lines/:lineId/reorder", h.reorder)
}

func (h *Handler) plan(c *gin.Context) {
	plan := h.Svc.Plan()
	respond.JSON(c, http.StatusOK, toPlanResponse(plan, h.Svc.Conflicts()))
}

func (h *Handler) lines(c *gin.Context) {
	respond.JSON(c, http.StatusOK, Lines())
}

func (h *Handler) mixers(c *gin.Context) {
	respond.JSON(c, http.StatusOK, Mixers())
}

type createOrderRequest struct {
	ProductionOrderNumber string  `json:"productionOrderNumber"`
	ProductID             string  `json:"productId"`
	VolumeLiters          float64 `json:"volumeLiters"`
	BottleSize            string  `json:"bottleSize"`
	LineID                string  `json:"lineId"`
	StartAt               string  `json:"startAt"`
}

func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	order, err := h.Svc.CreateOrder(c.Request.Context(), CreateOrderInput{
		ProductionOrderNumber: req.ProductionOrderNumber,
		ProductID:             req.ProductID,
		VolumeLiters:          req.VolumeLiters,
		BottleSize:            BottleSize(req.BottleSize),
		LineID:                req.LineID,
		StartAt:               req.StartAt,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	c.Set("orderId", order.ID)
	respond.JSON(c, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) deleteOrder(c *gin.Context) {
	if err := h.Svc.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type assignRequest struct {
	MixerID string `json:"mixerId"`
}

func (h *Handler) assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	order, err := h.Svc.Assign(c.Request.Context(), c.Param("id"), req.MixerID)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) unassign(c *gin.Context) {
	order, err := h.Svc.Unassign(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) lock(c *gin.Context) {
	h.setLocked(c, true)
}

func (h *Handler) unlock(c *gin.Context) {
	h.setLocked(c, false)
}

func (h *Handler) setLocked(c *gin.Context, locked bool) {
	order, err := h.Svc.SetLocked(c.Request.Context(), c.Param("id"), locked)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toOrderResponse(order))
}

type reorderRequest struct {
	MovedOrderID  string `json:"movedOrderId"`
	TargetOrderID string `json:"targetOrderId"`
}

func (h *Handler) reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.MovedOrderID == "" || req.TargetOrderID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "movedOrderId and targetOrderId are required", nil)
		return
	}

	plan, err := h.Svc.Reorder(c.Request.Context(), c.Param("lineId"), req.MovedOrderID, req.TargetOrderID)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toPlanResponse(plan, h.Svc.Conflicts()))
}

// RespondError maps domain errors to HTTP responses. Shared with the live-edit
// handler, which reuses this package's error taxonomy.
func RespondError(c *gin.Context, err error) {
	var validation *ValidationError
	var conflict *ConflictError
	var state *StateError

	switch {
	case errors.As(err, &validation):
		respond.Error(c, http.StatusBadRequest, "validation_error", validation.Message, gin.H{"code": validation.Code})
	case errors.As(err, &conflict):
		respond.Error(c, http.StatusUnprocessableEntity, "conflict", err.Error(), gin.H{
			"reason":   conflict.Reason,
			"blockIds": conflict.BlockIDs,
		})
	case errors.As(err, &state):
		respond.Error(c, http.StatusConflict, "state_error", state.Message, nil)
	case errors.Is(err, ErrVersionConflict):
		respond.Error(c, http.StatusConflict, "version_conflict", "session was modified by someone else", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected error", nil)
	}
}
