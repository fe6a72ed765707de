package liveedit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bottling-backend/internal/schedule"
	"bottling-backend/internal/shared/server/respond"
)

// SessionResponse is the outward-facing representation of a session.
type SessionResponse struct {
	SessionID        string     `json:"sessionId"`
	Version          int        `json:"version"`
	Lines            []Line     `json:"lines"`
	Dirty            bool       `json:"dirty"`
	HasConflicts     bool       `json:"hasConflicts"`
	Conflicts        []Conflict `json:"conflicts"`
	CanUpdatePlanner bool       `json:"canUpdatePlanner"`
	HistoryDepth     int        `json:"historyDepth"`
}

func toSessionResponse(s Session) SessionResponse {
	resp := SessionResponse{
		SessionID:        s.SessionID,
		Version:          s.Version,
		Lines:            s.Lines,
		Dirty:            s.Dirty,
		HasConflicts:     s.HasConflicts,
		Conflicts:        s.Conflicts,
		CanUpdatePlanner: s.CanUpdatePlanner,
		HistoryDepth:     s.HistoryDepth(),
	}
	if resp.Lines == nil {
		resp.Lines = []Line{}
	}
	if resp.Conflicts == nil {
		resp.Conflicts = []Conflict{}
	}
	return resp
}

// Handler wires HTTP handlers to the live-edit service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches live-edit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/live-sessions", h.create)
	rg.GET("/live-sessions/:id", h.get)
	rg.PUT("/live-sessions/:id/positions/:orderId/rest-qty", h.saveRestQty)
	rg.POST("/live-sessions/:id/positions/:orderId/delete", h.deleteOrder)
	rg.POST("/live-sessions/:id/undo", h.undo)
	rg.POST("/live-sessions/:id/publish", h.publish)
}

type createRequest struct {
	Date string `json:"date"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Date == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "date is required", nil)
		return
	}

	session, err := h.Svc.Create(c.Request.Context(), req.Date)
	if err != nil {
		schedule.RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toSessionResponse(session))
}

func (h *Handler) get(c *gin.Context) {
	session, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		schedule.RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toSessionResponse(session))
}

type saveRestQtyRequest struct {
	RestQty         *float64 `json:"restQty"`
	ExpectedVersion int      `json:"expectedVersion"`
}

func (h *Handler) saveRestQty(c *gin.Context) {
	var req saveRestQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.RestQty == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "restQty is required", nil)
		return
	}

	session, err := h.Svc.SaveRestQty(c.Request.Context(), c.Param("id"), c.Param("orderId"), *req.RestQty, req.ExpectedVersion)
	if err != nil {
		schedule.RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toSessionResponse(session))
}

type versionedRequest struct {
	ExpectedVersion int `json:"expectedVersion"`
}

func (h *Handler) deleteOrder(c *gin.Context) {
	var req versionedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	session, err := h.Svc.DeleteOrder(c.Request.Context(), c.Param("id"), c.Param("orderId"), req.ExpectedVersion)
	if err != nil {
		schedule.RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toSessionResponse(session))
}

func (h *Handler) undo(c *gin.Context) {
	session, err := h.Svc.Undo(c.Request.Context(), c.Param("id"))
	if err != nil {
		schedule.RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toSessionResponse(session))
}

func (h *Handler) publish(c *gin.Context) {
	var req versionedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Publish(c.Request.Context(), c.Param("id"), req.ExpectedVersion)
	if err != nil {
		schedule.RespondError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, result)
}
