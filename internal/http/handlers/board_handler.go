// README: Order board handlers: list, detail, transition, delivery ETA, refresh.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buensabor/internal/board"
	"buensabor/internal/http/middleware"
	"buensabor/internal/maps"
)

type BoardHandler struct {
	board  *board.Service
	routes *maps.RouteService // nil when no Maps API key is configured
}

func NewBoardHandler(svc *board.Service, routes *maps.RouteService) *BoardHandler {
	return &BoardHandler{board: svc, routes: routes}
}

// orderView is one board entry with everything the UI renders: the
// record, its display metadata, and exactly the transitions the caller's
// role may request from the current state.
type orderView struct {
	board.Order
	Meta    board.StatusMeta `json:"meta"`
	Actions []board.Status   `json:"actions"`
}

func (h *BoardHandler) List(c *gin.Context) {
	role := middleware.CallerRole(c)
	tab := board.Status(c.Query("estado"))

	orders := h.board.List(role, tab)
	views := make([]orderView, len(orders))
	for i, o := range orders {
		actions := board.AllowedTransitions(role, o.Status)
		if actions == nil {
			actions = []board.Status{}
		}
		views[i] = orderView{Order: o, Meta: board.MetaFor(o.Status), Actions: actions}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": views,
		"tabs":   board.Tabs(role),
	})
}

func (h *BoardHandler) Detail(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	detail, err := h.board.Detail(c.Request.Context(), id)
	if err != nil {
		writeBoardError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type transitionReq struct {
	Target board.Status `json:"estado"`
}

func (h *BoardHandler) Transition(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Target == "" {
		writeError(c, http.StatusBadRequest, "missing target state")
		return
	}
	role := middleware.CallerRole(c)
	if err := h.board.RequestTransition(c.Request.Context(), role, id, req.Target); err != nil {
		writeBoardError(c, err)
		return
	}
	// Accepted, not applied: the board updates when the feed delivers
	// the backend's republished record.
	c.JSON(http.StatusAccepted, gin.H{"id": id, "estado": req.Target})
}

func (h *BoardHandler) ETA(c *gin.Context) {
	if h.routes == nil {
		writeError(c, http.StatusServiceUnavailable, "travel estimates not configured")
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	detail, err := h.board.Detail(c.Request.Context(), id)
	if err != nil {
		writeBoardError(c, err)
		return
	}
	if detail.ShippingType != "DELIVERY" {
		writeError(c, http.StatusBadRequest, "order is not a delivery")
		return
	}
	duration, distance, err := h.routes.DeliveryEstimate(c.Request.Context(), detail)
	if err != nil {
		writeError(c, http.StatusBadGateway, "travel estimate failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"minutes":  int(duration.Minutes()),
		"distance": distance,
	})
}

func (h *BoardHandler) Refresh(c *gin.Context) {
	if err := h.board.Refresh(c.Request.Context()); err != nil {
		writeBoardError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
