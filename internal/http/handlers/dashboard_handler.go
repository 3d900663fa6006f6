// README: Dashboard handlers: daily summary, recent activity, AI digest.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"buensabor/internal/history"
	"buensabor/internal/insights"
)

type DashboardHandler struct {
	history  *history.Store
	insights *insights.Service
}

func NewDashboardHandler(hist *history.Store, ins *insights.Service) *DashboardHandler {
	return &DashboardHandler{history: hist, insights: ins}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	if h.history == nil {
		writeError(c, http.StatusServiceUnavailable, "history not configured")
		return
	}
	sum, err := h.history.Summary(c.Request.Context(), time.Now().UTC())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "summary failed")
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *DashboardHandler) Activity(c *gin.Context) {
	if h.history == nil {
		writeError(c, http.StatusServiceUnavailable, "history not configured")
		return
	}
	recent, err := h.history.Recent(c.Request.Context(), 50)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "activity query failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"changes": recent})
}

func (h *DashboardHandler) Digest(c *gin.Context) {
	if h.insights == nil {
		writeError(c, http.StatusServiceUnavailable, "insights not configured")
		return
	}
	digest, err := h.insights.DailyDigest(c.Request.Context())
	if err != nil {
		if errors.Is(err, insights.ErrUnavailable) {
			writeError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(c, http.StatusBadGateway, "digest generation failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"digest": digest})
}
