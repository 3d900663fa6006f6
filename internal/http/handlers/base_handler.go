// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"buensabor/internal/board"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, board.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, board.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, board.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	default:
		// Anything else originated at the backend or the network; the
		// caller is told, local state stays untouched.
		writeError(c, http.StatusBadGateway, "backend request failed")
	}
}

func orderIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid order id")
		return 0, false
	}
	return id, true
}
