// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buensabor/internal/board"
	"buensabor/internal/history"
	"buensabor/internal/http/handlers"
	"buensabor/internal/http/middleware"
	"buensabor/internal/identity"
	"buensabor/internal/infra"
	"buensabor/internal/insights"
	"buensabor/internal/maps"
)

type RouterDeps struct {
	Verifier infra.TokenVerifier
	Board    *board.Service
	Routes   *maps.RouteService
	History  *history.Store
	Insights *insights.Service
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	boardHandler := handlers.NewBoardHandler(deps.Board, deps.Routes)
	orders := api.Group("/orders", middleware.RequireRole(
		identity.RoleAdmin, identity.RoleManager, identity.RoleEmployee,
		identity.RoleDelivery, identity.RoleChef,
	))
	orders.GET("", boardHandler.List)
	orders.GET("/:id", boardHandler.Detail)
	orders.POST("/:id/state", boardHandler.Transition)
	orders.GET("/:id/eta", boardHandler.ETA)

	// Not under /orders: a static segment there would collide with the
	// :id wildcard in gin's routing tree.
	api.POST("/refresh", middleware.RequireRole(identity.RoleAdmin), boardHandler.Refresh)

	dashHandler := handlers.NewDashboardHandler(deps.History, deps.Insights)
	dash := api.Group("/dashboard", middleware.RequireRole(
		identity.RoleAdmin, identity.RoleManager, identity.RoleEmployee,
		identity.RoleDelivery,
	))
	dash.GET("/summary", dashHandler.Summary)
	dash.GET("/activity", dashHandler.Activity)
	dash.GET("/digest", dashHandler.Digest)

	return r
}
