// README: Entry point; loads config, wires modules, starts the HTTP server and the live feed.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"buensabor/internal/backend"
	"buensabor/internal/board"
	"buensabor/internal/config"
	"buensabor/internal/feed"
	"buensabor/internal/history"
	httptransport "buensabor/internal/http"
	"buensabor/internal/infra"
	"buensabor/internal/insights"
	"buensabor/internal/maps"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := infra.NewAuth0Verifier(ctx, cfg.Auth0.Domain, cfg.Auth0.Audience)
	if err != nil {
		log.Fatalf("auth0 init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	historyStore := history.NewStore(dbPool)
	if err := historyStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("history schema: %v", err)
	}

	gateway := backend.NewClient(cfg.Backend.BaseURL, backend.StaticToken(cfg.Backend.ServiceToken))

	boardStore := board.NewStore()
	boardSvc := board.NewService(boardStore, gateway, historyStore)
	if err := boardSvc.Refresh(ctx); err != nil {
		// The feed and manual refresh can still fill the board later.
		log.Printf("initial order fetch failed: %v", err)
	}

	adapter := feed.NewAdapter(redisClient, cfg.Redis.FeedChannel)
	adapter.Connect(ctx, boardSvc.ApplyUpdate)
	defer adapter.Disconnect()

	var routeSvc *maps.RouteService
	if cfg.Maps.APIKey != "" {
		routeSvc, err = maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
	}

	insightsSvc, err := insights.NewService(ctx, cfg.AI.GeminiKey, redisClient, historyStore)
	if err != nil {
		log.Fatalf("insights init: %v", err)
	}
	defer insightsSvc.Close()

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Verifier: verifier,
		Board:    boardSvc,
		Routes:   routeSvc,
		History:  historyStore,
		Insights: insightsSvc,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("board-api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
