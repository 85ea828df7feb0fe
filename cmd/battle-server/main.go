package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Cam-Smith-Games/Card-Game/internal/api"
	"github.com/Cam-Smith-Games/Card-Game/internal/logging"
	"github.com/Cam-Smith-Games/Card-Game/internal/service"
)

func main() {
	defer logging.Sync()

	cfg := loadConfigOrExit()
	catalog := loadCatalogOrExit(cfg.ContentPath)
	repo := createRepositoryOrExit(cfg.DatabasePath)

	sim := service.NewSimulator(catalog, repo, service.Settings{
		HandSize:            cfg.HandSize,
		MaxTurns:            cfg.MaxTurns,
		PresentationTimeout: cfg.PresentationTimeout,
	})
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.NewBattleHandler(catalog, sim, repo))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: router}
	if err := serve(ctx, srv); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
