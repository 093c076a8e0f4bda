package initialize

import (
	"fmt"
	"net/http"

	"labfleet/backend/app/controllers"
	"labfleet/backend/app/db"
	"labfleet/backend/app/middleware"
	"labfleet/backend/app/models"
	"labfleet/backend/app/repo"
	"labfleet/backend/app/services"
	"labfleet/backend/config"
	"labfleet/backend/global"
	"labfleet/backend/router"

	"gorm.io/gorm"
)

type App struct {
	Cfg       *config.Config
	DB        *gorm.DB
	Router    http.Handler
	Commands  *services.CommandService
	Liveness  *services.LivenessTracker
	Artifacts *services.ArtifactStore
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = *cfg

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := gdb.AutoMigrate(&models.Command{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Services
	cmdRepo := repo.NewCommandRepository(gdb)
	cmdSvc := services.NewCommandService(cmdRepo)
	tracker := services.NewLivenessTracker(cfg.Liveness.Threshold)
	artifacts, err := services.NewArtifactStore(cfg.Artifacts.Dir)
	if err != nil {
		return nil, err
	}

	// Controllers
	httpCtrl := controllers.NewHTTPController()
	cmdCtrl := controllers.NewCommandController(cmdSvc)
	liveCtrl := controllers.NewLivenessController(tracker, cmdSvc)
	artCtrl := controllers.NewArtifactController(artifacts)
	auth := &middleware.Auth{Token: cfg.APIToken}

	// Router
	h := router.NewRouter(httpCtrl, cmdCtrl, liveCtrl, artCtrl, auth)
	h = middleware.Logging(h)

	return &App{
		Cfg:       cfg,
		DB:        gdb,
		Router:    h,
		Commands:  cmdSvc,
		Liveness:  tracker,
		Artifacts: artifacts,
	}, nil
}
