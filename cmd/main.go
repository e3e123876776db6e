package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/niyarrbarman/automanim/internal/config"
	"github.com/niyarrbarman/automanim/internal/handler"
	"github.com/niyarrbarman/automanim/internal/llm"
	"github.com/niyarrbarman/automanim/internal/service"
	"github.com/niyarrbarman/automanim/internal/storage"
	"github.com/niyarrbarman/automanim/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	store := storage.NewMemoryStore()

	provider, err := llm.New(cfg)
	if err != nil {
		logger.Fatalf("Failed to init llm provider: %v", err)
	}
	logger.Infof("llm provider: %s", cfg.LLM.Provider)

	generateService := service.NewGenerateService(cfg, store, provider)
	renderService, err := service.NewRenderService(cfg)
	if err != nil {
		logger.Fatalf("Failed to init render service: %v", err)
	}

	router := setupRouter(cfg, store, generateService, renderService, provider)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("server listening on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	if err := server.Close(); err != nil {
		logger.Errorf("shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}

func setupRouter(cfg *config.Config, store storage.Store, generateService *service.GenerateService, renderService *service.RenderService, provider llm.Provider) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}))

	// Rendered videos are served straight from the media root.
	router.Static("/media", cfg.Render.MediaRoot)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	generateHandler := handler.NewGenerateHandler(generateService)
	renderHandler := handler.NewRenderHandler(renderService, store)
	settingsHandler := handler.NewSettingsHandler(store)
	mediaHandler := handler.NewMediaHandler(renderService)
	modelsHandler := handler.NewModelsHandler(cfg, provider)

	api := router.Group("/api")
	{
		api.POST("/generate", generateHandler.Generate)
		api.POST("/reset/:session_id", generateHandler.Reset)
		api.POST("/render", renderHandler.Render)
		api.POST("/settings/:session_id", settingsHandler.SetSettings)
		api.GET("/settings/:session_id", settingsHandler.GetSettings)
		api.GET("/media/list", mediaHandler.ListMedia)
		api.GET("/models", modelsHandler.GetModels)
		api.POST("/models/select", modelsHandler.SelectModel)
	}

	return router
}
