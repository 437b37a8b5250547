package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-finder/internal/api"
	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/ingredient"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// warmTimeout 啟動時預先載入目錄的最長時間
const warmTimeout = 15 * time.Second

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("catalog_url", cfg.Catalog.BaseURL),
		zap.String("catalog_api_key", config.MaskAPIKey(cfg.Catalog.APIKey)),
		zap.String("heuristics_file", cfg.Matching.HeuristicsFile),
	)

	// 載入比對與分組用的資料表
	heuristics, err := ingredient.LoadHeuristics(cfg.Matching.HeuristicsFile)
	if err != nil {
		common.LogFatal("Failed to load heuristics", zap.Error(err))
	}

	// 初始化快取
	store, err := cache.NewStore(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err), zap.String("backend", cfg.Cache.Backend))
	}
	if store != nil {
		defer store.Close()
	}

	client := catalog.NewClient(cfg)
	source := catalog.NewCachedSource(client, store)

	// 預先載入目錄，失敗時仍啟動，之後的請求會重新讀取
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), warmTimeout)
	if err := source.Warm(warmCtx); err != nil {
		common.LogWarn("Catalog warm-up failed", zap.Error(err))
	}
	cancelWarm()

	deps := api.Dependencies{
		Source:     source,
		Upstream:   client,
		Heuristics: heuristics,
	}
	if store != nil {
		deps.Cache = source
		deps.Store = store
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, deps)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
