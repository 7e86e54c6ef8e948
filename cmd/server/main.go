package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/elimuhub/opportunity-finder/internal/aggregate"
	"github.com/elimuhub/opportunity-finder/internal/ai"
	"github.com/elimuhub/opportunity-finder/internal/api"
	"github.com/elimuhub/opportunity-finder/internal/sources"
	"github.com/elimuhub/opportunity-finder/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	registry, err := sources.LoadRegistry("")
	if err != nil {
		logger.Fatal("failed to load source registry", zap.Error(err))
	}
	adapters := sources.BuildAdapters(registry, logger)

	orch := aggregate.NewOrchestrator(adapters, aggregate.NewCache(aggregate.DefaultTTL), logger)

	var st *store.Store
	ctx := context.Background()
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := store.Connect(ctx)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		if err := store.ApplyMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		st = store.NewStore(pool)
	} else {
		logger.Info("DATABASE_URL not set, sync endpoint disabled")
	}

	var explainer *ai.Explainer
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		explainer = ai.NewExplainer(ai.NewOllamaClient(host, os.Getenv("OLLAMA_MODEL")), logger)
	}

	srv := api.NewServer(orch, explainer, st, logger)
	logger.Info("server starting", zap.String("port", port), zap.Int("sources", len(adapters)))
	if err := srv.Start(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
