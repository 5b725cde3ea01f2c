package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tanoeluis/VibrantBlog/config"
	"github.com/tanoeluis/VibrantBlog/routes"
	"github.com/tanoeluis/VibrantBlog/storage"
	"github.com/tanoeluis/VibrantBlog/utils"
)

func main() {
	cfg, err := config.Load("config/config.json")
	if err != nil {
		panic(err)
	}

	// Initialize logger early
	log, err := utils.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("storage init failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	if cfg.SeedSamplePosts {
		n, err := storage.SeedSamplePosts(ctx, store)
		if err != nil {
			log.Fatal("seeding sample posts failed", zap.Error(err))
		}
		if n > 0 {
			log.Info("seeded sample posts", zap.Int("count", n))
		}
	}

	rc := utils.NewRedisClient(cfg, log)
	r := routes.SetupRouter(routes.Deps{
		Config:    cfg,
		Store:     store,
		Tokens:    utils.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour),
		Blacklist: utils.NewTokenBlacklist(rc),
		Logger:    log,
	})

	log.Info("starting server", zap.String("port", cfg.AppPort), zap.String("driver", cfg.DBDriver))
	if err := utils.NewServer(":"+cfg.AppPort, r, log).Run(ctx); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
}

func openStorage(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (storage.Storage, error) {
	if cfg.DBDriver == config.DriverMemory {
		return storage.NewMemStorage(), nil
	}

	db, err := config.OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	store := storage.NewGormStorage(db)
	if err := store.AutoMigrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
