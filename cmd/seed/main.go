package main

import (
	"context"
	"flag"
	"time"

	"github.com/salesorder-next/internal/cache"
	"github.com/salesorder-next/internal/config"
	"github.com/salesorder-next/internal/logger"
	"github.com/salesorder-next/internal/models"
	"github.com/salesorder-next/internal/repository"
	"github.com/salesorder-next/internal/service"
)

func main() {
	var overwrite bool
	flag.BoolVar(&overwrite, "overwrite", false, "覆盖已有的默认客户与商品")
	flag.Parse()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	defer func() {
		_ = models.CloseDB()
	}()

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedReferenceData(models.DB, overwrite); err != nil {
		stdLog.Fatalf("Failed to seed reference data: %v", err)
	}
	// 清理参考数据缓存，使运行中的服务读取新数据
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		stdLog.Printf("Redis init failed, skip cache invalidation: %v", err)
	} else {
		defer func() {
			_ = cache.Close()
		}()
		reference := service.NewReferenceService(
			repository.NewCustomerRepository(models.DB),
			repository.NewProductRepository(models.DB),
			time.Duration(cfg.Redis.ReferenceTTLSeconds)*time.Second,
		)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := reference.Invalidate(ctx); err != nil {
			stdLog.Printf("Reference cache invalidation failed: %v", err)
		}
	}
	logger.Infow("seed_completed", "overwrite", overwrite)
}
