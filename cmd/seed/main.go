package main

import (
	"MeuArsenal/internal/config"
	"MeuArsenal/internal/repo"
	"MeuArsenal/internal/seed"
	"MeuArsenal/internal/service"
	"context"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userService := service.NewUserService(repo.NewUserRepository(gormDB))
	itemService := service.NewItemService(repo.NewItemRepository(gormDB), sugar)

	// отдельная команда всегда создаёт примеры, если база пуста
	res, err := seed.Run(context.Background(), userService, itemService, seed.Options{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		AdminName:     cfg.AdminName,
		Samples:       true,
	}, sugar)
	if err != nil {
		sugar.Fatalw("seed failed", "error", err)
	}
	sugar.Infow("seed completed", "admin", res.Admin.Email, "samples", res.SamplesCreated)
}
