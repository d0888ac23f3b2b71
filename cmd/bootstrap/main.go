// Package main 数据库初始化工具：执行表结构迁移
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"novel-studio-api/internal/config"
	"novel-studio-api/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting database bootstrap...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.Driver == config.DriverMemory {
		fmt.Println("database.driver is memory, nothing to migrate")
		return
	}

	client, cleanup, err := wire.InitializePostgres(cfg)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := client.HealthCheck(ctx); err != nil {
		log.Fatalf("postgres not healthy: %v", err)
	}
	if err := client.AutoMigrate(ctx); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	fmt.Println("Bootstrap completed: novels, chapters, characters, outlines, world_entries are up to date")
}
