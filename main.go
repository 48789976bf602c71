// @title Tryout 后端 API
// @version 1.0
// @description 测验（判断题）出题与判分服务。

// @host localhost:8000
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"tryout_backend/internal/app"
	"tryout_backend/internal/config"
	"tryout_backend/internal/util"
	"tryout_backend/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	migrate := flag.Bool("migrate", false, "启动时强制执行数据库迁移（即使是 release 模式）")
	issueToken := flag.String("issue-token", "", "为指定出题人签发 JWT 并退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *issueToken != "" {
		expire := cfg.JWT.ExpireTime
		if expire <= 0 {
			expire = 72 * time.Hour
		}
		token, err := util.GenerateJWT(*issueToken, cfg.JWT.Secret, expire)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	// 设置迁移标志
	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		return
	}

	application.Run()
}
