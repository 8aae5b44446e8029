package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/router"
	"fintrack/service"
)

// @title 个人记账 API
// @version 1.0
// @description 账户、交易、周期交易、预算、理财目标与报表接口
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("fintrack v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 调度器和通知使用结构化日志
	level := slog.LevelInfo
	if cfg.Server.Mode == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	middleware.InitJWT(cfg)

	email := service.NewEmailService(&cfg.Email)
	r := router.SetupRouter(cfg, email)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 周期交易调度：启动时执行一次，之后按间隔执行
	schedulerDone := make(chan struct{})
	if cfg.Scheduler.Enabled {
		goals := service.NewGoalService(database.DB, email)
		scheduler := service.NewRecurrenceScheduler(database.DB, goals)
		go func() {
			defer close(schedulerDone)
			scheduler.Run(ctx, cfg.Scheduler.Interval)
		}()
	} else {
		close(schedulerDone)
		log.Println("周期交易调度未启用")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("==========================================")
		log.Printf("  💰 记账服务已启动")
		log.Printf("==========================================")
		log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
		log.Printf("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
		log.Printf("==========================================")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("收到退出信号，正在关闭服务")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("服务关闭失败", "error", err)
	}

	select {
	case <-schedulerDone:
	case <-shutdownCtx.Done():
		slog.Warn("等待调度任务退出超时")
	}
	slog.Info("服务已停止")
}
