package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ubuntu-bounty/crm/internal/apiserver/cache"
	"github.com/ubuntu-bounty/crm/internal/apiserver/database"
	"github.com/ubuntu-bounty/crm/internal/apiserver/handler"
	"github.com/ubuntu-bounty/crm/internal/apiserver/middleware"
	"github.com/ubuntu-bounty/crm/internal/auth/jwt"
	"github.com/ubuntu-bounty/crm/internal/common/cnst"
	"github.com/ubuntu-bounty/crm/internal/common/config"
	"github.com/ubuntu-bounty/crm/pkg/logger"
	"github.com/ubuntu-bounty/crm/pkg/metrics"
	"github.com/ubuntu-bounty/crm/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "Ubuntu Bounty CRM API Server",
		Long:  `API server for the Ubuntu Bounty CRM: field agents, sales leads, claims and company settings`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", cnst.ApiServerYaml, "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	zl, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	store, err := database.NewStore(&cfg.Storage)
	if err != nil {
		zl.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	if err := database.EnsureSuperAdmin(context.Background(), store, &cfg.SuperAdmin); err != nil {
		zl.Fatal("failed to ensure super admin account", zap.Error(err))
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration,
	})
	if err != nil {
		zl.Fatal("failed to initialize JWT service", zap.Error(err))
	}

	var statsCache *cache.StatsCache
	if cfg.Cache.Addr != "" {
		statsCache, err = cache.NewStatsCache(&cfg.Cache)
		if err != nil {
			zl.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = statsCache.Close() }()
		zl.Info("dashboard stats cache enabled", zap.String("addr", cfg.Cache.Addr))
	}

	h := handler.NewHandler(store, jwtService, statsCache, zl)
	m := metrics.New(cfg.Metrics)

	r := gin.New()
	r.Use(gin.Recovery(), m.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.Static("/uploads", "./uploads")

	r.POST("/api/auth/login", h.Login)

	api := r.Group("/api", middleware.JWTAuthMiddleware(jwtService))
	{
		api.GET("/agents", middleware.RequirePermission(cnst.ActionView), h.ListAgents)
		api.POST("/agents", middleware.RequirePermission(cnst.ActionCreate), h.CreateAgent)
		api.GET("/agents/locations", middleware.RequirePermission(cnst.ActionView), h.ListAgentLocations)
		api.GET("/agents/:id", middleware.RequirePermission(cnst.ActionView), h.GetAgent)
		api.DELETE("/agents/:id", middleware.RequirePermission(cnst.ActionDelete), h.DeleteAgent)

		api.GET("/leads", middleware.RequirePermission(cnst.ActionView), h.ListLeads)
		api.POST("/leads", middleware.RequirePermission(cnst.ActionCreate), h.CreateLead)
		api.POST("/leads/:id/claim", middleware.RequirePermission(cnst.ActionClaim), h.ClaimLead)
		api.DELETE("/leads/:id/claim", middleware.RequirePermission(cnst.ActionReverseClaim), h.ReverseClaim)
		api.DELETE("/leads/:id", middleware.RequirePermission(cnst.ActionDelete), h.DeleteLead)

		api.GET("/users", middleware.RequirePermission(cnst.ActionManageUsers), h.ListUsers)
		api.POST("/users", middleware.RequirePermission(cnst.ActionManageUsers), h.CreateUser)
		api.PUT("/users/:id", middleware.RequirePermission(cnst.ActionManageUsers), h.UpdateUser)
		api.DELETE("/users/:id", middleware.RequirePermission(cnst.ActionManageUsers), h.DeleteUser)

		api.GET("/dashboard/stats", middleware.RequirePermission(cnst.ActionView), h.GetDashboardStats)

		api.GET("/settings", middleware.RequirePermission(cnst.ActionView), h.ListSettings)
		api.POST("/settings", middleware.RequirePermission(cnst.ActionManageSettings), h.SetSetting)
		api.POST("/settings/logo", middleware.RequirePermission(cnst.ActionManageSettings), h.UploadLogo)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	zl.Info("listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
