package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/vaibhavdeo21/mergemoney/internal/access"
	"github.com/vaibhavdeo21/mergemoney/internal/auth"
	"github.com/vaibhavdeo21/mergemoney/internal/config"
	"github.com/vaibhavdeo21/mergemoney/internal/server"
	"github.com/vaibhavdeo21/mergemoney/internal/service"
	"github.com/vaibhavdeo21/mergemoney/internal/storage/sqlite"
	"github.com/vaibhavdeo21/mergemoney/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	policy := access.DefaultPolicy()
	if cfg.PermissionsPath != "" {
		policy, err = access.LoadPolicy(cfg.PermissionsPath)
		if err != nil {
			slog.Error("Failed to load permissions policy", "path", cfg.PermissionsPath, "error", err)
			os.Exit(1)
		}
		slog.Info("Loaded permissions policy override", "path", cfg.PermissionsPath)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := service.NewAuthService(store, authenticator, jwtManager)
	userSvc := service.NewUserService(store, policy)
	groupSvc := service.NewGroupService(store, policy)
	expenseSvc := service.NewExpenseService(store, groupSvc, policy)
	settlementSvc := service.NewSettlementService(store, groupSvc, policy)

	srv := server.New(store, authSvc, userSvc, groupSvc, expenseSvc, settlementSvc, jwtManager, cfg.CORSOrigins)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
