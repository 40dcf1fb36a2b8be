package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	members "github.com/clubware/go-members"
)

func newServeCmd() *cobra.Command {
	var (
		addr string
		dsn  string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the members API server",
		Long:  "Start the HTTP server that exposes registration, login, and membership endpoints.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(dev)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database connection string")
	cmd.Flags().BoolVar(&dev, "dev", false, "enable development mode (verbose logging, weak default signing key)")

	viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	viper.BindPFlag("db.dsn", cmd.Flags().Lookup("dsn"))

	return cmd
}

func loadConfig() *members.Config {
	cfg := members.DefaultConfig()

	if v := viper.GetString("server.addr"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := viper.GetString("db.dsn"); v != "" {
		cfg.DSN = v
	}
	if v := viper.GetString("auth.signing_key"); v != "" {
		cfg.SigningKey = v
	}
	if v := viper.GetString("auth.issuer"); v != "" {
		cfg.Issuer = v
	}
	if v := viper.GetDuration("auth.access_ttl"); v > 0 {
		cfg.AccessTokenTTL = v
	}
	if v := viper.GetDuration("auth.refresh_ttl"); v > 0 {
		cfg.RefreshTokenTTL = v
	}

	return cfg
}

func openDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := members.CreateSchema(context.Background(), db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return db, nil
}

func runServe(dev bool) error {
	logLevel := slog.LevelInfo
	if dev {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	cfg := loadConfig()
	if cfg.SigningKey == "" {
		if !dev {
			return fmt.Errorf("auth.signing_key is required (set MEMBERS_AUTH_SIGNING_KEY or members.yaml)")
		}
		slog.Warn("no signing key configured, using the development default")
		cfg.SigningKey = "members-dev-secret-change-me"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := openDB(cfg.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database ready", "dsn", cfg.DSN)

	repo := members.NewRepositoryManager(db)
	if err := repo.Validate(); err != nil {
		return err
	}

	tokens := members.NewTokenService(
		[]byte(cfg.SigningKey),
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		cfg.Issuer,
		members.NewLogger("tokens"),
	)
	accounts := members.NewAccountService(repo, tokens)
	verifier := members.NewCredentialVerifier(repo.Users())

	ctl := members.NewController(accounts, verifier, tokens, repo.Users())

	app := fiber.New(fiber.Config{
		AppName:               "membersd",
		DisableStartupMessage: !dev,
	})
	ctl.RegisterRoutes(app)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.HTTPAddr)
		errCh <- app.Listen(cfg.HTTPAddr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		return app.Shutdown()
	}
}
