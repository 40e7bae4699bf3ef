package cmd

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gestorpro/internal/handlers"
	"gestorpro/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the register UI and API on the local address",
	Long: `Start the local server. Only one instance can run against a data folder:
the second one fails to bind the address.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().String("web-dir", "", "folder with the built UI")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, store, err := setup(cmd)
	if err != nil {
		return err
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("failed to generate session key: %w", err)
		}
		logger.Info("no jwt_secret configured, sessions end when the server stops")
	}
	if cfg.AdminPass == "" {
		logger.Warn("admin_pass is not set, the settings screen is locked")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := handlers.New(store, handlers.Options{
		AdminUser:         cfg.AdminUser,
		AdminPass:         cfg.AdminPass,
		JWTSecret:         secret,
		LowStockThreshold: cfg.LowStockThreshold,
		AllowRegistration: cfg.AllowRegistration,
		DeviceID:          utils.GetDeviceID,
		OpenFolder:        utils.OpenFolder,
		Quit:              stop,
	}, logger)

	if cfg.Level() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(api, handlers.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		WebDir:         cfg.WebDir,
	})

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s (is GestorPro already running?): %w", cfg.Addr, err)
	}

	srv := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	logger.Info("server started", "url", "http://"+ln.Addr().String(), "data", store.Path())

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
