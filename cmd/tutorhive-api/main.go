package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tutorhive/backend/internal/auth"
	"github.com/tutorhive/backend/internal/bookings"
	"github.com/tutorhive/backend/internal/config"
	"github.com/tutorhive/backend/internal/database"
	"github.com/tutorhive/backend/internal/logging"
	"github.com/tutorhive/backend/internal/materials"
	"github.com/tutorhive/backend/internal/notes"
	"github.com/tutorhive/backend/internal/ratings"
	"github.com/tutorhive/backend/internal/server"
	"github.com/tutorhive/backend/internal/sessions"
	"github.com/tutorhive/backend/internal/users"
	"go.uber.org/zap"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "tutorhive-api",
		Short: "Tutorhive marketplace backend service",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	setupFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("http-address", defaults.GetString("http.address"), "HTTP listen address")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("token-secret", "", "Access token signing secret (overrides env)")

	bindFlag(cmd, "http.address", "http-address")
	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "auth.token_secret", "token-secret")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

func runServer(ctx context.Context) error {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	db, err := database.OpenSQLite(appConfig.DatabasePath, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	tokenCodec, err := auth.NewTokenCodec(auth.TokenCodecConfig{
		SigningSecret: []byte(appConfig.TokenSecret),
	})
	if err != nil {
		return err
	}

	usersService, err := users.NewService(users.ServiceConfig{Database: db})
	if err != nil {
		return err
	}
	sessionsService, err := sessions.NewService(sessions.ServiceConfig{Database: db})
	if err != nil {
		return err
	}
	materialsService, err := materials.NewService(materials.ServiceConfig{Database: db})
	if err != nil {
		return err
	}
	bookingsService, err := bookings.NewService(bookings.ServiceConfig{Database: db})
	if err != nil {
		return err
	}
	notesService, err := notes.NewService(notes.ServiceConfig{Database: db})
	if err != nil {
		return err
	}
	ratingsService, err := ratings.NewService(ratings.ServiceConfig{Database: db})
	if err != nil {
		return err
	}

	handler, err := server.NewHTTPHandler(server.Dependencies{
		TokenCodec: tokenCodec,
		Users:      usersService,
		Sessions:   sessionsService,
		Materials:  materialsService,
		Bookings:   bookingsService,
		Notes:      notesService,
		Ratings:    ratingsService,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    appConfig.HTTPAddress,
		Handler: handler,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("address", appConfig.HTTPAddress))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
