package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/evogame/api"
	"github.com/inference-sim/evogame/sim"
	"github.com/inference-sim/evogame/sim/session"
	"github.com/inference-sim/evogame/sim/trace"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr       string // Listen address
	serveConfigPath string // Optional YAML config supplying radius and variant
	serveTrace      string // Trace level for served games
	serveLog        string // Log verbosity level
)

// serveCmd exposes one game over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		loadEnv()
		level := serveLog
		if !cmd.Flags().Changed("log") && envLogLevel() != "" {
			level = envLogLevel()
		}
		setLogLevel(level)

		addr := serveAddr
		if !cmd.Flags().Changed("addr") {
			addr = envAddr()
		}

		base := sim.DefaultGameConfig()
		if serveConfigPath != "" {
			loaded, err := sim.LoadGameConfig(serveConfigPath)
			if err != nil {
				logrus.Fatalf("unable to read game config; %v", err)
			}
			base = *loaded
		}

		game := session.NewGame()
		if err := game.SetTraceLevel(trace.TraceLevel(serveTrace)); err != nil {
			logrus.Fatalf("Invalid trace level: %s", serveTrace)
		}
		app := api.NewApp(game, api.Options{
			Base:           base,
			RateLimitRPS:   envRateLimitRPS(),
			RateLimitBurst: envRateLimitBurst(),
			Logger:         logrus.StandardLogger(),
		})

		srv := &http.Server{
			Addr:              addr,
			Handler:           app.Router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			logrus.Infof("server starting on %s", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.Fatalf("server failed: %v", err)
			}
		}()

		<-quit
		logrus.Info("shutting down server")

		// Stream connections are hijacked, so Shutdown does not wait for them.
		_ = app.Close()
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.Fatalf("server forced to shutdown: %v", err)
		}
		logrus.Info("server stopped")
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "Listen address (overrides EVOGAME_ADDR)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "YAML game config supplying radius and variant")
	serveCmd.Flags().StringVar(&serveTrace, "trace", string(trace.TraceLevelNone), "Trace level for served games (none, days, memories)")
	serveCmd.Flags().StringVar(&serveLog, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
