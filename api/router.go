// Package api serves a single evolutionary game over HTTP.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/evogame/api/handlers"
	mw "github.com/inference-sim/evogame/api/middleware"
	"github.com/inference-sim/evogame/api/stream"
	"github.com/inference-sim/evogame/sim"
	"github.com/inference-sim/evogame/sim/session"
)

const limiterCleanupInterval = 10 * time.Minute

// Options configures NewApp.
type Options struct {
	// Base supplies radius, variant and default seed for started games.
	Base sim.GameConfig
	// RateLimitRPS disables rate limiting when <= 0.
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         logrus.FieldLogger
}

// App holds the router and the long-lived pieces behind it.
type App struct {
	Router *chi.Mux
	Game   *session.Game
	Hub    *stream.Hub

	done chan struct{}
}

// NewApp wires the routes for game. Every step is pushed to stream clients.
func NewApp(game *session.Game, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	hub := stream.NewHub()
	game.Subscribe(hub.Notify)

	gameHandler := handlers.NewGameHandler(game, opts.Base)

	r := chi.NewRouter()
	app := &App{Router: r, Game: game, Hub: hub, done: make(chan struct{})}

	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logging(opts.Logger))
	r.Use(middleware.Recoverer)
	if opts.RateLimitRPS > 0 {
		limiter := mw.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)
		go limiter.RunCleanup(limiterCleanupInterval, app.done)
		r.Use(limiter.Middleware)
	}

	r.Get("/health", handlers.Health)

	r.Route("/api/game", func(r chi.Router) {
		r.Get("/", gameHandler.Info)
		r.Delete("/", gameHandler.Reset)
		r.Post("/start", gameHandler.Start)
		r.Get("/step", gameHandler.Step)
		r.Post("/step", gameHandler.Step)
		r.Get("/state", gameHandler.State)
		r.Get("/history", gameHandler.History)
		r.Get("/summary", gameHandler.Summary)
		r.Get("/stream", hub.ServeHTTP)
	})

	return app
}

// Close stops background work and disconnects stream clients.
func (app *App) Close() error {
	select {
	case <-app.done:
		return nil
	default:
		close(app.done)
	}
	return app.Hub.Close()
}
