package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/inference-sim/evogame/sim"
	"github.com/inference-sim/evogame/sim/history"
	"github.com/inference-sim/evogame/sim/session"
)

// GameHandler exposes a session.Game over HTTP.
type GameHandler struct {
	game *session.Game
	base sim.GameConfig
	// seed picks the seed when a start request carries none.
	seed func() int64
}

// NewGameHandler builds a handler whose started games inherit radius and
// variant from base.
func NewGameHandler(game *session.Game, base sim.GameConfig) *GameHandler {
	return &GameHandler{
		game: game,
		base: base,
		seed: func() int64 { return time.Now().UnixNano() },
	}
}

type startResponse struct {
	GameID  string      `json:"game_id"`
	Seed    int64       `json:"seed"`
	Variant sim.Variant `json:"variant"`
}

// Start handles POST /api/game/start?hawks=&doves=&grudges=&detectives=[&seed=&variant=].
// Missing counts default to zero.
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.parseStart(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.game.Start(cfg)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, startResponse{
		GameID:  id.String(),
		Seed:    cfg.Seed,
		Variant: cfg.Variant.OrDefault(),
	})
}

func (h *GameHandler) parseStart(r *http.Request) (sim.GameConfig, error) {
	q := r.URL.Query()
	cfg := h.base
	counts := []struct {
		name string
		dst  *int
	}{
		{"hawks", &cfg.Hawks},
		{"doves", &cfg.Doves},
		{"grudges", &cfg.Grudges},
		{"detectives", &cfg.Detectives},
	}
	for _, c := range counts {
		*c.dst = 0
		raw := q.Get(c.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: not an integer: %q", c.name, raw)
		}
		*c.dst = n
	}

	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("seed: not an integer: %q", raw)
		}
		cfg.Seed = seed
	} else {
		cfg.Seed = h.seed()
	}

	if raw := q.Get("variant"); raw != "" {
		if !sim.IsValidVariant(raw) {
			return cfg, fmt.Errorf("unknown variant %q", raw)
		}
		cfg.Variant = sim.Variant(raw)
	}
	return cfg, nil
}

// Step handles GET and POST /api/game/step.
func (h *GameHandler) Step(w http.ResponseWriter, _ *http.Request) {
	snap, err := h.game.Step()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// State handles GET /api/game/state.
func (h *GameHandler) State(w http.ResponseWriter, _ *http.Request) {
	snap, err := h.game.Current()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Info handles GET /api/game.
func (h *GameHandler) Info(w http.ResponseWriter, _ *http.Request) {
	info, err := h.game.Info()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// History handles GET /api/game/history; ?format=csv returns CSV.
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	rows, err := h.game.History()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, rows)
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)
		w.WriteHeader(http.StatusOK)
		_ = history.WriteCSV(w, rows)
	default:
		writeError(w, http.StatusBadRequest, "format must be json or csv")
	}
}

// Summary handles GET /api/game/summary.
func (h *GameHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.game.TraceSummary()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Reset handles DELETE /api/game.
func (h *GameHandler) Reset(w http.ResponseWriter, _ *http.Request) {
	h.game.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrUninitialized):
		return http.StatusConflict
	case errors.Is(err, sim.ErrInvalidPopulation), errors.Is(err, sim.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
