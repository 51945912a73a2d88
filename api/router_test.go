package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/inference-sim/evogame/api/middleware"
	"github.com/inference-sim/evogame/api/stream"
	"github.com/inference-sim/evogame/sim"
	"github.com/inference-sim/evogame/sim/history"
	"github.com/inference-sim/evogame/sim/session"
)

func newTestApp(t *testing.T, opts Options) *App {
	t.Helper()
	if opts.Base.Radius == 0 {
		opts.Base = sim.DefaultGameConfig()
	}
	if opts.Logger == nil {
		logger, _ := test.NewNullLogger()
		opts.Logger = logger
	}
	app := NewApp(session.NewGame(), opts)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func do(t *testing.T, app *App, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, Options{})
	rec := do(t, app, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get(mw.RequestIDHeader))
}

func TestStep_BeforeStart_Conflict(t *testing.T) {
	app := newTestApp(t, Options{})
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/game/step"},
		{http.MethodPost, "/api/game/step"},
		{http.MethodGet, "/api/game/state"},
		{http.MethodGet, "/api/game/history"},
		{http.MethodGet, "/api/game"},
	} {
		rec := do(t, app, tc.method, tc.path)
		assert.Equal(t, http.StatusConflict, rec.Code, "%s %s", tc.method, tc.path)
		assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
	}
}

func TestStart_ThenStep(t *testing.T) {
	// GIVEN a started game with 10 hawks and 5 doves
	app := newTestApp(t, Options{})
	rec := do(t, app, http.MethodPost, "/api/game/start?hawks=10&doves=5&seed=3")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	started := decode[map[string]any](t, rec)
	assert.NotEmpty(t, started["game_id"])
	assert.EqualValues(t, 3, started["seed"])
	assert.Equal(t, "full", started["variant"])

	state := decode[sim.Snapshot](t, do(t, app, http.MethodGet, "/api/game/state"))
	assert.Equal(t, 0, state.Day)
	assert.Equal(t, 10, state.Hawks)
	assert.Equal(t, 5, state.Doves)

	// WHEN the game is stepped twice
	do(t, app, http.MethodGet, "/api/game/step")
	rec = do(t, app, http.MethodPost, "/api/game/step")

	// THEN the snapshot reports day 2 with consistent counts
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[sim.Snapshot](t, rec)
	assert.Equal(t, 2, snap.Day)
	assert.Equal(t, snap.Total(), len(snap.Creatures))
	assert.Zero(t, snap.Grudges)
	assert.Zero(t, snap.Detectives)
}

func TestStart_EmptyPopulation_StepsToEmptyDayOne(t *testing.T) {
	app := newTestApp(t, Options{})
	require.Equal(t, http.StatusOK, do(t, app, http.MethodPost, "/api/game/start").Code)

	rec := do(t, app, http.MethodGet, "/api/game/step")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"day":1,"hawks":0,"doves":0,"grudges":0,"detectives":0,"creatures":[]}`, rec.Body.String())
}

func TestStart_InvalidInput_BadRequest(t *testing.T) {
	app := newTestApp(t, Options{})
	tests := []struct {
		name  string
		query string
	}{
		{"negative", "hawks=-1"},
		{"not a number", "doves=many"},
		{"bad seed", "hawks=1&seed=x"},
		{"unknown variant", "hawks=1&variant=chaos"},
		{"classic with grudges", "hawks=1&grudges=2&variant=classic"},
		{"absurd", "hawks=100000&doves=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, app, http.MethodPost, "/api/game/start?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
	// nothing was started
	assert.Equal(t, http.StatusConflict, do(t, app, http.MethodGet, "/api/game/step").Code)
}

func TestStart_SameSeed_SameSnapshots(t *testing.T) {
	run := func() []string {
		app := newTestApp(t, Options{})
		do(t, app, http.MethodPost, "/api/game/start?hawks=8&doves=8&grudges=4&detectives=4&seed=11")
		var bodies []string
		for i := 0; i < 5; i++ {
			bodies = append(bodies, do(t, app, http.MethodGet, "/api/game/step").Body.String())
		}
		return bodies
	}
	assert.Equal(t, run(), run())
}

func TestHistory_JSONAndCSV(t *testing.T) {
	app := newTestApp(t, Options{})
	do(t, app, http.MethodPost, "/api/game/start?hawks=4&doves=4&seed=1")
	for i := 0; i < 3; i++ {
		do(t, app, http.MethodGet, "/api/game/step")
	}

	rows := decode[[]history.DayStats](t, do(t, app, http.MethodGet, "/api/game/history"))
	require.Len(t, rows, 4)
	assert.Equal(t, 8, rows[0].Population)

	rec := do(t, app, http.MethodGet, "/api/game/history?format=csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	parsed, err := history.ReadCSV(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	assert.Equal(t, rows, parsed)

	assert.Equal(t, http.StatusBadRequest, do(t, app, http.MethodGet, "/api/game/history?format=xml").Code)
}

func TestInfoAndReset(t *testing.T) {
	app := newTestApp(t, Options{})
	started := decode[map[string]any](t, do(t, app, http.MethodPost, "/api/game/start?hawks=2&seed=5"))
	do(t, app, http.MethodGet, "/api/game/step")

	info := decode[session.Info](t, do(t, app, http.MethodGet, "/api/game"))
	assert.Equal(t, started["game_id"], info.ID.String())
	assert.Equal(t, 1, info.Day)
	assert.Equal(t, 2, info.Config.Hawks)

	rec := do(t, app, http.MethodDelete, "/api/game")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusConflict, do(t, app, http.MethodGet, "/api/game/state").Code)
}

func TestSummary(t *testing.T) {
	app := newTestApp(t, Options{})
	do(t, app, http.MethodPost, "/api/game/start?hawks=2")
	rec := do(t, app, http.MethodGet, "/api/game/summary")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	// GIVEN a burst of two requests per client
	app := newTestApp(t, Options{RateLimitRPS: 0.001, RateLimitBurst: 2})

	// WHEN a third request arrives immediately
	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, app, http.MethodGet, "/health").Code)
	}

	// THEN it is rejected
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestLogging_OneEntryPerRequest(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := newTestApp(t, Options{Logger: logger})

	do(t, app, http.MethodGet, "/health")

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "/health", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.NotEmpty(t, entry.Data["request_id"])
}

func TestStream_PushesEveryStep(t *testing.T) {
	// GIVEN a live server with a connected stream client
	app := newTestApp(t, Options{})
	srv := httptest.NewServer(app.Router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/game/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return app.Hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	// WHEN the game is started and stepped twice
	resp, err := http.Post(srv.URL+"/api/game/start?hawks=3&doves=3&seed=9", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	for i := 0; i < 2; i++ {
		resp, err := http.Get(srv.URL + "/api/game/step")
		require.NoError(t, err)
		resp.Body.Close()
	}

	// THEN both snapshots arrive in order
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for day := 1; day <= 2; day++ {
		var event stream.StepEvent
		require.NoError(t, conn.ReadJSON(&event))
		assert.Equal(t, day, event.Snapshot.Day)
		assert.Equal(t, event.Snapshot.Total(), len(event.Snapshot.Creatures))
	}
}
