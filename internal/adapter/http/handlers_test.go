package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adapthttp "fittrack/internal/adapter/http"
	"fittrack/internal/adapter/memory"
	"fittrack/internal/app"
	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/seed"
	"fittrack/internal/store"
	"fittrack/internal/workout"
)

var monday = time.Date(2026, 10, 12, 12, 0, 0, 0, time.Local)

type testEnv struct {
	ts     *httptest.Server
	srv    *adapthttp.Server
	db     *repository.DB
	engine *workout.Engine
	prog   string
}

// ---------------------------------------------------------------------------
// Test-server helper
// ---------------------------------------------------------------------------

func newTestServer(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	quiet := log.New(io.Discard, "", 0)

	st := store.New(memory.New(), store.WithLogger(quiet))
	db := repository.New(st)
	res, err := seed.Run(ctx, db, quiet)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	progress := app.NewProgressService(db, db, db).WithLogger(quiet)
	engine := workout.NewEngine(db, db,
		workout.WithExerciseTypes(db),
		workout.WithEvaluator(progress),
		workout.WithLogger(quiet),
	)
	srv := adapthttp.New(adapthttp.Deps{
		Store:         st,
		Programs:      db,
		ExerciseTypes: db,
		Sessions:      db,
		Achievements:  db,
		Progress:      progress,
		Measurements:  app.NewMeasurementService(db),
		Profiles:      app.NewProfileService(db, domain.Preferences{PreparationSeconds: 5, RestSeconds: 60}),
		Engine:        engine,
		TickInterval:  time.Hour,
		Logger:        quiet,
	}).WithClock(func() time.Time { return monday })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return &testEnv{ts: ts, srv: srv, db: db, engine: engine, prog: res.Program.ID}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, rdr)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	raw, _ := io.ReadAll(resp.Body)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	return resp, m
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	env := newTestServer(t)
	resp, body := env.do(t, http.MethodGet, "/api/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
	if resp.Header.Get("Cache-Control") != "no-store" {
		t.Errorf("expected no-store, got %q", resp.Header.Get("Cache-Control"))
	}
}

func TestProgramsEndpoints(t *testing.T) {
	env := newTestServer(t)

	resp, body := env.do(t, http.MethodGet, "/api/programs", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if items, _ := body["items"].([]any); len(items) != 1 {
		t.Fatalf("expected 1 program, got %v", body["items"])
	}

	_, body = env.do(t, http.MethodGet, "/api/programs/"+env.prog+"/today", "")
	if body["programDay"] != float64(1) || body["restDay"] != false {
		t.Errorf("expected Monday training day, got %v", body)
	}
	_, body = env.do(t, http.MethodGet, "/api/programs/"+env.prog+"/today?date=2026-10-13", "")
	if body["restDay"] != true {
		t.Errorf("expected Tuesday rest day, got %v", body)
	}

	resp, _ = env.do(t, http.MethodGet, "/api/programs/missing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodGet, "/api/exercise-types?category=juggling", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad category, got %d", resp.StatusCode)
	}
}

func TestWorkoutLifecycle(t *testing.T) {
	env := newTestServer(t)

	resp, body := env.do(t, http.MethodPost, "/api/workout", `{"userId":"u1","date":"2026-10-13"}`)
	if resp.StatusCode != http.StatusOK || body["started"] != false {
		t.Fatalf("expected rest day, got %d %v", resp.StatusCode, body)
	}

	resp, body = env.do(t, http.MethodPost, "/api/workout", `{"userId":"u1"}`)
	if resp.StatusCode != http.StatusCreated || body["started"] != true {
		t.Fatalf("expected start, got %d %v", resp.StatusCode, body)
	}

	resp, _ = env.do(t, http.MethodPost, "/api/workout", `{"userId":"u1"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 while active, got %d", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodPost, "/api/workout/pause", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected pause 200, got %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/workout/pause", "")
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected second pause 409, got %d", resp.StatusCode)
	}
	env.do(t, http.MethodPost, "/api/workout/resume", "")

	resp, _ = env.do(t, http.MethodPost, "/api/workout/previous", "")
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected previous on set 1 to be 409, got %d", resp.StatusCode)
	}

	_, snap := env.do(t, http.MethodGet, "/api/workout", "")
	if snap["phase"] != string(workout.PhasePreparing) {
		t.Errorf("expected preparing, got %v", snap["phase"])
	}

	resp, _ = env.do(t, http.MethodPost, "/api/workout/abandon", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected abandon 200, got %d", resp.StatusCode)
	}
	_, snap = env.do(t, http.MethodGet, "/api/workout", "")
	if snap["phase"] != string(workout.PhaseIdle) {
		t.Errorf("expected idle, got %v", snap["phase"])
	}

	_, body = env.do(t, http.MethodGet, "/api/users/u1/sessions", "")
	if items, _ := body["items"].([]any); len(items) != 1 {
		t.Errorf("expected 1 abandoned session, got %v", body["items"])
	}
	_, body = env.do(t, http.MethodGet, "/api/users/u1/sessions?completed=true", "")
	if items, _ := body["items"].([]any); len(items) != 0 {
		t.Errorf("expected no completed sessions, got %v", body["items"])
	}
}

func TestCompletedWorkoutFeedsStats(t *testing.T) {
	env := newTestServer(t)
	ctx := context.Background()

	ok, err := env.engine.Start(ctx, workout.StartInput{UserID: "u1", ProgramID: env.prog, Today: monday})
	if err != nil || !ok {
		t.Fatalf("start: %v %v", ok, err)
	}
	var snap workout.Snapshot
	for i := 0; i < 10000 && snap.Phase != workout.PhaseCompleted; i++ {
		snap = env.engine.Advance(ctx, 60)
	}
	if snap.Phase != workout.PhaseCompleted {
		t.Fatalf("session did not complete: %+v", snap)
	}

	_, body := env.do(t, http.MethodGet, "/api/users/u1/stats", "")
	if body["totalWorkouts"] != float64(1) || body["streakDays"] != float64(1) {
		t.Errorf("unexpected stats %v", body)
	}
	_, body = env.do(t, http.MethodGet, "/api/users/u1/achievements", "")
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected first workout achievement, got %v", body["items"])
	}

	resp, body := env.do(t, http.MethodPost, "/api/users/u1/sessions/"+snap.SessionID+"/rating", `{"perceivedEffort":7,"notes":"solid"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected rating 200, got %d %v", resp.StatusCode, body)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/users/u1/sessions/"+snap.SessionID+"/rating", `{"perceivedEffort":11}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for effort 11, got %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/users/u2/sessions/"+snap.SessionID+"/rating", `{"perceivedEffort":5}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for another user's session, got %d", resp.StatusCode)
	}

	_, body = env.do(t, http.MethodGet, "/api/users/u1/daily?days=7", "")
	if body["days"] != float64(7) {
		t.Errorf("expected 7 points, got %v", body["days"])
	}
}

func TestMeasurementEndpoints(t *testing.T) {
	env := newTestServer(t)

	resp, body := env.do(t, http.MethodPost, "/api/users/u1/measurements", `{"weight":80,"weightUnit":"kg"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d %v", resp.StatusCode, body)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/users/u1/measurements", `{"weight":-1}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/users/u1/measurements", `{"bogus":1}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", resp.StatusCode)
	}

	_, body = env.do(t, http.MethodGet, "/api/users/u1/measurements", "")
	if items, _ := body["items"].([]any); len(items) != 1 {
		t.Fatalf("expected 1 measurement, got %v", body["items"])
	}
	_, body = env.do(t, http.MethodPost, "/api/users/u1/measurements/undo-last", "")
	if body["deleted"] != true || body["entry"] != nil {
		t.Errorf("unexpected undo response %v", body)
	}
}

func TestProfileEndpoints(t *testing.T) {
	env := newTestServer(t)

	resp, body := env.do(t, http.MethodPost, "/api/profiles", `{"username":"alex","pin":"1234"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d %v", resp.StatusCode, body)
	}
	profile, _ := body["profile"].(map[string]any)
	if _, leaked := profile["pinHash"]; leaked {
		t.Error("pin hash returned to client")
	}
	id, _ := profile["id"].(string)

	resp, _ = env.do(t, http.MethodPost, "/api/profiles", `{"username":"ALEX"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate, got %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/profiles/verify", `{"username":"alex","pin":"0000"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}

	resp, body = env.do(t, http.MethodPut, "/api/users/"+id+"/preferences", `{"preparationTime":10,"restTime":45}`)
	if resp.StatusCode != http.StatusOK || body["restTime"] != float64(45) {
		t.Errorf("unexpected preferences update %d %v", resp.StatusCode, body)
	}
	resp, _ = env.do(t, http.MethodPut, "/api/users/"+id+"/preferences", `{"preparationTime":100,"restTime":45}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	env.do(t, http.MethodPost, "/api/workout", `{"userId":"`+id+`"}`)
	if got := env.engine.Snapshot().Remaining; got != 10 {
		t.Errorf("expected preparation from preferences (10), got %d", got)
	}
}

func TestStorageEndpoints(t *testing.T) {
	env := newTestServer(t)

	_, quota := env.do(t, http.MethodGet, "/api/storage/quota", "")
	if used, _ := quota["used"].(float64); used <= 0 {
		t.Errorf("expected used bytes > 0 after seeding, got %v", quota)
	}

	resp, err := http.Get(env.ts.URL + "/api/storage/export")
	if err != nil {
		t.Fatal(err)
	}
	doc, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !bytes.Contains(doc, []byte(`"fittrack_programs"`)) {
		t.Fatalf("export missing programs: %s", doc)
	}

	other := newTestServer(t)
	r2, err := http.Post(other.ts.URL+"/api/storage/import", "application/json", bytes.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	_ = r2.Body.Close()
	if r2.StatusCode != http.StatusOK {
		t.Fatalf("expected import 200, got %d", r2.StatusCode)
	}
	p, _ := other.db.GetProgram(context.Background(), env.prog)
	if p == nil {
		t.Error("imported program missing")
	}

	r3, err := http.Post(other.ts.URL+"/api/storage/import", "application/json", strings.NewReader(`{"foreign":1}`))
	if err != nil {
		t.Fatal(err)
	}
	_ = r3.Body.Close()
	if r3.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for foreign keys, got %d", r3.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestServer(t)
	resp, err := http.Get(env.ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close() //nolint:errcheck
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "fittrack_") {
		t.Errorf("expected fittrack metrics in output")
	}
}
