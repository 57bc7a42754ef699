package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"courtside/internal/api"
	"courtside/internal/match"
)

func testRoster() match.Roster {
	return match.Roster{
		TeamA: "Casa", TeamB: "Fora", Date: "2026-03-14", Place: "Pavilhão",
		Players: []match.RosterPlayer{
			{Number: 1, Name: "Rui", Position: "GR"},
			{Number: 3, Name: "Miguel", Position: "Ponta"},
			{Number: 4, Name: "André", Position: "Lateral"},
			{Number: 5, Name: "João", Position: "Central"},
			{Number: 6, Name: "Pedro", Position: "Pivot"},
			{Number: 7, Name: "Diogo", Position: "Lateral"},
			{Number: 8, Name: "Hugo", Position: "Ponta"},
			{Number: 9, Name: "Bruno", Position: "Central"},
		},
		Officials: []match.RosterOfficial{{Name: "Carlos", Role: "A"}},
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *match.Engine) {
	t.Helper()
	engine := match.NewEngine(testRoster(), match.Config{})
	router := api.NewRouter(api.RouterConfig{
		Engine:         engine,
		DisableLogging: true,
		RateLimitConfig: &api.RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			CleanupInterval:   0,
		},
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, engine
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, into interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatal(err)
	}
}

func TestGetState(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var view match.StateView
	decodeBody(t, resp, &view)
	if view.TeamA != "Casa" || view.Half != 1 || view.Running {
		t.Errorf("unexpected state view: %+v", view)
	}
	if len(view.Players) != 8 || len(view.Officials) != 1 {
		t.Errorf("got %d players, %d officials", len(view.Players), len(view.Officials))
	}
}

func TestSanctionFlow(t *testing.T) {
	ts, engine := newTestServer(t)
	id := engine.View().Players[1].ID

	resp := postJSON(t, ts.URL+"/api/sanction/yellow", map[string]string{"entityId": id})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("yellow status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Second yellow on the same athlete is a rule rejection.
	resp = postJSON(t, ts.URL+"/api/sanction/yellow", map[string]string{"entityId": id})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate yellow status = %d, want 422", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["error"] == "" {
		t.Error("rejection carries no error message")
	}
}

func TestUnknownEntityIs404(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/sanction/red", map[string]string{"entityId": "nobody"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestUndoWithoutHistoryIs409(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/undo", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestClockStartGate(t *testing.T) {
	ts, engine := newTestServer(t)

	// Empty field: refused.
	resp := postJSON(t, ts.URL+"/api/clock/start", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("start with empty field = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	// Field seven and try again.
	for _, p := range engine.View().Players[:7] {
		r := postJSON(t, ts.URL+"/api/field/toggle", map[string]string{"entityId": p.ID})
		if r.StatusCode != http.StatusOK {
			t.Fatalf("toggle status = %d", r.StatusCode)
		}
		r.Body.Close()
	}
	resp = postJSON(t, ts.URL+"/api/clock/start", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("start status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/clock/pause", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pause status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestGoalAndExport(t *testing.T) {
	ts, engine := newTestServer(t)
	id := engine.View().Players[1].ID
	zone := 1

	resp := postJSON(t, ts.URL+"/api/goal", map[string]interface{}{
		"entityId": id,
		"shotType": match.ShotWing,
		"zone":     zone,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("goal status = %d", resp.StatusCode)
	}
	var score match.ScoreSummary
	decodeBody(t, resp, &score)
	if score.ForTotal != 1 {
		t.Errorf("score = %+v", score)
	}

	resp, err := http.Get(ts.URL + "/api/export/entities.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("csv status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
}

func TestAuthProtectsMutations(t *testing.T) {
	engine := match.NewEngine(testRoster(), match.Config{})
	sessions := api.NewSessionManager("segredo")
	router := api.NewRouter(api.RouterConfig{
		Engine:         engine,
		Sessions:       sessions,
		DisableLogging: true,
		RateLimitConfig: &api.RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	id := engine.View().Players[1].ID

	// Reads stay open.
	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("state status = %d", resp.StatusCode)
	}

	// Mutations are sealed without a session.
	resp = postJSON(t, ts.URL+"/api/sanction/yellow", map[string]string{"entityId": id})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated yellow = %d, want 401", resp.StatusCode)
	}

	// Wrong password is refused.
	resp = postJSON(t, ts.URL+"/api/login", map[string]string{"name": "x", "password": "errado"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login = %d, want 401", resp.StatusCode)
	}

	// Log in, carry the cookie, retry.
	resp = postJSON(t, ts.URL+"/api/login", map[string]string{"name": "mesa", "password": "segredo"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login = %d", resp.StatusCode)
	}
	cookies := resp.Cookies()
	resp.Body.Close()
	if len(cookies) == 0 {
		t.Fatal("login set no cookie")
	}

	data, _ := json.Marshal(map[string]string{"entityId": id})
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/sanction/yellow", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("authenticated yellow = %d, want 200", resp.StatusCode)
	}
}

func TestRateLimiting(t *testing.T) {
	engine := match.NewEngine(testRoster(), match.Config{})
	router := api.NewRouter(api.RouterConfig{
		Engine:         engine,
		DisableLogging: true,
		RateLimitConfig: &api.RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
		},
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	limited := false
	for i := 0; i < 10; i++ {
		resp, err := http.Get(ts.URL + "/api/state")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("rate limiter never triggered")
	}
}
