//go:build integration
// +build integration

package cases

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/baechuer/real-time-ressys/services/events-api/test/integration/infra"
	"github.com/baechuer/real-time-ressys/services/events-api/test/integration/infra/wait"
)

const (
	organizerID int64 = 1
	attendeeID  int64 = 2
	otherID     int64 = 3
)

type Env struct {
	BaseURL   string
	DBURL     string
	JWTSecret string
	JWTIssuer string

	OrganizerToken string
	AttendeeToken  string
	OtherToken     string
}

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("missing env %s", k)
	}
	return v
}

func setup(t *testing.T) Env {
	t.Helper()

	e := Env{
		BaseURL:   mustEnv(t, "EVENTS_BASE_URL"),
		DBURL:     mustEnv(t, "DATABASE_URL"),
		JWTSecret: mustEnv(t, "JWT_SECRET"),
		JWTIssuer: os.Getenv("JWT_ISSUER"),
	}

	if err := wait.HTTP200(e.BaseURL+"/healthz", 10*time.Second); err != nil {
		t.Fatalf("events-api not ready: %v", err)
	}

	db, err := infra.OpenDB(e.DBURL)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := infra.PingDB(db); err != nil {
		t.Fatalf("ping db: %v", err)
	}
	if err := infra.ResetEvents(db); err != nil {
		t.Fatalf("reset events: %v", err)
	}

	for uid, dst := range map[int64]*string{
		organizerID: &e.OrganizerToken,
		attendeeID:  &e.AttendeeToken,
		otherID:     &e.OtherToken,
	} {
		*dst, err = infra.MakeToken(e.JWTSecret, e.JWTIssuer, uid, "user", 0, 15*time.Minute)
		if err != nil {
			t.Fatalf("make token for %d: %v", uid, err)
		}
	}
	return e
}

type Envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Meta    map[string]string `json:"meta"`
	} `json:"error,omitempty"`
}

func doJSON(t *testing.T, method, url, token string, body any) (int, Envelope) {
	t.Helper()

	var b []byte
	if body != nil {
		var err error
		b, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var env Envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

// createEvent posts a valid event as token and returns its id.
func createEvent(t *testing.T, e Env, token, name string, when time.Time) int64 {
	t.Helper()
	code, env := doJSON(t, "POST", e.BaseURL+"/events", token, map[string]any{
		"name":        name,
		"description": "Integration test event",
		"address":     "1 Test Street",
		"when":        when.UTC().Format(time.RFC3339),
	})
	if code != http.StatusCreated {
		t.Fatalf("create want 201 got %d err=%v", code, env.Error)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == 0 {
		t.Fatalf("missing id: %v", err)
	}
	return created.ID
}

func id(v int64) string { return strconv.FormatInt(v, 10) }
