package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tryout_backend/internal/config"
	"tryout_backend/internal/model"
	"tryout_backend/internal/util"
	"tryout_backend/pkg/database"

	"github.com/gin-gonic/gin"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T, jwtEnabled bool) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.InitDB(&config.DatabaseConfig{Driver: database.DriverSQLite, DSN: ":memory:"}, false)
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Server:    config.ServerConfig{Mode: gin.TestMode},
		JWT:       config.JWTConfig{Enabled: jwtEnabled, Secret: testSecret},
		Storage:   config.StorageConfig{Type: "local", LocalPath: t.TempDir(), PublicURL: "/exports"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1},
	}
	a := New(cfg, db, nil)
	t.Cleanup(a.Close)
	return a
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, a *App, method, path string, body interface{}, token string, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	if out != nil && w.Code < 300 {
		var env envelope
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode envelope: %v", method, path, err)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
	return w.Code
}

func TestRoundTrip(t *testing.T) {
	a := newTestApp(t, false)

	var tr model.Tryout
	code := call(t, a, http.MethodPost, "/api/v1/tryouts", model.TryoutCreateInput{Title: "Go", Category: "programming"}, "", &tr)
	if code != http.StatusCreated || tr.ID == "" {
		t.Fatalf("create tryout: %d %+v", code, tr)
	}

	points := []int{1, 2, 3, 4, 5}
	sum := 0
	for i, p := range points {
		var q model.Question
		in := model.QuestionCreateInput{Content: "statement", Answer: i%2 == 0, Points: p}
		if code := call(t, a, http.MethodPost, "/api/v1/tryouts/"+tr.ID+"/questions", in, "", &q); code != http.StatusCreated {
			t.Fatalf("create question: %d", code)
		}
		if q.TryoutID != tr.ID || q.Points != p {
			t.Errorf("unexpected question %+v", q)
		}
		sum += p
	}

	var got model.Tryout
	if code := call(t, a, http.MethodGet, "/api/v1/tryouts/"+tr.ID, nil, "", &got); code != http.StatusOK {
		t.Fatalf("get: %d", code)
	}
	if got.QuestionCount() != len(points) || got.TotalPoints != sum {
		t.Errorf("count = %d total = %d, want %d and %d", got.QuestionCount(), got.TotalPoints, len(points), sum)
	}

	var list []model.Tryout
	if code := call(t, a, http.MethodGet, "/api/v1/tryouts?title=GO&isPublic=false", nil, "", &list); code != http.StatusOK {
		t.Fatalf("list: %d", code)
	}
	if len(list) != 1 || list[0].Count == nil || list[0].Count.Questions != len(points) {
		t.Errorf("unexpected list %+v", list)
	}

	var qs []model.Question
	call(t, a, http.MethodGet, "/api/v1/tryouts/"+tr.ID+"/questions", nil, "", &qs)
	if len(qs) != len(points) {
		t.Fatalf("questions = %d", len(qs))
	}

	answers := map[string][]string{}
	for _, q := range qs {
		answers[q.ID] = []string{model.LabelTrue}
	}
	var res model.ScoreResult
	if code := call(t, a, http.MethodPost, "/api/v1/tryouts/"+tr.ID+"/score", model.ScoreRequest{Answers: answers}, "", &res); code != http.StatusOK {
		t.Fatalf("score: %d", code)
	}
	// 答案为 true 的是第 1、3、5 题
	if res.Score != 1+3+5 || res.TotalPoints != sum {
		t.Errorf("unexpected score %+v", res)
	}
}

func TestStatusMapping(t *testing.T) {
	a := newTestApp(t, false)
	var tr model.Tryout
	call(t, a, http.MethodPost, "/api/v1/tryouts", model.TryoutCreateInput{Title: "Go", Category: "c"}, "", &tr)

	cases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"missing title", http.MethodPost, "/api/v1/tryouts", map[string]interface{}{"category": "c"}, http.StatusBadRequest},
		{"negative time", http.MethodPost, "/api/v1/tryouts", map[string]interface{}{"title": "t", "category": "c", "timeLimit": -1}, http.StatusBadRequest},
		{"unknown tryout", http.MethodGet, "/api/v1/tryouts/nope", nil, http.StatusNotFound},
		{"bad date", http.MethodGet, "/api/v1/tryouts?startDate=soon", nil, http.StatusBadRequest},
		{"bad bool", http.MethodGet, "/api/v1/tryouts?isPublic=maybe", nil, http.StatusBadRequest},
		{"negative points", http.MethodPost, "/api/v1/tryouts/" + tr.ID + "/questions", map[string]interface{}{"content": "x", "points": -2}, http.StatusBadRequest},
		{"question of unknown tryout", http.MethodPost, "/api/v1/tryouts/nope/questions", map[string]interface{}{"content": "x"}, http.StatusNotFound},
		{"unknown question", http.MethodPatch, "/api/v1/questions/nope", map[string]interface{}{"content": "x"}, http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/api/v1/tryouts/nope", nil, http.StatusNotFound},
		{"export", http.MethodPost, "/api/v1/tryouts/" + tr.ID + "/export", nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code := call(t, a, tc.method, tc.path, tc.body, "", nil); code != tc.want {
				t.Errorf("status = %d, want %d", code, tc.want)
			}
		})
	}
}

func TestMutationsRequireTokenWhenEnabled(t *testing.T) {
	a := newTestApp(t, true)
	in := model.TryoutCreateInput{Title: "Go", Category: "c"}

	if code := call(t, a, http.MethodPost, "/api/v1/tryouts", in, "", nil); code != http.StatusUnauthorized {
		t.Errorf("without token: %d", code)
	}
	if code := call(t, a, http.MethodGet, "/api/v1/tryouts", nil, "", nil); code != http.StatusOK {
		t.Errorf("reads stay public: %d", code)
	}

	token, err := util.GenerateJWT("ana", testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if code := call(t, a, http.MethodPost, "/api/v1/tryouts", in, token, nil); code != http.StatusCreated {
		t.Errorf("with token: %d", code)
	}
}

func TestCORSReload(t *testing.T) {
	a := newTestApp(t, false)
	preflight := func(origin string) string {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/tryouts", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, req)
		return w.Header().Get("Access-Control-Allow-Origin")
	}

	if got := preflight("http://quiz.example"); got != "" {
		t.Fatalf("origin should not be allowed yet, got %q", got)
	}
	for _, cb := range a.configCallbacks {
		cb(&config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://quiz.example"}}})
	}
	if got := preflight("http://quiz.example"); got != "http://quiz.example" {
		t.Errorf("reloaded origin not allowed, got %q", got)
	}
}

func TestHealth(t *testing.T) {
	a := newTestApp(t, false)
	if code := call(t, a, http.MethodGet, "/api/health", nil, "", nil); code != http.StatusOK {
		t.Errorf("health: %d", code)
	}
}

func TestCloseStopsBackground(t *testing.T) {
	a := newTestApp(t, false)
	a.Close()
	select {
	case <-a.ctx.Done():
	default:
		t.Fatal("background context still live after Close")
	}
	a.Close()
}
