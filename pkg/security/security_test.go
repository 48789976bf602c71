package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestOriginAllowList(t *testing.T) {
	l := NewOriginAllowList([]string{"http://a.example"})
	if !l.Allowed("http://a.example") || l.Allowed("http://b.example") {
		t.Fatal("unexpected initial allow-list")
	}
	l.Set([]string{"*"})
	if !l.Allowed("http://b.example") {
		t.Error("wildcard should allow any origin")
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	r := gin.New()
	r.Use(RateLimiter(ctx, 2, time.Hour))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestVisitorSweep(t *testing.T) {
	now := time.Now()
	s := &visitorStore{visitors: map[string]*visitor{
		"stale": {lastSeen: now.Add(-2 * time.Hour)},
		"fresh": {lastSeen: now.Add(-time.Minute)},
	}}
	s.sweep(now, time.Hour)
	if _, ok := s.visitors["stale"]; ok {
		t.Error("stale visitor kept")
	}
	if _, ok := s.visitors["fresh"]; !ok {
		t.Error("fresh visitor dropped")
	}
}

func TestJanitorStopsOnCancel(t *testing.T) {
	s := &visitorStore{visitors: map[string]*visitor{}}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.janitor(ctx, time.Millisecond, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor still running after cancel")
	}
}
