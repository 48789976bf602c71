package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tryout_backend/internal/config"
	"tryout_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/tryouts", AuthMiddleware(cfg), RoleMiddleware(util.RoleAuthor), func(c *gin.Context) {
		util.Created(c, nil)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Enabled: true, Secret: testSecret}}
	good, err := util.GenerateJWT("ana", testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, _ := util.GenerateJWT("ana", testSecret, -time.Hour)
	forged, _ := util.GenerateJWT("ana", "another-secret-another-secret-xx", time.Hour)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"valid", "Bearer " + good, http.StatusCreated},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	r := newRouter(cfg)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tryouts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestAuthDisabled(t *testing.T) {
	r := newRouter(&config.Config{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tryouts", nil))
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
}
