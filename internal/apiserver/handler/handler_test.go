package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ubuntu-bounty/crm/internal/apiserver/database"
	"github.com/ubuntu-bounty/crm/internal/common/cnst"
	"github.com/ubuntu-bounty/crm/internal/common/config"
)

func newTestHandler(t *testing.T) (*Handler, database.Store) {
	t.Helper()
	cfg := &config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"}
	s, err := database.NewSQLite(cfg)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewHandler(s, mustNewJWTService(), nil, zap.NewNop()), s
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/agents", h.ListAgents)
	r.POST("/api/agents", h.CreateAgent)
	r.GET("/api/agents/locations", h.ListAgentLocations)
	r.GET("/api/agents/:id", h.GetAgent)
	r.DELETE("/api/agents/:id", h.DeleteAgent)
	r.GET("/api/leads", h.ListLeads)
	r.POST("/api/leads", h.CreateLead)
	r.POST("/api/leads/:id/claim", h.ClaimLead)
	r.DELETE("/api/leads/:id/claim", h.ReverseClaim)
	r.DELETE("/api/leads/:id", h.DeleteLead)
	r.GET("/api/users", h.ListUsers)
	r.POST("/api/users", h.CreateUser)
	r.PUT("/api/users/:id", h.UpdateUser)
	r.DELETE("/api/users/:id", h.DeleteUser)
	r.GET("/api/dashboard/stats", h.GetDashboardStats)
	r.GET("/api/settings", h.ListSettings)
	r.POST("/api/settings", h.SetSetting)
	r.POST("/api/settings/logo", h.UploadLogo)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func seedUser(t *testing.T, s database.Store, email, pin string, userType string) *database.SystemUser {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u := &database.SystemUser{
		Name:     "Test",
		Email:    email,
		UserType: cnst.UserType(userType),
		LoginPIN: string(hashed),
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d, body %s", w.Code, want, w.Body.String())
	}
}
