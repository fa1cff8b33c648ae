package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mill-maintenance-backend/config"
	"mill-maintenance-backend/internal/auth"
	"mill-maintenance-backend/internal/model"
	"mill-maintenance-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingDispatcher remembers every notification handed to push delivery.
type recordingDispatcher struct {
	mu  sync.Mutex
	ids []string
}

func (d *recordingDispatcher) Dispatch(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, id)
	return true
}

func (d *recordingDispatcher) IDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.ids...)
}

type testServer struct {
	router *gin.Engine
	store  store.Store
	db     *gorm.DB
	push   *recordingDispatcher
	token  string
}

func newTestAuthenticator(t *testing.T) *auth.Authenticator {
	t.Helper()
	a, err := auth.New(config.AuthConfig{
		Username:        "admin",
		Password:        "admin123",
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
	})
	require.NoError(t, err)
	return a
}

func newTestServer(t *testing.T, authRequired bool) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	s := store.NewGormStore(db)
	a := newTestAuthenticator(t)
	push := &recordingDispatcher{}
	h := NewHandler(s, a, WithPush(push, "test-vapid-key"), WithLogger(zap.NewNop()))
	router := NewRouter(h, RouterConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTL:        time.Minute,
		AuthRequired:    authRequired,
	}, zap.NewNop())

	token, _, err := a.Issue(&auth.User{Username: "admin", Role: auth.RoleAdmin})
	require.NoError(t, err)

	return &testServer{router: router, store: s, db: db, push: push, token: token}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+ts.token)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (ts *testServer) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, ts.db.Model(m).Count(&n).Error)
	return n
}

func wirePayload(install any) map[string]any {
	return map[string]any{
		"machineName":              "PM1",
		"wireType":                 "Forming",
		"partyName":                "AstenJohnson",
		"productionAtInstallation": install,
		"changeDate":               "2025-01-15",
	}
}
