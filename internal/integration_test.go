package internal

import (
	"bytes"
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mill-maintenance-backend/config"
	"mill-maintenance-backend/internal/api"
	"mill-maintenance-backend/internal/auth"
	"mill-maintenance-backend/internal/db"
	"mill-maintenance-backend/internal/notification"
	"mill-maintenance-backend/internal/store"
)

// pushService stands in for a browser vendor's push endpoint.
type pushService struct {
	mu       sync.Mutex
	requests map[string][]*http.Request
}

func (p *pushService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.requests[r.URL.Path] = append(p.requests[r.URL.Path], r)
	p.mu.Unlock()

	if r.URL.Path == "/gone" {
		w.WriteHeader(http.StatusGone)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (p *pushService) received(path string) []*http.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*http.Request(nil), p.requests[path]...)
}

// browserKeys generates the client half of a push subscription.
func browserKeys(t *testing.T) (p256dh, authSecret string) {
	t.Helper()
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	secret := make([]byte, 16)
	_, err = rand.Read(secret)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()), base64.RawURLEncoding.EncodeToString(secret)
}

// TestWireLifecycle drives a wire from installation to removal through the
// HTTP API and checks that the feed entry reaches every push subscriber.
func TestWireLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	// --- Setup ---
	gormDB, err := db.Init(&config.DatabaseConfig{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "mill.db"),
		LogLevel: "silent",
	}, log)
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })

	appStore := store.NewGormStore(gormDB)

	push := &pushService{requests: map[string][]*http.Request{}}
	pushServer := httptest.NewServer(push)
	defer pushServer.Close()

	vapidPrivate, vapidPublic, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := notification.NewWorkerPool(2, appStore, &webpush.Options{
		VAPIDPublicKey:  vapidPublic,
		VAPIDPrivateKey: vapidPrivate,
		Subscriber:      "mailto:maintenance@example.com",
		TTL:             60,
	}, log)
	pool.Start(ctx)

	authenticator, err := auth.New(config.AuthConfig{Username: "admin", Password: "admin123", JWTSecret: "integration", TokenTTLMinutes: 5})
	require.NoError(t, err)

	handler := api.NewHandler(appStore, authenticator, api.WithPush(pool, vapidPublic), api.WithLogger(log))
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitPerSec: 100,
		RateLimitBurst:  100,
		CacheTTL:        time.Minute,
		AuthRequired:    true,
	}, log)
	server := httptest.NewServer(router)
	defer server.Close()

	var token string
	call := func(method, path string, body any, out any) int {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req, err := http.NewRequest(method, server.URL+path, &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		if out != nil {
			require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
		}
		return resp.StatusCode
	}

	// --- Step 1: log in and subscribe two browsers ---
	var login struct {
		Token string `json:"token"`
	}
	require.Equal(t, http.StatusOK, call(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "admin123"}, &login))
	token = login.Token

	for _, path := range []string{"/live", "/gone"} {
		p256dh, secret := browserKeys(t)
		status := call(http.MethodPut, "/api/push/subscriptions", map[string]string{
			"endpoint": pushServer.URL + path,
			"p256dh":   p256dh,
			"auth":     secret,
		}, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	// --- Step 2: install a wire ---
	var wire map[string]any
	status := call(http.MethodPost, "/api/wire-records", map[string]any{
		"machineName":              "PM1",
		"wireType":                 "Forming",
		"partyName":                "AstenJohnson",
		"productionAtInstallation": "100,000",
		"changeDate":               "2025-01-15",
	}, &wire)
	require.Equal(t, http.StatusCreated, status)
	wireID := wire["id"].(string)

	// The feed entry is pushed to the live browser; the expired one is pruned.
	assert.Eventually(t, func() bool {
		subs, err := appStore.ListPushSubscriptions(context.Background())
		return err == nil && len(subs) == 1 && len(push.received("/live")) == 1
	}, 5*time.Second, 20*time.Millisecond)

	delivered := push.received("/live")[0]
	assert.Equal(t, "aes128gcm", delivered.Header.Get("Content-Encoding"))
	assert.Equal(t, "60", delivered.Header.Get("TTL"))
	assert.True(t, strings.HasPrefix(delivered.Header.Get("Authorization"), "vapid t="), delivered.Header.Get("Authorization"))
	assert.Len(t, push.received("/gone"), 1)

	var summary map[string]any
	require.Equal(t, http.StatusOK, call(http.MethodGet, "/api/dashboard/summary", nil, &summary))
	assert.EqualValues(t, 1, summary["activeWires"])

	// --- Step 3: remove the wire ---
	status = call(http.MethodPut, "/api/wire-records/"+wireID, map[string]any{
		"machineName":              "PM1",
		"wireType":                 "Forming",
		"partyName":                "AstenJohnson",
		"productionAtInstallation": 100000,
		"productionAtRemoval":      "120,000",
		"changeDate":               "2025-01-15",
	}, &wire)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 20000, wire["wireLifeMT"])

	// The summary was cached before the update; the write must have flushed it.
	require.Equal(t, http.StatusOK, call(http.MethodGet, "/api/dashboard/summary", nil, &summary))
	assert.EqualValues(t, 0, summary["activeWires"])

	var notes []map[string]any
	require.Equal(t, http.StatusOK, call(http.MethodGet, "/api/notifications", nil, &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, "New wire installed", notes[0]["title"])

	// --- Teardown ---
	cancel()
	pool.Wait()
}
