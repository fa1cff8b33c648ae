package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mill-maintenance-backend/internal/model"
)

// mockSender is a mock implementation of the NotificationSender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

type fakeSource struct {
	mu      sync.Mutex
	notes   map[string]*model.Notification
	subs    []model.PushSubscription
	deleted chan string
}

func newFakeSource(subs ...model.PushSubscription) *fakeSource {
	return &fakeSource{
		notes:   map[string]*model.Notification{},
		subs:    subs,
		deleted: make(chan string, 4),
	}
}

func (f *fakeSource) GetNotification(_ context.Context, id string) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return n, nil
}

func (f *fakeSource) ListPushSubscriptions(context.Context) ([]model.PushSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.PushSubscription(nil), f.subs...), nil
}

func (f *fakeSource) DeletePushSubscription(_ context.Context, endpoint string) error {
	f.deleted <- endpoint
	return nil
}

func response(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewBufferString(""))}
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, newFakeSource(), &webpush.Options{}, zap.NewNop())

	assert.True(t, wp.Dispatch("n-1"))

	select {
	case job := <-wp.jobs:
		assert.Equal(t, "n-1", job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchNeverBlocks(t *testing.T) {
	wp := NewWorkerPool(1, newFakeSource(), &webpush.Options{}, zap.NewNop())

	for i := 0; i < cap(wp.jobs); i++ {
		require.True(t, wp.Dispatch("n"))
	}
	assert.False(t, wp.Dispatch("overflow"))
}

func TestWorkerPool_WorkerLogic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("sends the notification to every subscription", func(t *testing.T) {
		src := newFakeSource(
			model.PushSubscription{Endpoint: "https://example.com/a", P256DH: "k1", Auth: "a1"},
			model.PushSubscription{Endpoint: "https://example.com/b", P256DH: "k2", Auth: "a2"},
		)
		src.notes["n-1"] = &model.Notification{ID: "n-1", Type: model.NotificationAlert, Title: "Wire removed", Message: "PM1 ran 20000 MT"}

		var wg sync.WaitGroup
		wg.Add(2)
		var mu sync.Mutex
		endpoints := []string{}

		wp := NewWorkerPool(2, src, &webpush.Options{TTL: 60}, zap.NewNop())
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				defer wg.Done()
				var p Payload
				assert.NoError(t, json.Unmarshal(payload, &p))
				assert.Equal(t, Payload{ID: "n-1", Type: model.NotificationAlert, Title: "Wire removed", Body: "PM1 ran 20000 MT", URL: "/"}, p)
				assert.Equal(t, 60, options.TTL)
				mu.Lock()
				endpoints = append(endpoints, sub.Endpoint)
				mu.Unlock()
				return response(http.StatusCreated), nil
			},
		}
		wp.Start(ctx)

		wp.Dispatch("n-1")
		wg.Wait()
		assert.ElementsMatch(t, []string{"https://example.com/a", "https://example.com/b"}, endpoints)
	})

	t.Run("deletes expired subscription", func(t *testing.T) {
		src := newFakeSource(model.PushSubscription{Endpoint: "https://example.com/expired", P256DH: "k", Auth: "a"})
		src.notes["n-2"] = &model.Notification{ID: "n-2", Title: "t", Message: "m"}

		wp := NewWorkerPool(1, src, &webpush.Options{}, zap.NewNop())
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				return response(http.StatusGone), nil
			},
		}
		wp.Start(ctx)

		wp.Dispatch("n-2")
		select {
		case endpoint := <-src.deleted:
			assert.Equal(t, "https://example.com/expired", endpoint)
		case <-time.After(time.Second):
			t.Fatal("expired subscription was not deleted")
		}
	})

	t.Run("skips unknown notifications", func(t *testing.T) {
		src := newFakeSource(model.PushSubscription{Endpoint: "https://example.com/a"})
		sent := make(chan struct{}, 1)

		wp := NewWorkerPool(1, src, &webpush.Options{}, zap.NewNop())
		wp.sender = &mockSender{
			SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
				sent <- struct{}{}
				return response(http.StatusCreated), nil
			},
		}
		wp.Start(ctx)

		wp.Dispatch("missing")
		select {
		case <-sent:
			t.Fatal("nothing should be sent for a missing notification")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

func TestWorkerPool_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	wp := NewWorkerPool(3, newFakeSource(), &webpush.Options{}, zap.NewNop())
	wp.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		wp.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
}
