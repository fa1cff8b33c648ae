package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"mill-maintenance-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Source is the slice of the store the workers read from.
type Source interface {
	GetNotification(ctx context.Context, id string) (*model.Notification, error)
	ListPushSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
	DeletePushSubscription(ctx context.Context, endpoint string) error
}

// Payload is the JSON body delivered to the browser service worker.
type Payload struct {
	ID    string                 `json:"id"`
	Type  model.NotificationType `json:"type"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	URL   string                 `json:"url"`
}

// WorkerPool fans feed entries out to every push subscription.
type WorkerPool struct {
	size    int
	jobs    chan string
	source  Source
	webpush *webpush.Options
	sender  NotificationSender
	log     *zap.Logger
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool. The queue holds a few jobs per
// worker; Dispatch drops jobs once it is full.
func NewWorkerPool(size int, source Source, webpushOptions *webpush.Options, log *zap.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size*16),
		source:  source,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		log:     log,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Wait blocks until every worker has returned after ctx is cancelled.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	wp.log.Debug("push worker started", zap.Int("worker", id))
	for {
		select {
		case notificationID := <-wp.jobs:
			wp.deliver(ctx, notificationID)
		case <-ctx.Done():
			wp.log.Debug("push worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch queues a notification for delivery without blocking the caller.
// It reports false when the queue is full and the job was dropped.
func (wp *WorkerPool) Dispatch(notificationID string) bool {
	select {
	case wp.jobs <- notificationID:
		return true
	default:
		wp.log.Warn("push queue full; dropping notification", zap.String("notification_id", notificationID))
		return false
	}
}

func (wp *WorkerPool) deliver(ctx context.Context, notificationID string) {
	n, err := wp.source.GetNotification(ctx, notificationID)
	if err != nil {
		wp.log.Error("failed to load notification", zap.String("notification_id", notificationID), zap.Error(err))
		return
	}

	subs, err := wp.source.ListPushSubscriptions(ctx)
	if err != nil {
		wp.log.Error("failed to list push subscriptions", zap.Error(err))
		return
	}
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(Payload{ID: n.ID, Type: n.Type, Title: n.Title, Body: n.Message, URL: "/"})
	if err != nil {
		wp.log.Error("failed to encode push payload", zap.Error(err))
		return
	}

	wp.log.Info("sending push notifications",
		zap.String("notification_id", notificationID),
		zap.Int("subscriptions", len(subs)),
	)
	for _, sub := range subs {
		wp.send(ctx, sub, payload)
	}
}

func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.Warn("failed to send push notification", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusGone, http.StatusNotFound:
		wp.log.Info("push subscription expired; deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.source.DeletePushSubscription(ctx, sub.Endpoint); err != nil {
			wp.log.Error("failed to delete expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
