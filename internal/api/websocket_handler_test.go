package api

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/pkg/logger"
)

// fakeSubscriber captures the hub's callback so tests can push events.
type fakeSubscriber struct {
	mu           sync.Mutex
	callback     func(domain.TenantEvent)
	subscribed   int
	unsubscribed int
	closed       bool
}

func (f *fakeSubscriber) Subscribe(_ context.Context, _ string, callback func(domain.TenantEvent)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callback = callback
	f.subscribed++
	return nil
}

func (f *fakeSubscriber) Unsubscribe(string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callback = nil
	f.unsubscribed++
}

func (f *fakeSubscriber) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeSubscriber) emit(event domain.TenantEvent) bool {
	f.mu.Lock()
	callback := f.callback
	f.mu.Unlock()
	if callback == nil {
		return false
	}
	callback(event)
	return true
}

func (f *fakeSubscriber) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribed, f.unsubscribed
}

func TestWebSocketHandler_StreamsEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	events := &fakeSubscriber{}
	handler := NewWebSocketHandler(logger.NewNopLogger(), events)
	go handler.Start()
	defer handler.Stop()

	router := gin.New()
	router.GET("/stream", handler.HandleWebSocket)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return handler.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	subscribed, _ := events.counts()
	assert.Equal(t, 1, subscribed)

	tenant := &domain.Tenant{ID: "t1", Subdomain: "acme", Status: domain.TenantStatusSuspended}
	require.True(t, events.emit(domain.NewTenantEvent(domain.EventTenantSuspended, tenant, time.Now())))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received domain.TenantEvent
	require.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, domain.EventTenantSuspended, received.Type)
	assert.Equal(t, "t1", received.TenantID)
	assert.Equal(t, "acme", received.Subdomain)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return handler.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, unsubscribed := events.counts()
		return unsubscribed == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketHandler_StopClosesSubscriber(t *testing.T) {
	events := &fakeSubscriber{}
	handler := NewWebSocketHandler(logger.NewNopLogger(), events)
	done := make(chan struct{})
	go func() {
		handler.Start()
		close(done)
	}()

	handler.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.True(t, events.closed)
	assert.Equal(t, 0, handler.ClientCount())
}

func TestWebSocketHandler_SlowClientDroppedByHub(t *testing.T) {
	events := &fakeSubscriber{}
	handler := NewWebSocketHandler(logger.NewNopLogger(), events)
	go handler.Start()
	defer handler.Stop()

	subscribedTimes := func(n int) func() bool {
		return func() bool {
			subscribed, _ := events.counts()
			return subscribed == n
		}
	}

	// Nothing drains an unbuffered send channel
	slow := &Client{send: make(chan []byte)}
	handler.register <- slow
	require.Eventually(t, subscribedTimes(1), 2*time.Second, 10*time.Millisecond)

	tenant := &domain.Tenant{ID: "t1", Subdomain: "acme", Status: domain.TenantStatusActive}
	event := domain.NewTenantEvent(domain.EventTenantActivated, tenant, time.Now())
	require.True(t, events.emit(event))

	require.Eventually(t, func() bool {
		_, unsubscribed := events.counts()
		return unsubscribed == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, handler.ClientCount())
	_, open := <-slow.send
	assert.False(t, open)

	next := &Client{send: make(chan []byte, 1)}
	handler.register <- next
	require.Eventually(t, subscribedTimes(2), 2*time.Second, 10*time.Millisecond)
	require.True(t, events.emit(event))

	select {
	case message := <-next.send:
		assert.Contains(t, string(message), `"tenant_id":"t1"`)
	case <-time.After(2 * time.Second):
		t.Fatal("new client received no event")
	}
}
