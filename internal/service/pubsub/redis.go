package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/pkg/logger"
)

const DefaultChannel = "tenant_events"

// RedisPubSub publishes tenant events on a single Redis channel and fans
// them out to in-process subscribers such as websocket connections.
type RedisPubSub struct {
	client       *redis.Client
	channel      string
	logger       *logger.Logger
	subscribers  map[string]*redis.PubSub // Map of subscriber ID to subscription
	subscriberMu sync.RWMutex
}

func NewRedisPubSub(client *redis.Client, channel string, logger *logger.Logger) *RedisPubSub {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPubSub{
		client:      client,
		channel:     channel,
		logger:      logger,
		subscribers: make(map[string]*redis.PubSub),
	}
}

// Publish publishes a tenant event to the events channel
func (ps *RedisPubSub) Publish(ctx context.Context, event domain.TenantEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal tenant event: %w", err)
	}

	if err := ps.client.Publish(ctx, ps.channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", ps.channel, err)
	}

	return nil
}

// Subscribe delivers every tenant event to callback until ctx is done or
// Unsubscribe is called with the same subscriberID. The subscription is
// confirmed before Subscribe returns.
func (ps *RedisPubSub) Subscribe(ctx context.Context, subscriberID string, callback func(domain.TenantEvent)) error {
	ps.subscriberMu.RLock()
	_, exists := ps.subscribers[subscriberID]
	ps.subscriberMu.RUnlock()
	if exists {
		ps.logger.Infof("Subscriber %s already listening on %s", subscriberID, ps.channel)
		return nil
	}

	pubsub := ps.client.Subscribe(ctx, ps.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe to Redis channel %s: %w", ps.channel, err)
	}

	ps.subscriberMu.Lock()
	ps.subscribers[subscriberID] = pubsub
	ps.subscriberMu.Unlock()

	go func() {
		defer ps.release(subscriberID, pubsub)

		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event domain.TenantEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					ps.logger.Errorf("Failed to unmarshal tenant event from channel %s: %v", ps.channel, err)
					continue
				}
				callback(event)

			case <-ctx.Done():
				return
			}
		}
	}()

	ps.logger.Infof("Subscriber %s listening on %s", subscriberID, ps.channel)
	return nil
}

// Unsubscribe removes a subscription
func (ps *RedisPubSub) Unsubscribe(subscriberID string) {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	if pubsub, exists := ps.subscribers[subscriberID]; exists {
		pubsub.Close()
		delete(ps.subscribers, subscriberID)
		ps.logger.Infof("Subscriber %s stopped listening on %s", subscriberID, ps.channel)
	}
}

// release drops the subscription only while it is still the one registered
// under subscriberID, so a finished listener never removes its replacement.
func (ps *RedisPubSub) release(subscriberID string, pubsub *redis.PubSub) {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	if current, exists := ps.subscribers[subscriberID]; exists && current == pubsub {
		pubsub.Close()
		delete(ps.subscribers, subscriberID)
	}
}

func (ps *RedisPubSub) Close() {
	ps.subscriberMu.Lock()
	defer ps.subscriberMu.Unlock()

	for subscriberID, pubsub := range ps.subscribers {
		pubsub.Close()
		delete(ps.subscribers, subscriberID)
	}
	ps.logger.Infof("Closed all subscriptions on %s", ps.channel)
}
