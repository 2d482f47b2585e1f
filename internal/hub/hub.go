/*
Copyright 2026 CoreLedger Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package hub fans completion push events out to per-user subscribers.
// Publishes travel over redis pub/sub so any instance can deliver to a
// session held by another instance. There is no store-and-forward: an
// event with no live subscriber is dropped.
package hub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/coreledger-io/coreledger/model"
)

const backplaneChannel = "coreledger:push"

// envelope wraps a push event with its addressee for the redis trip.
type envelope struct {
	UserID string          `json:"user_id"`
	Event  model.PushEvent `json:"event"`
}

type Hub struct {
	client redis.UniversalClient

	mutex       sync.RWMutex
	subscribers map[string]map[int64]chan model.PushEvent
	nextID      int64

	pubsub *redis.PubSub
	done   chan struct{}
}

func NewHub(client redis.UniversalClient) *Hub {
	return &Hub{
		client:      client,
		subscribers: make(map[string]map[int64]chan model.PushEvent),
	}
}

// Start begins consuming the redis backplane. It returns once the
// subscription is live; delivery runs in a background goroutine until
// Stop is called.
func (h *Hub) Start(ctx context.Context) error {
	h.pubsub = h.client.Subscribe(ctx, backplaneChannel)
	if _, err := h.pubsub.Receive(ctx); err != nil {
		return err
	}
	h.done = make(chan struct{})

	go func() {
		defer close(h.done)
		for msg := range h.pubsub.Channel() {
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				logrus.Errorf("Failed to decode push envelope: %v", err)
				continue
			}
			h.deliver(env.UserID, env.Event)
		}
	}()

	logrus.Info("Notification hub started")
	return nil
}

// Stop closes the backplane subscription and waits for the delivery
// goroutine to drain.
func (h *Hub) Stop() error {
	if h.pubsub == nil {
		return nil
	}
	err := h.pubsub.Close()
	<-h.done
	logrus.Info("Notification hub stopped")
	return err
}

// Publish addresses an event to a user. Every instance subscribed to
// the backplane, this one included, gets a chance to deliver it.
func (h *Hub) Publish(ctx context.Context, userID string, event model.PushEvent) error {
	payload, err := json.Marshal(envelope{UserID: userID, Event: event})
	if err != nil {
		return err
	}
	return h.client.Publish(ctx, backplaneChannel, payload).Err()
}

// Subscribe registers a session for a user and returns its event
// channel plus a cancel function. The channel is buffered; a slow
// consumer loses events rather than blocking delivery.
func (h *Hub) Subscribe(userID string) (<-chan model.PushEvent, func()) {
	ch := make(chan model.PushEvent, 16)

	h.mutex.Lock()
	h.nextID++
	id := h.nextID
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[int64]chan model.PushEvent)
	}
	h.subscribers[userID][id] = ch
	h.mutex.Unlock()

	cancel := func() {
		h.mutex.Lock()
		if sessions, ok := h.subscribers[userID]; ok {
			delete(sessions, id)
			if len(sessions) == 0 {
				delete(h.subscribers, userID)
			}
		}
		h.mutex.Unlock()
	}
	return ch, cancel
}

func (h *Hub) deliver(userID string, event model.PushEvent) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
			logrus.Warnf("Push buffer full for user %s, dropping event", userID)
		}
	}
}
