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

package coreledger

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/coreledger-io/coreledger/config"
	redlock "github.com/coreledger-io/coreledger/internal/lock"
	"github.com/coreledger-io/coreledger/model"
)

// OutboxRelay moves committed outbox messages to the broker. It polls
// the store for pending messages and delivers them at-least-once: a
// message row survives until the broker confirms the hand-off, so no
// committed event is ever lost to a crash.
type OutboxRelay struct {
	ledger         *CoreLedger
	batchSize      int
	pollInterval   time.Duration
	lockDuration   time.Duration
	publishTimeout time.Duration
	maxRetryCount  int
	destinations   map[string]string
	locker         *redlock.Locker
	stopCh         chan struct{}
	wg             sync.WaitGroup
	running        bool
	mu             sync.Mutex
}

// NewOutboxRelay creates a relay with the configured batch size, poll
// interval, retry ceiling and destination queue names.
func NewOutboxRelay(ledger *CoreLedger, configuration *config.Configuration) *OutboxRelay {
	return &OutboxRelay{
		ledger:         ledger,
		batchSize:      configuration.Outbox.BatchSize,
		pollInterval:   configuration.OutboxPollInterval(),
		lockDuration:   configuration.OutboxLockDuration(),
		publishTimeout: configuration.OutboxPublishTimeout(),
		maxRetryCount:  configuration.Outbox.MaxRetryCount,
		destinations: map[string]string{
			model.TransactionCreatedEventType: configuration.Broker.TransactionCreatedQueue,
		},
		stopCh: make(chan struct{}),
	}
}

// WithBatchSize sets the number of messages claimed per poll.
func (r *OutboxRelay) WithBatchSize(size int) *OutboxRelay {
	r.batchSize = size
	return r
}

// WithPollInterval sets the interval between polls.
func (r *OutboxRelay) WithPollInterval(interval time.Duration) *OutboxRelay {
	r.pollInterval = interval
	return r
}

// WithLeaderLock makes the relay compete for a redis lock before each
// poll so one instance does the polling per deployment. The store-level
// claim already prevents double delivery; this only avoids redundant
// polling.
func (r *OutboxRelay) WithLeaderLock(client redis.UniversalClient) *OutboxRelay {
	r.locker = redlock.NewLocker(client, "coreledger:outbox-relay")
	return r
}

// Start begins relaying in the background at the configured interval.
func (r *OutboxRelay) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx)
	}()
}

// Stop signals the relay to stop and waits for the in-flight batch to
// finish.
func (r *OutboxRelay) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
	logrus.Info("Outbox relay stopped")
}

// IsRunning returns whether the relay loop is active.
func (r *OutboxRelay) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *OutboxRelay) run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Outbox relay context cancelled")
			return
		case <-r.stopCh:
			logrus.Info("Outbox relay stop signal received")
			return
		case <-ticker.C:
			r.processBatch(ctx)
		}
	}
}

// processBatch claims and delivers one batch. Message order within the
// batch is ascending outbox id; a failure on one message does not block
// the rest of the batch.
func (r *OutboxRelay) processBatch(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "RelayOutboxBatch",
		trace.WithAttributes(attribute.Int("outbox.batch_size", r.batchSize)))
	defer span.End()

	if r.locker != nil {
		if err := r.locker.Lock(ctx, r.lockDuration); err != nil {
			// Another instance is polling; skip this turn.
			return
		}
		defer func() {
			if err := r.locker.Unlock(ctx); err != nil {
				logrus.Warnf("Failed to release relay leader lock: %v", err)
			}
		}()
	}

	messages, err := r.ledger.datasource.ClaimPendingOutboxMessages(ctx, r.batchSize, r.maxRetryCount, r.lockDuration)
	if err != nil {
		logrus.Errorf("Failed to claim outbox messages: %v", err)
		return
	}
	if len(messages) == 0 {
		return
	}

	logrus.Infof("Relaying %d outbox messages", len(messages))

	for _, message := range messages {
		if err := r.publish(ctx, message); err != nil {
			logrus.Errorf("Failed to publish outbox message %d: %v", message.ID, err)
			if markErr := r.ledger.datasource.RecordOutboxFailure(ctx, message.ID, err.Error(), r.maxRetryCount); markErr != nil {
				logrus.Errorf("Failed to record failure for outbox message %d: %v", message.ID, markErr)
			}
		} else {
			if markErr := r.ledger.datasource.MarkOutboxPublished(ctx, message.ID); markErr != nil {
				logrus.Errorf("Failed to mark outbox message %d as published: %v", message.ID, markErr)
			}
		}
	}
}

// publish hands one message to the broker, retrying transient errors
// with exponential backoff inside the publish timeout window.
func (r *OutboxRelay) publish(ctx context.Context, message model.OutboxMessage) error {
	ctx, cancel := context.WithTimeout(ctx, r.publishTimeout)
	defer cancel()

	destination := r.destinationFor(message.Type)
	operation := func() error {
		return r.ledger.publisher.Publish(ctx, destination, message.Payload)
	}
	return backoff.Retry(operation, backoff.WithContext(backoff.NewExponentialBackOff(), ctx))
}

// destinationFor resolves the queue for an event type. Unknown types
// fall back to the type string so nothing silently disappears.
func (r *OutboxRelay) destinationFor(eventType string) string {
	if destination, ok := r.destinations[eventType]; ok {
		return destination
	}
	return eventType
}
