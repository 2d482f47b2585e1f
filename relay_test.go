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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreledger-io/coreledger/config"
	"github.com/coreledger-io/coreledger/database"
	"github.com/coreledger-io/coreledger/model"
)

// scriptedPublisher lets a test decide per call whether the broker
// accepted the hand-off.
type scriptedPublisher struct {
	publish   func(destination string, payload []byte) error
	published []string
}

func (p *scriptedPublisher) Publish(_ context.Context, destination string, payload []byte) error {
	if err := p.publish(destination, payload); err != nil {
		return err
	}
	p.published = append(p.published, destination)
	return nil
}

func (p *scriptedPublisher) Close() error { return nil }

func newTestLedger(t *testing.T, publisher *scriptedPublisher) (*CoreLedger, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &CoreLedger{datasource: database.Datasource{Conn: db}, publisher: publisher}, mock
}

func testRelayConfig() *config.Configuration {
	cnf := &config.Configuration{}
	cnf.Broker.TransactionCreatedQueue = "transaction.created.queue"
	cnf.Outbox.BatchSize = 10
	cnf.Outbox.PollIntervalMs = 50
	cnf.Outbox.MaxRetryCount = 3
	cnf.Outbox.PublishTimeoutSec = 1
	cnf.Outbox.LockDurationSec = 30
	return cnf
}

func outboxRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "occurred_on", "type", "payload", "status", "retry_count", "last_error", "published_on", "locked_until"})
	for _, id := range ids {
		rows.AddRow(id, time.Now(), model.TransactionCreatedEventType, []byte(`{"transaction_id":"txn"}`), int16(0), 0, "", nil, nil)
	}
	return rows
}

func TestRelayPublishesClaimedBatch(t *testing.T) {
	publisher := &scriptedPublisher{publish: func(string, []byte) error { return nil }}
	ledger, mock := newTestLedger(t, publisher)
	relay := NewOutboxRelay(ledger, testRelayConfig())

	mock.ExpectQuery("UPDATE transaction_outbox").
		WillReturnRows(outboxRows(1, 2))
	mock.ExpectExec("UPDATE transaction_outbox").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE transaction_outbox").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	relay.processBatch(context.Background())

	assert.Equal(t, []string{"transaction.created.queue", "transaction.created.queue"}, publisher.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayRecordsFailureAndContinues(t *testing.T) {
	calls := 0
	publisher := &scriptedPublisher{publish: func(string, []byte) error {
		calls++
		if calls == 1 {
			return assert.AnError
		}
		return nil
	}}
	ledger, mock := newTestLedger(t, publisher)
	relay := NewOutboxRelay(ledger, testRelayConfig())
	relay.publishTimeout = 10 * time.Millisecond // fail fast instead of backing off

	mock.ExpectQuery("UPDATE transaction_outbox").
		WillReturnRows(outboxRows(1, 2))
	mock.ExpectExec("UPDATE transaction_outbox").
		WithArgs(int64(1), sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE transaction_outbox").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	relay.processBatch(context.Background())

	// The failed message did not block the rest of the batch.
	assert.Equal(t, []string{"transaction.created.queue"}, publisher.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayEmptyBatchIsQuiet(t *testing.T) {
	publisher := &scriptedPublisher{publish: func(string, []byte) error {
		t.Fatal("publish called with nothing claimed")
		return nil
	}}
	ledger, mock := newTestLedger(t, publisher)
	relay := NewOutboxRelay(ledger, testRelayConfig())

	mock.ExpectQuery("UPDATE transaction_outbox").
		WillReturnRows(outboxRows())

	relay.processBatch(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayLifecycle(t *testing.T) {
	publisher := &scriptedPublisher{publish: func(string, []byte) error { return nil }}
	ledger, _ := newTestLedger(t, publisher)

	cnf := testRelayConfig()
	cnf.Outbox.PollIntervalMs = 3600000 // no tick during the test
	relay := NewOutboxRelay(ledger, cnf)

	assert.False(t, relay.IsRunning())
	relay.Start(context.Background())
	assert.True(t, relay.IsRunning())

	// Starting twice is a no-op.
	relay.Start(context.Background())

	relay.Stop()
	assert.False(t, relay.IsRunning())
}

func TestRelayDestinationMapping(t *testing.T) {
	publisher := &scriptedPublisher{publish: func(string, []byte) error { return nil }}
	ledger, _ := newTestLedger(t, publisher)
	relay := NewOutboxRelay(ledger, testRelayConfig())

	assert.Equal(t, "transaction.created.queue", relay.destinationFor(model.TransactionCreatedEventType))
	assert.Equal(t, "some.other.event", relay.destinationFor("some.other.event"))
}
