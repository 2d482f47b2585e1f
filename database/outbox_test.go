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

package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

func outboxColumns() []string {
	return []string{"id", "occurred_on", "type", "payload", "status", "retry_count", "last_error", "published_on", "locked_until"}
}

func TestClaimPendingOutboxMessages(t *testing.T) {
	datasource, mock := newTestDatasource(t)
	occurredOn := time.Now()
	lockedUntil := occurredOn.Add(30 * time.Second)

	mock.ExpectQuery("UPDATE transaction_outbox").
		WithArgs(sqlmock.AnyArg(), 5, 10).
		WillReturnRows(sqlmock.NewRows(outboxColumns()).
			AddRow(1, occurredOn, model.TransactionCreatedEventType, []byte(`{"transaction_id":"txn_1"}`), int16(0), 0, "", nil, lockedUntil).
			AddRow(2, occurredOn, model.TransactionCreatedEventType, []byte(`{"transaction_id":"txn_2"}`), int16(0), 1, "broker timeout", nil, lockedUntil))

	messages, err := datasource.ClaimPendingOutboxMessages(context.Background(), 10, 5, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Claims come back in id order, non-decreasing.
	assert.Equal(t, int64(1), messages[0].ID)
	assert.Equal(t, int64(2), messages[1].ID)
	assert.Equal(t, model.OutboxPending, messages[0].Status)
	assert.Equal(t, "broker timeout", messages[1].LastError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimPendingOutboxMessagesEmpty(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectQuery("UPDATE transaction_outbox").
		WithArgs(sqlmock.AnyArg(), 5, 10).
		WillReturnRows(sqlmock.NewRows(outboxColumns()))

	messages, err := datasource.ClaimPendingOutboxMessages(context.Background(), 10, 5, 30*time.Second)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestMarkOutboxPublished(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("UPDATE transaction_outbox").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := datasource.MarkOutboxPublished(context.Background(), 42)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordOutboxFailure(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("UPDATE transaction_outbox").
		WithArgs(int64(42), "broker unavailable", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := datasource.RecordOutboxFailure(context.Background(), 42, "broker unavailable", 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOutboxMessagesByStatus(t *testing.T) {
	datasource, mock := newTestDatasource(t)
	occurredOn := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM transaction_outbox").
		WithArgs(int16(2), 20, 0).
		WillReturnRows(sqlmock.NewRows(outboxColumns()).
			AddRow(9, occurredOn, model.TransactionCreatedEventType, []byte(`{}`), int16(2), 5, "queue declare failed", nil, nil))

	messages, err := datasource.GetOutboxMessages(context.Background(), model.OutboxFailed, 20, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	assert.Equal(t, model.OutboxFailed, messages[0].Status)
	assert.Equal(t, 5, messages[0].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetOutboxMessage(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("UPDATE transaction_outbox").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := datasource.ResetOutboxMessage(context.Background(), 9)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetOutboxMessageOnlyFailedRows(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	// A pending or published row is not resettable; zero rows match.
	mock.ExpectExec("UPDATE transaction_outbox").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := datasource.ResetOutboxMessage(context.Background(), 1)
	require.Error(t, err)

	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}
