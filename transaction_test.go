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

	"github.com/coreledger-io/coreledger/model"
)

func newQueueableTransaction(t *testing.T) *model.Transaction {
	t.Helper()
	tradeDate := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	txn, err := model.NewTransaction("fnd_1", "BUY", "USD", 100, tradeDate, tradeDate)
	require.NoError(t, err)
	txn.CreatedByUserID = "user-1"
	return txn
}

func expectAtomicIntake(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transaction_idempotency").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO transaction_outbox").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec("UPDATE transaction_idempotency").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
}

func TestQueueTransaction(t *testing.T) {
	publisher := &scriptedPublisher{publish: func(string, []byte) error { return nil }}
	ledger, mock := newTestLedger(t, publisher)

	expectAtomicIntake(mock)

	result, err := ledger.QueueTransaction(context.Background(), newQueueableTransaction(t), "client-key-1")
	require.NoError(t, err)

	assert.False(t, result.Replayed)
	assert.Equal(t, int64(11), result.OutboxID)
	assert.Equal(t, model.StatusNew, result.Transaction.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueTransactionGeneratesMissingIdempotencyKey(t *testing.T) {
	publisher := &scriptedPublisher{publish: func(string, []byte) error { return nil }}
	ledger, mock := newTestLedger(t, publisher)

	expectAtomicIntake(mock)

	// Empty key: the service reserves a generated one, never skips the guard.
	result, err := ledger.QueueTransaction(context.Background(), newQueueableTransaction(t), "")
	require.NoError(t, err)

	assert.False(t, result.Replayed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
