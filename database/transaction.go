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
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

// TransactionCreationResult is what the intake path gets back from the
// atomic write. Replayed means the idempotency key had already resolved
// to an earlier transaction and no new rows were written.
type TransactionCreationResult struct {
	Transaction *model.Transaction
	OutboxID    int64
	Replayed    bool
}

// CreateTransactionWithOutbox persists the idempotency reservation, the
// transaction and its outbox message in a single database transaction.
// The unique index on transaction_idempotency.idempotency_key is the
// arbiter for concurrent duplicates: a unique violation aborts this
// attempt, and the reservation is re-read to decide between replaying
// the winner's transaction and reporting an in-flight conflict.
func (d Datasource) CreateTransactionWithOutbox(ctx context.Context, txn *model.Transaction, idempotencyKey string) (*TransactionCreationResult, error) {
	ctx, span := otel.Tracer("coreledger.database").Start(ctx, "CreateTransactionWithOutbox")
	defer span.End()

	metaDataJSON, err := json.Marshal(txn.MetaData)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	statusID, err := txn.Status.ID()
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid transaction status", err)
	}

	if txn.TransactionID == "" {
		txn.TransactionID = model.GenerateUUIDWithSuffix("txn")
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}

	event := model.NewTransactionCreatedEvent(txn)
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to serialize transaction event", err)
	}

	tx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to begin transaction", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transaction_idempotency (idempotency_key, created_at)
		VALUES ($1, $2)
	`, idempotencyKey, txn.CreatedAt)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err) {
			return d.resolveIdempotencyReplay(ctx, idempotencyKey)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to reserve idempotency key", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (transaction_id, fund_id, security_id, sub_type, trade_date, settle_date, quantity, price, amount, currency, status_id, correlation_id, request_id, created_by_user_id, created_at, meta_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`, txn.TransactionID, txn.FundID, nullString(txn.SecurityID), txn.SubType, txn.TradeDate, txn.SettleDate,
		txn.Quantity, txn.Price, txn.Amount, txn.Currency, statusID,
		nullString(txn.CorrelationID), nullString(txn.RequestID), nullString(txn.CreatedByUserID),
		txn.CreatedAt, metaDataJSON).Scan(&txn.ID)
	if err != nil {
		_ = tx.Rollback()
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to insert transaction", err)
	}

	var outboxID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transaction_outbox (occurred_on, type, payload)
		VALUES ($1, $2, $3)
		RETURNING id
	`, txn.CreatedAt, model.TransactionCreatedEventType, payload).Scan(&outboxID)
	if err != nil {
		_ = tx.Rollback()
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to insert outbox message", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE transaction_idempotency SET transaction_id = $1 WHERE idempotency_key = $2
	`, txn.TransactionID, idempotencyKey)
	if err != nil {
		_ = tx.Rollback()
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to resolve idempotency key", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to commit transaction", err)
	}

	return &TransactionCreationResult{Transaction: txn, OutboxID: outboxID}, nil
}

// resolveIdempotencyReplay runs after losing the unique-index race. The
// winner either finished (replay its transaction) or is still in flight
// (surface a conflict so the caller retries).
func (d Datasource) resolveIdempotencyReplay(ctx context.Context, idempotencyKey string) (*TransactionCreationResult, error) {
	record, err := d.GetIdempotencyRecord(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}

	if !record.Resolved() {
		return nil, apierror.NewAPIError(apierror.ErrConflict, "A request with this idempotency key is already in flight", nil)
	}

	existing, err := d.GetTransaction(ctx, record.TransactionID)
	if err != nil {
		return nil, err
	}

	return &TransactionCreationResult{Transaction: existing, Replayed: true}, nil
}

func (d Datasource) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT id, transaction_id, fund_id, COALESCE(security_id, ''), sub_type, trade_date, settle_date, quantity, price, amount, currency, status_id, COALESCE(correlation_id, ''), COALESCE(request_id, ''), COALESCE(created_by_user_id, ''), created_at, meta_data
		FROM transactions
		WHERE transaction_id = $1
	`, id)

	txn, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Transaction not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve transaction", err)
	}
	return txn, nil
}

func (d Datasource) GetAllTransactions(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, transaction_id, fund_id, COALESCE(security_id, ''), sub_type, trade_date, settle_date, quantity, price, amount, currency, status_id, COALESCE(correlation_id, ''), COALESCE(request_id, ''), COALESCE(created_by_user_id, ''), created_at, meta_data
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve transactions", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (d Datasource) GetTransactionsByStatus(ctx context.Context, status model.TransactionStatus, limit, offset int) ([]model.Transaction, error) {
	statusID, err := status.ID()
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid transaction status", err)
	}

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, transaction_id, fund_id, COALESCE(security_id, ''), sub_type, trade_date, settle_date, quantity, price, amount, currency, status_id, COALESCE(correlation_id, ''), COALESCE(request_id, ''), COALESCE(created_by_user_id, ''), created_at, meta_data
		FROM transactions
		WHERE status_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, statusID, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve transactions", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (d Datasource) UpdateTransactionStatus(ctx context.Context, id string, status model.TransactionStatus) error {
	statusID, err := status.ID()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid transaction status", err)
	}

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE transactions SET status_id = $1 WHERE transaction_id = $2
	`, statusID, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update transaction status", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to check transaction status update", err)
	}
	if affected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, "Transaction not found", nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	txn := model.Transaction{}
	var statusID int
	var metaDataJSON []byte

	err := row.Scan(&txn.ID, &txn.TransactionID, &txn.FundID, &txn.SecurityID, &txn.SubType,
		&txn.TradeDate, &txn.SettleDate, &txn.Quantity, &txn.Price, &txn.Amount, &txn.Currency,
		&statusID, &txn.CorrelationID, &txn.RequestID, &txn.CreatedByUserID, &txn.CreatedAt, &metaDataJSON)
	if err != nil {
		return nil, err
	}

	status, err := model.TransactionStatusFromID(statusID)
	if err != nil {
		return nil, err
	}
	txn.Status = status

	if len(metaDataJSON) > 0 {
		if err := json.Unmarshal(metaDataJSON, &txn.MetaData); err != nil {
			return nil, err
		}
	}
	return &txn, nil
}

func collectTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan transaction data", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over transactions", err)
	}
	return transactions, nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code.Name() == "unique_violation"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
