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
	"time"

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

// ClaimPendingOutboxMessages atomically claims up to batchSize
// deliverable messages: pending, under the retry ceiling, and not held
// by a live claim. FOR UPDATE SKIP LOCKED lets concurrent relays claim
// disjoint batches; locked_until keeps a claim live across the publish
// window even after this statement's row locks are released.
func (d Datasource) ClaimPendingOutboxMessages(ctx context.Context, batchSize, maxRetryCount int, lockDuration time.Duration) ([]model.OutboxMessage, error) {
	lockedUntil := time.Now().Add(lockDuration)

	rows, err := d.Conn.QueryContext(ctx, `
		UPDATE transaction_outbox
		SET locked_until = $1
		WHERE id IN (
			SELECT id FROM transaction_outbox
			WHERE status = 0
			  AND retry_count < $2
			  AND (locked_until IS NULL OR locked_until < NOW())
			ORDER BY id
			FOR UPDATE SKIP LOCKED
			LIMIT $3
		)
		RETURNING id, occurred_on, type, payload, status, retry_count, COALESCE(last_error, ''), published_on, locked_until
	`, lockedUntil, maxRetryCount, batchSize)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to claim outbox messages", err)
	}
	defer rows.Close()

	return collectOutboxMessages(rows)
}

// MarkOutboxPublished records a confirmed broker hand-off. Published is
// terminal; the relay never revisits the row.
func (d Datasource) MarkOutboxPublished(ctx context.Context, id int64) error {
	result, err := d.Conn.ExecContext(ctx, `
		UPDATE transaction_outbox
		SET status = 1, published_on = NOW(), locked_until = NULL
		WHERE id = $1
	`, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to mark outbox message as published", err)
	}
	return requireAffected(result, "Outbox message not found")
}

// RecordOutboxFailure increments the retry count and releases the
// claim. The row stays pending until the ceiling, then turns failed and
// is never reprocessed without operator intervention.
func (d Datasource) RecordOutboxFailure(ctx context.Context, id int64, errMsg string, maxRetryCount int) error {
	result, err := d.Conn.ExecContext(ctx, `
		UPDATE transaction_outbox
		SET retry_count = retry_count + 1,
		    last_error = $2,
		    locked_until = NULL,
		    status = CASE WHEN retry_count + 1 >= $3 THEN 2 ELSE 0 END
		WHERE id = $1
	`, id, errMsg, maxRetryCount)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to record outbox failure", err)
	}
	return requireAffected(result, "Outbox message not found")
}

func (d Datasource) GetOutboxMessage(ctx context.Context, id int64) (*model.OutboxMessage, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT id, occurred_on, type, payload, status, retry_count, COALESCE(last_error, ''), published_on, locked_until
		FROM transaction_outbox
		WHERE id = $1
	`, id)

	message, err := scanOutboxMessage(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Outbox message not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve outbox message", err)
	}
	return message, nil
}

func (d Datasource) GetOutboxMessages(ctx context.Context, status model.OutboxStatus, limit, offset int) ([]model.OutboxMessage, error) {
	statusInt, err := status.Int()
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Invalid outbox status", err)
	}

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, occurred_on, type, payload, status, retry_count, COALESCE(last_error, ''), published_on, locked_until
		FROM transaction_outbox
		WHERE status = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`, statusInt, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve outbox messages", err)
	}
	defer rows.Close()

	return collectOutboxMessages(rows)
}

// ResetOutboxMessage returns a failed message to the pending pool. This
// is the operator remediation path, never called by the relay.
func (d Datasource) ResetOutboxMessage(ctx context.Context, id int64) error {
	result, err := d.Conn.ExecContext(ctx, `
		UPDATE transaction_outbox
		SET status = 0, retry_count = 0, last_error = NULL, locked_until = NULL
		WHERE id = $1 AND status = 2
	`, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to reset outbox message", err)
	}
	return requireAffected(result, "Failed outbox message not found")
}

func scanOutboxMessage(row rowScanner) (*model.OutboxMessage, error) {
	message := model.OutboxMessage{}
	var statusInt int16

	err := row.Scan(&message.ID, &message.OccurredOn, &message.Type, &message.Payload,
		&statusInt, &message.RetryCount, &message.LastError, &message.PublishedOn, &message.LockedUntil)
	if err != nil {
		return nil, err
	}

	status, err := model.OutboxStatusFromInt(statusInt)
	if err != nil {
		return nil, err
	}
	message.Status = status
	return &message, nil
}

func collectOutboxMessages(rows *sql.Rows) ([]model.OutboxMessage, error) {
	messages := []model.OutboxMessage{}
	for rows.Next() {
		message, err := scanOutboxMessage(rows)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan outbox message", err)
		}
		messages = append(messages, *message)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over outbox messages", err)
	}
	return messages, nil
}

func requireAffected(result sql.Result, notFoundMsg string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to check affected rows", err)
	}
	if affected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, notFoundMsg, nil)
	}
	return nil
}
