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

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

func (d Datasource) GetIdempotencyRecord(ctx context.Context, key string) (*model.IdempotencyRecord, error) {
	record := model.IdempotencyRecord{}

	row := d.Conn.QueryRowContext(ctx, `
		SELECT id, idempotency_key, created_at, COALESCE(transaction_id, '')
		FROM transaction_idempotency
		WHERE idempotency_key = $1
	`, key)

	err := row.Scan(&record.ID, &record.Key, &record.CreatedAt, &record.TransactionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Idempotency record not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve idempotency record", err)
	}

	return &record, nil
}
