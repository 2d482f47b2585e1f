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

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/coreledger-io/coreledger/database"
	"github.com/coreledger-io/coreledger/model"
)

var tracer = otel.Tracer("coreledger.service")

// QueueTransaction accepts a transaction into the ledger. The
// transaction row and its outbox message commit atomically; the
// idempotency key guards against duplicate submissions. A missing key
// gets a generated one, so idempotency is always enforced even for
// clients that never send the header.
func (c *CoreLedger) QueueTransaction(ctx context.Context, txn *model.Transaction, idempotencyKey string) (*database.TransactionCreationResult, error) {
	ctx, span := tracer.Start(ctx, "QueueTransaction")
	defer span.End()

	if idempotencyKey == "" {
		idempotencyKey = model.GenerateUUIDWithSuffix("idem")
	}
	span.SetAttributes(attribute.String("transaction.fund_id", txn.FundID))

	result, err := c.datasource.CreateTransactionWithOutbox(ctx, txn, idempotencyKey)
	if err != nil {
		return nil, err
	}

	if result.Replayed {
		logrus.Infof("Idempotent replay for key %s, transaction %s", idempotencyKey, result.Transaction.TransactionID)
	} else {
		logrus.Infof("Queued transaction %s with outbox message %d", result.Transaction.TransactionID, result.OutboxID)
	}
	return result, nil
}

func (c *CoreLedger) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	return c.datasource.GetTransaction(ctx, id)
}

func (c *CoreLedger) GetAllTransactions(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	return c.datasource.GetAllTransactions(ctx, limit, offset)
}

func (c *CoreLedger) GetTransactionsByStatus(ctx context.Context, status model.TransactionStatus, limit, offset int) ([]model.Transaction, error) {
	return c.datasource.GetTransactionsByStatus(ctx, status, limit, offset)
}
