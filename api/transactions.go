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

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	model2 "github.com/coreledger-io/coreledger/api/model"
	"github.com/coreledger-io/coreledger/api/middleware"
	"github.com/coreledger-io/coreledger/model"
)

const idempotencyKeyHeader = "X-Idempotency-Key"

// QueueTransaction accepts a transaction into the ledger.
//
// Responses:
// - 400 Bad Request: invalid body or missing user identity.
// - 409 Conflict: the idempotency key is reserved by an in-flight request.
// - 200 OK: idempotent replay of an earlier submission.
// - 201 Created: the transaction was queued.
func (a Api) QueueTransaction(c *gin.Context) {
	var newTransaction model2.QueueTransaction
	if err := c.ShouldBindJSON(&newTransaction); err != nil {
		logrus.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := newTransaction.ValidateQueueTransaction(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	userID := c.GetString(middleware.UserIDContextKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	txn, err := newTransaction.ToTransaction()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	txn.CreatedByUserID = userID
	txn.CorrelationID = c.GetString(middleware.CorrelationIDContextKey)

	result, err := a.ledger.QueueTransaction(c.Request.Context(), txn, c.GetHeader(idempotencyKeyHeader))
	if err != nil {
		handleError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"transaction": result.Transaction,
		"replayed":    result.Replayed,
	})
}

func (a Api) GetTransaction(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	txn, err := a.ledger.GetTransaction(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// GetAllTransactions lists transactions newest first, optionally
// filtered by ?status=.
func (a Api) GetAllTransactions(c *gin.Context) {
	limit, offset := paging(c)

	if statusParam := c.Query("status"); statusParam != "" {
		status := model.TransactionStatus(statusParam)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown transaction status"})
			return
		}
		transactions, err := a.ledger.GetTransactionsByStatus(c.Request.Context(), status, limit, offset)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, transactions)
		return
	}

	transactions, err := a.ledger.GetAllTransactions(c.Request.Context(), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}
