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
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coreledger-io/coreledger/model"
)

// Operator endpoints over the outbox. The interesting query is
// ?status=failed: messages that exhausted their retries and wait for a
// human decision.

func (a Api) GetOutboxMessages(c *gin.Context) {
	limit, offset := paging(c)

	status := model.OutboxStatus(c.DefaultQuery("status", string(model.OutboxFailed)))
	if _, err := status.Int(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown outbox status"})
		return
	}

	messages, err := a.ledger.GetOutboxMessages(c.Request.Context(), status, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (a Api) GetOutboxMessage(c *gin.Context) {
	id, ok := outboxID(c)
	if !ok {
		return
	}

	message, err := a.ledger.GetOutboxMessage(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

// RetryOutboxMessage hands a failed message back to the relay.
func (a Api) RetryOutboxMessage(c *gin.Context) {
	id, ok := outboxID(c)
	if !ok {
		return
	}

	if err := a.ledger.RetryOutboxMessage(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pending"})
}

func outboxID(c *gin.Context) (int64, bool) {
	raw, passed := requireParam(c, "id")
	if !passed {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "outbox id must be numeric"})
		return 0, false
	}
	return id, true
}
