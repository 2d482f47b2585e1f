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
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	model2 "github.com/coreledger-io/coreledger/api/model"
	"github.com/coreledger-io/coreledger/api/middleware"
	"github.com/coreledger-io/coreledger/internal/apierror"
)

// TransactionProcessed receives the worker's completion callback.
// Once the body parses and validates, the answer is 200 regardless of
// what happens downstream; the worker must not retry on our account.
//
// Responses:
// - 400 Bad Request: structurally invalid body.
// - 200 OK: the notification was accepted.
func (a Api) TransactionProcessed(c *gin.Context) {
	var callback model2.CompletionNotification
	if err := c.ShouldBindJSON(&callback); err != nil {
		logrus.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := callback.ValidateCompletionNotification(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.ledger.ProcessCompletionNotification(c.Request.Context(), callback.ToNotification()); err != nil {
		if apiErr, ok := err.(apierror.APIError); ok && apiErr.Code == apierror.ErrBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": apiErr.Message})
			return
		}
		// Anything past validation is our problem, not the worker's.
		logrus.Errorf("Completion notification for %s not fully processed: %v", callback.TransactionID, err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// StreamNotifications is the push channel: a server-sent-events stream
// of completion messages addressed to the calling user.
func (a Api) StreamNotifications(c *gin.Context) {
	userID := c.GetString(middleware.UserIDContextKey)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	events, cancel := a.ledger.Hub().Subscribe(userID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("notification", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
