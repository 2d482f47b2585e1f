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

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

// ProcessCompletionNotification bridges the worker's completion report
// to the originating user. It records the final transaction status and
// pushes a human-readable message over the hub. A notification without
// a user id is logged and dropped; that is not an error, the worker did
// its job and nobody is listening.
func (c *CoreLedger) ProcessCompletionNotification(ctx context.Context, notification model.CompletionNotification) error {
	ctx, span := tracer.Start(ctx, "ProcessCompletionNotification")
	defer span.End()

	finalStatus, err := model.TransactionStatusFromID(notification.FinalStatusID)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrBadRequest, "Unknown final status id", err)
	}

	if err := c.datasource.UpdateTransactionStatus(ctx, notification.TransactionID, finalStatus); err != nil {
		// The push still goes out: the worker's verdict matters more to
		// the waiting user than our bookkeeping.
		logrus.Errorf("Failed to record final status for transaction %s: %v", notification.TransactionID, err)
	}

	event := model.NewPushEvent(notification)

	if notification.CreatedByUserID == "" {
		logrus.Warnf("Completion notification for transaction %s has no user id, dropping push (correlation: %s)",
			notification.TransactionID, notification.CorrelationID)
		return nil
	}

	if err := c.hub.Publish(ctx, notification.CreatedByUserID, event); err != nil {
		logrus.Errorf("Failed to push completion for transaction %s to user %s: %v",
			notification.TransactionID, notification.CreatedByUserID, err)
	}
	return nil
}
