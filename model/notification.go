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

package model

import (
	"fmt"
	"time"
)

// CompletionNotification is the worker's report on a processed
// transaction. It is consumed once and never persisted here.
type CompletionNotification struct {
	TransactionID   string    `json:"transaction_id"`
	Success         bool      `json:"success"`
	FinalStatusID   int       `json:"final_status_id"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	ProcessedAt     time.Time `json:"processed_at"`
	CorrelationID   string    `json:"correlation_id,omitempty"`
	CreatedByUserID string    `json:"created_by_user_id,omitempty"`
}

// PushEventTypeSuccess and PushEventTypeError are the two push channel
// event types visible to clients.
const (
	PushEventTypeSuccess = "success"
	PushEventTypeError   = "error"
)

// PushEvent is the user-facing message fanned out over the push channel.
type PushEvent struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewPushEvent renders a completion notification into its push message.
func NewPushEvent(n CompletionNotification) PushEvent {
	if n.Success {
		return PushEvent{
			Message: fmt.Sprintf("Transaction %s processed successfully", n.TransactionID),
			Type:    PushEventTypeSuccess,
		}
	}
	reason := n.ErrorMessage
	if reason == "" {
		reason = "Unknown error"
	}
	return PushEvent{
		Message: fmt.Sprintf("Transaction %s failed: %s", n.TransactionID, reason),
		Type:    PushEventTypeError,
	}
}
