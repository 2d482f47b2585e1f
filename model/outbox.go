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
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// OutboxStatus is the closed set of outbox delivery states. The column
// stores an integer; OutboxStatusFromInt and Int are the only mapping.
type OutboxStatus string

const (
	OutboxPending   OutboxStatus = "pending"
	OutboxPublished OutboxStatus = "published"
	OutboxFailed    OutboxStatus = "failed"
)

var outboxStatusInts = map[OutboxStatus]int16{
	OutboxPending:   0,
	OutboxPublished: 1,
	OutboxFailed:    2,
}

// Int returns the persisted integer for the status.
func (s OutboxStatus) Int() (int16, error) {
	v, ok := outboxStatusInts[s]
	if !ok {
		return 0, fmt.Errorf("unknown outbox status %q", string(s))
	}
	return v, nil
}

// OutboxStatusFromInt maps a persisted status integer back to the domain type.
func OutboxStatusFromInt(v int16) (OutboxStatus, error) {
	for status, i := range outboxStatusInts {
		if i == v {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown outbox status int %d", v)
}

// OutboxMessage is a durably queued domain event. It is inserted in the
// same database transaction as the fact it announces, so it can never
// exist without its transaction and the transaction can never commit
// without it.
type OutboxMessage struct {
	ID          int64           `json:"id"`
	OccurredOn  time.Time       `json:"occurred_on"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Status      OutboxStatus    `json:"status"`
	RetryCount  int             `json:"retry_count"`
	LastError   string          `json:"last_error,omitempty"`
	PublishedOn *time.Time      `json:"published_on,omitempty"`
	LockedUntil *time.Time      `json:"locked_until,omitempty"`
}

// NewOutboxMessage validates and builds a pending outbox message.
func NewOutboxMessage(eventType string, payload []byte, occurredOn time.Time) (*OutboxMessage, error) {
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return nil, errors.New("outbox event type cannot be empty")
	}
	if len(payload) == 0 {
		return nil, errors.New("outbox payload cannot be empty")
	}
	if occurredOn.IsZero() {
		occurredOn = time.Now()
	}

	return &OutboxMessage{
		OccurredOn: occurredOn,
		Type:       eventType,
		Payload:    payload,
		Status:     OutboxPending,
		RetryCount: 0,
	}, nil
}

// MarkPublished records a confirmed broker hand-off. Published is terminal.
func (m *OutboxMessage) MarkPublished() error {
	if m.Status == OutboxPublished {
		return errors.New("outbox message already published")
	}
	now := time.Now()
	m.Status = OutboxPublished
	m.PublishedOn = &now
	m.LockedUntil = nil
	return nil
}

// RecordFailure notes a failed delivery attempt. The message stays
// pending until maxRetries attempts have failed, then turns failed,
// which is terminal until an operator intervenes.
func (m *OutboxMessage) RecordFailure(errMsg string, maxRetries int) error {
	if m.Status == OutboxPublished {
		return errors.New("cannot record a failure on a published message")
	}
	errMsg = strings.TrimSpace(errMsg)
	if errMsg == "" {
		return errors.New("failure requires an error message")
	}
	m.RetryCount++
	m.LastError = errMsg
	m.LockedUntil = nil
	if m.RetryCount >= maxRetries {
		m.Status = OutboxFailed
	} else {
		m.Status = OutboxPending
	}
	return nil
}

// ResetForRetry returns a failed message to the pending pool. Used by
// operator remediation, never by the relay itself.
func (m *OutboxMessage) ResetForRetry() error {
	if m.Status == OutboxPublished {
		return errors.New("cannot retry a published message")
	}
	m.Status = OutboxPending
	m.RetryCount = 0
	m.LastError = ""
	return nil
}
