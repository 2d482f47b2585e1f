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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOutboxMessage(t *testing.T) {
	msg, err := NewOutboxMessage(TransactionCreatedEventType, []byte(`{"transaction_id":"txn_1"}`), time.Time{})
	assert.NoError(t, err)
	assert.Equal(t, OutboxPending, msg.Status)
	assert.Equal(t, 0, msg.RetryCount)
	assert.False(t, msg.OccurredOn.IsZero())
	assert.Nil(t, msg.PublishedOn)
}

func TestNewOutboxMessage_Invalid(t *testing.T) {
	_, err := NewOutboxMessage("", []byte(`{}`), time.Now())
	assert.Error(t, err)

	_, err = NewOutboxMessage("   ", []byte(`{}`), time.Now())
	assert.Error(t, err)

	_, err = NewOutboxMessage(TransactionCreatedEventType, nil, time.Now())
	assert.Error(t, err)
}

func TestOutboxMessage_MarkPublished(t *testing.T) {
	msg, err := NewOutboxMessage(TransactionCreatedEventType, []byte(`{}`), time.Now())
	assert.NoError(t, err)

	assert.NoError(t, msg.MarkPublished())
	assert.Equal(t, OutboxPublished, msg.Status)
	assert.NotNil(t, msg.PublishedOn)

	// Published is terminal
	assert.Error(t, msg.MarkPublished())
	assert.Error(t, msg.RecordFailure("broker down", 5))
	assert.Error(t, msg.ResetForRetry())
}

func TestOutboxMessage_RecordFailure(t *testing.T) {
	msg, err := NewOutboxMessage(TransactionCreatedEventType, []byte(`{}`), time.Now())
	assert.NoError(t, err)

	assert.NoError(t, msg.RecordFailure("broker unreachable", 3))
	assert.Equal(t, OutboxPending, msg.Status)
	assert.Equal(t, 1, msg.RetryCount)
	assert.Equal(t, "broker unreachable", msg.LastError)

	assert.NoError(t, msg.RecordFailure("timeout", 3))
	assert.Equal(t, 2, msg.RetryCount)
	assert.Equal(t, OutboxPending, msg.Status)

	// Third failure hits the ceiling and becomes terminal
	assert.NoError(t, msg.RecordFailure("timeout", 3))
	assert.Equal(t, 3, msg.RetryCount)
	assert.Equal(t, OutboxFailed, msg.Status)
}

func TestOutboxMessage_RecordFailure_RequiresMessage(t *testing.T) {
	msg, err := NewOutboxMessage(TransactionCreatedEventType, []byte(`{}`), time.Now())
	assert.NoError(t, err)
	assert.Error(t, msg.RecordFailure("  ", 3))
	assert.Equal(t, 0, msg.RetryCount)
}

func TestOutboxMessage_ResetForRetry(t *testing.T) {
	msg, err := NewOutboxMessage(TransactionCreatedEventType, []byte(`{}`), time.Now())
	assert.NoError(t, err)

	assert.NoError(t, msg.RecordFailure("broker unreachable", 1))
	assert.Equal(t, OutboxFailed, msg.Status)

	assert.NoError(t, msg.ResetForRetry())
	assert.Equal(t, OutboxPending, msg.Status)
	assert.Equal(t, 0, msg.RetryCount)
	assert.Empty(t, msg.LastError)
}

func TestOutboxStatusMapping(t *testing.T) {
	tests := []struct {
		status OutboxStatus
		value  int16
	}{
		{OutboxPending, 0},
		{OutboxPublished, 1},
		{OutboxFailed, 2},
	}

	for _, tt := range tests {
		v, err := tt.status.Int()
		assert.NoError(t, err)
		assert.Equal(t, tt.value, v)

		back, err := OutboxStatusFromInt(tt.value)
		assert.NoError(t, err)
		assert.Equal(t, tt.status, back)
	}

	_, err := OutboxStatus("unknown").Int()
	assert.Error(t, err)

	_, err = OutboxStatusFromInt(9)
	assert.Error(t, err)
}
