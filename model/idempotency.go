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
	"errors"
	"strings"
	"time"
)

// IdempotencyRecord maps a client-supplied idempotency key to at most
// one transaction. The key is unique in the store; the unique index, not
// application logic, is what arbitrates concurrent duplicates.
type IdempotencyRecord struct {
	ID            int64     `json:"id"`
	Key           string    `json:"idempotency_key"`
	CreatedAt     time.Time `json:"created_at"`
	TransactionID string    `json:"transaction_id,omitempty"` // empty while creation is in flight
}

// NewIdempotencyRecord validates and builds an unreserved record.
func NewIdempotencyRecord(key string) (*IdempotencyRecord, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("idempotency key cannot be empty")
	}
	return &IdempotencyRecord{
		Key:       key,
		CreatedAt: time.Now(),
	}, nil
}

// Resolved reports whether the record already points at a transaction.
func (r *IdempotencyRecord) Resolved() bool {
	return r.TransactionID != ""
}
