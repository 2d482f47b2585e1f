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
	"time"
)

// TransactionStatus is the closed set of transaction workflow states.
// The persisted representation is an integer; the mapping below is the
// only place the two meet.
type TransactionStatus string

const (
	StatusNew        TransactionStatus = "NEW"
	StatusExecuted   TransactionStatus = "EXECUTED"
	StatusBooked     TransactionStatus = "BOOKED"
	StatusSettled    TransactionStatus = "SETTLED"
	StatusCancelled  TransactionStatus = "CANCELLED"
	StatusProcessing TransactionStatus = "PROCESSING"
	StatusFailed     TransactionStatus = "FAILED"
)

var transactionStatusIDs = map[TransactionStatus]int{
	StatusNew:        1,
	StatusExecuted:   2,
	StatusBooked:     3,
	StatusSettled:    4,
	StatusCancelled:  5,
	StatusProcessing: 7,
	StatusFailed:     8,
}

var transactionStatusByID = func() map[int]TransactionStatus {
	m := make(map[int]TransactionStatus, len(transactionStatusIDs))
	for status, id := range transactionStatusIDs {
		m[id] = status
	}
	return m
}()

// ID returns the persisted integer for the status.
func (s TransactionStatus) ID() (int, error) {
	id, ok := transactionStatusIDs[s]
	if !ok {
		return 0, fmt.Errorf("unknown transaction status %q", string(s))
	}
	return id, nil
}

// IsValid reports whether the status is one of the closed set.
func (s TransactionStatus) IsValid() bool {
	_, ok := transactionStatusIDs[s]
	return ok
}

// TransactionStatusFromID maps a persisted status integer back to the domain type.
func TransactionStatusFromID(id int) (TransactionStatus, error) {
	status, ok := transactionStatusByID[id]
	if !ok {
		return "", fmt.Errorf("unknown transaction status id %d", id)
	}
	return status, nil
}

// Transaction is a ledger transaction accepted through the intake path.
// Financial execution happens in the external worker; this record carries
// identity, status and correlation metadata.
type Transaction struct {
	ID              int64                  `json:"-"`
	TransactionID   string                 `json:"transaction_id"`
	FundID          string                 `json:"fund_id"`
	SecurityID      string                 `json:"security_id,omitempty"`
	SubType         string                 `json:"sub_type"`
	TradeDate       time.Time              `json:"trade_date"`
	SettleDate      time.Time              `json:"settle_date"`
	Quantity        float64                `json:"quantity"`
	Price           float64                `json:"price"`
	Amount          float64                `json:"amount"`
	Currency        string                 `json:"currency"`
	Status          TransactionStatus      `json:"status"`
	CorrelationID   string                 `json:"correlation_id,omitempty"`
	RequestID       string                 `json:"request_id,omitempty"`
	CreatedByUserID string                 `json:"created_by_user_id,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	MetaData        map[string]interface{} `json:"meta_data,omitempty"`
}

// NewTransaction builds a transaction in status NEW, validating every
// invariant before anything becomes observable.
func NewTransaction(fundID, subType, currency string, amount float64, tradeDate, settleDate time.Time) (*Transaction, error) {
	if fundID == "" {
		return nil, errors.New("transaction requires a fund")
	}
	if subType == "" {
		return nil, errors.New("transaction requires a sub type")
	}
	if currency == "" {
		return nil, errors.New("transaction requires a currency")
	}
	if amount <= 0 {
		return nil, errors.New("transaction amount must be positive")
	}
	if tradeDate.IsZero() || settleDate.IsZero() {
		return nil, errors.New("transaction requires trade and settle dates")
	}
	if settleDate.Before(tradeDate) {
		return nil, errors.New("settle date cannot precede trade date")
	}

	return &Transaction{
		FundID:     fundID,
		SubType:    subType,
		Currency:   currency,
		Amount:     amount,
		TradeDate:  tradeDate,
		SettleDate: settleDate,
		Status:     StatusNew,
		CreatedAt:  time.Now(),
	}, nil
}

func (t *Transaction) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}

// TransactionCreatedEvent is the outbox payload announcing a created
// transaction. It carries everything the downstream worker needs so the
// worker never has to read back synchronously.
type TransactionCreatedEvent struct {
	TransactionID   string    `json:"transaction_id"`
	FundID          string    `json:"fund_id"`
	SecurityID      string    `json:"security_id,omitempty"`
	SubType         string    `json:"sub_type"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	OccurredOn      time.Time `json:"occurred_on"`
	CorrelationID   string    `json:"correlation_id,omitempty"`
	RequestID       string    `json:"request_id,omitempty"`
	CreatedByUserID string    `json:"created_by_user_id,omitempty"`
}

// TransactionCreatedEventType is the outbox type discriminator for
// TransactionCreatedEvent. It is part of the contract with the worker.
const TransactionCreatedEventType = "coreledger.transaction.created"

// NewTransactionCreatedEvent derives the outbox event from a persisted transaction.
func NewTransactionCreatedEvent(txn *Transaction) TransactionCreatedEvent {
	return TransactionCreatedEvent{
		TransactionID:   txn.TransactionID,
		FundID:          txn.FundID,
		SecurityID:      txn.SecurityID,
		SubType:         txn.SubType,
		Amount:          txn.Amount,
		Currency:        txn.Currency,
		OccurredOn:      txn.CreatedAt,
		CorrelationID:   txn.CorrelationID,
		RequestID:       txn.RequestID,
		CreatedByUserID: txn.CreatedByUserID,
	}
}
