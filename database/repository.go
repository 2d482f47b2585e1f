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

package database

import (
	"context"
	"time"

	"github.com/coreledger-io/coreledger/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	transaction // Transaction intake and reads
	outbox      // Outbox claim and status transitions
	idempotency // Idempotency record reads
	fund        // Fund master data
	security    // Security master data
	account     // Account master data
	indexer     // Indexer master data and rates
	calendar    // Calendar master data and holidays
}

// transaction defines methods for handling transactions.
type transaction interface {
	CreateTransactionWithOutbox(ctx context.Context, txn *model.Transaction, idempotencyKey string) (*TransactionCreationResult, error) // Atomically persists idempotency, transaction and outbox rows
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)                                                          // Retrieves a transaction by ID
	GetAllTransactions(ctx context.Context, limit, offset int) ([]model.Transaction, error)                                             // Retrieves transactions, newest first
	GetTransactionsByStatus(ctx context.Context, status model.TransactionStatus, limit, offset int) ([]model.Transaction, error)        // Retrieves transactions filtered by status
	UpdateTransactionStatus(ctx context.Context, id string, status model.TransactionStatus) error                                       // Updates the status of a transaction
}

// outbox defines methods for handling the transactional outbox.
type outbox interface {
	ClaimPendingOutboxMessages(ctx context.Context, batchSize, maxRetryCount int, lockDuration time.Duration) ([]model.OutboxMessage, error) // Claims a batch of deliverable messages
	MarkOutboxPublished(ctx context.Context, id int64) error                                                                                 // Marks a message as delivered to the broker
	RecordOutboxFailure(ctx context.Context, id int64, errMsg string, maxRetryCount int) error                                               // Records a failed delivery attempt
	GetOutboxMessage(ctx context.Context, id int64) (*model.OutboxMessage, error)                                                            // Retrieves a single outbox message
	GetOutboxMessages(ctx context.Context, status model.OutboxStatus, limit, offset int) ([]model.OutboxMessage, error)                      // Retrieves messages by status, oldest first
	ResetOutboxMessage(ctx context.Context, id int64) error                                                                                  // Returns a failed message to the pending pool
}

// idempotency defines methods for reading idempotency reservations.
type idempotency interface {
	GetIdempotencyRecord(ctx context.Context, key string) (*model.IdempotencyRecord, error)
}

// fund defines methods for handling funds.
type fund interface {
	CreateFund(fund model.Fund) (model.Fund, error)
	GetFundByID(id string) (*model.Fund, error)
	GetAllFunds(limit, offset int) ([]model.Fund, error)
	UpdateFund(fund *model.Fund) error
	DeleteFund(id string) error
}

// security defines methods for handling securities.
type security interface {
	CreateSecurity(sec model.Security) (model.Security, error)
	GetSecurityByID(id string) (*model.Security, error)
	GetAllSecurities(limit, offset int) ([]model.Security, error)
	UpdateSecurity(sec *model.Security) error
	DeleteSecurity(id string) error
}

// account defines methods for handling accounts.
type account interface {
	CreateAccount(account model.Account) (model.Account, error)
	GetAccountByID(id string) (*model.Account, error)
	GetAllAccounts(limit, offset int) ([]model.Account, error)
	UpdateAccount(account *model.Account) error
	DeleteAccount(id string) error
}

// indexer defines methods for handling indexers and their daily rates.
type indexer interface {
	CreateIndexer(indexer model.Indexer) (model.Indexer, error)
	GetIndexerByID(id string) (*model.Indexer, error)
	GetAllIndexers(limit, offset int) ([]model.Indexer, error)
	UpdateIndexer(indexer *model.Indexer) error
	DeleteIndexer(id string) error
	UpsertIndexerRate(rate model.IndexerRate) (model.IndexerRate, error)
	GetIndexerRates(indexerID string, from, to time.Time) ([]model.IndexerRate, error)
}

// calendar defines methods for handling calendars and holidays.
type calendar interface {
	CreateCalendar(cal model.Calendar) (model.Calendar, error)
	GetCalendarByID(id string) (*model.Calendar, error)
	GetAllCalendars(limit, offset int) ([]model.Calendar, error)
	UpdateCalendar(cal *model.Calendar) error
	DeleteCalendar(id string) error
	AddCalendarHoliday(holiday model.CalendarHoliday) (model.CalendarHoliday, error)
	GetCalendarHolidays(calendarID string, year int) ([]model.CalendarHoliday, error)
}
