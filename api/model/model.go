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
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/coreledger-io/coreledger/model"
)

const dateLayout = "2006-01-02"

func validateDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return errors.New("please format the date as 'YYYY-MM-DD' (e.g., 2026-04-22)")
	}
	return nil
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

// QueueTransaction is the intake request body.
type QueueTransaction struct {
	FundID     string                 `json:"fund_id"`
	SecurityID string                 `json:"security_id,omitempty"`
	SubType    string                 `json:"sub_type"`
	TradeDate  string                 `json:"trade_date"`
	SettleDate string                 `json:"settle_date"`
	Quantity   float64                `json:"quantity"`
	Price      float64                `json:"price"`
	Amount     float64                `json:"amount"`
	Currency   string                 `json:"currency"`
	MetaData   map[string]interface{} `json:"meta_data,omitempty"`
}

func (t *QueueTransaction) ValidateQueueTransaction() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.FundID, validation.Required),
		validation.Field(&t.SubType, validation.Required),
		validation.Field(&t.TradeDate, validation.Required, validation.By(validateDate)),
		validation.Field(&t.SettleDate, validation.Required, validation.By(validateDate)),
		validation.Field(&t.Amount, validation.Required, validation.Min(0.0001)),
		validation.Field(&t.Currency, validation.Required, validation.Length(3, 3)),
	)
}

// ToTransaction converts the validated request into a domain
// transaction, running the model invariants a second time.
func (t *QueueTransaction) ToTransaction() (*model.Transaction, error) {
	txn, err := model.NewTransaction(t.FundID, t.SubType, t.Currency, t.Amount, parseDate(t.TradeDate), parseDate(t.SettleDate))
	if err != nil {
		return nil, err
	}
	txn.SecurityID = t.SecurityID
	txn.Quantity = t.Quantity
	txn.Price = t.Price
	txn.MetaData = t.MetaData
	return txn, nil
}

// CompletionNotification is the worker callback body.
type CompletionNotification struct {
	TransactionID   string    `json:"transaction_id"`
	Success         bool      `json:"success"`
	FinalStatusID   int       `json:"final_status_id"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	ProcessedAt     time.Time `json:"processed_at"`
	CorrelationID   string    `json:"correlation_id,omitempty"`
	CreatedByUserID string    `json:"created_by_user_id,omitempty"`
}

func (n *CompletionNotification) ValidateCompletionNotification() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.TransactionID, validation.Required),
		validation.Field(&n.FinalStatusID, validation.Required),
	)
}

func (n *CompletionNotification) ToNotification() model.CompletionNotification {
	return model.CompletionNotification{
		TransactionID:   n.TransactionID,
		Success:         n.Success,
		FinalStatusID:   n.FinalStatusID,
		ErrorMessage:    n.ErrorMessage,
		ProcessedAt:     n.ProcessedAt,
		CorrelationID:   n.CorrelationID,
		CreatedByUserID: n.CreatedByUserID,
	}
}

// CreateFund is the fund create/update request body.
type CreateFund struct {
	Name          string                 `json:"name"`
	Document      string                 `json:"document,omitempty"`
	BaseCurrency  string                 `json:"base_currency"`
	InceptionDate string                 `json:"inception_date"`
	MetaData      map[string]interface{} `json:"meta_data,omitempty"`
}

func (f *CreateFund) ValidateCreateFund() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.BaseCurrency, validation.Required, validation.Length(3, 3)),
		validation.Field(&f.InceptionDate, validation.Required, validation.By(validateDate)),
	)
}

func (f *CreateFund) ToFund() (*model.Fund, error) {
	fund, err := model.NewFund(f.Name, f.BaseCurrency, parseDate(f.InceptionDate))
	if err != nil {
		return nil, err
	}
	fund.Document = f.Document
	fund.MetaData = f.MetaData
	return fund, nil
}

// CreateSecurity is the security create/update request body.
type CreateSecurity struct {
	Symbol     string                 `json:"symbol"`
	Name       string                 `json:"name"`
	AssetClass string                 `json:"asset_class,omitempty"`
	Currency   string                 `json:"currency"`
	MetaData   map[string]interface{} `json:"meta_data,omitempty"`
}

func (s *CreateSecurity) ValidateCreateSecurity() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Symbol, validation.Required),
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Currency, validation.Required, validation.Length(3, 3)),
	)
}

func (s *CreateSecurity) ToSecurity() (*model.Security, error) {
	sec, err := model.NewSecurity(s.Symbol, s.Name, s.AssetClass, s.Currency)
	if err != nil {
		return nil, err
	}
	sec.MetaData = s.MetaData
	return sec, nil
}

// CreateAccount is the account create/update request body.
type CreateAccount struct {
	FundID   string                 `json:"fund_id"`
	Name     string                 `json:"name"`
	Number   string                 `json:"number"`
	BankName string                 `json:"bank_name,omitempty"`
	Currency string                 `json:"currency"`
	MetaData map[string]interface{} `json:"meta_data,omitempty"`
}

func (a *CreateAccount) ValidateCreateAccount() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.FundID, validation.Required),
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.Number, validation.Required),
		validation.Field(&a.Currency, validation.Required, validation.Length(3, 3)),
	)
}

func (a *CreateAccount) ToAccount() (*model.Account, error) {
	account, err := model.NewAccount(a.FundID, a.Name, a.Number, a.BankName, a.Currency)
	if err != nil {
		return nil, err
	}
	account.MetaData = a.MetaData
	return account, nil
}

// CreateIndexer is the indexer create/update request body.
type CreateIndexer struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (i *CreateIndexer) ValidateCreateIndexer() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Code, validation.Required),
		validation.Field(&i.Name, validation.Required),
	)
}

func (i *CreateIndexer) ToIndexer() (*model.Indexer, error) {
	return model.NewIndexer(i.Code, i.Name, i.Description)
}

// RecordIndexerRate is the daily rate request body.
type RecordIndexerRate struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

func (r *RecordIndexerRate) ValidateRecordIndexerRate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Date, validation.Required, validation.By(validateDate)),
	)
}

func (r *RecordIndexerRate) ToIndexerRate(indexerID string) (*model.IndexerRate, error) {
	return model.NewIndexerRate(indexerID, parseDate(r.Date), r.Rate)
}

// CreateCalendar is the calendar create/update request body.
type CreateCalendar struct {
	Name   string `json:"name"`
	Market string `json:"market,omitempty"`
}

func (c *CreateCalendar) ValidateCreateCalendar() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
	)
}

func (c *CreateCalendar) ToCalendar() (*model.Calendar, error) {
	return model.NewCalendar(c.Name, c.Market)
}

// AddHoliday is the calendar holiday request body.
type AddHoliday struct {
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

func (h *AddHoliday) ValidateAddHoliday() error {
	return validation.ValidateStruct(h,
		validation.Field(&h.Date, validation.Required, validation.By(validateDate)),
	)
}

func (h *AddHoliday) ToHoliday(calendarID string) (*model.CalendarHoliday, error) {
	return model.NewCalendarHoliday(calendarID, parseDate(h.Date), h.Description)
}
