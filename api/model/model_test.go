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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreledger-io/coreledger/model"
)

func validQueueTransaction() QueueTransaction {
	return QueueTransaction{
		FundID:     "fnd_1",
		SubType:    "BUY",
		TradeDate:  "2026-05-04",
		SettleDate: "2026-05-06",
		Quantity:   10,
		Price:      25.5,
		Amount:     255,
		Currency:   "USD",
	}
}

func TestValidateQueueTransaction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*QueueTransaction)
		wantErr bool
	}{
		{name: "valid", mutate: func(*QueueTransaction) {}, wantErr: false},
		{name: "missing fund", mutate: func(q *QueueTransaction) { q.FundID = "" }, wantErr: true},
		{name: "missing sub type", mutate: func(q *QueueTransaction) { q.SubType = "" }, wantErr: true},
		{name: "bad trade date", mutate: func(q *QueueTransaction) { q.TradeDate = "04/05/2026" }, wantErr: true},
		{name: "zero amount", mutate: func(q *QueueTransaction) { q.Amount = 0 }, wantErr: true},
		{name: "bad currency", mutate: func(q *QueueTransaction) { q.Currency = "US" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validQueueTransaction()
			tt.mutate(&req)
			err := req.ValidateQueueTransaction()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQueueTransactionToTransaction(t *testing.T) {
	req := validQueueTransaction()
	req.SecurityID = "sec_1"
	req.MetaData = map[string]interface{}{"desk": "equities"}

	txn, err := req.ToTransaction()
	require.NoError(t, err)

	assert.Equal(t, "fnd_1", txn.FundID)
	assert.Equal(t, "sec_1", txn.SecurityID)
	assert.Equal(t, model.StatusNew, txn.Status)
	assert.Equal(t, 10.0, txn.Quantity)
	assert.Equal(t, "equities", txn.MetaData["desk"])
	assert.Equal(t, 2026, txn.TradeDate.Year())
}

func TestQueueTransactionToTransactionRejectsInvertedDates(t *testing.T) {
	req := validQueueTransaction()
	req.SettleDate = "2026-05-01" // before trade date

	_, err := req.ToTransaction()
	assert.Error(t, err)
}

func TestValidateCompletionNotification(t *testing.T) {
	valid := CompletionNotification{TransactionID: "txn_1", Success: true, FinalStatusID: 2}
	assert.NoError(t, valid.ValidateCompletionNotification())

	missingID := CompletionNotification{FinalStatusID: 2}
	assert.Error(t, missingID.ValidateCompletionNotification())

	missingStatus := CompletionNotification{TransactionID: "txn_1"}
	assert.Error(t, missingStatus.ValidateCompletionNotification())
}

func TestValidateCreateFund(t *testing.T) {
	valid := CreateFund{Name: "Fund", BaseCurrency: "BRL", InceptionDate: "2020-01-02"}
	assert.NoError(t, valid.ValidateCreateFund())

	badDate := CreateFund{Name: "Fund", BaseCurrency: "BRL", InceptionDate: "02-01-2020"}
	assert.Error(t, badDate.ValidateCreateFund())

	badCurrency := CreateFund{Name: "Fund", BaseCurrency: "REAL", InceptionDate: "2020-01-02"}
	assert.Error(t, badCurrency.ValidateCreateFund())
}

func TestValidateCreateAccount(t *testing.T) {
	valid := CreateAccount{FundID: "fnd_1", Name: "Custody", Number: "0001-2", Currency: "USD"}
	assert.NoError(t, valid.ValidateCreateAccount())

	missingNumber := CreateAccount{FundID: "fnd_1", Name: "Custody", Currency: "USD"}
	assert.Error(t, missingNumber.ValidateCreateAccount())
}

func TestAddHolidayToHoliday(t *testing.T) {
	req := AddHoliday{Date: "2026-12-25", Description: "Christmas"}
	require.NoError(t, req.ValidateAddHoliday())

	holiday, err := req.ToHoliday("cal_1")
	require.NoError(t, err)
	assert.Equal(t, "cal_1", holiday.CalendarID)
	assert.Equal(t, 25, holiday.Date.Day())
}
