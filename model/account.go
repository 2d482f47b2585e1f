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

// Account is a custody or cash account belonging to a fund.
type Account struct {
	ID        int64                  `json:"-"`
	AccountID string                 `json:"account_id"`
	FundID    string                 `json:"fund_id"`
	Name      string                 `json:"name"`
	Number    string                 `json:"number"`
	BankName  string                 `json:"bank_name"`
	Currency  string                 `json:"currency"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt *time.Time             `json:"updated_at,omitempty"`
	DeletedAt *time.Time             `json:"-"`
	MetaData  map[string]interface{} `json:"meta_data,omitempty"`
}

// NewAccount validates and builds an account.
func NewAccount(fundID, name, number, bankName, currency string) (*Account, error) {
	if fundID == "" {
		return nil, errors.New("account requires a fund")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("account name cannot be empty")
	}
	if strings.TrimSpace(number) == "" {
		return nil, errors.New("account number cannot be empty")
	}
	if currency == "" {
		return nil, errors.New("account currency cannot be empty")
	}
	return &Account{
		FundID:    fundID,
		Name:      strings.TrimSpace(name),
		Number:    strings.TrimSpace(number),
		BankName:  bankName,
		Currency:  strings.ToUpper(currency),
		CreatedAt: time.Now(),
	}, nil
}
