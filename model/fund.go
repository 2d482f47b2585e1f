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

// Fund is an investment fund under administration.
type Fund struct {
	ID            int64                  `json:"-"`
	FundID        string                 `json:"fund_id"`
	Name          string                 `json:"name"`
	Document      string                 `json:"document,omitempty"` // registration document (e.g. CNPJ)
	BaseCurrency  string                 `json:"base_currency"`
	InceptionDate time.Time              `json:"inception_date"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     *time.Time             `json:"updated_at,omitempty"`
	DeletedAt     *time.Time             `json:"-"`
	MetaData      map[string]interface{} `json:"meta_data,omitempty"`
}

// NewFund validates and builds a fund.
func NewFund(name, baseCurrency string, inceptionDate time.Time) (*Fund, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("fund name cannot be empty")
	}
	if baseCurrency == "" {
		return nil, errors.New("fund base currency cannot be empty")
	}
	if inceptionDate.IsZero() {
		return nil, errors.New("fund inception date is required")
	}
	return &Fund{
		Name:          name,
		BaseCurrency:  strings.ToUpper(baseCurrency),
		InceptionDate: inceptionDate,
		CreatedAt:     time.Now(),
	}, nil
}
