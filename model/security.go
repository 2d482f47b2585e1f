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

// Security is a tradable instrument referenced by transactions.
type Security struct {
	ID         int64                  `json:"-"`
	SecurityID string                 `json:"security_id"`
	Symbol     string                 `json:"symbol"`
	Name       string                 `json:"name"`
	AssetClass string                 `json:"asset_class"`
	Currency   string                 `json:"currency"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  *time.Time             `json:"updated_at,omitempty"`
	DeletedAt  *time.Time             `json:"-"`
	MetaData   map[string]interface{} `json:"meta_data,omitempty"`
}

// NewSecurity validates and builds a security.
func NewSecurity(symbol, name, assetClass, currency string) (*Security, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errors.New("security symbol cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("security name cannot be empty")
	}
	if currency == "" {
		return nil, errors.New("security currency cannot be empty")
	}
	return &Security{
		Symbol:     symbol,
		Name:       strings.TrimSpace(name),
		AssetClass: assetClass,
		Currency:   strings.ToUpper(currency),
		CreatedAt:  time.Now(),
	}, nil
}
