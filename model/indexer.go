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

// Indexer is a financial index (CDI, SELIC, IPCA, ...) used to mark
// positions and fees.
type Indexer struct {
	ID          int64      `json:"-"`
	IndexerID   string     `json:"indexer_id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	DeletedAt   *time.Time `json:"-"`
}

// IndexerRate is one daily observation of an indexer.
type IndexerRate struct {
	ID        int64     `json:"-"`
	IndexerID string    `json:"indexer_id"`
	Date      time.Time `json:"date"`
	Rate      float64   `json:"rate"`
	CreatedAt time.Time `json:"created_at"`
}

// NewIndexer validates and builds an indexer.
func NewIndexer(code, name, description string) (*Indexer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.New("indexer code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("indexer name cannot be empty")
	}
	return &Indexer{
		Code:        code,
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// NewIndexerRate validates and builds a daily rate observation.
func NewIndexerRate(indexerID string, date time.Time, rate float64) (*IndexerRate, error) {
	if indexerID == "" {
		return nil, errors.New("indexer rate requires an indexer")
	}
	if date.IsZero() {
		return nil, errors.New("indexer rate requires a date")
	}
	return &IndexerRate{
		IndexerID: indexerID,
		Date:      date,
		Rate:      rate,
		CreatedAt: time.Now(),
	}, nil
}
