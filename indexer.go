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

package coreledger

import (
	"time"

	"github.com/coreledger-io/coreledger/model"
)

func (c *CoreLedger) CreateIndexer(indexer model.Indexer) (model.Indexer, error) {
	return c.datasource.CreateIndexer(indexer)
}

func (c *CoreLedger) GetIndexer(id string) (*model.Indexer, error) {
	return c.datasource.GetIndexerByID(id)
}

func (c *CoreLedger) GetAllIndexers(limit, offset int) ([]model.Indexer, error) {
	return c.datasource.GetAllIndexers(limit, offset)
}

func (c *CoreLedger) UpdateIndexer(indexer *model.Indexer) error {
	return c.datasource.UpdateIndexer(indexer)
}

func (c *CoreLedger) DeleteIndexer(id string) error {
	return c.datasource.DeleteIndexer(id)
}

// RecordIndexerRate stores one daily observation after checking the
// indexer exists.
func (c *CoreLedger) RecordIndexerRate(rate model.IndexerRate) (model.IndexerRate, error) {
	if _, err := c.datasource.GetIndexerByID(rate.IndexerID); err != nil {
		return model.IndexerRate{}, err
	}
	return c.datasource.UpsertIndexerRate(rate)
}

func (c *CoreLedger) GetIndexerRates(indexerID string, from, to time.Time) ([]model.IndexerRate, error) {
	return c.datasource.GetIndexerRates(indexerID, from, to)
}
