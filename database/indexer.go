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
	"database/sql"
	"time"

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

func (d Datasource) CreateIndexer(indexer model.Indexer) (model.Indexer, error) {
	indexer.IndexerID = model.GenerateUUIDWithSuffix("idx")
	indexer.CreatedAt = time.Now()

	_, err := d.Conn.Exec(`
		INSERT INTO indexers (indexer_id, code, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, indexer.IndexerID, indexer.Code, indexer.Name, indexer.Description, indexer.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return model.Indexer{}, apierror.NewAPIError(apierror.ErrConflict, "Indexer with this code already exists", err)
		}
		return model.Indexer{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create indexer", err)
	}

	return indexer, nil
}

func (d Datasource) GetIndexerByID(id string) (*model.Indexer, error) {
	indexer := model.Indexer{}

	row := d.Conn.QueryRow(`
		SELECT indexer_id, code, name, COALESCE(description, ''), created_at, updated_at
		FROM indexers
		WHERE indexer_id = $1 AND deleted_at IS NULL
	`, id)

	err := row.Scan(&indexer.IndexerID, &indexer.Code, &indexer.Name, &indexer.Description, &indexer.CreatedAt, &indexer.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Indexer not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve indexer", err)
	}

	return &indexer, nil
}

func (d Datasource) GetAllIndexers(limit, offset int) ([]model.Indexer, error) {
	rows, err := d.Conn.Query(`
		SELECT indexer_id, code, name, COALESCE(description, ''), created_at, updated_at
		FROM indexers
		WHERE deleted_at IS NULL
		ORDER BY code
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve indexers", err)
	}
	defer rows.Close()

	indexers := []model.Indexer{}
	for rows.Next() {
		indexer := model.Indexer{}
		err = rows.Scan(&indexer.IndexerID, &indexer.Code, &indexer.Name, &indexer.Description, &indexer.CreatedAt, &indexer.UpdatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan indexer data", err)
		}
		indexers = append(indexers, indexer)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over indexers", err)
	}

	return indexers, nil
}

func (d Datasource) UpdateIndexer(indexer *model.Indexer) error {
	result, err := d.Conn.Exec(`
		UPDATE indexers
		SET code = $2, name = $3, description = $4, updated_at = NOW()
		WHERE indexer_id = $1 AND deleted_at IS NULL
	`, indexer.IndexerID, indexer.Code, indexer.Name, indexer.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return apierror.NewAPIError(apierror.ErrConflict, "Indexer with this code already exists", err)
		}
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update indexer", err)
	}
	return requireAffected(result, "Indexer not found")
}

func (d Datasource) DeleteIndexer(id string) error {
	result, err := d.Conn.Exec(`
		UPDATE indexers SET deleted_at = NOW() WHERE indexer_id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete indexer", err)
	}
	return requireAffected(result, "Indexer not found")
}

// UpsertIndexerRate writes one daily observation; a repeated date
// overwrites the earlier rate for that indexer.
func (d Datasource) UpsertIndexerRate(rate model.IndexerRate) (model.IndexerRate, error) {
	rate.CreatedAt = time.Now()

	err := d.Conn.QueryRow(`
		INSERT INTO indexer_rates (indexer_id, date, rate, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (indexer_id, date) DO UPDATE SET rate = EXCLUDED.rate
		RETURNING id
	`, rate.IndexerID, rate.Date, rate.Rate, rate.CreatedAt).Scan(&rate.ID)
	if err != nil {
		return model.IndexerRate{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to upsert indexer rate", err)
	}

	return rate, nil
}

func (d Datasource) GetIndexerRates(indexerID string, from, to time.Time) ([]model.IndexerRate, error) {
	rows, err := d.Conn.Query(`
		SELECT id, indexer_id, date, rate, created_at
		FROM indexer_rates
		WHERE indexer_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`, indexerID, from, to)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve indexer rates", err)
	}
	defer rows.Close()

	rates := []model.IndexerRate{}
	for rows.Next() {
		rate := model.IndexerRate{}
		err = rows.Scan(&rate.ID, &rate.IndexerID, &rate.Date, &rate.Rate, &rate.CreatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan indexer rate data", err)
		}
		rates = append(rates, rate)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over indexer rates", err)
	}

	return rates, nil
}
