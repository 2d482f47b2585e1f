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
	"encoding/json"
	"time"

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

func (d Datasource) CreateFund(fund model.Fund) (model.Fund, error) {
	metaDataJSON, err := json.Marshal(fund.MetaData)
	if err != nil {
		return model.Fund{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	fund.FundID = model.GenerateUUIDWithSuffix("fnd")
	fund.CreatedAt = time.Now()

	_, err = d.Conn.Exec(`
		INSERT INTO funds (fund_id, name, document, base_currency, inception_date, created_at, meta_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, fund.FundID, fund.Name, fund.Document, fund.BaseCurrency, fund.InceptionDate, fund.CreatedAt, metaDataJSON)

	if err != nil {
		if isUniqueViolation(err) {
			return model.Fund{}, apierror.NewAPIError(apierror.ErrConflict, "Fund with this ID already exists", err)
		}
		return model.Fund{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create fund", err)
	}

	return fund, nil
}

func (d Datasource) GetFundByID(id string) (*model.Fund, error) {
	fund := model.Fund{}
	var metaDataJSON []byte

	row := d.Conn.QueryRow(`
		SELECT fund_id, name, COALESCE(document, ''), base_currency, inception_date, created_at, updated_at, meta_data
		FROM funds
		WHERE fund_id = $1 AND deleted_at IS NULL
	`, id)

	err := row.Scan(&fund.FundID, &fund.Name, &fund.Document, &fund.BaseCurrency, &fund.InceptionDate, &fund.CreatedAt, &fund.UpdatedAt, &metaDataJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Fund not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve fund", err)
	}

	if len(metaDataJSON) > 0 {
		if err := json.Unmarshal(metaDataJSON, &fund.MetaData); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
		}
	}

	return &fund, nil
}

func (d Datasource) GetAllFunds(limit, offset int) ([]model.Fund, error) {
	rows, err := d.Conn.Query(`
		SELECT fund_id, name, COALESCE(document, ''), base_currency, inception_date, created_at, updated_at, meta_data
		FROM funds
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve funds", err)
	}
	defer rows.Close()

	funds := []model.Fund{}
	for rows.Next() {
		fund := model.Fund{}
		var metaDataJSON []byte
		err = rows.Scan(&fund.FundID, &fund.Name, &fund.Document, &fund.BaseCurrency, &fund.InceptionDate, &fund.CreatedAt, &fund.UpdatedAt, &metaDataJSON)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan fund data", err)
		}
		if len(metaDataJSON) > 0 {
			if err := json.Unmarshal(metaDataJSON, &fund.MetaData); err != nil {
				return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
			}
		}
		funds = append(funds, fund)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over funds", err)
	}

	return funds, nil
}

func (d Datasource) UpdateFund(fund *model.Fund) error {
	metaDataJSON, err := json.Marshal(fund.MetaData)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	result, err := d.Conn.Exec(`
		UPDATE funds
		SET name = $2, document = $3, base_currency = $4, inception_date = $5, updated_at = NOW(), meta_data = $6
		WHERE fund_id = $1 AND deleted_at IS NULL
	`, fund.FundID, fund.Name, fund.Document, fund.BaseCurrency, fund.InceptionDate, metaDataJSON)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update fund", err)
	}
	return requireAffected(result, "Fund not found")
}

func (d Datasource) DeleteFund(id string) error {
	result, err := d.Conn.Exec(`
		UPDATE funds SET deleted_at = NOW() WHERE fund_id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete fund", err)
	}
	return requireAffected(result, "Fund not found")
}
