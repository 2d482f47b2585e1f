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

func (d Datasource) CreateSecurity(sec model.Security) (model.Security, error) {
	metaDataJSON, err := json.Marshal(sec.MetaData)
	if err != nil {
		return model.Security{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	sec.SecurityID = model.GenerateUUIDWithSuffix("sec")
	sec.CreatedAt = time.Now()

	_, err = d.Conn.Exec(`
		INSERT INTO securities (security_id, symbol, name, asset_class, currency, created_at, meta_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sec.SecurityID, sec.Symbol, sec.Name, sec.AssetClass, sec.Currency, sec.CreatedAt, metaDataJSON)

	if err != nil {
		if isUniqueViolation(err) {
			return model.Security{}, apierror.NewAPIError(apierror.ErrConflict, "Security with this ID already exists", err)
		}
		return model.Security{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create security", err)
	}

	return sec, nil
}

func (d Datasource) GetSecurityByID(id string) (*model.Security, error) {
	sec := model.Security{}
	var metaDataJSON []byte

	row := d.Conn.QueryRow(`
		SELECT security_id, symbol, name, COALESCE(asset_class, ''), currency, created_at, updated_at, meta_data
		FROM securities
		WHERE security_id = $1 AND deleted_at IS NULL
	`, id)

	err := row.Scan(&sec.SecurityID, &sec.Symbol, &sec.Name, &sec.AssetClass, &sec.Currency, &sec.CreatedAt, &sec.UpdatedAt, &metaDataJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Security not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve security", err)
	}

	if len(metaDataJSON) > 0 {
		if err := json.Unmarshal(metaDataJSON, &sec.MetaData); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
		}
	}

	return &sec, nil
}

func (d Datasource) GetAllSecurities(limit, offset int) ([]model.Security, error) {
	rows, err := d.Conn.Query(`
		SELECT security_id, symbol, name, COALESCE(asset_class, ''), currency, created_at, updated_at, meta_data
		FROM securities
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve securities", err)
	}
	defer rows.Close()

	securities := []model.Security{}
	for rows.Next() {
		sec := model.Security{}
		var metaDataJSON []byte
		err = rows.Scan(&sec.SecurityID, &sec.Symbol, &sec.Name, &sec.AssetClass, &sec.Currency, &sec.CreatedAt, &sec.UpdatedAt, &metaDataJSON)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan security data", err)
		}
		if len(metaDataJSON) > 0 {
			if err := json.Unmarshal(metaDataJSON, &sec.MetaData); err != nil {
				return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
			}
		}
		securities = append(securities, sec)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over securities", err)
	}

	return securities, nil
}

func (d Datasource) UpdateSecurity(sec *model.Security) error {
	metaDataJSON, err := json.Marshal(sec.MetaData)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	result, err := d.Conn.Exec(`
		UPDATE securities
		SET symbol = $2, name = $3, asset_class = $4, currency = $5, updated_at = NOW(), meta_data = $6
		WHERE security_id = $1 AND deleted_at IS NULL
	`, sec.SecurityID, sec.Symbol, sec.Name, sec.AssetClass, sec.Currency, metaDataJSON)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update security", err)
	}
	return requireAffected(result, "Security not found")
}

func (d Datasource) DeleteSecurity(id string) error {
	result, err := d.Conn.Exec(`
		UPDATE securities SET deleted_at = NOW() WHERE security_id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete security", err)
	}
	return requireAffected(result, "Security not found")
}
