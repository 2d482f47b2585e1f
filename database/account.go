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

	"github.com/lib/pq"

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

func (d Datasource) CreateAccount(account model.Account) (model.Account, error) {
	metaDataJSON, err := json.Marshal(account.MetaData)
	if err != nil {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	account.AccountID = model.GenerateUUIDWithSuffix("acc")
	account.CreatedAt = time.Now()

	_, err = d.Conn.Exec(`
		INSERT INTO accounts (account_id, fund_id, name, number, bank_name, currency, created_at, meta_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, account.AccountID, account.FundID, account.Name, account.Number, account.BankName, account.Currency, account.CreatedAt, metaDataJSON)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return model.Account{}, apierror.NewAPIError(apierror.ErrConflict, "Account with this number already exists", err)
			case "foreign_key_violation":
				return model.Account{}, apierror.NewAPIError(apierror.ErrBadRequest, "Fund does not exist", err)
			}
		}
		return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create account", err)
	}

	return account, nil
}

func (d Datasource) GetAccountByID(id string) (*model.Account, error) {
	account := model.Account{}
	var metaDataJSON []byte

	row := d.Conn.QueryRow(`
		SELECT account_id, fund_id, name, number, COALESCE(bank_name, ''), currency, created_at, updated_at, meta_data
		FROM accounts
		WHERE account_id = $1 AND deleted_at IS NULL
	`, id)

	err := row.Scan(&account.AccountID, &account.FundID, &account.Name, &account.Number, &account.BankName, &account.Currency, &account.CreatedAt, &account.UpdatedAt, &metaDataJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Account not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve account", err)
	}

	if len(metaDataJSON) > 0 {
		if err := json.Unmarshal(metaDataJSON, &account.MetaData); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
		}
	}

	return &account, nil
}

func (d Datasource) GetAllAccounts(limit, offset int) ([]model.Account, error) {
	rows, err := d.Conn.Query(`
		SELECT account_id, fund_id, name, number, COALESCE(bank_name, ''), currency, created_at, updated_at, meta_data
		FROM accounts
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve accounts", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		account := model.Account{}
		var metaDataJSON []byte
		err = rows.Scan(&account.AccountID, &account.FundID, &account.Name, &account.Number, &account.BankName, &account.Currency, &account.CreatedAt, &account.UpdatedAt, &metaDataJSON)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan account data", err)
		}
		if len(metaDataJSON) > 0 {
			if err := json.Unmarshal(metaDataJSON, &account.MetaData); err != nil {
				return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
			}
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over accounts", err)
	}

	return accounts, nil
}

func (d Datasource) UpdateAccount(account *model.Account) error {
	metaDataJSON, err := json.Marshal(account.MetaData)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	result, err := d.Conn.Exec(`
		UPDATE accounts
		SET name = $2, number = $3, bank_name = $4, currency = $5, updated_at = NOW(), meta_data = $6
		WHERE account_id = $1 AND deleted_at IS NULL
	`, account.AccountID, account.Name, account.Number, account.BankName, account.Currency, metaDataJSON)
	if err != nil {
		if isUniqueViolation(err) {
			return apierror.NewAPIError(apierror.ErrConflict, "Account with this number already exists", err)
		}
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update account", err)
	}
	return requireAffected(result, "Account not found")
}

func (d Datasource) DeleteAccount(id string) error {
	result, err := d.Conn.Exec(`
		UPDATE accounts SET deleted_at = NOW() WHERE account_id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete account", err)
	}
	return requireAffected(result, "Account not found")
}
