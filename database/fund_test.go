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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreledger-io/coreledger/internal/apierror"
	"github.com/coreledger-io/coreledger/model"
)

func TestCreateFund(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	fund := model.Fund{Name: "Global Equity Fund", BaseCurrency: "USD", InceptionDate: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)}

	mock.ExpectExec("INSERT INTO funds").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := datasource.CreateFund(fund)
	require.NoError(t, err)

	assert.Contains(t, created.FundID, "fnd_")
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFundConflict(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("INSERT INTO funds").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := datasource.CreateFund(model.Fund{Name: "Dup", BaseCurrency: "USD"})
	require.Error(t, err)

	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrConflict, apiErr.Code)
}

func TestGetFundByIDExcludesDeleted(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	// Soft-deleted rows never come back: the query carries the
	// deleted_at IS NULL predicate and the mock returns no rows.
	mock.ExpectQuery("SELECT (.+) FROM funds (.+)deleted_at IS NULL").
		WithArgs("fnd_gone").
		WillReturnRows(sqlmock.NewRows([]string{"fund_id", "name", "document", "base_currency", "inception_date", "created_at", "updated_at", "meta_data"}))

	_, err := datasource.GetFundByID("fnd_gone")
	require.Error(t, err)

	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllFunds(t *testing.T) {
	datasource, mock := newTestDatasource(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM funds").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"fund_id", "name", "document", "base_currency", "inception_date", "created_at", "updated_at", "meta_data"}).
			AddRow("fnd_1", "Fund One", "", "USD", now, now, nil, nil).
			AddRow("fnd_2", "Fund Two", "12.345.678/0001-00", "BRL", now, now, nil, []byte(`{"manager":"acme"}`)))

	funds, err := datasource.GetAllFunds(20, 0)
	require.NoError(t, err)
	require.Len(t, funds, 2)

	assert.Equal(t, "Fund One", funds[0].Name)
	assert.Equal(t, "acme", funds[1].MetaData["manager"])
}

func TestDeleteFund(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("UPDATE funds SET deleted_at").
		WithArgs("fnd_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, datasource.DeleteFund("fnd_1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFundNotFound(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("UPDATE funds SET deleted_at").
		WithArgs("fnd_missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := datasource.DeleteFund("fnd_missing")
	require.Error(t, err)

	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}
