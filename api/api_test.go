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

package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreledger "github.com/coreledger-io/coreledger"
	"github.com/coreledger-io/coreledger/api/middleware"
	"github.com/coreledger-io/coreledger/config"
	"github.com/coreledger-io/coreledger/database"
)

func newTestRouter(t *testing.T) (sqlmock.Sqlmock, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	config.MockConfig(&config.Configuration{
		ProjectName: "CoreLedger Test",
		Redis:       config.RedisConfig{Dns: mr.Addr()},
	})

	ledger, err := coreledger.NewCoreLedger(database.Datasource{Conn: db}, nil)
	require.NoError(t, err)

	a := Api{ledger: ledger, router: gin.New()}
	a.router.Use(middleware.IdentityMiddleware())
	return mock, a.Router()
}

func performRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func intakeBody() map[string]interface{} {
	return map[string]interface{}{
		"fund_id":     "fnd_1",
		"sub_type":    "SUBSCRIPTION",
		"trade_date":  "2026-08-28",
		"settle_date": "2026-08-31",
		"amount":      1500.50,
		"currency":    "USD",
	}
}

func transactionColumns() []string {
	return []string{"id", "transaction_id", "fund_id", "security_id", "sub_type",
		"trade_date", "settle_date", "quantity", "price", "amount", "currency",
		"status_id", "correlation_id", "request_id", "created_by_user_id", "created_at", "meta_data"}
}

func TestQueueTransactionRequiresUserIdentity(t *testing.T) {
	_, router := newTestRouter(t)

	resp := performRequest(router, http.MethodPost, "/transactions", intakeBody(), nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "X-User-ID")
}

func TestQueueTransactionRejectsInvalidBody(t *testing.T) {
	_, router := newTestRouter(t)

	body := intakeBody()
	delete(body, "fund_id")
	resp := performRequest(router, http.MethodPost, "/transactions", body,
		map[string]string{middleware.UserIDHeader: "usr_1"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "fund_id")
}

func TestQueueTransactionCreates(t *testing.T) {
	mock, router := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transaction_idempotency").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO transaction_outbox").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec("UPDATE transaction_idempotency SET transaction_id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := performRequest(router, http.MethodPost, "/transactions", intakeBody(),
		map[string]string{middleware.UserIDHeader: "usr_1", "X-Idempotency-Key": "idem_abc"})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var payload struct {
		Replayed    bool `json:"replayed"`
		Transaction struct {
			TransactionID string `json:"transaction_id"`
			Status        string `json:"status"`
		} `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.False(t, payload.Replayed)
	assert.NotEmpty(t, payload.Transaction.TransactionID)
	assert.Equal(t, "NEW", payload.Transaction.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueTransactionReplaysResolvedKey(t *testing.T) {
	mock, router := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transaction_idempotency").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()
	mock.ExpectQuery("FROM transaction_idempotency").
		WillReturnRows(sqlmock.NewRows([]string{"id", "idempotency_key", "created_at", "transaction_id"}).
			AddRow(1, "idem_abc", time.Now(), "txn_first"))
	mock.ExpectQuery("FROM transactions").
		WillReturnRows(sqlmock.NewRows(transactionColumns()).
			AddRow(1, "txn_first", "fnd_1", "", "SUBSCRIPTION",
				time.Now(), time.Now(), 0.0, 0.0, 1500.50, "USD",
				1, "", "", "usr_1", time.Now(), []byte(`{}`)))

	resp := performRequest(router, http.MethodPost, "/transactions", intakeBody(),
		map[string]string{middleware.UserIDHeader: "usr_1", "X-Idempotency-Key": "idem_abc"})

	assert.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Replayed    bool `json:"replayed"`
		Transaction struct {
			TransactionID string `json:"transaction_id"`
		} `json:"transaction"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.True(t, payload.Replayed)
	assert.Equal(t, "txn_first", payload.Transaction.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueTransactionConflictsWhileInFlight(t *testing.T) {
	mock, router := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transaction_idempotency").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()
	mock.ExpectQuery("FROM transaction_idempotency").
		WillReturnRows(sqlmock.NewRows([]string{"id", "idempotency_key", "created_at", "transaction_id"}).
			AddRow(1, "idem_abc", time.Now(), ""))

	resp := performRequest(router, http.MethodPost, "/transactions", intakeBody(),
		map[string]string{middleware.UserIDHeader: "usr_1", "X-Idempotency-Key": "idem_abc"})

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllTransactionsRejectsUnknownStatus(t *testing.T) {
	_, router := newTestRouter(t)

	resp := performRequest(router, http.MethodGet, "/transactions?status=NONSENSE", nil, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTransactionProcessedAccepted(t *testing.T) {
	mock, router := newTestRouter(t)

	mock.ExpectExec("UPDATE transactions SET status_id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := map[string]interface{}{
		"transaction_id":  "txn_1",
		"success":         true,
		"final_status_id": 2,
	}
	resp := performRequest(router, http.MethodPost, "/api/worker-notifications/transaction-processed", body, nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "accepted")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionProcessedRejectsUnknownStatusID(t *testing.T) {
	_, router := newTestRouter(t)

	body := map[string]interface{}{
		"transaction_id":  "txn_1",
		"success":         false,
		"final_status_id": 42,
	}
	resp := performRequest(router, http.MethodPost, "/api/worker-notifications/transaction-processed", body, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTransactionProcessedStillAcceptedWhenUpdateFails(t *testing.T) {
	mock, router := newTestRouter(t)

	mock.ExpectExec("UPDATE transactions SET status_id").
		WillReturnError(sql.ErrConnDone)

	body := map[string]interface{}{
		"transaction_id":  "txn_1",
		"success":         true,
		"final_status_id": 2,
	}
	resp := performRequest(router, http.MethodPost, "/api/worker-notifications/transaction-processed", body, nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFund(t *testing.T) {
	mock, router := newTestRouter(t)

	mock.ExpectExec("INSERT INTO funds").
		WillReturnResult(sqlmock.NewResult(1, 1))

	body := map[string]interface{}{
		"name":           "Global Macro Fund",
		"base_currency":  "USD",
		"inception_date": "2020-01-02",
	}
	resp := performRequest(router, http.MethodPost, "/funds", body, nil)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), "fnd_")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFundRejectsBadCurrency(t *testing.T) {
	_, router := newTestRouter(t)

	body := map[string]interface{}{
		"name":           "Global Macro Fund",
		"base_currency":  "DOLLARS",
		"inception_date": "2020-01-02",
	}
	resp := performRequest(router, http.MethodPost, "/funds", body, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetFundNotFound(t *testing.T) {
	mock, router := newTestRouter(t)

	mock.ExpectQuery("FROM funds").WillReturnError(sql.ErrNoRows)

	resp := performRequest(router, http.MethodGet, "/funds/fnd_missing", nil, nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckBusinessDay(t *testing.T) {
	mock, router := newTestRouter(t)

	mock.ExpectQuery("FROM calendars").
		WillReturnRows(sqlmock.NewRows([]string{"calendar_id", "name", "market", "created_at", "updated_at"}).
			AddRow("cal_1", "NYSE", "US", time.Now(), nil))
	mock.ExpectQuery("FROM calendar_holidays").
		WillReturnRows(sqlmock.NewRows([]string{"id", "calendar_id", "date", "description"}))

	resp := performRequest(router, http.MethodGet, "/calendars/cal_1/business-day?date=2026-09-07", nil, nil)

	assert.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		BusinessDay bool   `json:"business_day"`
		Date        string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.True(t, payload.BusinessDay)
	assert.Equal(t, "2026-09-07", payload.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckBusinessDayRequiresDate(t *testing.T) {
	_, router := newTestRouter(t)

	resp := performRequest(router, http.MethodGet, "/calendars/cal_1/business-day", nil, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRetryOutboxMessageRequiresNumericID(t *testing.T) {
	_, router := newTestRouter(t)

	resp := performRequest(router, http.MethodPost, "/outbox/not-a-number/retry", nil, nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "numeric")
}
