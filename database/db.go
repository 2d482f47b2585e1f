package database

import (
	"database/sql"
	"log"
	"sync"

	_ "github.com/lib/pq"

	"github.com/coreledger-io/coreledger/config"
)

// Package-level singleton so every caller shares one connection pool.
var instance *Datasource
var once sync.Once

type Datasource struct {
	Conn *sql.DB
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, errConn := ConnectDB(configuration.DataSource.Dns)
		if errConn != nil {
			err = errConn
			return
		}
		instance = &Datasource{Conn: con}
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database Connection error ❌: %v", err)
		return nil, err
	}
	if err := CreateTables(db); err != nil {
		return nil, err
	}
	return db, nil
}

// CreateTables creates every table the service depends on. Idempotent.
func CreateTables(db *sql.DB) error {
	for _, create := range []func(*sql.DB) error{
		createFundTable,
		createSecurityTable,
		createAccountTable,
		createIndexerTable,
		createIndexerRateTable,
		createCalendarTable,
		createCalendarHolidayTable,
		createTransactionTable,
		createTransactionIdempotencyTable,
		createTransactionOutboxTable,
	} {
		if err := create(db); err != nil {
			return err
		}
	}
	return nil
}

func createFundTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS funds (
			id SERIAL PRIMARY KEY,
			fund_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			document TEXT,
			base_currency TEXT NOT NULL,
			inception_date DATE NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP,
			deleted_at TIMESTAMP,
			meta_data JSONB
		)
	`)
	return err
}

func createSecurityTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS securities (
			id SERIAL PRIMARY KEY,
			security_id TEXT NOT NULL UNIQUE,
			symbol TEXT NOT NULL,
			name TEXT NOT NULL,
			asset_class TEXT,
			currency TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP,
			deleted_at TIMESTAMP,
			meta_data JSONB
		)
	`)
	return err
}

func createAccountTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id SERIAL PRIMARY KEY,
			account_id TEXT NOT NULL UNIQUE,
			fund_id TEXT NOT NULL REFERENCES funds(fund_id),
			name TEXT NOT NULL,
			number TEXT NOT NULL UNIQUE,
			bank_name TEXT,
			currency TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP,
			deleted_at TIMESTAMP,
			meta_data JSONB
		)
	`)
	return err
}

func createIndexerTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS indexers (
			id SERIAL PRIMARY KEY,
			indexer_id TEXT NOT NULL UNIQUE,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP,
			deleted_at TIMESTAMP
		)
	`)
	return err
}

func createIndexerRateTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS indexer_rates (
			id SERIAL PRIMARY KEY,
			indexer_id TEXT NOT NULL REFERENCES indexers(indexer_id),
			date DATE NOT NULL,
			rate DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (indexer_id, date)
		)
	`)
	return err
}

func createCalendarTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS calendars (
			id SERIAL PRIMARY KEY,
			calendar_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			market TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP,
			deleted_at TIMESTAMP
		)
	`)
	return err
}

func createCalendarHolidayTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS calendar_holidays (
			id SERIAL PRIMARY KEY,
			calendar_id TEXT NOT NULL REFERENCES calendars(calendar_id),
			date DATE NOT NULL,
			description TEXT,
			UNIQUE (calendar_id, date)
		)
	`)
	return err
}

func createTransactionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			transaction_id TEXT NOT NULL UNIQUE,
			fund_id TEXT NOT NULL REFERENCES funds(fund_id),
			security_id TEXT REFERENCES securities(security_id),
			sub_type TEXT NOT NULL,
			trade_date DATE NOT NULL,
			settle_date DATE NOT NULL,
			quantity DOUBLE PRECISION,
			price DOUBLE PRECISION,
			amount DOUBLE PRECISION NOT NULL,
			currency TEXT NOT NULL,
			status_id INT NOT NULL,
			correlation_id TEXT,
			request_id TEXT,
			created_by_user_id TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			meta_data JSONB
		)
	`)
	return err
}

func createTransactionIdempotencyTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transaction_idempotency (
			id SERIAL PRIMARY KEY,
			idempotency_key TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			transaction_id TEXT REFERENCES transactions(transaction_id)
		)
	`)
	return err
}

func createTransactionOutboxTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transaction_outbox (
			id SERIAL PRIMARY KEY,
			occurred_on TIMESTAMP NOT NULL DEFAULT NOW(),
			type TEXT NOT NULL,
			payload JSONB NOT NULL,
			status SMALLINT NOT NULL DEFAULT 0,
			retry_count INT NOT NULL DEFAULT 0,
			last_error TEXT,
			published_on TIMESTAMP,
			locked_until TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_transaction_outbox_status ON transaction_outbox (status)`)
	return err
}
