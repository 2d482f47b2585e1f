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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT = "5002"
)

var ConfigStore atomic.Value

type ServerConfig struct {
	Secure    bool   `json:"secure" envconfig:"CORELEDGER_SERVER_SECURE"`
	SecretKey string `json:"secret_key" envconfig:"CORELEDGER_SERVER_SECRET_KEY"`
	Port      string `json:"port" envconfig:"CORELEDGER_SERVER_PORT"`
}

type DataSourceConfig struct {
	Dns string `json:"dns" envconfig:"CORELEDGER_DATA_SOURCE_DNS"`
}

type RedisConfig struct {
	Dns string `json:"dns" envconfig:"CORELEDGER_REDIS_DNS"`
}

type BrokerConfig struct {
	Url                     string `json:"url" envconfig:"CORELEDGER_BROKER_URL"`
	TransactionCreatedQueue string `json:"transaction_created_queue" envconfig:"CORELEDGER_BROKER_TRANSACTION_CREATED_QUEUE"`
}

// OutboxConfig controls the outbox relay loop. All values carry defaults;
// none of them is part of the delivery-guarantee contract.
type OutboxConfig struct {
	BatchSize         int `json:"batch_size" envconfig:"CORELEDGER_OUTBOX_BATCH_SIZE"`
	PollIntervalMs    int `json:"poll_interval_ms" envconfig:"CORELEDGER_OUTBOX_POLL_INTERVAL_MS"`
	MaxRetryCount     int `json:"max_retry_count" envconfig:"CORELEDGER_OUTBOX_MAX_RETRY_COUNT"`
	PublishTimeoutSec int `json:"publish_timeout_sec" envconfig:"CORELEDGER_OUTBOX_PUBLISH_TIMEOUT_SEC"`
	LockDurationSec   int `json:"lock_duration_sec" envconfig:"CORELEDGER_OUTBOX_LOCK_DURATION_SEC"`
}

type Configuration struct {
	ProjectName string           `json:"project_name" envconfig:"CORELEDGER_PROJECT_NAME"`
	Server      ServerConfig     `json:"server"`
	DataSource  DataSourceConfig `json:"data_source"`
	Redis       RedisConfig      `json:"redis"`
	Broker      BrokerConfig     `json:"broker"`
	Outbox      OutboxConfig     `json:"outbox"`
}

func (c *Configuration) OutboxPollInterval() time.Duration {
	return time.Duration(c.Outbox.PollIntervalMs) * time.Millisecond
}

func (c *Configuration) OutboxPublishTimeout() time.Duration {
	return time.Duration(c.Outbox.PublishTimeoutSec) * time.Second
}

func (c *Configuration) OutboxLockDuration() time.Duration {
	return time.Duration(c.Outbox.LockDurationSec) * time.Second
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("coreledger", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called coreledger.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "CoreLedger Server"
	}

	if cnf.DataSource.Dns == "" {
		log.Println("Error: Data source DNS is empty. It's a required field.")
		return errors.New("data source DNS is required")
	}

	if cnf.Redis.Dns == "" {
		log.Println("Error: Redis DNS is empty. It's a required field.")
		return errors.New("redis DNS is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.DataSource.Dns = strings.TrimSpace(cnf.DataSource.Dns)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)
	cnf.Broker.Url = strings.TrimSpace(cnf.Broker.Url)

	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.Broker.TransactionCreatedQueue == "" {
		cnf.Broker.TransactionCreatedQueue = "transaction.created.queue"
	}

	if cnf.Outbox.BatchSize <= 0 {
		cnf.Outbox.BatchSize = 50
	}
	if cnf.Outbox.PollIntervalMs <= 0 {
		cnf.Outbox.PollIntervalMs = 5000
	}
	if cnf.Outbox.MaxRetryCount <= 0 {
		cnf.Outbox.MaxRetryCount = 5
	}
	if cnf.Outbox.PublishTimeoutSec <= 0 {
		cnf.Outbox.PublishTimeoutSec = 10
	}
	if cnf.Outbox.LockDurationSec <= 0 {
		cnf.Outbox.LockDurationSec = 30
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
