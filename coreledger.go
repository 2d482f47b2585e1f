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
	"github.com/redis/go-redis/v9"

	"github.com/coreledger-io/coreledger/config"
	"github.com/coreledger-io/coreledger/database"
	"github.com/coreledger-io/coreledger/internal/broker"
	"github.com/coreledger-io/coreledger/internal/hub"
	redis_db "github.com/coreledger-io/coreledger/internal/redis-db"
)

// CoreLedger is the service layer: transaction intake, outbox relay,
// completion notifications and master-data management share one
// instance.
type CoreLedger struct {
	datasource database.IDataSource
	publisher  broker.Publisher
	hub        *hub.Hub
	redis      redis.UniversalClient
}

// NewCoreLedger wires the service from configuration. The broker
// publisher is optional; API-only deployments pass nil and leave
// publishing to the relay process.
func NewCoreLedger(db database.IDataSource, publisher broker.Publisher) (*CoreLedger, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	redisClient, err := redis_db.NewRedisClient(configuration.Redis.Dns)
	if err != nil {
		return nil, err
	}
	return &CoreLedger{
		datasource: db,
		publisher:  publisher,
		hub:        hub.NewHub(redisClient.Client()),
		redis:      redisClient.Client(),
	}, nil
}

// Hub exposes the push channel for the API layer's stream endpoint.
func (c *CoreLedger) Hub() *hub.Hub {
	return c.hub
}
