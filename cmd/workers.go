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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	coreledger "github.com/coreledger-io/coreledger"
	"github.com/coreledger-io/coreledger/config"
	"github.com/coreledger-io/coreledger/database"
	"github.com/coreledger-io/coreledger/internal/broker"
	redis_db "github.com/coreledger-io/coreledger/internal/redis-db"
)

// workerCommands defines the "workers" command: the outbox relay
// process that moves committed outbox messages to the broker.
func workerCommands(_ *ledgerInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workers",
		Short: "start coreledger outbox relay",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			conf, err := config.Fetch()
			if err != nil {
				log.Fatal("Error fetching config:", err)
			}

			publisher, err := broker.NewAMQPPublisher(conf.Broker.Url)
			if err != nil {
				log.Fatal("Error connecting to broker:", err)
			}
			defer func() {
				if err := publisher.Close(); err != nil {
					logrus.Errorf("Error closing broker connection: %v", err)
				}
			}()

			db, err := database.NewDataSource(conf)
			if err != nil {
				log.Fatal("Error getting datasource:", err)
			}

			ledger, err := coreledger.NewCoreLedger(db, publisher)
			if err != nil {
				log.Fatal("Error creating ledger:", err)
			}

			relay := coreledger.NewOutboxRelay(ledger, conf)

			// Leader election is an optimization: the claim query is
			// safe to run from several instances, the lock just keeps
			// all but one of them idle.
			redisClient, err := redis_db.NewRedisClient(conf.Redis.Dns)
			if err != nil {
				log.Fatal("Error connecting to redis:", err)
			}
			relay.WithLeaderLock(redisClient.Client())

			relay.Start(ctx)
			logrus.Infof("Outbox relay started, polling every %s", conf.OutboxPollInterval())

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			relay.Stop()
		},
	}

	return cmd
}
