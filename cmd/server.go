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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/coreledger-io/coreledger/api"
	"github.com/coreledger-io/coreledger/config"
)

func initializeRouter(l *ledgerInstance) *gin.Engine {
	return api.NewAPI(l.ledger).Router()
}

func startServer(router *gin.Engine, cfg config.ServerConfig) error {
	log.Printf("Starting server on http://localhost:%s", cfg.Port)
	return router.Run(":" + cfg.Port)
}

// serverCommands returns the command that runs the HTTP API: intake,
// master data, the worker callback and the notification stream.
func serverCommands(l *ledgerInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "start coreledger server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			router := initializeRouter(l)

			cfg, err := config.Fetch()
			if err != nil {
				log.Fatal(err)
			}

			// The hub backplane must be live before the first stream
			// subscriber connects.
			if err := l.ledger.Hub().Start(ctx); err != nil {
				log.Fatal(err)
			}
			defer func() {
				if err := l.ledger.Hub().Stop(); err != nil {
					log.Printf("Error stopping notification hub: %v", err)
				}
			}()

			if err := startServer(router, cfg.Server); err != nil {
				log.Fatal(err)
			}
		},
	}

	return cmd
}
