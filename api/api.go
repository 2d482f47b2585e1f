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
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	coreledger "github.com/coreledger-io/coreledger"
	"github.com/coreledger-io/coreledger/api/middleware"
	"github.com/coreledger-io/coreledger/config"
	"github.com/coreledger-io/coreledger/internal/apierror"
)

type Api struct {
	ledger *coreledger.CoreLedger
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router

	router.POST("/transactions", a.QueueTransaction)
	router.GET("/transactions/:id", a.GetTransaction)
	router.GET("/transactions", a.GetAllTransactions)

	router.POST("/api/worker-notifications/transaction-processed", a.TransactionProcessed)
	router.GET("/api/notifications/stream", a.StreamNotifications)

	router.GET("/outbox", a.GetOutboxMessages)
	router.GET("/outbox/:id", a.GetOutboxMessage)
	router.POST("/outbox/:id/retry", a.RetryOutboxMessage)

	router.POST("/funds", a.CreateFund)
	router.GET("/funds/:id", a.GetFund)
	router.GET("/funds", a.GetAllFunds)
	router.PUT("/funds/:id", a.UpdateFund)
	router.DELETE("/funds/:id", a.DeleteFund)

	router.POST("/securities", a.CreateSecurity)
	router.GET("/securities/:id", a.GetSecurity)
	router.GET("/securities", a.GetAllSecurities)
	router.PUT("/securities/:id", a.UpdateSecurity)
	router.DELETE("/securities/:id", a.DeleteSecurity)

	router.POST("/accounts", a.CreateAccount)
	router.GET("/accounts/:id", a.GetAccount)
	router.GET("/accounts", a.GetAllAccounts)
	router.PUT("/accounts/:id", a.UpdateAccount)
	router.DELETE("/accounts/:id", a.DeleteAccount)

	router.POST("/indexers", a.CreateIndexer)
	router.GET("/indexers/:id", a.GetIndexer)
	router.GET("/indexers", a.GetAllIndexers)
	router.PUT("/indexers/:id", a.UpdateIndexer)
	router.DELETE("/indexers/:id", a.DeleteIndexer)
	router.POST("/indexers/:id/rates", a.RecordIndexerRate)
	router.GET("/indexers/:id/rates", a.GetIndexerRates)

	router.POST("/calendars", a.CreateCalendar)
	router.GET("/calendars/:id", a.GetCalendar)
	router.GET("/calendars", a.GetAllCalendars)
	router.PUT("/calendars/:id", a.UpdateCalendar)
	router.DELETE("/calendars/:id", a.DeleteCalendar)
	router.POST("/calendars/:id/holidays", a.AddCalendarHoliday)
	router.GET("/calendars/:id/holidays", a.GetCalendarHolidays)
	router.GET("/calendars/:id/business-day", a.CheckBusinessDay)

	return a.router
}

func NewAPI(ledger *coreledger.CoreLedger) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}
	r.Use(middleware.IdentityMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{ledger: ledger, router: r}
}

// handleError answers with the status the service error maps to.
func handleError(c *gin.Context, err error) {
	c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
}

// paging reads limit/offset query params with sane defaults.
func paging(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func requireParam(c *gin.Context, name string) (string, bool) {
	value, passed := c.Params.Get(name)
	if !passed || value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required. pass " + name + " in the route /:" + name})
		return "", false
	}
	return value, true
}
