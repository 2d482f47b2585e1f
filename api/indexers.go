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
	"time"

	"github.com/gin-gonic/gin"

	model2 "github.com/coreledger-io/coreledger/api/model"
)

func (a Api) CreateIndexer(c *gin.Context) {
	var newIndexer model2.CreateIndexer
	if err := c.ShouldBindJSON(&newIndexer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := newIndexer.ValidateCreateIndexer(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	indexer, err := newIndexer.ToIndexer()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.ledger.CreateIndexer(*indexer)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetIndexer(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	indexer, err := a.ledger.GetIndexer(id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, indexer)
}

func (a Api) GetAllIndexers(c *gin.Context) {
	limit, offset := paging(c)

	indexers, err := a.ledger.GetAllIndexers(limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, indexers)
}

func (a Api) UpdateIndexer(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	var body model2.CreateIndexer
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := body.ValidateCreateIndexer(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	indexer, err := body.ToIndexer()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	indexer.IndexerID = id

	if err := a.ledger.UpdateIndexer(indexer); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, indexer)
}

func (a Api) DeleteIndexer(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	if err := a.ledger.DeleteIndexer(id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// RecordIndexerRate stores one daily observation for the indexer.
func (a Api) RecordIndexerRate(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	var body model2.RecordIndexerRate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := body.ValidateRecordIndexerRate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	rate, err := body.ToIndexerRate(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.ledger.RecordIndexerRate(*rate)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetIndexerRates lists observations between ?from= and ?to=
// (inclusive); both default to a trailing one-year window.
func (a Api) GetIndexerRates(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	to := time.Now()
	from := to.AddDate(-1, 0, 0)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted as YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be formatted as YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	rates, err := a.ledger.GetIndexerRates(id, from, to)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}
