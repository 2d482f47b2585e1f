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

	"github.com/gin-gonic/gin"

	model2 "github.com/coreledger-io/coreledger/api/model"
)

func (a Api) CreateFund(c *gin.Context) {
	var newFund model2.CreateFund
	if err := c.ShouldBindJSON(&newFund); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := newFund.ValidateCreateFund(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	fund, err := newFund.ToFund()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.ledger.CreateFund(*fund)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetFund(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	fund, err := a.ledger.GetFund(id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, fund)
}

func (a Api) GetAllFunds(c *gin.Context) {
	limit, offset := paging(c)

	funds, err := a.ledger.GetAllFunds(limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, funds)
}

func (a Api) UpdateFund(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	var body model2.CreateFund
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := body.ValidateCreateFund(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	fund, err := body.ToFund()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	fund.FundID = id

	if err := a.ledger.UpdateFund(fund); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, fund)
}

func (a Api) DeleteFund(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	if err := a.ledger.DeleteFund(id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
