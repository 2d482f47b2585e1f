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

func (a Api) CreateSecurity(c *gin.Context) {
	var newSecurity model2.CreateSecurity
	if err := c.ShouldBindJSON(&newSecurity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := newSecurity.ValidateCreateSecurity(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	sec, err := newSecurity.ToSecurity()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.ledger.CreateSecurity(*sec)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetSecurity(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	sec, err := a.ledger.GetSecurity(id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sec)
}

func (a Api) GetAllSecurities(c *gin.Context) {
	limit, offset := paging(c)

	securities, err := a.ledger.GetAllSecurities(limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, securities)
}

func (a Api) UpdateSecurity(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	var body model2.CreateSecurity
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := body.ValidateCreateSecurity(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	sec, err := body.ToSecurity()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}
	sec.SecurityID = id

	if err := a.ledger.UpdateSecurity(sec); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sec)
}

func (a Api) DeleteSecurity(c *gin.Context) {
	id, passed := requireParam(c, "id")
	if !passed {
		return
	}

	if err := a.ledger.DeleteSecurity(id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
