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
	"github.com/sirupsen/logrus"

	"github.com/coreledger-io/coreledger/model"
)

func (c *CoreLedger) CreateFund(fund model.Fund) (model.Fund, error) {
	created, err := c.datasource.CreateFund(fund)
	if err != nil {
		return model.Fund{}, err
	}
	logrus.Infof("Created fund %s (%s)", created.FundID, created.Name)
	return created, nil
}

func (c *CoreLedger) GetFund(id string) (*model.Fund, error) {
	return c.datasource.GetFundByID(id)
}

func (c *CoreLedger) GetAllFunds(limit, offset int) ([]model.Fund, error) {
	return c.datasource.GetAllFunds(limit, offset)
}

func (c *CoreLedger) UpdateFund(fund *model.Fund) error {
	return c.datasource.UpdateFund(fund)
}

func (c *CoreLedger) DeleteFund(id string) error {
	return c.datasource.DeleteFund(id)
}
