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
	"github.com/coreledger-io/coreledger/model"
)

// CreateAccount verifies the owning fund exists before the insert so
// the caller gets a 400 rather than a raw foreign-key error.
func (c *CoreLedger) CreateAccount(account model.Account) (model.Account, error) {
	if _, err := c.datasource.GetFundByID(account.FundID); err != nil {
		return model.Account{}, err
	}
	return c.datasource.CreateAccount(account)
}

func (c *CoreLedger) GetAccount(id string) (*model.Account, error) {
	return c.datasource.GetAccountByID(id)
}

func (c *CoreLedger) GetAllAccounts(limit, offset int) ([]model.Account, error) {
	return c.datasource.GetAllAccounts(limit, offset)
}

func (c *CoreLedger) UpdateAccount(account *model.Account) error {
	return c.datasource.UpdateAccount(account)
}

func (c *CoreLedger) DeleteAccount(id string) error {
	return c.datasource.DeleteAccount(id)
}
