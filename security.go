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

func (c *CoreLedger) CreateSecurity(sec model.Security) (model.Security, error) {
	return c.datasource.CreateSecurity(sec)
}

func (c *CoreLedger) GetSecurity(id string) (*model.Security, error) {
	return c.datasource.GetSecurityByID(id)
}

func (c *CoreLedger) GetAllSecurities(limit, offset int) ([]model.Security, error) {
	return c.datasource.GetAllSecurities(limit, offset)
}

func (c *CoreLedger) UpdateSecurity(sec *model.Security) error {
	return c.datasource.UpdateSecurity(sec)
}

func (c *CoreLedger) DeleteSecurity(id string) error {
	return c.datasource.DeleteSecurity(id)
}
