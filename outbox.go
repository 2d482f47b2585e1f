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
	"context"

	"github.com/sirupsen/logrus"

	"github.com/coreledger-io/coreledger/model"
)

// Operator surface over the outbox. Failed messages are visible here
// and can be handed back to the relay explicitly; nothing retries them
// automatically.

func (c *CoreLedger) GetOutboxMessages(ctx context.Context, status model.OutboxStatus, limit, offset int) ([]model.OutboxMessage, error) {
	return c.datasource.GetOutboxMessages(ctx, status, limit, offset)
}

func (c *CoreLedger) GetOutboxMessage(ctx context.Context, id int64) (*model.OutboxMessage, error) {
	return c.datasource.GetOutboxMessage(ctx, id)
}

func (c *CoreLedger) RetryOutboxMessage(ctx context.Context, id int64) error {
	if err := c.datasource.ResetOutboxMessage(ctx, id); err != nil {
		return err
	}
	logrus.Infof("Outbox message %d returned to the pending pool", id)
	return nil
}
