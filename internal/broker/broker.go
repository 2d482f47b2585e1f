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

// Package broker is the hand-off boundary between the outbox relay and
// the message broker. The relay treats a nil Publish error as proof the
// broker accepted responsibility for the message.
package broker

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Publisher delivers an outbox payload to a named destination. Returning
// nil means the broker has durably accepted the message.
type Publisher interface {
	Publish(ctx context.Context, destination string, payload []byte) error
	Close() error
}

// AMQPPublisher publishes to RabbitMQ queues. The channel runs in
// confirm mode so Publish only succeeds once the broker acks.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to broker")
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to open broker channel")
	}

	if err := channel.Confirm(false); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to enable publisher confirms")
	}

	logrus.Infof("Connected to broker at %s", url)
	return &AMQPPublisher{conn: conn, channel: channel}, nil
}

// Publish sends the payload to a durable queue named after the
// destination and waits for the broker's confirm.
func (p *AMQPPublisher) Publish(ctx context.Context, destination string, payload []byte) error {
	_, err := p.channel.QueueDeclare(
		destination, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return errors.Wrapf(err, "failed to declare queue %s", destination)
	}

	confirmation, err := p.channel.PublishWithDeferredConfirmWithContext(ctx,
		"",          // default exchange routes by queue name
		destination, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         payload,
		})
	if err != nil {
		return errors.Wrapf(err, "failed to publish to %s", destination)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return errors.Wrapf(err, "publish confirm interrupted for %s", destination)
	}
	if !acked {
		return errors.Errorf("broker rejected message for %s", destination)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return errors.Wrap(err, "failed to close broker channel")
	}
	return errors.Wrap(p.conn.Close(), "failed to close broker connection")
}
