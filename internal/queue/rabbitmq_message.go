package queue

import (
	"errors"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrAlreadySettled is returned when a delivery is acked or nacked twice.
// RabbitMQ closes the channel on a repeated delivery tag.
var ErrAlreadySettled = errors.New("delivery already settled")

// Message is a decoded conversion job plus the delivery it arrived on
type Message struct {
	Job         *Job
	DeliveryTag uint64
	Redelivered bool
	Channel     *amqp.Channel

	once    sync.Once
	settled bool
}

// Ack marks the job done
func (m *Message) Ack() error {
	return m.settle(func() error { return m.Channel.Ack(m.DeliveryTag, false) })
}

// Nack rejects the job; without requeue it is dead-lettered
func (m *Message) Nack(requeue bool) error {
	return m.settle(func() error { return m.Channel.Nack(m.DeliveryTag, false, requeue) })
}

func (m *Message) settle(fn func() error) error {
	err := ErrAlreadySettled
	m.once.Do(func() {
		m.settled = true
		err = fn()
	})
	return err
}

// Settled reports whether Ack or Nack has been called
func (m *Message) Settled() bool {
	return m.settled
}

// GetJob returns the decoded job
func (m *Message) GetJob() *Job {
	return m.Job
}

var _ MessageInterface = (*Message)(nil)
