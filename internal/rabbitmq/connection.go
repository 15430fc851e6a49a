package rabbitmq

import (
	"fmt"

	"github.com/cp-helper/judge/internal/config"
	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/rabbitmq/channel"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NewRabbitMqConnection dials cfg.RabbitMQURL.
func NewRabbitMqConnection(cfg *config.Config) (*amqp.Connection, error) {
	logger := logger.NewNamedLogger("rabbitmq")

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Errorf("Failed to connect to RabbitMQ: %s", err)
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	logger.Info("Connected to RabbitMQ")
	return conn, nil
}

// NewRabbitMQChannel opens a channel and declares the progress queue on it.
func NewRabbitMQChannel(conn *amqp.Connection, queueName string) (channel.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	wrapped := channel.NewAmqpChannel(ch)
	if _, err := wrapped.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}
	return wrapped, nil
}
