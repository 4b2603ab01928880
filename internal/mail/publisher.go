package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"kowapp/internal/common/logger"
)

const QueueName = "emails"

// Publisher pushes outbound email onto the RabbitMQ queue so HTTP handlers
// never block on SMTP.
type Publisher struct {
	channel *amqp.Channel
}

func NewPublisher(channel *amqp.Channel) (*Publisher, error) {
	if _, err := channel.QueueDeclare(
		QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		logger.Error("mail_queue_declare", "failed to declare email queue", "", "", err.Error())
		return nil, fmt.Errorf("failed to declare email queue: %w", err)
	}
	return &Publisher{channel: channel}, nil
}

func (p *Publisher) Enqueue(msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal email message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.channel.PublishWithContext(
		ctx,
		"",
		QueueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	); err != nil {
		logger.Error("mail_publish", "failed to publish email message", "", "", err.Error())
		return fmt.Errorf("failed to publish email message: %w", err)
	}

	logger.Info("mail_publish", fmt.Sprintf("email queued for %s", msg.To), "", "")
	return nil
}
