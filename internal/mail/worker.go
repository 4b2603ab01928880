package mail

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"kowapp/internal/common/logger"
)

// Worker drains the email queue and hands each message to the sender.
// Delivery failures are logged and the message is dropped: there is no retry
// policy, matching how verification emails behaved in production.
type Worker struct {
	channel *amqp.Channel
	sender  Sender
}

func NewWorker(channel *amqp.Channel, sender Sender) *Worker {
	return &Worker{channel: channel, sender: sender}
}

func (w *Worker) Start(ctx context.Context) error {
	if _, err := w.channel.QueueDeclare(
		QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare email queue: %w", err)
	}

	deliveries, err := w.channel.Consume(
		QueueName,
		"mail-worker",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume email queue: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(delivery)
			}
		}
	}()

	logger.Info("mail_worker_started", "email worker consuming", "", "")
	return nil
}

func (w *Worker) handle(delivery amqp.Delivery) {
	var msg Message
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		logger.Error("mail_worker_decode", "failed to decode email message", "", "", err.Error())
		_ = delivery.Ack(false)
		return
	}

	if err := w.sender.Send(msg); err != nil {
		logger.Error("mail_worker_send", fmt.Sprintf("failed to deliver email to %s", msg.To), "", "", err.Error())
	} else {
		logger.Info("mail_worker_send", fmt.Sprintf("email delivered to %s", msg.To), "", "")
	}
	_ = delivery.Ack(false)
}
