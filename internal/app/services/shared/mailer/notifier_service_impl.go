package mailer

import (
	"context"
	"pathsys-service/internal/app/contracts"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

type notifierService struct {
	Channel *amqp091.Channel
	Queue   string
}

// NewNotifierService declares the notification queue and returns the
// publisher side. The consumer lives in the worker.
func NewNotifierService(rabbitMQConnection *amqp091.Connection, queue string) (contracts.Notifier, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &notifierService{
		Channel: channel,
		Queue:   queue,
	}, nil
}

func (s *notifierService) Publish(ctx context.Context, notification contracts.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}
	return nil
}
