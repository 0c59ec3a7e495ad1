package mailer

import (
	"context"
	"pathsys-service/internal/app/contracts"
	"pathsys-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type logSender struct {
	Log *zap.Logger
}

func NewLogSender(logger *zap.Logger) Sender {
	return &logSender{Log: logger}
}

func (s *logSender) Send(notification contracts.Notification) error {
	s.Log.Info("notification delivered",
		zap.String("kind", notification.Kind),
		zap.String("subject", notification.Subject),
		zap.String("reference", notification.Reference),
	)
	return nil
}

// StartWorker consumes the notification queue and hands each message to
// the sender, throttled to ratePerMinute. The returned func stops the
// worker and is safe to call once during shutdown.
func StartWorker(
	rabbitMQConnection *amqp091.Connection,
	queue string,
	ratePerMinute int,
	sender Sender,
	logger *zap.Logger,
) (func(), error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	deliveries, err := channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	limiter := rate.NewLimiter(rate.Limit(float64(ratePerMinute)/60.0), 1)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				if err := limiter.Wait(ctx); err != nil {
					delivery.Nack(false, true)
					return
				}

				var notification contracts.Notification
				if err := json.Unmarshal(delivery.Body, &notification); err != nil {
					logger.Error("dropping malformed notification",
						zap.String(constvars.LoggingQueueKey, queue),
						zap.Error(err),
					)
					delivery.Nack(false, false)
					continue
				}

				if err := sender.Send(notification); err != nil {
					logger.Error("failed to deliver notification",
						zap.String(constvars.LoggingQueueKey, queue),
						zap.String("kind", notification.Kind),
						zap.Error(err),
					)
					delivery.Nack(false, false)
					continue
				}
				delivery.Ack(false)
			}
		}
	}()

	stop := func() {
		cancel()
		channel.Close()
	}
	return stop, nil
}
