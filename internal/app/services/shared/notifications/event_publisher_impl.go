package notifications

import (
	"context"
	"sync"

	"medicore-service/internal/app/contracts"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	eventPublisherInstance contracts.EventPublisher
	onceEventPublisher     sync.Once
)

type rabbitMQPublisher struct {
	Channel *amqp091.Channel
	Log     *zap.Logger
}

// NewRabbitMQPublisher declares the durable topic exchange domain events are
// routed through and returns a publisher bound to it.
func NewRabbitMQPublisher(rabbitMQConnection *amqp091.Connection, logger *zap.Logger) (contracts.EventPublisher, error) {
	var initErr error
	onceEventPublisher.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			initErr = err
			return
		}

		err = channel.ExchangeDeclare(
			constvars.EventsExchangeName,
			"topic",
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			initErr = err
			return
		}

		eventPublisherInstance = &rabbitMQPublisher{
			Channel: channel,
			Log:     logger,
		}
	})
	return eventPublisherInstance, initErr
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = p.Channel.PublishWithContext(ctx, constvars.EventsExchangeName, routingKey, false, false, message)
	if err != nil {
		p.Log.Error("rabbitMQPublisher.Publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKey, routingKey),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublish(err)
	}

	p.Log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, routingKey),
	)
	return nil
}
