package eventqueue

import (
	"context"
	"fmt"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type publishChannel interface {
	publish(ctx context.Context, queueName string, msg amqp.Publishing) (confirmation, error)
	Close() error
}

// amqpChannel publishes in confirm mode. Every message gets its own deferred
// confirmation keyed by its delivery tag.
type amqpChannel struct {
	ch *amqp.Channel
}

func (c amqpChannel) publish(ctx context.Context, queueName string, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, "", queueName, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, fmt.Errorf("channel is not in confirm mode")
	}
	return dc, nil
}

func (c amqpChannel) Close() error {
	return c.ch.Close()
}

// Publisher writes appointment events to a durable queue and waits for the
// broker confirm of every message.
type Publisher struct {
	ch             publishChannel
	log            *zap.Logger
	queueName      string
	confirmTimeout time.Duration
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger, queueName string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newPublisher(amqpChannel{ch: ch}, log, queueName, constvars.DefaultEventConfirmTimeoutInSeconds*time.Second), nil
}

func newPublisher(ch publishChannel, log *zap.Logger, queueName string, confirmTimeout time.Duration) *Publisher {
	return &Publisher{
		ch:             ch,
		log:            log,
		queueName:      queueName,
		confirmTimeout: confirmTimeout,
	}
}

var _ contracts.AppointmentEventPublisher = (*Publisher)(nil)

// Publish runs on its own deadline: the mutation behind the event has
// already happened, so the request deadline does not cut the broker wait.
func (p *Publisher) Publish(ctx context.Context, event models.AppointmentEvent) error {
	requestID := utils.GetRequestID(ctx)
	p.log.Info("eventqueue.Publisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
		zap.String(constvars.LoggingQueueNameKey, p.queueName),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if requestID != "" {
		msg.Headers = amqp.Table{constvars.HeaderXRequestID: requestID}
	}

	publishCtx, cancel := context.WithTimeout(utils.DetachedContext(ctx), p.confirmTimeout)
	defer cancel()

	confirm, err := p.ch.publish(publishCtx, p.queueName, msg)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}

	acked, err := confirm.WaitContext(publishCtx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message %s nacked by broker", event.ID), p.queueName)
	}

	p.log.Info("eventqueue.Publisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}
