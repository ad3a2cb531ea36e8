package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultExchange = "content_events"

const publishTimeout = 5 * time.Second

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes invalidations as JSON to a durable fanout exchange.
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
	logger   zerolog.Logger
	mu       sync.Mutex
}

func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	p := newRabbitPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

func newRabbitPublisher(ch amqpChannel, exchange string) *RabbitPublisher {
	return &RabbitPublisher{
		channel:  ch,
		exchange: exchange,
		logger:   log.With().Str("component", "rabbitPublisher").Str("exchange", exchange).Logger(),
	}
}

func (p *RabbitPublisher) Invalidate(ctx context.Context, inv Invalidation) {
	body, err := json.Marshal(inv)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to marshal invalidation")
		return
	}

	// The caller's request may finish before the broker acks.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	p.mu.Lock()
	err = p.channel.PublishWithContext(publishCtx, p.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    inv.OccurredAt,
		Type:         string(inv.Action),
		Body:         body,
	})
	p.mu.Unlock()

	if err != nil {
		p.logger.Error().Err(err).Str("action", string(inv.Action)).Str("postId", inv.PostID.String()).Msg("failed to publish invalidation")
	}
}

func (p *RabbitPublisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
