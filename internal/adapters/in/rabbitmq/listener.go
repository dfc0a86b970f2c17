package rabbitmq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/photographer-availability-resolver/internal/config"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/in"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
)

type AvailabilityListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort

	consumerWg sync.WaitGroup
	closeOnce  sync.Once
}

type (
	CacheHitType         string
	CacheHitResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	CacheHitType CacheHitType
}

const (
	CacheHitResourceTypeAll          CacheHitResourceType = "_all_"
	CacheHitResourceTypeAvailability CacheHitResourceType = "availability"
)

const (
	CacheHitTypeStore      CacheHitType = "store"
	CacheHitTypeInvalidate CacheHitType = "invalidate"
)

func NewAvailabilityListener(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) (*AvailabilityListener, error) {
	logger = logger.WithModule("AvailabilityListener")

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &AvailabilityListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *AvailabilityListener) Start(ctx context.Context) error {
	// Проверяем контекст
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msgs, err := l.setupQueue()
	if err != nil {
		l.closeConnection(err.Error())
		return err
	}

	l.consumerWg.Add(1)
	go l.consume(ctx, msgs)

	l.logger.Info("rabbitmq.listener.started", out.LogFields{
		"queue":    l.cfg.RabbitMQ.Queue,
		"exchange": l.cfg.RabbitMQ.Exchange,
	})

	return nil
}

// Stop закрывает канал и соединение и ждет завершения обработчика
func (l *AvailabilityListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	var err error
	l.closeOnce.Do(func() {
		if closeErr := l.channel.Close(); closeErr != nil && closeErr != amqp.ErrClosed {
			err = closeErr
		}
		if closeErr := l.conn.Close(); closeErr != nil && closeErr != amqp.ErrClosed && err == nil {
			err = closeErr
		}
	})

	l.consumerWg.Wait()
	return err
}

func (l *AvailabilityListener) closeConnection(reason string) {
	l.logger.Warn("rabbitmq.connection.closing", out.LogFields{
		"reason": reason,
	})
	l.closeOnce.Do(func() {
		if l.channel != nil {
			l.channel.Close()
		}
		if l.conn != nil {
			l.conn.Close()
		}
	})
}

// Пример routingKey:
// crm.availability-resolver.availability.invalidate
// crm.availability-resolver.availability.store
// crm.availability-resolver._all_.invalidate
func parseCacheMessageRoutingKey(routingKey string) (CacheMessageRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) != 4 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		CacheHitType: CacheHitType(parts[3]),
	}, nil
}
