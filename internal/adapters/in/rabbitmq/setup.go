package rabbitmq

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
)

const (
	setupAttempts   = 3
	setupRetryPause = 500 * time.Millisecond
)

// withRetry повторяет шаг настройки до setupAttempts раз с паузой между попытками
func (l *AvailabilityListener) withRetry(event string, fields out.LogFields, step func() error) error {
	var err error
	for attempt := 1; attempt <= setupAttempts; attempt++ {
		if err = step(); err == nil {
			l.logger.Info(event+".success", fields)
			return nil
		}

		l.logger.Warn(event+".retry", out.LogFields{
			"attempt": attempt,
			"error":   err.Error(),
			"details": fields,
		})

		if attempt < setupAttempts {
			time.Sleep(setupRetryPause)
		}
	}
	return err
}

func (l *AvailabilityListener) setupQueue() (<-chan amqp.Delivery, error) {
	cfg := l.cfg.RabbitMQ

	// Объявляем обменник, если его нет
	err := l.withRetry("rabbitmq.exchange_declare", out.LogFields{"exchange": cfg.Exchange}, func() error {
		return l.channel.ExchangeDeclare(
			cfg.Exchange, // имя обменника
			"topic",      // тип обменника
			true,         // durable
			false,        // auto-delete
			false,        // internal
			false,        // no-wait
			nil,          // аргументы
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	var queue amqp.Queue
	err = l.withRetry("rabbitmq.queue_declare", out.LogFields{"queue": cfg.Queue}, func() error {
		var declareErr error
		queue, declareErr = l.channel.QueueDeclare(
			cfg.Queue,
			true,  // durable
			true,  // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		return declareErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", cfg.Queue, err)
	}

	// Одна очередь получает и события по фотографам, и общие события
	for _, bindingKey := range []string{cfg.Bind, cfg.BindAll} {
		if bindingKey == "" {
			continue
		}
		err = l.withRetry("rabbitmq.queue_bind", out.LogFields{
			"queue":    queue.Name,
			"binding":  bindingKey,
			"exchange": cfg.Exchange,
		}, func() error {
			return l.channel.QueueBind(
				queue.Name,   // имя очереди
				bindingKey,   // ключ привязки
				cfg.Exchange, // имя обменника
				false,        // no-wait
				nil,          // аргументы
			)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to bind queue %s: %w", queue.Name, err)
		}
	}

	var msgs <-chan amqp.Delivery
	consumerID := fmt.Sprintf("consumer-%s-%d", queue.Name, time.Now().UnixNano())
	err = l.withRetry("rabbitmq.consume", out.LogFields{"queue": queue.Name, "consumerID": consumerID}, func() error {
		var consumeErr error
		msgs, consumeErr = l.channel.Consume(
			queue.Name,
			consumerID, // уникальный ID
			false,      // auto-ack
			false,      // exclusive
			false,      // no-local
			false,      // no-wait
			nil,        // args
		)
		return consumeErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to consume from queue %s: %w", queue.Name, err)
	}

	return msgs, nil
}
