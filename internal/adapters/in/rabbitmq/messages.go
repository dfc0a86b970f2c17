package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/domain"
	"github.com/suchimauz/photographer-availability-resolver/internal/core/ports/out"
)

// Сообщение с таким признаком бессмысленно возвращать в очередь
var errMalformedMessage = errors.New("malformed message")

const invalidateTimeout = 10 * time.Second

type CacheAvailabilityMessage struct {
	PhotographerID *domain.PhotographerID `json:"photographer_id"`
}

func (l *AvailabilityListener) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	defer l.consumerWg.Done()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("rabbitmq.consumer.stopping_by_context", out.LogFields{})
			return
		case msg, ok := <-msgs:
			if !ok {
				l.logger.Warn("rabbitmq.consumer.channel_closed", out.LogFields{})
				return
			}
			l.handleDelivery(ctx, msg)
		}
	}
}

// handleDelivery подтверждает сообщение только после успешной обработки.
// Битые сообщения отклоняются без возврата в очередь, ошибки инвалидации возвращают сообщение в очередь.
func (l *AvailabilityListener) handleDelivery(ctx context.Context, msg amqp.Delivery) {
	l.logger.Debug("rabbitmq.message.received", out.LogFields{
		"routingKey": msg.RoutingKey,
		"messageId":  msg.MessageId,
	})

	err := l.processMessage(ctx, msg)
	if err == nil {
		if ackErr := msg.Ack(false); ackErr != nil {
			l.logger.Error("rabbitmq.message.ack_failed", out.LogFields{
				"error": ackErr.Error(),
			})
		}
		return
	}

	requeue := !errors.Is(err, errMalformedMessage)
	l.logger.Error("rabbitmq.process_message.failed", out.LogFields{
		"routingKey": msg.RoutingKey,
		"messageId":  msg.MessageId,
		"requeue":    requeue,
		"error":      err.Error(),
	})

	if nackErr := msg.Nack(false, requeue); nackErr != nil {
		l.logger.Error("rabbitmq.message.nack_failed", out.LogFields{
			"error": nackErr.Error(),
		})
	}
}

func (l *AvailabilityListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseCacheMessageRoutingKey(msg.RoutingKey)
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformedMessage, err)
	}

	switch routingKey.ResourceType {
	case CacheHitResourceTypeAll:
		return l.processAllMessage(ctx, routingKey)
	case CacheHitResourceTypeAvailability:
		return l.processAvailabilityMessage(ctx, routingKey, msg.Body)
	default:
		l.logger.Debug("rabbitmq.message.skipped", out.LogFields{
			"resourceType": string(routingKey.ResourceType),
		})
		return nil
	}
}

func (l *AvailabilityListener) processAllMessage(ctx context.Context, routingKey CacheMessageRoutingKey) error {
	if routingKey.CacheHitType != CacheHitTypeInvalidate {
		return nil
	}

	invalidateCtx, cancel := context.WithTimeout(ctx, invalidateTimeout)
	defer cancel()

	if err := l.useCase.InvalidateAllCache(invalidateCtx); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	l.logger.Info("_all_.message.invalidated", out.LogFields{
		"source": routingKey.Source,
	})

	return nil
}

// Любое изменение доступности фотографа (store или invalidate) сбрасывает его кэш
func (l *AvailabilityListener) processAvailabilityMessage(ctx context.Context, routingKey CacheMessageRoutingKey, body []byte) error {
	if routingKey.CacheHitType != CacheHitTypeInvalidate && routingKey.CacheHitType != CacheHitTypeStore {
		l.logger.Debug("availability.message.skipped", out.LogFields{
			"cacheHitType": string(routingKey.CacheHitType),
		})
		return nil
	}

	var msgJson CacheAvailabilityMessage
	if err := json.Unmarshal(body, &msgJson); err != nil {
		return fmt.Errorf("%w: failed to unmarshal message: %v", errMalformedMessage, err)
	}
	if msgJson.PhotographerID == nil {
		return fmt.Errorf("%w: photographer_id is required", errMalformedMessage)
	}

	photographerID := *msgJson.PhotographerID

	invalidateCtx, cancel := context.WithTimeout(ctx, invalidateTimeout)
	defer cancel()

	if err := l.useCase.InvalidatePhotographerCache(invalidateCtx, photographerID); err != nil {
		return fmt.Errorf("failed to invalidate photographer %s: %w", photographerID, err)
	}

	l.logger.Info("availability.message.invalidated", out.LogFields{
		"photographerId": photographerID,
		"cacheHitType":   string(routingKey.CacheHitType),
		"source":         routingKey.Source,
	})

	return nil
}
