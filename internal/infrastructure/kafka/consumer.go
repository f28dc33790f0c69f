package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"cleanCalc/internal/domain"
	"cleanCalc/internal/ports"
)

// Паузы между повторами неудачной обработки события.
const (
	retryMin = 100 * time.Millisecond
	retryMax = 10 * time.Second
)

// Consumer — обёртка над kafka.Reader, декодирует сообщения в domain.CalculationRecord и вызывает use case.
type Consumer struct {
	r   *kafka.Reader
	uc  ports.ICalculatorUseCase
	log *slog.Logger

	retryMin, retryMax time.Duration
}

// NewConsumer создаёт консьюмера по конфигу, use case и логгеру. После использования вызови Close().
func NewConsumer(cfg *Config, uc ports.ICalculatorUseCase, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	c := New(cfg).Consumer()
	c.uc = uc
	c.log = log
	c.retryMin, c.retryMax = retryMin, retryMax
	return c
}

// Message — сообщение из Kafka (ключ, тело, топик, партиция, offset).
type Message = kafka.Message

// decodeRecord разбирает тело события. Запись без ID считается битой.
func decodeRecord(data []byte) (domain.CalculationRecord, error) {
	var rec domain.CalculationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("decode record: %w", err)
	}
	if rec.ID == uuid.Nil {
		return rec, errors.New("decode record: empty id")
	}
	return rec, nil
}

// Run в цикле читает сообщения, декодирует JSON в domain.CalculationRecord, вызывает uc.HandleOperationEvent и коммитит при успехе.
// Выход по отмене ctx или при ошибке чтения.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := c.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		rec, err := decodeRecord(msg.Value)
		if err != nil {
			c.log.Warn("kafka bad message, skip", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			_ = c.CommitMessage(ctx, msg)
			continue
		}

		// Коммит следующего сообщения сдвинул бы offset группы за это, поэтому
		// сообщение повторяется здесь, пока не обработается.
		if err := c.deliver(ctx, rec); err != nil {
			return err
		}

		if err := c.CommitMessage(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// deliver вызывает uc.HandleOperationEvent, повторяя с растущей паузой до успеха или отмены ctx.
func (c *Consumer) deliver(ctx context.Context, rec domain.CalculationRecord) error {
	wait := c.retryMin
	for attempt := 1; ; attempt++ {
		err := c.uc.HandleOperationEvent(ctx, rec)
		if err == nil {
			return nil
		}
		c.log.Warn("kafka handle error, retry", "error", err, "id", rec.ID, "attempt", attempt, "wait", wait)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait = min(wait*2, c.retryMax)
	}
}

// FetchMessage читает следующее сообщение без коммита в consumer group (коммит через CommitMessage).
func (c *Consumer) FetchMessage(ctx context.Context) (kafka.Message, error) {
	return c.r.FetchMessage(ctx)
}

// CommitMessage помечает сообщение как обработанное (для consumer group).
func (c *Consumer) CommitMessage(ctx context.Context, msg kafka.Message) error {
	return c.r.CommitMessages(ctx, msg)
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
