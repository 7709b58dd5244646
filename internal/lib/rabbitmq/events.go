package rabbitmq

import (
	"context"
	"io"
	"time"
)

// Типы событий, они же routing key.
const (
	EventGameCreated = "game.created"
	EventGameUpdated = "game.updated"
	EventGameDeleted = "game.deleted"
)

// Event - сообщение об изменении обзора.
type Event struct {
	Type   string    `json:"type"`
	GameID string    `json:"game_id"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// EventPublisher публикует события в заданный exchange.
type EventPublisher struct {
	ch       Channel
	exchange string
	closers  []io.Closer
}

// NewEventPublisher создаёт публикатор поверх канала. closers закрываются в Close
// в переданном порядке (обычно канал, затем соединение).
func NewEventPublisher(ch Channel, exchange string, closers ...io.Closer) *EventPublisher {
	return &EventPublisher{ch: ch, exchange: exchange, closers: closers}
}

// Publish отправляет событие; routing key совпадает с типом события.
func (p *EventPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return PublishMessage(p.ch, p.exchange, e.Type, e)
}

// Close освобождает канал и соединение.
func (p *EventPublisher) Close() error {
	var firstErr error
	for _, c := range p.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NoopPublisher используется, когда RabbitMQ не настроен.
type NoopPublisher struct{}

// Publish ничего не делает.
func (NoopPublisher) Publish(context.Context, Event) error { return nil }
