package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// EventBookingStatusChanged тип события о смене статуса бронирования
const EventBookingStatusChanged = "booking.status_changed"

// Envelope конверт события в формате CloudEvents (JSON)
type Envelope struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	SpecVersion string          `json:"specversion"`
	Type        string          `json:"type"`
	Time        time.Time       `json:"time"`
	Data        json.RawMessage `json:"data"`
}

// StatusChangedData полезная нагрузка события booking.status_changed
type StatusChangedData struct {
	BookingID int64     `json:"bookingId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy,omitempty"`
}

// MessageWriter часть *kafka.Writer, нужная публикатору
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события бронирований в Kafka
type KafkaPublisher struct {
	writer MessageWriter
	source string
}

// NewKafkaPublisher создает публикатор поверх kafka.Writer
func NewKafkaPublisher(brokers []string, topic, source string, timeout time.Duration) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           timeout,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaPublisherWithWriter(writer, source)
}

// NewKafkaPublisherWithWriter создает публикатор с произвольным writer (используется в тестах)
func NewKafkaPublisherWithWriter(writer MessageWriter, source string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, source: source}
}

// PublishStatusChanged отправляет событие; ключ сообщения - ID бронирования,
// поэтому события одного бронирования попадают в одну партицию по порядку
func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, change domain.StatusChange) error {
	data, err := json.Marshal(StatusChangedData{
		BookingID: change.BookingID,
		From:      string(change.From),
		To:        string(change.To),
		ChangedAt: change.ChangedAt.UTC(),
		ChangedBy: change.ChangedBy,
	})
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	payload, err := json.Marshal(Envelope{
		ID:          uuid.NewString(),
		Source:      p.source,
		SpecVersion: "1.0",
		Type:        EventBookingStatusChanged,
		Time:        time.Now().UTC(),
		Data:        data,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(change.BookingID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "ce_type", Value: []byte(EventBookingStatusChanged)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда Kafka выключена
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(context.Context, domain.StatusChange) error { return nil }

func (NoopPublisher) Close() error { return nil }
