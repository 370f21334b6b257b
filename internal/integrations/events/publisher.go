package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события о бронированиях в Kafka.
// Без брокеров публикация выключена и Publish ничего не делает.
type Publisher struct {
	writer messageWriter
	log    Logger
	now    func() time.Time
}

// NewPublisher создает издателя; ключ сообщения - ID календаря, поэтому события
// одного календаря попадают в одну партицию и сохраняют порядок
func NewPublisher(brokers []string, topic string, writeTimeout time.Duration, log Logger) *Publisher {
	if len(brokers) == 0 {
		log.Warn("Events publisher disabled (no kafka brokers configured)")
		return &Publisher{log: log, now: time.Now}
	}

	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}, log)
}

func newPublisher(writer messageWriter, log Logger) *Publisher {
	return &Publisher{writer: writer, log: log, now: time.Now}
}

// Enabled сообщает, настроена ли публикация
func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// PublishReservationsCreated отправляет по одному событию на каждое бронирование
func (p *Publisher) PublishReservationsCreated(ctx context.Context, calendar *domain.Calendar, reservations []*domain.Reservation) error {
	if !p.Enabled() || len(reservations) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(reservations))
	for _, r := range reservations {
		msg, err := p.buildMessage(calendar, r)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Published %d %s events for calendar=%s", len(messages), EventTypeReservationCreated, calendar.ID)
	return nil
}

func (p *Publisher) buildMessage(calendar *domain.Calendar, r *domain.Reservation) (kafka.Message, error) {
	event := ReservationCreated{
		EventID:       uuid.New(),
		EventType:     EventTypeReservationCreated,
		OccurredAt:    p.now().UTC(),
		ReservationID: r.ID,
		CalendarID:    r.CalendarID,
		CalendarName:  calendar.Name,
		StartTime:     r.StartTime.UTC(),
		EndTime:       r.EndTime.UTC(),
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
	}
	for _, f := range r.CustomFields {
		if f != nil {
			event.CustomFields = append(event.CustomFields, *f)
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	return kafka.Message{
		Key:   []byte(r.CalendarID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeReservationCreated)},
			{Key: "event_id", Value: []byte(event.EventID.String())},
		},
		Time: event.OccurredAt,
	}, nil
}

// Close закрывает соединения с брокерами
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
