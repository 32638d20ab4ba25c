package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Заголовки сообщений, общие для всех событий
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события записей в Kafka
// Топик = тип события, ключ = ID салона (события одного салона попадают в одну партицию)
type KafkaPublisher struct {
	writer      messageWriter
	topicPrefix string
}

// KafkaConfig параметры подключения к Kafka
type KafkaConfig struct {
	Brokers      string // через запятую
	TopicPrefix  string
	WriteTimeout time.Duration
}

// NewKafkaPublisher создает publisher поверх kafka.Writer
func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(SplitBrokers(cfg.Brokers)...),
		Balancer:               &kafka.Hash{},
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(writer, cfg.TopicPrefix)
}

func newKafkaPublisher(writer messageWriter, topicPrefix string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topicPrefix: topicPrefix}
}

// Publish отправляет событие в топик его типа
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarshal, event.Type, err)
	}

	msg := kafka.Message{
		Topic: p.topicPrefix + string(event.Type),
		Key:   []byte(strconv.FormatInt(event.Appointment.BusinessID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(event.ID)},
			{Key: HeaderEventType, Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s id=%s: %v", ErrPublish, event.Type, event.ID, err)
	}
	return nil
}

// Close закрывает соединения с брокером
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда Kafka не настроена
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
