package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type captureWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func bookedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              42,
		BusinessID:      7,
		CustomerID:      100,
		ServiceID:       3,
		ServiceName:     "Маникюр",
		ServiceDuration: 90,
		StartTime:       time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC),
		Status:          domain.StatusPending,
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &captureWriter{}
	publisher := newKafkaPublisher(writer, "salon.")

	event := NewAppointmentEvent(TypeAppointmentBooked, bookedAppointment(), time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "salon.appointment.booked", msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)
	assert.Equal(t, []kafka.Header{
		{Key: HeaderEventID, Value: []byte(event.ID)},
		{Key: HeaderEventType, Value: []byte("appointment.booked")},
	}, msg.Headers)

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, int64(42), decoded.Appointment.ID)
	assert.Equal(t, time.Date(2025, 3, 11, 11, 30, 0, 0, time.UTC), decoded.Appointment.EndTime)
	assert.Equal(t, "pending", decoded.Appointment.Status)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	publisher := newKafkaPublisher(&captureWriter{err: errors.New("broker down")}, "")

	err := publisher.Publish(context.Background(), NewAppointmentEvent(TypeAppointmentCanceled, bookedAppointment(), time.Now()))

	assert.ErrorIs(t, err, ErrPublish)
}

func TestNewAppointmentEvent_UniqueIDs(t *testing.T) {
	a := NewAppointmentEvent(TypeAppointmentBooked, bookedAppointment(), time.Now())
	b := NewAppointmentEvent(TypeAppointmentBooked, bookedAppointment(), time.Now())

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Empty(t, SplitBrokers(""))
}
