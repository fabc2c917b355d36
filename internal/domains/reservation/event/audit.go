// Package event consumes reservation lifecycle events from Kafka.
package event

import (
	"context"
	"equiplend/infras/kafka"
	"equiplend/internal/domains/reservation/model"
	"fmt"

	"github.com/rs/zerolog"
	kafkaGo "github.com/segmentio/kafka-go"
)

const ConsumerGroup = "equiplend-audit"

// Auditor writes every reservation event as one structured log line.
type Auditor struct {
	logger zerolog.Logger
}

func NewAuditor(logger zerolog.Logger) Auditor {
	return Auditor{logger: logger}
}

func (a Auditor) Handle(_ context.Context, message kafkaGo.Message) error {
	event, err := kafka.Decode[model.Event](message)
	if err != nil {
		return fmt.Errorf("decode reservation event: %w", err)
	}

	switch event.Type {
	case model.EventCreated, model.EventUpdated, model.EventCancelled:
	default:
		a.logger.Warn().Str("type", string(event.Type)).Int64("offset", message.Offset).Msg("Skipping unknown reservation event")

		return nil
	}

	a.logger.Info().
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Int64("reservation_id", event.ReservationID).
		Str("requester", event.Requester).
		Str("department", event.Department).
		Strs("items", event.Items).
		Time("start", event.Start).
		Time("end", event.End).
		Time("occurred_at", event.OccurredAt).
		Msg("Reservation event")

	return nil
}
