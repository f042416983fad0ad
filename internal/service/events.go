package service

import (
	"encoding/json"

	"github.com/gamepedia/community-service/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	EventUserRegistered = "user_registered"
	EventGameApproved   = "game_approved"
)

const publishAttempts = 3

// EventPublisher emits domain events to the broker. Publishing is best
// effort: callers log failures and move on, the request has already
// committed.
type EventPublisher interface {
	Publish(eventType string, data interface{}) error
}

type KafkaEventPublisher struct {
	conn *kafka.Conn
}

func CreateKafkaEventPublisher(conn *kafka.Conn) EventPublisher {
	return &KafkaEventPublisher{conn: conn}
}

func (p *KafkaEventPublisher) Publish(eventType string, data interface{}) error {
	payload, err := json.Marshal(dto.KafkaMessage{EventType: eventType, Data: data})
	if err != nil {
		return err
	}

	for attempt := 1; attempt <= publishAttempts; attempt++ {
		_, err = p.conn.WriteMessages(kafka.Message{Value: payload})
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Str("event_type", eventType).Msg("failed to publish event")
	}

	return err
}
