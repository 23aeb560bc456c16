package service

import (
	"context"
	"encoding/json"
	"log"

	"formflow-be/pkg/events"
	"formflow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process submitted-form topic and forwards
// each event onto the NATS bus for external consumers. The process works
// without NATS; events are then dropped with a log line.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	publisher *nats.Publisher
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, publisher *nats.Publisher) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		publisher: publisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

type submittedPayload struct {
	SessionId uuid.UUID `json:"session_id"`
	Username  string    `json:"username"`
	Domain    string    `json:"domain"`
	AppId     string    `json:"app_id"`
	Title     string    `json:"title"`
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload submittedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal submitted-form message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.publisher == nil {
		log.Printf("[WARN] No event bus configured, dropping submitted-form event for session %s", payload.SessionId)
		msg.Ack()
		return
	}

	event := events.NewFormSubmitted(payload.SessionId, payload.Username, payload.Domain, payload.AppId, payload.Title)
	if err := cs.publisher.Publish(ctx, event); err != nil {
		log.Printf("[ERROR] Failed to forward submitted-form event for session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[SUCCESS] Forwarded submitted-form event for session %s", payload.SessionId)
	msg.Ack()
}
