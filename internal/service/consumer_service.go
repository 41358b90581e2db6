package service

import (
	"context"
	"encoding/json"
	"log"

	"conversation-assistant-be/internal/dto"
	"conversation-assistant-be/pkg/contextstore"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	contextStore *contextstore.Store
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	contextStore *contextstore.Store,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		contextStore: contextStore,
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

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Embedding background document for namespace: %s (length: %d)", payload.Namespace, len(payload.Text))

	if err := cs.contextStore.Ingest(ctx, payload.Text, payload.Namespace); err != nil {
		log.Printf("[ERROR] Failed to ingest document for namespace %s: %v", payload.Namespace, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[SUCCESS] Document embedded for namespace: %s", payload.Namespace)
	msg.Ack()
}
