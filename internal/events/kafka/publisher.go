package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
	"github.com/LazorAmorie/Masterkey.01/internal/events"
)

const topicTransactionCompleted = "transaction_completed"

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topicTransactionCompleted,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) PublishTransactionCompleted(ctx context.Context, t *domain.Transaction) error {
	event := events.TransactionCompleted{
		TransactionID:      t.TransactionID,
		SenderID:           t.SenderID,
		ReceiverIdentifier: t.ReceiverIdentifier,
		Amount:             t.Amount,
		Fee:                t.Fee,
		Route:              t.Route,
		OccurredAt:         time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(t.SenderID),
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
