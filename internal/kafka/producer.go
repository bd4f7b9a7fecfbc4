package kafka

import (
	"context"
	"encoding/json"
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"github.com/segmentio/kafka-go"
	"strconv"
	"strings"
)

const eventType = "order.translated"

type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// PublishTranslation emits one order.translated event keyed by order id, so
// every event for an order lands on the same partition.
func (p *Producer) PublishTranslation(ctx context.Context, rec domain.TranslationRecord) error {
	msg, err := translationMessage(rec)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, msg)
}

func translationMessage(rec domain.TranslationRecord) (kafka.Message, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(rec.OrderID, 10)),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-type", Value: []byte(eventType)},
			{Key: "event-id", Value: []byte(rec.ID)},
		},
	}, nil
}
