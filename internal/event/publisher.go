package event

import (
	"context"
	"encoding/json"
	"log/slog"

	"payment-service/internal/message"
	"payment-service/internal/payment"

	"github.com/segmentio/kafka-go"
)

// Publisher emits processed-payment events to Kafka after a drain.
// Implements queue.Publisher.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewPublisher(writer *kafka.Writer, logger *slog.Logger) *Publisher {
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, payments []*payment.Payment) error {
	var kafkaMessages []kafka.Message

	for _, pmt := range payments {
		p.logger.DebugContext(ctx, "Preparing payment event", "id", pmt.ID)

		event := message.PaymentEvent{
			ID:      pmt.ID,
			RiderID: pmt.RiderID,
			Amount:  pmt.Amount,
			Status:  pmt.Status,
		}

		messageBytes, _ := json.Marshal(event)

		kafkaMessages = append(kafkaMessages, kafka.Message{
			// payment ID as key keeps per-payment ordering
			Key:   []byte(pmt.ID.String()),
			Value: messageBytes,
		})
	}

	return p.writer.WriteMessages(ctx, kafkaMessages...)
}
