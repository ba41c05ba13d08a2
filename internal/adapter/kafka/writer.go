package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/seismic-report-etl/internal/config"
	"github.com/couchcryptid/seismic-report-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes converted records to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer  *kafkago.Writer
	timeout time.Duration
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured record topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, timeout: cfg.KafkaTimeout, logger: logger}
}

// Publish sends every record of the batch in a single WriteMessages call.
// All records of one report share a key, so they land on one partition in
// source order.
func (w *Writer) Publish(ctx context.Context, batch domain.Batch) error {
	if len(batch.Records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(batch.Records))
	for i := range batch.Records {
		msg, err := serializeToMessage(batch, i)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d records from %q: %w", len(msgs), batch.Source, err)
	}
	w.logger.Debug("records published", "file", batch.Source, "records", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// recordKey identifies the source report of a record.
func recordKey(batch domain.Batch) string {
	return batch.Dir + "/" + batch.Name
}

// serializeToMessage marshals record i of the batch into a Kafka message.
func serializeToMessage(batch domain.Batch, i int) (kafkago.Message, error) {
	data, err := json.Marshal(batch.Records[i].Map())
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record %d of %q: %w", i, batch.Source, err)
	}
	return kafkago.Message{
		Key:   []byte(recordKey(batch)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source_file", Value: []byte(batch.Source)},
			{Key: "row", Value: []byte(strconv.Itoa(i + 1))},
		},
	}, nil
}
