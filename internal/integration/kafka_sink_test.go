//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/seismic-report-etl/internal/adapter/filesystem"
	"github.com/couchcryptid/seismic-report-etl/internal/adapter/kafka"
	"github.com/couchcryptid/seismic-report-etl/internal/config"
	"github.com/couchcryptid/seismic-report-etl/internal/observability"
	"github.com/couchcryptid/seismic-report-etl/internal/pipeline"
)

const testRecordTopic = "test-seismic-records"

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("seismic-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestKafkaSink converts a report tree with the Kafka publisher wired in and
// reads every record back from the topic.
func TestKafkaSink(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testRecordTopic)

	base := t.TempDir()
	cfg := &config.Config{
		InputRoot:    filepath.Join(base, "2021"),
		OutputRoot:   filepath.Join(base, "2021_csv"),
		InputExt:     ".txt",
		OutputLayout: config.LayoutParent,
		KafkaBrokers: []string{broker},
		KafkaTopic:   testRecordTopic,
		KafkaTimeout: 30 * time.Second,
	}
	writeFile(t, filepath.Join(cfg.InputRoot, "PRQ", "PRQ_20211128.txt"), loadFixture(t))

	logger := discardLogger()
	csvWriter, err := filesystem.NewCSVWriter(cfg.OutputRoot, logger)
	require.NoError(t, err)
	publisher := kafka.NewWriter(cfg, logger)
	t.Cleanup(func() { _ = publisher.Close() })

	metrics := observability.NewMetrics(nil)
	p := pipeline.New(filesystem.NewSource(cfg, logger), pipeline.NewTransformer(logger), csvWriter,
		logger, metrics, pipeline.WithPublisher(publisher))

	summary, err := p.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesConverted)
	require.Zero(t, summary.PublishErrors)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testRecordTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	for i := 1; i <= summary.RecordsWritten; i++ {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read record %d", i)

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "PRQ/PRQ_20211128", string(msg.Key))
		assert.Equal(t, strconv.Itoa(i), headers["row"], "records arrive in source order")
		assert.Equal(t, filepath.Join(cfg.InputRoot, "PRQ", "PRQ_20211128.txt"), headers["source_file"])

		var record map[string]string
		require.NoError(t, json.Unmarshal(msg.Value, &record))
		assert.Equal(t, "PRQ", record["codigo"])
		assert.Contains(t, record, "acel_z")
	}
}
