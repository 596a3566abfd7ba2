package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/IBM/sarama"
	"github.com/schollz/progressbar/v3"

	"github.com/atharv3903/skyroute/internal/model"
)

// idleTimeout ends a partition drain that stops receiving messages before the
// last offset arrives. Transaction markers and compacted records are never
// delivered, so the high-water mark is not always reached.
const idleTimeout = 10 * time.Second

// KafkaSource reads every message of a topic that exists when Load starts, from
// the oldest retained offset up to the high-water mark. Messages are JSON
// objects with origin, destination and duration fields.
type KafkaSource struct {
	brokers  []string
	topic    string
	progress io.Writer
	idle     time.Duration
}

// NewKafkaSource creates a source; progress receives a progress bar and may be nil.
func NewKafkaSource(brokers []string, topic string, progress io.Writer) *KafkaSource {
	if progress == nil {
		progress = io.Discard
	}
	return &KafkaSource{brokers: brokers, topic: topic, progress: progress, idle: idleTimeout}
}

func (s *KafkaSource) Name() string { return "kafka:" + s.topic }

func (s *KafkaSource) config() *sarama.Config {
	c := sarama.NewConfig()
	c.ClientID = "skyroute"
	c.Consumer.Return.Errors = true
	c.Net.DialTimeout = 30 * time.Second
	c.Net.ReadTimeout = 30 * time.Second
	return c
}

type partitionSpan struct {
	partition int32
	first     int64
	end       int64 // high-water mark, exclusive
}

func (s *KafkaSource) Load(ctx context.Context) ([]model.Row, error) {
	client, err := sarama.NewClient(s.brokers, s.config())
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama client: %w", err)
	}
	defer client.Close()

	partitions, err := client.Partitions(s.topic)
	if err != nil {
		return nil, fmt.Errorf("list partitions of %s: %w", s.topic, err)
	}

	var (
		spans []partitionSpan
		total int64
	)
	for _, p := range partitions {
		first, err := client.GetOffset(s.topic, p, sarama.OffsetOldest)
		if err != nil {
			return nil, fmt.Errorf("oldest offset %s/%d: %w", s.topic, p, err)
		}
		end, err := client.GetOffset(s.topic, p, sarama.OffsetNewest)
		if err != nil {
			return nil, fmt.Errorf("newest offset %s/%d: %w", s.topic, p, err)
		}
		if end > first {
			spans = append(spans, partitionSpan{partition: p, first: first, end: end})
			total += end - first
		}
	}

	consumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama consumer: %w", err)
	}
	defer consumer.Close()

	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription("kafka "+s.topic),
	)

	rows := make([]model.Row, 0, total)
	for _, sp := range spans {
		pc, err := consumer.ConsumePartition(s.topic, sp.partition, sp.first)
		if err != nil {
			return nil, fmt.Errorf("consume %s/%d: %w", s.topic, sp.partition, err)
		}
		err = drain(ctx, pc, sp.end-1, s.idle, func(msg *sarama.ConsumerMessage) {
			rows = append(rows, decodeMessage(msg.Value))
			_ = bar.Add(1)
		})
		pc.Close()
		if err != nil {
			return nil, err
		}
	}
	_ = bar.Finish()

	return rows, nil
}

type partitionReader interface {
	Messages() <-chan *sarama.ConsumerMessage
	Errors() <-chan *sarama.ConsumerError
}

// drain feeds messages to fn until the one at offset last has been seen, or
// until no message has arrived for idle.
func drain(ctx context.Context, pc partitionReader, last int64, idle time.Duration, fn func(*sarama.ConsumerMessage)) error {
	msgs, errs := pc.Messages(), pc.Errors()

	timer := time.NewTimer(idle)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("dataset: partition closed before offset %d", last)
			}
			fn(msg)
			if msg.Offset >= last {
				return nil
			}
			timer.Reset(idle)
		case cerr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return cerr
		}
	}
}

// decodeMessage never fails; an undecodable payload becomes an empty row that
// the aggregator skips as malformed.
func decodeMessage(b []byte) model.Row {
	var m struct {
		Origin      any `json:"origin"`
		Destination any `json:"destination"`
		Duration    any `json:"duration"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return model.Row{}
	}
	return model.Row{m.Origin, m.Destination, m.Duration}
}
