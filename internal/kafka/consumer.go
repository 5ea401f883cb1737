package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/vuelachile/schedgen/internal/logging"
)

// Consumer reads ScheduleEvents off one topic. Decoding happens here so
// handlers only ever see typed events; a message that does not decode is
// logged and skipped instead of wedging the group on it.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, ScheduleEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeScheduleEvent(msg.Value)
		if err != nil {
			logging.L().Warnw("skipping undecodable message", "topic", msg.Topic, "offset", msg.Offset, "error", err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeScheduleEvent(value []byte) (ScheduleEvent, error) {
	var event ScheduleEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return ScheduleEvent{}, err
	}
	return event, nil
}
