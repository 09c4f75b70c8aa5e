package kafkabroker

import (
	"context"
	"time"

	errorsUtils "github.com/Egor213/LogTrail/pkg/errors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

type ProducerConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(cfg ProducerConfig) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.RoundRobin{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.WriteTimeout,
	}
	return &Producer{
		writer: w,
		topic:  cfg.Topic,
	}
}

// SendMessages writes values as one batch, preserving their order.
func (p *Producer) SendMessages(ctx context.Context, values [][]byte) error {
	if len(values) == 0 {
		return nil
	}

	now := time.Now()
	msgs := make([]kafka.Message, 0, len(values))
	for _, v := range values {
		msgs = append(msgs, kafka.Message{Value: v, Time: now})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Errorf("Failed to send %d messages to %s: %v", len(msgs), p.topic, err)
		return errorsUtils.WrapPathErr(err)
	}
	log.Debugf("Sent %d messages to %s", len(msgs), p.topic)
	return nil
}

func (p *Producer) Close() error {
	log.Info("Closing Kafka producer...")
	return p.writer.Close()
}
