package kafka

import (
	"context"
	"time"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer interface {
	SendMessage(ctx context.Context, topic string, key []byte, value []byte) error
	Close() error
}

// Writer is the part of kafka.Writer the producer uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer Writer
	logger *zap.Logger
}

// NewKafkaProducer creates a producer writing to the given brokers. The topic
// is taken from each message.
func NewKafkaProducer(brokers []string, logger *zap.Logger) *KafkaProducer {
	w := &skafka.Writer{
		Addr:         skafka.TCP(brokers...),
		Balancer:     &skafka.Hash{},
		RequiredAcks: skafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return NewKafkaProducerWithWriter(w, logger)
}

func NewKafkaProducerWithWriter(w Writer, logger *zap.Logger) *KafkaProducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaProducer{writer: w, logger: logger}
}

func (p *KafkaProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	msg := skafka.Message{Topic: topic, Key: key, Value: value}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("kafka write failed", zap.String("topic", topic), zap.ByteString("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	p.logger.Info("closing kafka producer")
	return p.writer.Close()
}

// ConsoleProducer logs messages instead of sending them. It is used when no
// brokers are configured.
type ConsoleProducer struct {
	logger *zap.Logger
}

func NewConsoleProducer(logger *zap.Logger) *ConsoleProducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("initialized console kafka producer")
	return &ConsoleProducer{logger: logger}
}

func (p *ConsoleProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	if err := ctx.Err(); err != nil {
		p.logger.Warn("console producer cancelled", zap.String("topic", topic), zap.ByteString("key", key))
		return err
	}
	p.logger.Info("event",
		zap.String("topic", topic),
		zap.ByteString("key", key),
		zap.ByteString("value", value),
	)
	return nil
}

func (p *ConsoleProducer) Close() error {
	p.logger.Info("closing console kafka producer")
	return nil
}
