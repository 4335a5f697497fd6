package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/storeops/backoffice/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishNotificationRequested publishes a notification request with tracing
func (p *Publisher) PublishNotificationRequested(ctx context.Context, event NotificationRequestedEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.notification_requested",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicNotifications),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeNotificationRequested),
			attribute.Int64("workspace.id", int64(event.WorkspaceID)),
			attribute.String("notification.recipient", event.RecipientRef),
			attribute.Bool("notification.send_sms", event.SendSMS),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	event.EventType = EventTypeNotificationRequested
	event.Timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", event.EventID))

	return p.publish(ctx, span, TopicNotifications, event.EventType, event.EventID, event.RecipientRef, event)
}

// PublishOrderStatusChanged publishes an order status transition with tracing
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.order_status_changed",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicOrderStatusChanged),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeOrderStatusChanged),
			attribute.Int64("workspace.id", int64(event.WorkspaceID)),
			attribute.Int64("order.id", int64(event.OrderID)),
			attribute.String("order.old_status", event.OldStatus),
			attribute.String("order.new_status", event.NewStatus),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	event.EventType = EventTypeOrderStatusChanged
	event.Timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", event.EventID))

	key := fmt.Sprintf("order_%d", event.OrderID)
	return p.publish(ctx, span, TopicOrderStatusChanged, event.EventType, event.EventID, key, event)
}

func (p *Publisher) publish(ctx context.Context, span trace.Span, topic, eventType, eventID, key string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event_type"),
			Value: []byte(eventType),
		},
		{
			Key:   []byte("event_id"),
			Value: []byte(eventID),
		},
	}

	for headerKey, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(headerKey),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Str("event_id", eventID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Logger.Info().
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
