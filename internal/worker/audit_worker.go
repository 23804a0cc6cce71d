package worker

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/repository"
)

// AuditWorker consumes task lifecycle events from the queue and persists
// them as audit rows. It opens its own connection so a slow consumer
// never competes with publishers for a channel.
type AuditWorker struct {
	brokerURL string
	queueName string
	auditRepo repository.TaskAuditRepository
	logger    *zap.Logger
}

func NewAuditWorker(brokerURL, queueName string, auditRepo repository.TaskAuditRepository, logger *zap.Logger) *AuditWorker {
	return &AuditWorker{
		brokerURL: brokerURL,
		queueName: queueName,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Start consumes until ctx is cancelled. Messages are acked only after
// the audit row is written; failures are requeued.
func (w *AuditWorker) Start(ctx context.Context) {
	conn, err := amqp.Dial(w.brokerURL)
	if err != nil {
		w.logger.Error("audit worker failed to connect", zap.Error(err))
		return
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		w.logger.Error("audit worker failed to open channel", zap.Error(err))
		return
	}
	defer channel.Close()

	deliveries, err := channel.Consume(
		w.queueName,
		"audit-worker", // consumer tag
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // args
	)
	if err != nil {
		w.logger.Error("audit worker failed to start consuming", zap.Error(err))
		return
	}

	w.logger.Info("audit worker started", zap.String("queue", w.queueName))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("audit worker stopping")
			return
		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("audit worker delivery channel closed")
				return
			}
			w.handle(ctx, delivery)
		}
	}
}

func (w *AuditWorker) handle(ctx context.Context, delivery amqp.Delivery) {
	var event entity.TaskEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		w.logger.Warn("discarding malformed event", zap.Error(err))
		delivery.Nack(false, false)
		return
	}

	audit := &entity.TaskAudit{
		ActorID:   event.ActorID,
		EventType: event.Type,
		EntityID:  event.EntityID,
		CreatedAt: event.Timestamp,
	}
	if event.Payload != nil {
		if raw, err := json.Marshal(event.Payload); err == nil {
			payload := string(raw)
			audit.Payload = &payload
		}
	}

	writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := w.auditRepo.Create(writeCtx, audit); err != nil {
		w.logger.Error("failed to persist audit row",
			zap.String("event", string(event.Type)),
			zap.Int("entity_id", event.EntityID),
			zap.Error(err))
		delivery.Nack(false, true)
		return
	}

	delivery.Ack(false)
}
