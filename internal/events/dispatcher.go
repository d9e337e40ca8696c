package events

import (
	"context"
	"time"

	"github.com/estanteapp/estante-api/internal/kafka"
	"github.com/estanteapp/estante-api/telemetry"

	"go.uber.org/zap"
)

// PaymentCreated is published after the gateway confirms a transaction.
type PaymentCreated struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// Dispatcher drains payment events to Kafka off the request path.
// Best-effort: a full queue or a publish failure is logged and counted,
// never surfaced to the paying user.
type Dispatcher struct {
	log       *zap.Logger
	producer  *kafka.Producer
	validator *kafka.Validator
	ch        chan PaymentCreated
}

func NewDispatcher(log *zap.Logger, producer *kafka.Producer, validator *kafka.Validator, queueSize int) *Dispatcher {
	return &Dispatcher{
		log:       log,
		producer:  producer,
		validator: validator,
		ch:        make(chan PaymentCreated, queueSize),
	}
}

func (d *Dispatcher) Enqueue(ev PaymentCreated) {
	select {
	case d.ch <- ev:
		telemetry.SetDispatcherQueueCurrent(len(d.ch))
	default:
		// queue full, drop the event
		d.log.Warn("payment event queue full; dropping", zap.String("tx_id", ev.TransactionID))
		telemetry.IncPaymentEventsFailed("queue")
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	d.log.Info("payment event dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.log.Info("payment event dispatcher stopped")
			return
		case ev := <-d.ch:
			telemetry.SetDispatcherQueueCurrent(len(d.ch))
			if err := d.validator.Validate(ev); err != nil {
				d.log.Error("payment event failed schema validation",
					zap.String("tx_id", ev.TransactionID), zap.Error(err))
				telemetry.IncPaymentEventsFailed("schema")
				continue
			}
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := d.producer.Publish(pubCtx, ev.TransactionID, ev)
			cancel()
			if err != nil {
				d.log.Error("failed to publish payment event",
					zap.String("tx_id", ev.TransactionID), zap.Error(err))
				telemetry.IncPaymentEventsFailed("kafka")
				continue
			}
			telemetry.IncPaymentEventsPublished()
			d.log.Info("payment event published", zap.String("tx_id", ev.TransactionID))
		}
	}
}
