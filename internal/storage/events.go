package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/mateovidal/ordersync-backend/pkg/enums"
	"github.com/mateovidal/ordersync-backend/pkg/outbox"
	"github.com/mateovidal/ordersync-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Emitter queues domain events through the transactional outbox.
type Emitter struct {
	db     txRunner
	outbox *outbox.Service
}

// NewEmitter builds an Emitter over the shared DB client and outbox service.
func NewEmitter(client txRunner, svc *outbox.Service) *Emitter {
	return &Emitter{db: client, outbox: svc}
}

// EmitReconciled queues an order_reconciled event in its own transaction.
func (e *Emitter) EmitReconciled(ctx context.Context, orderID, userID string, itemChanges int) error {
	return e.db.WithTx(ctx, func(tx *gorm.DB) error {
		return e.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderReconciled,
			AggregateType: enums.AggregateOrder,
			AggregateID:   orderID,
			Actor:         &outbox.ActorRef{UserID: userID},
			Data:          payloads.OrderReconciledEvent{OrderID: orderID, ItemChanges: itemChanges},
			Version:       1,
		})
	})
}
