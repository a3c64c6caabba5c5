package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/mateovidal/ordersync-backend/internal/cart"
	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
	"github.com/mateovidal/ordersync-backend/pkg/metrics"
)

const lockScope = "reconcile"

// Input is one reconciliation request. The cart is owned by the caller for
// the duration of the call; the engine reads and annotates it but never
// retains it.
type Input struct {
	OrderID     string
	Cart        *cart.Cart
	UserID      string
	Changes     ChangeContext
	CalcTax     bool
	DeleteItems bool
}

// Service reconciles a cart against its persisted order aggregate.
type Service interface {
	Reconcile(ctx context.Context, input Input) error
}

type service struct {
	storage    Storage
	shipping   ShippingEstimator
	tax        TaxCalculator
	promotions PromotionEngine
	payments   PaymentValidator
	history    ChangeRecorder
	reserver   InventoryReserver
	locks      lockClient
	events     eventEmitter
	lockTTL    time.Duration
	logg       *logger.Logger
	metrics    *metrics.ReconcileMetrics
}

// NewService builds the reconciliation service. The metrics recorder and
// event emitter may be nil; everything else is required.
func NewService(
	storage Storage,
	shipping ShippingEstimator,
	tax TaxCalculator,
	promotions PromotionEngine,
	payments PaymentValidator,
	history ChangeRecorder,
	reserver InventoryReserver,
	locks lockClient,
	events eventEmitter,
	lockTTL time.Duration,
	logg *logger.Logger,
	m *metrics.ReconcileMetrics,
) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage required")
	}
	if shipping == nil {
		return nil, fmt.Errorf("shipping estimator required")
	}
	if tax == nil {
		return nil, fmt.Errorf("tax calculator required")
	}
	if promotions == nil {
		return nil, fmt.Errorf("promotion engine required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment validator required")
	}
	if history == nil {
		return nil, fmt.Errorf("change recorder required")
	}
	if reserver == nil {
		return nil, fmt.Errorf("inventory reserver required")
	}
	if locks == nil {
		return nil, fmt.Errorf("lock client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if lockTTL <= 0 {
		lockTTL = 2 * time.Minute
	}
	return &service{
		storage:    storage,
		shipping:   shipping,
		tax:        tax,
		promotions: promotions,
		payments:   payments,
		history:    history,
		reserver:   reserver,
		locks:      locks,
		events:     events,
		lockTTL:    lockTTL,
		logg:       logg,
		metrics:    m,
	}, nil
}

// Reconcile computes the write set, persists it as a remove batch followed
// by a store batch, records change history and item-status rows, and then
// reserves inventory against the stored associations. The first failing
// stage aborts; batches already committed are not rolled back at this layer.
func (s *service) Reconcile(ctx context.Context, input Input) error {
	if input.OrderID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Cart == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart required")
	}
	if input.UserID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	ctx = s.logg.WithOrderID(ctx, input.OrderID)
	started := time.Now()
	orderType := input.Cart.OrderType.String()

	release, err := s.acquireLock(ctx, input.OrderID, input.UserID)
	if err != nil {
		s.metrics.IncFailure(orderType, "lock")
		return err
	}
	defer release()

	ws, err := s.buildWriteSet(ctx, input)
	if err != nil {
		s.logg.Error(ctx, "write set build failed", err)
		s.metrics.IncFailure(orderType, "build")
		return err
	}

	if err := s.persist(ctx, ws); err != nil {
		s.metrics.IncFailure(orderType, "persist")
		return err
	}

	if err := s.recordHistory(ctx, ws); err != nil {
		s.metrics.IncFailure(orderType, "history")
		return err
	}

	if err := s.createStatusRecords(ctx, input, ws); err != nil {
		s.metrics.IncFailure(orderType, "status")
		return err
	}

	if err := s.reserveInventory(ctx, input, ws); err != nil {
		s.metrics.IncFailure(orderType, "reservation")
		return err
	}

	if s.events != nil {
		if err := s.events.EmitReconciled(ctx, input.OrderID, input.UserID, len(ws.changes)); err != nil {
			s.metrics.IncFailure(orderType, "event")
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emitting reconciled event")
		}
	}

	s.metrics.IncSuccess(orderType)
	s.metrics.ObserveDuration(orderType, time.Since(started))
	s.metrics.ObserveItemChanges(orderType, len(ws.changes))
	s.logg.Info(ctx, "order reconciled")
	return nil
}

// acquireLock serializes reconciliations per order id. The lock is held for
// the whole call and released on return; the TTL only bounds leakage after
// a crash.
func (s *service) acquireLock(ctx context.Context, orderID, owner string) (func(), error) {
	key := s.locks.LockKey(lockScope, orderID)
	ok, err := s.locks.SetNX(ctx, key, owner, s.lockTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquiring order lock")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "another reconciliation holds this order")
	}
	return func() {
		if err := s.locks.Del(context.WithoutCancel(ctx), key); err != nil {
			s.logg.Warn(ctx, "releasing order lock failed: "+err.Error())
		}
	}, nil
}

// persist applies the write set as two sequential batches, removals first.
func (s *service) persist(ctx context.Context, ws *writeSet) error {
	if len(ws.toRemove) > 0 {
		if err := s.storage.RemoveAll(ctx, ws.toRemove); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing superseded records")
		}
	}
	if len(ws.toStore) > 0 {
		if err := s.storage.StoreAll(ctx, ws.toStore); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing order records")
		}
	}
	return nil
}

// recordHistory writes one change record per detected modification. The
// first recorder failure aborts the remainder of the reconciliation.
func (s *service) recordHistory(ctx context.Context, ws *writeSet) error {
	for _, change := range ws.changes {
		if err := s.history.RecordItemChange(ctx, change); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording item change")
		}
	}
	return nil
}

// createStatusRecords marks every new item as just created. The batch is
// stored in one shot; a failure aborts rather than leaving a silently
// partial audit trail.
func (s *service) createStatusRecords(ctx context.Context, input Input, ws *writeSet) error {
	if len(ws.newItems) == 0 {
		return nil
	}
	now := time.Now()
	records := make([]models.Record, 0, len(ws.newItems))
	for _, item := range ws.newItems {
		records = append(records, &models.OrderStatusRecord{
			StatusRecordID: s.storage.NextSeqID(enums.KindOrderStatus),
			OrderID:        input.OrderID,
			ItemSeqID:      item.ItemSeqID,
			StatusID:       enums.ItemStatusCreated,
			StatusDatetime: now,
			StatusUserID:   input.UserID,
		})
	}
	if err := s.storage.StoreAll(ctx, records); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating item status records")
	}
	return nil
}
