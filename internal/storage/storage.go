package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
)

// Store persists the order aggregate. It implements the storage surface the
// reconciliation engine depends on: per-kind listing, batched removal, and
// batched upsert. Each batch runs in its own transaction; the engine orders
// the batches, this layer only makes each one atomic.
type Store struct {
	db *gorm.DB
}

// NewStore builds a Store bound to the provided DB.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTx returns a Store bound to the supplied transaction.
func (s *Store) WithTx(tx *gorm.DB) *Store {
	if tx == nil {
		return s
	}
	return &Store{db: tx}
}

func (s *Store) FindOrderHeader(ctx context.Context, orderID string) (*models.OrderHeader, error) {
	var header models.OrderHeader
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&header).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}
	return &header, nil
}

// ListForOrder loads every persisted record of the given kind for one order,
// in a stable per-kind ordering.
func (s *Store) ListForOrder(ctx context.Context, kind enums.EntityKind, orderID string) ([]models.Record, error) {
	db := s.db.WithContext(ctx)
	switch kind {
	case enums.KindOrderHeader:
		return listAs[models.OrderHeader](db, orderID, "")
	case enums.KindOrderItem:
		return listAs[models.OrderItem](db, orderID, "item_seq_id ASC")
	case enums.KindOrderAdjustment:
		return listAs[models.OrderAdjustment](db, orderID, "adjustment_id ASC")
	case enums.KindOrderShipGroup:
		return listAs[models.OrderShipGroup](db, orderID, "ship_group_seq_id ASC")
	case enums.KindOrderShipGroupAssoc:
		return listAs[models.OrderShipGroupAssoc](db, orderID, "ship_group_seq_id ASC, item_seq_id ASC")
	case enums.KindOrderPaymentPreference:
		return listAs[models.OrderPaymentPreference](db, orderID, "preference_id ASC")
	case enums.KindOrderItemAttribute:
		return listAs[models.OrderItemAttribute](db, orderID, "item_seq_id ASC, name ASC")
	case enums.KindOrderPromoCode:
		return listAs[models.OrderPromoCode](db, orderID, "promo_code_id ASC")
	case enums.KindOrderPromoUse:
		return listAs[models.OrderPromoUse](db, orderID, "promo_id ASC, sequence_id ASC")
	case enums.KindOrderItemChange:
		return listAs[models.OrderItemChange](db, orderID, "changed_at ASC, change_id ASC")
	case enums.KindOrderStatus:
		return listAs[models.OrderStatusRecord](db, orderID, "status_datetime ASC, status_record_id ASC")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown entity kind "+kind.String())
	}
}

// RemoveAll deletes every record by primary key inside one transaction.
func (s *Store) RemoveAll(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			if err := tx.Delete(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// StoreAll upserts every record inside one transaction. Records that share a
// primary key with a persisted row overwrite it.
func (s *Store) StoreAll(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// NextSeqID mints a fresh identifier for a record of the given kind.
func (s *Store) NextSeqID(kind enums.EntityKind) string {
	return uuid.NewString()
}

func listAs[T any, PT interface {
	*T
	models.Record
}](db *gorm.DB, orderID, orderBy string) ([]models.Record, error) {
	var rows []T
	q := db.Where("order_id = ?", orderID)
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Record, 0, len(rows))
	for i := range rows {
		out = append(out, PT(&rows[i]))
	}
	return out, nil
}
