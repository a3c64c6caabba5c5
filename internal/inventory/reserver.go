package inventory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mateovidal/ordersync-backend/internal/reconcile"
	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

// Reserver moves stock from available to reserved for the items of a
// reconciled sales order. Shortfalls are soft: each one becomes a warning
// and the remainder is reserved, leaving the caller to decide the outcome.
type Reserver struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewReserver builds a Reserver bound to the provided DB.
func NewReserver(db *gorm.DB, logg *logger.Logger) *Reserver {
	return &Reserver{db: db, logg: logg}
}

// Reserve walks the stored ship-group associations and reserves inventory
// per item. Drop-ship groups are skipped: their supplier owns fulfillment.
// Non-sales orders reserve nothing.
func (r *Reserver) Reserve(ctx context.Context, input reconcile.ReservationInput) ([]string, error) {
	if input.OrderType != enums.OrderTypeSales {
		return nil, nil
	}

	var warnings []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, assoc := range input.Associations {
			if _, dropShip := input.DropShipGroups[assoc.ShipGroupSeqID]; dropShip {
				continue
			}
			item := input.ItemsBySeqID[assoc.ItemSeqID]
			if item == nil {
				warnings = append(warnings, fmt.Sprintf("item %s has no stored record", assoc.ItemSeqID))
				continue
			}

			var inv models.InventoryItem
			err := tx.Where("product_id = ? AND product_store_id = ?", item.ProductID, input.ProductStoreID).
				First(&inv).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				warnings = append(warnings, fmt.Sprintf("no inventory for product %s at store %s", item.ProductID, input.ProductStoreID))
				continue
			}
			if err != nil {
				return err
			}

			want := assoc.Quantity
			got := want
			if inv.AvailableQty.LessThan(want) {
				warnings = append(warnings, fmt.Sprintf("product %s short by %s", item.ProductID, want.Sub(inv.AvailableQty)))
				got = inv.AvailableQty
			}
			inv.AvailableQty = inv.AvailableQty.Sub(got)
			inv.ReservedQty = inv.ReservedQty.Add(got)
			if err := tx.Save(&inv).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserving inventory")
	}

	if len(warnings) > 0 && r.logg != nil {
		r.logg.Warn(ctx, fmt.Sprintf("inventory reservation for order %s produced %d warnings", input.OrderID, len(warnings)))
	}
	return warnings, nil
}
