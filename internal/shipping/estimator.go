package shipping

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mateovidal/ordersync-backend/internal/cart"
	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

// Estimator computes shipping estimates from the carrier rate table: a flat
// base amount per shipment plus a per-unit amount over the group's total
// quantity.
type Estimator struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewEstimator builds an Estimator bound to the provided DB.
func NewEstimator(db *gorm.DB, logg *logger.Logger) *Estimator {
	return &Estimator{db: db, logg: logg}
}

// EstimateShipping rates the ship group at groupIndex. Drop-ship groups are
// never rated by the merchant and estimate to zero. A carrier/method pair
// without a rate row is an error; the caller decides whether that aborts.
func (e *Estimator) EstimateShipping(ctx context.Context, c *cart.Cart, groupIndex int) (decimal.Decimal, error) {
	if groupIndex < 0 || groupIndex >= len(c.ShipGroups) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("ship group index %d out of range", groupIndex))
	}
	group := c.ShipGroups[groupIndex]

	if group.SupplierPartyID != nil && *group.SupplierPartyID != "" {
		return decimal.Zero, nil
	}
	if group.ShipmentMethodTypeID == "" {
		return decimal.Zero, nil
	}

	var rate models.ShipmentRate
	err := e.db.WithContext(ctx).
		Where("carrier_party_id = ? AND shipment_method_type_id = ?", group.CarrierPartyID, group.ShipmentMethodTypeID).
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("no shipment rate for carrier %q method %q", group.CarrierPartyID, group.ShipmentMethodTypeID))
	}
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading shipment rate")
	}

	units := decimal.Zero
	for _, qty := range group.ItemQuantities {
		units = units.Add(qty)
	}
	estimate := rate.BaseAmount.Add(rate.PerUnitAmount.Mul(units)).Round(2)

	if e.logg != nil {
		e.logg.Info(ctx, fmt.Sprintf("estimated shipping %s for group %s", estimate, group.ShipGroupSeqID))
	}
	return estimate, nil
}
