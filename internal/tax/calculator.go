package tax

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mateovidal/ordersync-backend/internal/cart"
	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// Calculator applies the product store's sales tax rate to the cart, one
// adjustment per ship group over that group's taxable subtotal.
type Calculator struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewCalculator builds a Calculator bound to the provided DB.
func NewCalculator(db *gorm.DB, logg *logger.Logger) *Calculator {
	return &Calculator{db: db, logg: logg}
}

// CalculateTax drops previously accrued non-manual sales tax adjustments and
// appends fresh ones. A store without a configured rate is taxed at zero.
func (c *Calculator) CalculateTax(ctx context.Context, crt *cart.Cart) error {
	var rate models.TaxRate
	err := c.db.WithContext(ctx).
		Where("product_store_id = ?", crt.ProductStoreID).
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if c.logg != nil {
			c.logg.Warn(ctx, "no tax rate configured for store "+crt.ProductStoreID)
		}
		clearSalesTax(crt)
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading tax rate")
	}

	clearSalesTax(crt)

	priceBySeqID := make(map[string]decimal.Decimal, len(crt.Items))
	for _, item := range crt.Items {
		priceBySeqID[item.ItemSeqID] = item.UnitPrice
	}

	for _, group := range crt.ShipGroups {
		subtotal := decimal.Zero
		for seqID, qty := range group.ItemQuantities {
			subtotal = subtotal.Add(qty.Mul(priceBySeqID[seqID]))
		}
		if subtotal.IsZero() {
			continue
		}
		amount := subtotal.Mul(rate.RatePercent).Div(oneHundred).Round(2)
		crt.Adjustments = append(crt.Adjustments, cart.Adjustment{
			ShipGroupSeqID: group.ShipGroupSeqID,
			Type:           enums.AdjustmentSalesTax,
			Amount:         amount,
			Description:    fmt.Sprintf("sales tax %s%%", rate.RatePercent),
		})
	}
	return nil
}

func clearSalesTax(crt *cart.Cart) {
	kept := crt.Adjustments[:0]
	for _, adj := range crt.Adjustments {
		if adj.Type == enums.AdjustmentSalesTax && !adj.IsManual && adj.AdjustmentID == "" {
			continue
		}
		kept = append(kept, adj)
	}
	crt.Adjustments = kept
}
