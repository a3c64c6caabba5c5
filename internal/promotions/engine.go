package promotions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mateovidal/ordersync-backend/internal/cart"
	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// Engine rediscovers promotion adjustments from the codes entered on the
// cart. Discovery is deliberately non-fatal: a code that cannot be resolved
// is logged and skipped, never failing the reconciliation.
type Engine struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewEngine builds an Engine bound to the provided DB.
func NewEngine(db *gorm.DB, logg *logger.Logger) *Engine {
	return &Engine{db: db, logg: logg}
}

// DiscoverPromotions resolves each entered code against the promo table and
// accrues a percent-off adjustment plus a promo-use record per applicable
// promotion. The caller clears previously accrued promotion state first.
func (e *Engine) DiscoverPromotions(ctx context.Context, crt *cart.Cart) {
	if len(crt.PromoCodes) == 0 {
		return
	}

	subtotal := decimal.Zero
	for _, item := range crt.Items {
		if item.IsPromo {
			continue
		}
		subtotal = subtotal.Add(item.Quantity.Mul(item.UnitPrice))
	}

	now := time.Now()
	for i, code := range crt.PromoCodes {
		var promo models.Promo
		err := e.db.WithContext(ctx).Where("code = ?", code).First(&promo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			e.warn(ctx, "unknown promo code "+code)
			continue
		}
		if err != nil {
			e.warn(ctx, "promo lookup failed for "+code+": "+err.Error())
			continue
		}
		if promo.ExpiresAt != nil && promo.ExpiresAt.Before(now) {
			e.warn(ctx, "promo code "+code+" expired")
			continue
		}

		discount := subtotal.Mul(promo.PercentOff).Div(oneHundred).Round(2)
		if discount.IsZero() {
			continue
		}
		promoID := promo.PromoID
		crt.Adjustments = append(crt.Adjustments, cart.Adjustment{
			Type:        enums.AdjustmentPromotion,
			Amount:      discount.Neg(),
			Description: fmt.Sprintf("promo %s (%s%% off)", code, promo.PercentOff),
			PromoID:     &promoID,
		})
		crt.PromoUses = append(crt.PromoUses, cart.PromoUse{
			PromoID:       promo.PromoID,
			PromoCodeID:   code,
			SequenceID:    fmt.Sprintf("%05d", i+1),
			TotalDiscount: discount,
		})
	}
}

func (e *Engine) warn(ctx context.Context, msg string) {
	if e.logg != nil {
		e.logg.Warn(ctx, msg)
	}
}
