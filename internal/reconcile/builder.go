package reconcile

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/internal/cart"
	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
)

// shipGroupOrigin returns the cart ship-group index estimation starts from.
// An upstream flow may auto-insert one empty placeholder group at index 0;
// when the cart holds exactly one more group than the persisted order, that
// placeholder is skipped. Any other count relationship starts at 0 (equal
// counts being the only other supported shape).
func shipGroupOrigin(cartGroups, storedGroups int) int {
	if cartGroups == storedGroups+1 {
		return 1
	}
	return 0
}

// buildWriteSet runs every pre-persistence stage: shipping estimates, tax,
// promotion rediscovery, payment validation, materialization, adjustment
// reconciliation, and normalization. Collaborator failures abort before any
// persistence side effect exists.
func (s *service) buildWriteSet(ctx context.Context, input Input) (*writeSet, error) {
	ws := newWriteSet()
	now := time.Now()

	storedGroups, err := s.storage.ListForOrder(ctx, enums.KindOrderShipGroup, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing persisted ship groups")
	}

	if err := s.applyShippingEstimates(ctx, input, shipGroupOrigin(input.Cart.ShipGroupCount(), len(storedGroups))); err != nil {
		return nil, err
	}

	if input.CalcTax {
		if err := s.tax.CalculateTax(ctx, input.Cart); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calculating tax")
		}
	}

	// promotion adjustments must reflect the post-estimate cart state
	input.Cart.ClearPromotionAdjustments()
	s.promotions.DiscoverPromotions(ctx, input.Cart)

	if err := s.payments.ValidatePaymentMethods(ctx, input.Cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validating payment methods")
	}

	if input.Cart.BillingAccountID != "" {
		header, err := s.storage.FindOrderHeader(ctx, input.OrderID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order header")
		}
		billing := input.Cart.BillingAccountID
		header.BillingAccountID = &billing
		ws.store(header)
	}

	if err := s.stageItems(ctx, input, ws); err != nil {
		return nil, err
	}

	staged := reconcileAdjustments(input.Cart.MakeAllAdjustments(), input.DeleteItems)
	for _, adj := range staged {
		ws.store(adj)
	}

	groups, assocs := input.Cart.MakeShipGroupRecords()
	for _, group := range groups {
		ws.store(group)
	}
	for _, assoc := range assocs {
		ws.store(assoc)
	}
	for _, pref := range input.Cart.MakePaymentRecords() {
		ws.store(pref)
	}
	for _, attr := range input.Cart.MakeItemAttributes(cart.FilledOnly) {
		ws.store(attr)
	}
	if !input.DeleteItems {
		for _, attr := range input.Cart.MakeItemAttributes(cart.EmptyOnly) {
			attr.SetOrderID(input.OrderID)
			ws.remove(attr)
		}
	}

	if err := s.stagePromoReplacement(ctx, input, ws); err != nil {
		return nil, err
	}

	if input.DeleteItems {
		if err := s.stageFullDelete(ctx, input.OrderID, ws); err != nil {
			return nil, err
		}
	}

	ws.normalize(input.OrderID, input.UserID, now, s.storage.NextSeqID)
	return ws, nil
}

// applyShippingEstimates walks the aligned ship groups. A sales order aborts
// on the first estimator failure; other order types record a zero estimate
// and continue.
func (s *service) applyShippingEstimates(ctx context.Context, input Input, origin int) error {
	for i := origin; i < input.Cart.ShipGroupCount(); i++ {
		estimate, err := s.shipping.EstimateShipping(ctx, input.Cart, i)
		if err != nil {
			if input.Cart.OrderType == enums.OrderTypeSales {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "estimating shipping")
			}
			s.logg.Warn(ctx, "shipping estimate failed, recording zero: "+err.Error())
			estimate = decimal.Zero
		}
		input.Cart.SetShipGroupEstimate(i, estimate)
	}
	return nil
}

// stageItems materializes the cart lines, driving the change detector for
// non-promo items in partial-update mode. Promotion-generated items never
// enter change history but still join the new-item audit list so they get a
// status record.
func (s *service) stageItems(ctx context.Context, input Input, ws *writeSet) error {
	existingByID := make(map[string]*models.OrderItem)
	if !input.DeleteItems {
		records, err := s.storage.ListForOrder(ctx, enums.KindOrderItem, input.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing persisted items")
		}
		for _, rec := range records {
			if item, ok := rec.(*models.OrderItem); ok {
				existingByID[item.ItemSeqID] = item
			}
		}
	}

	for _, item := range input.Cart.MakeOrderItems() {
		ws.store(item)
		if input.DeleteItems {
			continue
		}
		if item.IsPromo {
			ws.newItems = append(ws.newItems, item)
			continue
		}
		existing := existingByID[item.ItemSeqID]
		change := detectItemChange(existing, item, input.Changes)
		if change == nil {
			continue
		}
		change.OrderID = input.OrderID
		change.ChangedBy = input.UserID
		ws.changes = append(ws.changes, *change)
		if existing == nil {
			ws.newItems = append(ws.newItems, item)
		}
	}
	return nil
}

// stagePromoReplacement replaces the order's promo-code and promo-use rows
// wholesale with the cart's current state. A listing failure aborts instead
// of staging a partial removal batch.
func (s *service) stagePromoReplacement(ctx context.Context, input Input, ws *writeSet) error {
	existingCodes, err := s.storage.ListForOrder(ctx, enums.KindOrderPromoCode, input.OrderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing promo codes")
	}
	existingUses, err := s.storage.ListForOrder(ctx, enums.KindOrderPromoUse, input.OrderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing promo uses")
	}
	ws.remove(existingCodes...)
	ws.remove(existingUses...)

	for _, code := range input.Cart.MakePromoCodes() {
		ws.store(code)
	}
	for _, use := range input.Cart.MakePromoUses() {
		ws.store(use)
	}
	return nil
}

var fullDeleteKinds = []enums.EntityKind{
	enums.KindOrderShipGroupAssoc,
	enums.KindOrderItemAttribute,
	enums.KindOrderItemChange,
	enums.KindOrderAdjustment,
	enums.KindOrderItem,
}

// stageFullDelete gathers every child record of the order into the removal
// set. Prior change history is deliberately discarded with the items.
func (s *service) stageFullDelete(ctx context.Context, orderID string, ws *writeSet) error {
	for _, kind := range fullDeleteKinds {
		records, err := s.storage.ListForOrder(ctx, kind, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing "+kind.String()+" for removal")
		}
		ws.remove(records...)
	}
	return nil
}
