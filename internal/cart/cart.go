package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// Cart is the caller-owned, in-memory representation of the desired order
// state. Reconciliation reads it through the materialization methods below
// and never retains it past a single call.
type Cart struct {
	OrderType        enums.OrderType
	ProductStoreID   string
	BillingAccountID string

	Items        []Item
	ShipGroups   []ShipGroup
	PaymentPrefs []PaymentPreference
	Adjustments  []Adjustment
	PromoCodes   []string
	PromoUses    []PromoUse
}

// Item is one cart line. ItemSeqID is assigned before reconciliation runs and
// matches the persisted order item when the line already exists.
type Item struct {
	ItemSeqID   string
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Description string
	Comments    string
	IsPromo     bool
	Attributes  map[string]string
}

// ShipGroup is one shipment bucket. ItemQuantities maps item sequence ids to
// the quantity of that item shipped under this group.
type ShipGroup struct {
	ShipGroupSeqID       string
	ShipmentMethodTypeID string
	CarrierPartyID       string
	CarrierRoleTypeID    string
	SupplierPartyID      *string
	ContactMechID        string
	ShippingEstimate     decimal.Decimal
	ItemQuantities       map[string]decimal.Decimal
}

// PaymentPreference describes how (part of) the order will be paid.
type PaymentPreference struct {
	PreferenceID string
	MethodType   enums.PaymentMethodType
	MaxAmount    decimal.Decimal
	StatusID     enums.PaymentStatus
}

// Adjustment is a cart-side monetary modifier not yet bound to an order.
type Adjustment struct {
	AdjustmentID   string
	ItemSeqID      string
	ShipGroupSeqID string
	Type           enums.AdjustmentType
	Amount         decimal.Decimal
	Description    string
	IsManual       bool
	PromoID        *string
}

// PromoUse is one accrued application of a promotion against this cart.
type PromoUse struct {
	PromoID       string
	PromoCodeID   string
	SequenceID    string
	TotalDiscount decimal.Decimal
	QuantityLeft  decimal.Decimal
}

// ShipGroupCount returns how many ship groups the cart currently holds.
func (c *Cart) ShipGroupCount() int {
	return len(c.ShipGroups)
}

// SetShipGroupEstimate stores the computed shipping estimate on the group at
// index. Out-of-range indexes are ignored.
func (c *Cart) SetShipGroupEstimate(index int, amount decimal.Decimal) {
	if index < 0 || index >= len(c.ShipGroups) {
		return
	}
	c.ShipGroups[index].ShippingEstimate = amount
}

// ClearPromotionAdjustments drops every accrued promotion adjustment and
// promo-use record so promotion discovery can rebuild them from scratch.
func (c *Cart) ClearPromotionAdjustments() {
	kept := c.Adjustments[:0]
	for _, adj := range c.Adjustments {
		if adj.Type == enums.AdjustmentPromotion && !adj.IsManual {
			continue
		}
		kept = append(kept, adj)
	}
	c.Adjustments = kept
	c.PromoUses = nil
}

// GrandTotal sums item totals and order-level adjustments.
func (c *Cart) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}
	for _, adj := range c.Adjustments {
		total = total.Add(adj.Amount)
	}
	return total
}

// MakeOrderItems materializes the cart lines as order item records. The
// owning order id is stamped later by the caller.
func (c *Cart) MakeOrderItems() []*models.OrderItem {
	items := make([]*models.OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, &models.OrderItem{
			ItemSeqID:       line.ItemSeqID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			ItemDescription: line.Description,
			Comments:        line.Comments,
			IsPromo:         line.IsPromo,
			StatusID:        enums.ItemStatusCreated,
		})
	}
	return items
}

// MakeAllAdjustments materializes every accrued cart adjustment.
func (c *Cart) MakeAllAdjustments() []*models.OrderAdjustment {
	adjustments := make([]*models.OrderAdjustment, 0, len(c.Adjustments))
	for _, adj := range c.Adjustments {
		adjustments = append(adjustments, &models.OrderAdjustment{
			AdjustmentID:   adj.AdjustmentID,
			ItemSeqID:      adj.ItemSeqID,
			ShipGroupSeqID: adj.ShipGroupSeqID,
			AdjustmentType: adj.Type,
			Amount:         adj.Amount,
			Description:    adj.Description,
			IsManual:       adj.IsManual,
			PromoID:        adj.PromoID,
		})
	}
	return adjustments
}

// MakeShipGroupRecords materializes ship groups and their item associations.
func (c *Cart) MakeShipGroupRecords() ([]*models.OrderShipGroup, []*models.OrderShipGroupAssoc) {
	groups := make([]*models.OrderShipGroup, 0, len(c.ShipGroups))
	assocs := make([]*models.OrderShipGroupAssoc, 0)
	for _, group := range c.ShipGroups {
		groups = append(groups, &models.OrderShipGroup{
			ShipGroupSeqID:       group.ShipGroupSeqID,
			ShipmentMethodTypeID: group.ShipmentMethodTypeID,
			CarrierPartyID:       group.CarrierPartyID,
			CarrierRoleTypeID:    group.CarrierRoleTypeID,
			SupplierPartyID:      group.SupplierPartyID,
			ShippingEstimate:     group.ShippingEstimate,
			ContactMechID:        group.ContactMechID,
		})
		for _, line := range c.Items {
			qty, ok := group.ItemQuantities[line.ItemSeqID]
			if !ok || qty.IsZero() {
				continue
			}
			assocs = append(assocs, &models.OrderShipGroupAssoc{
				ShipGroupSeqID: group.ShipGroupSeqID,
				ItemSeqID:      line.ItemSeqID,
				Quantity:       qty,
			})
		}
	}
	return groups, assocs
}

// MakePaymentRecords materializes the configured payment preferences.
func (c *Cart) MakePaymentRecords() []*models.OrderPaymentPreference {
	prefs := make([]*models.OrderPaymentPreference, 0, len(c.PaymentPrefs))
	for _, pref := range c.PaymentPrefs {
		prefs = append(prefs, &models.OrderPaymentPreference{
			PreferenceID: pref.PreferenceID,
			MethodType:   pref.MethodType,
			MaxAmount:    pref.MaxAmount,
			StatusID:     pref.StatusID,
		})
	}
	return prefs
}

// AttributeFilter selects which item attributes MakeItemAttributes returns.
type AttributeFilter int

const (
	// FilledOnly keeps attributes with a non-empty value.
	FilledOnly AttributeFilter = iota
	// EmptyOnly keeps attributes the user cleared to an empty value.
	EmptyOnly
)

// MakeItemAttributes materializes item attributes matching the filter.
// Cleared attributes (empty value) are destined for the removal batch rather
// than the store batch.
func (c *Cart) MakeItemAttributes(filter AttributeFilter) []*models.OrderItemAttribute {
	var attrs []*models.OrderItemAttribute
	for _, line := range c.Items {
		for name, value := range line.Attributes {
			filled := value != ""
			if (filter == FilledOnly) != filled {
				continue
			}
			attrs = append(attrs, &models.OrderItemAttribute{
				ItemSeqID: line.ItemSeqID,
				Name:      name,
				Value:     value,
			})
		}
	}
	return attrs
}

// MakePromoCodes materializes the entered promotion codes.
func (c *Cart) MakePromoCodes() []*models.OrderPromoCode {
	codes := make([]*models.OrderPromoCode, 0, len(c.PromoCodes))
	for _, code := range c.PromoCodes {
		codes = append(codes, &models.OrderPromoCode{PromoCodeID: code})
	}
	return codes
}

// MakePromoUses materializes the accrued promotion uses.
func (c *Cart) MakePromoUses() []*models.OrderPromoUse {
	uses := make([]*models.OrderPromoUse, 0, len(c.PromoUses))
	for _, use := range c.PromoUses {
		uses = append(uses, &models.OrderPromoUse{
			PromoID:       use.PromoID,
			PromoCodeID:   use.PromoCodeID,
			SequenceID:    use.SequenceID,
			TotalDiscount: use.TotalDiscount,
			QuantityLeft:  use.QuantityLeft,
		})
	}
	return uses
}
