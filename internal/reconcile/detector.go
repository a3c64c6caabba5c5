package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// ChangeContext supplies the caller's audit annotations. ItemReasons is keyed
// by item sequence id and applies to updated items; AppendReason and
// AppendComment apply to the whole append batch, not per item.
type ChangeContext struct {
	ItemReasons   map[string]string
	AppendReason  string
	AppendComment string
}

// detectItemChange compares a persisted item against its cart-derived
// candidate and returns nil when nothing relevant changed. Quantity and unit
// price carry the delta (new minus old) on updates and the absolute quantity
// on appends. Comparison is exact decimal, no epsilon.
func detectItemChange(existing, candidate *models.OrderItem, changes ChangeContext) *models.OrderItemChange {
	if existing == nil {
		change := &models.OrderItemChange{
			ItemSeqID:  candidate.ItemSeqID,
			ChangeType: enums.ItemChangeAppend,
		}
		qty := candidate.Quantity
		change.Quantity = &qty
		if changes.AppendReason != "" {
			reason := changes.AppendReason
			change.ReasonID = &reason
		}
		if changes.AppendComment != "" {
			comment := changes.AppendComment
			change.ChangeComments = &comment
		}
		return change
	}

	qtyDelta := candidate.Quantity.Sub(existing.Quantity)
	priceDelta := candidate.UnitPrice.Sub(existing.UnitPrice)
	descChanged := candidate.ItemDescription != existing.ItemDescription
	commentsChanged := candidate.Comments != existing.Comments

	if qtyDelta.IsZero() && priceDelta.IsZero() && !descChanged && !commentsChanged {
		return nil
	}

	change := &models.OrderItemChange{
		ItemSeqID:  candidate.ItemSeqID,
		ChangeType: enums.ItemChangeUpdate,
	}
	change.Quantity = decPtr(qtyDelta)
	change.UnitPrice = decPtr(priceDelta)
	if descChanged {
		desc := candidate.ItemDescription
		change.ItemDescription = &desc
	}
	if commentsChanged {
		comments := candidate.Comments
		change.ChangeComments = &comments
	}
	if reason, ok := changes.ItemReasons[candidate.ItemSeqID]; ok && reason != "" {
		r := reason
		change.ReasonID = &r
	}
	return change
}

func decPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
