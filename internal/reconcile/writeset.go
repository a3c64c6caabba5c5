package reconcile

import (
	"time"

	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// writeSet accumulates everything one reconciliation will persist. It is
// created by the builder, threaded explicitly through each stage, and
// consumed exactly once by the persistence step. Nothing in it outlives the
// call.
type writeSet struct {
	toStore  []models.Record
	toRemove []models.Record

	// changes holds the audit records the change detector produced.
	changes []models.OrderItemChange

	// newItems lists items absent from the persisted order, including
	// promotion-generated items that bypass the detector. Each gets an
	// item-status record after the store batch.
	newItems []*models.OrderItem

	// dropShipGroups collects ship-group seq ids with a supplier party set;
	// inventory reservation skips them.
	dropShipGroups map[string]struct{}
}

func newWriteSet() *writeSet {
	return &writeSet{dropShipGroups: make(map[string]struct{})}
}

func (w *writeSet) store(records ...models.Record) {
	w.toStore = append(w.toStore, records...)
}

func (w *writeSet) remove(records ...models.Record) {
	w.toRemove = append(w.toRemove, records...)
}

// normalize stamps the owning order id on every staged record and applies
// the per-kind defaulting rules before the set leaves the builder. The type
// switch is exhaustive over the closed Record set; kinds without defaults
// fall through deliberately.
func (w *writeSet) normalize(orderID, userID string, now time.Time, nextSeqID func(kind enums.EntityKind) string) {
	for _, rec := range w.toStore {
		rec.SetOrderID(orderID)

		switch rec := rec.(type) {
		case *models.OrderShipGroup:
			if rec.CarrierRoleTypeID == "" {
				rec.CarrierRoleTypeID = models.CarrierRoleDefault
			}
			if rec.SupplierPartyID != nil && *rec.SupplierPartyID != "" {
				w.dropShipGroups[rec.ShipGroupSeqID] = struct{}{}
			}
		case *models.OrderAdjustment:
			if rec.ItemSeqID == "" {
				rec.ItemSeqID = models.SeqIDNotApplicable
			}
			// an adjustment that already owns an id is never re-keyed
			if rec.AdjustmentID == "" {
				rec.AdjustmentID = nextSeqID(enums.KindOrderAdjustment)
			}
			// carried rows are re-stamped too; the store path upserts the
			// full row and must never carry zero audit columns
			rec.CreatedBy = userID
			rec.CreatedAt = now
		case *models.OrderPaymentPreference:
			if rec.PreferenceID == "" {
				rec.PreferenceID = nextSeqID(enums.KindOrderPaymentPreference)
				rec.CreatedBy = userID
				rec.CreatedAt = now
			}
			if rec.StatusID == "" {
				rec.StatusID = enums.PaymentStatusNotReceived
			}
		case *models.OrderHeader, *models.OrderItem, *models.OrderShipGroupAssoc,
			*models.OrderItemAttribute, *models.OrderPromoCode, *models.OrderPromoUse,
			*models.OrderItemChange, *models.OrderStatusRecord:
		}
	}
}

// storedItemsBySeqID rebuilds the reservation lookup from the staged store
// set, not from a storage re-read.
func (w *writeSet) storedItemsBySeqID() map[string]*models.OrderItem {
	items := make(map[string]*models.OrderItem)
	for _, rec := range w.toStore {
		if item, ok := rec.(*models.OrderItem); ok {
			items[item.ItemSeqID] = item
		}
	}
	return items
}

// storedAssociations collects the staged ship-group association records.
func (w *writeSet) storedAssociations() []*models.OrderShipGroupAssoc {
	var assocs []*models.OrderShipGroupAssoc
	for _, rec := range w.toStore {
		if assoc, ok := rec.(*models.OrderShipGroupAssoc); ok {
			assocs = append(assocs, assoc)
		}
	}
	return assocs
}
