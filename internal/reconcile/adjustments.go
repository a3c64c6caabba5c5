package reconcile

import (
	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// reconcileAdjustments decides which staged adjustments survive. Staged
// entries with an adjustment id are carried over from the persisted order;
// entries without one were freshly materialized this run.
//
// Partial-update mode: carried-over shipping and tax rows are superseded by
// the freshly computed estimates and tax, so they drop out of the store set
// (their persisted rows stay untouched). Manual rows are trusted only where
// a user plausibly intervened: manual promotion, shipping, and tax
// adjustments are re-applied whether carried or fresh; every other manual
// row is dropped. Fresh non-manual rows, including the shipping, tax, and
// promotion adjustments the collaborators just produced, always store.
//
// Delete mode admits the full staged list; the old items and their
// adjustments are being removed outright, so there is nothing to reconcile
// against.
func reconcileAdjustments(staged []*models.OrderAdjustment, deleteItems bool) []*models.OrderAdjustment {
	if deleteItems {
		return staged
	}

	kept := make([]*models.OrderAdjustment, 0, len(staged))
	for _, adj := range staged {
		if adj.IsManual {
			if isManualReapplied(adj) {
				kept = append(kept, adj)
			}
			continue
		}
		if adj.AdjustmentID != "" && isSupersededCarryOver(adj) {
			continue
		}
		kept = append(kept, adj)
	}
	return kept
}

func isSupersededCarryOver(adj *models.OrderAdjustment) bool {
	return adj.AdjustmentType == enums.AdjustmentShippingCharges ||
		adj.AdjustmentType == enums.AdjustmentSalesTax
}

func isManualReapplied(adj *models.OrderAdjustment) bool {
	switch adj.AdjustmentType {
	case enums.AdjustmentPromotion, enums.AdjustmentShippingCharges, enums.AdjustmentSalesTax:
		return true
	default:
		return false
	}
}
