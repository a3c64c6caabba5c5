package reconcile

import (
	"testing"

	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

func adj(id string, kind enums.AdjustmentType, manual bool) *models.OrderAdjustment {
	return &models.OrderAdjustment{
		AdjustmentID:   id,
		AdjustmentType: kind,
		Amount:         dec("1.00"),
		IsManual:       manual,
	}
}

func TestDeleteModeAdmitsEverything(t *testing.T) {
	staged := []*models.OrderAdjustment{
		adj("", enums.AdjustmentShippingCharges, false),
		adj("", enums.AdjustmentSalesTax, false),
		adj("", enums.AdjustmentPromotion, false),
		adj("", enums.AdjustmentFee, false),
		adj("ADJ-1", enums.AdjustmentShippingCharges, true),
	}

	kept := reconcileAdjustments(staged, true)
	if len(kept) != len(staged) {
		t.Fatalf("delete mode must admit all %d adjustments, kept %d", len(staged), len(kept))
	}
}

func TestPartialModeStripsSupersededCarryOvers(t *testing.T) {
	staged := []*models.OrderAdjustment{
		adj("ADJ-1", enums.AdjustmentShippingCharges, false),
		adj("ADJ-2", enums.AdjustmentSalesTax, false),
		adj("ADJ-3", enums.AdjustmentFee, true),
		adj("ADJ-4", enums.AdjustmentFee, false),
		adj("ADJ-5", enums.AdjustmentPromotion, false),
	}

	kept := reconcileAdjustments(staged, false)
	if len(kept) != 2 {
		t.Fatalf("expected 2 surviving carry-overs, got %d", len(kept))
	}
	if kept[0].AdjustmentID != "ADJ-4" || kept[1].AdjustmentID != "ADJ-5" {
		t.Fatalf("unexpected survivors %s, %s", kept[0].AdjustmentID, kept[1].AdjustmentID)
	}
}

func TestPartialModeKeepsFreshComputedAdjustments(t *testing.T) {
	staged := []*models.OrderAdjustment{
		adj("", enums.AdjustmentShippingCharges, false),
		adj("", enums.AdjustmentSalesTax, false),
		adj("", enums.AdjustmentPromotion, false),
		adj("", enums.AdjustmentFee, false),
	}

	kept := reconcileAdjustments(staged, false)
	if len(kept) != len(staged) {
		t.Fatalf("fresh non-manual adjustments must all store, kept %d of %d", len(kept), len(staged))
	}
}

func TestPartialModeManualAdmission(t *testing.T) {
	staged := []*models.OrderAdjustment{
		adj("", enums.AdjustmentPromotion, true),
		adj("", enums.AdjustmentShippingCharges, true),
		adj("", enums.AdjustmentSalesTax, true),
		adj("", enums.AdjustmentFee, true),
		adj("ADJ-1", enums.AdjustmentPromotion, true),
		adj("ADJ-2", enums.AdjustmentShippingCharges, true),
		adj("ADJ-3", enums.AdjustmentFee, true),
	}

	kept := reconcileAdjustments(staged, false)
	if len(kept) != 5 {
		t.Fatalf("expected 5 re-applied manual adjustments, got %d", len(kept))
	}
	for _, adj := range kept {
		if adj.AdjustmentType == enums.AdjustmentFee {
			t.Fatalf("manual fee must not be re-applied in partial mode")
		}
	}
	if kept[3].AdjustmentID != "ADJ-1" || kept[4].AdjustmentID != "ADJ-2" {
		t.Fatalf("carried manual promo/shipping rows must survive, got %s, %s", kept[3].AdjustmentID, kept[4].AdjustmentID)
	}
}
