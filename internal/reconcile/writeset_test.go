package reconcile

import (
	"fmt"
	"testing"
	"time"

	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

func seqCounter() func(kind enums.EntityKind) string {
	n := 0
	return func(kind enums.EntityKind) string {
		n++
		return fmt.Sprintf("%s-%d", kind, n)
	}
}

func TestNormalizeStampsOrderIDAndDefaults(t *testing.T) {
	supplier := "SUPPLIER-1"
	ws := newWriteSet()
	ws.store(
		&models.OrderShipGroup{ShipGroupSeqID: "00001"},
		&models.OrderShipGroup{ShipGroupSeqID: "00002", SupplierPartyID: &supplier},
		&models.OrderAdjustment{AdjustmentType: enums.AdjustmentShippingCharges},
		&models.OrderAdjustment{AdjustmentID: "ADJ-KEPT", AdjustmentType: enums.AdjustmentSalesTax, ItemSeqID: "00001"},
		&models.OrderPaymentPreference{},
	)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ws.normalize("DEMO10090", "admin", now, seqCounter())

	group := ws.toStore[0].(*models.OrderShipGroup)
	if group.OrderID != "DEMO10090" {
		t.Fatalf("record not stamped: %+v", group)
	}
	if group.CarrierRoleTypeID != models.CarrierRoleDefault {
		t.Fatalf("missing carrier role default, got %q", group.CarrierRoleTypeID)
	}
	if _, ok := ws.dropShipGroups["00002"]; !ok {
		t.Fatalf("expected drop-ship marker, got %v", ws.dropShipGroups)
	}
	if _, ok := ws.dropShipGroups["00001"]; ok {
		t.Fatal("group without supplier must not be drop-ship")
	}

	fresh := ws.toStore[2].(*models.OrderAdjustment)
	if fresh.OrderID != "DEMO10090" {
		t.Fatalf("record not stamped: %+v", fresh)
	}
	if fresh.AdjustmentID == "" || fresh.CreatedBy != "admin" || !fresh.CreatedAt.Equal(now) {
		t.Fatalf("fresh adjustment not keyed: %+v", fresh)
	}
	if fresh.ItemSeqID != models.SeqIDNotApplicable {
		t.Fatalf("order-level adjustment must carry the sentinel, got %q", fresh.ItemSeqID)
	}

	kept := ws.toStore[3].(*models.OrderAdjustment)
	if kept.AdjustmentID != "ADJ-KEPT" {
		t.Fatalf("carry-over adjustment must keep its identity: %+v", kept)
	}
	if kept.CreatedBy != "admin" || !kept.CreatedAt.Equal(now) {
		t.Fatalf("carry-over adjustment must be re-stamped before the upsert: %+v", kept)
	}
	if kept.ItemSeqID != "00001" {
		t.Fatalf("item-level sentinel wrongly applied: %q", kept.ItemSeqID)
	}

	pref := ws.toStore[4].(*models.OrderPaymentPreference)
	if pref.PreferenceID == "" || pref.StatusID != enums.PaymentStatusNotReceived {
		t.Fatalf("payment preference not defaulted: %+v", pref)
	}
}
