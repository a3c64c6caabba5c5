package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mateovidal/ordersync-backend/internal/reconcile"
	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	ddl := `CREATE TABLE inventory_items (
		product_id TEXT NOT NULL,
		product_store_id TEXT NOT NULL,
		available_qty NUMERIC NOT NULL DEFAULT 0,
		reserved_qty NUMERIC NOT NULL DEFAULT 0,
		updated_at DATETIME,
		PRIMARY KEY (product_id, product_store_id)
	)`
	if err := conn.Exec(ddl).Error; err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return conn
}

func newReserver(t *testing.T, conn *gorm.DB) *Reserver {
	t.Helper()
	return NewReserver(conn, logger.New(logger.Options{ServiceName: "test"}))
}

func reservationInput() reconcile.ReservationInput {
	return reconcile.ReservationInput{
		OrderID:        "DEMO10090",
		OrderType:      enums.OrderTypeSales,
		ProductStoreID: "STORE-9000",
		Associations: []*models.OrderShipGroupAssoc{
			{OrderID: "DEMO10090", ShipGroupSeqID: "00001", ItemSeqID: "00001", Quantity: dec("3")},
		},
		DropShipGroups: map[string]struct{}{},
		ItemsBySeqID: map[string]*models.OrderItem{
			"00001": {OrderID: "DEMO10090", ItemSeqID: "00001", ProductID: "GZ-2644"},
		},
	}
}

func loadInventory(t *testing.T, conn *gorm.DB, productID string) models.InventoryItem {
	t.Helper()
	var inv models.InventoryItem
	err := conn.Where("product_id = ? AND product_store_id = ?", productID, "STORE-9000").First(&inv).Error
	if err != nil {
		t.Fatalf("loading inventory: %v", err)
	}
	return inv
}

func TestReserveMovesStock(t *testing.T) {
	conn := newTestDB(t)
	err := conn.Create(&models.InventoryItem{
		ProductID: "GZ-2644", ProductStoreID: "STORE-9000", AvailableQty: dec("10"),
	}).Error
	if err != nil {
		t.Fatalf("seeding inventory: %v", err)
	}

	warnings, err := newReserver(t, conn).Reserve(context.Background(), reservationInput())
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}

	inv := loadInventory(t, conn, "GZ-2644")
	if !inv.AvailableQty.Equal(dec("7")) || !inv.ReservedQty.Equal(dec("3")) {
		t.Fatalf("unexpected stock after reserve: available %s reserved %s", inv.AvailableQty, inv.ReservedQty)
	}
}

func TestReserveShortfallWarnsAndReservesRemainder(t *testing.T) {
	conn := newTestDB(t)
	err := conn.Create(&models.InventoryItem{
		ProductID: "GZ-2644", ProductStoreID: "STORE-9000", AvailableQty: dec("2"),
	}).Error
	if err != nil {
		t.Fatalf("seeding inventory: %v", err)
	}

	warnings, err := newReserver(t, conn).Reserve(context.Background(), reservationInput())
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "short by 1") {
		t.Fatalf("expected shortfall warning, got %v", warnings)
	}

	inv := loadInventory(t, conn, "GZ-2644")
	if !inv.AvailableQty.IsZero() || !inv.ReservedQty.Equal(dec("2")) {
		t.Fatalf("unexpected stock after shortfall: available %s reserved %s", inv.AvailableQty, inv.ReservedQty)
	}
}

func TestReserveMissingInventoryWarns(t *testing.T) {
	conn := newTestDB(t)

	warnings, err := newReserver(t, conn).Reserve(context.Background(), reservationInput())
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "no inventory") {
		t.Fatalf("expected missing-inventory warning, got %v", warnings)
	}
}

func TestReserveSkipsDropShipGroups(t *testing.T) {
	conn := newTestDB(t)
	err := conn.Create(&models.InventoryItem{
		ProductID: "GZ-2644", ProductStoreID: "STORE-9000", AvailableQty: dec("10"),
	}).Error
	if err != nil {
		t.Fatalf("seeding inventory: %v", err)
	}

	input := reservationInput()
	input.DropShipGroups["00001"] = struct{}{}

	warnings, err := newReserver(t, conn).Reserve(context.Background(), input)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("drop-ship reserve failed: %v %v", err, warnings)
	}

	inv := loadInventory(t, conn, "GZ-2644")
	if !inv.AvailableQty.Equal(dec("10")) || !inv.ReservedQty.IsZero() {
		t.Fatalf("drop-ship group must not touch stock: available %s reserved %s", inv.AvailableQty, inv.ReservedQty)
	}
}

func TestReserveSkipsPurchaseOrders(t *testing.T) {
	conn := newTestDB(t)

	input := reservationInput()
	input.OrderType = enums.OrderTypePurchase

	warnings, err := newReserver(t, conn).Reserve(context.Background(), input)
	if err != nil || warnings != nil {
		t.Fatalf("purchase order must reserve nothing, got %v %v", err, warnings)
	}
}
