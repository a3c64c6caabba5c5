package outbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	ddl := `CREATE TABLE outbox_events (
		id TEXT PRIMARY KEY,
		event_type TEXT NOT NULL,
		aggregate_type TEXT NOT NULL,
		aggregate_id TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME,
		published_at DATETIME,
		attempt_count INTEGER NOT NULL DEFAULT 0,
		last_error TEXT
	)`
	if err := conn.Exec(ddl).Error; err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return conn
}

func TestEmitStoresEnvelope(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), nil)

	event := DomainEvent{
		EventType:     enums.EventOrderReconciled,
		AggregateType: enums.AggregateOrder,
		AggregateID:   "DEMO10090",
		Actor:         &ActorRef{UserID: "admin"},
		Data:          map[string]any{"itemCount": 3},
		Version:       1,
	}

	tx := db.Begin()
	if err := svc.Emit(context.Background(), tx, event); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	rows, err := NewRepository(db).FetchUnpublished(10)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 unpublished event, got %d", len(rows))
	}
	row := rows[0]
	if row.AggregateID != "DEMO10090" {
		t.Fatalf("unexpected aggregate id %s", row.AggregateID)
	}
	if row.EventType != enums.EventOrderReconciled {
		t.Fatalf("unexpected event type %s", row.EventType)
	}

	var envelope PayloadEnvelope
	if err := json.Unmarshal(row.Payload, &envelope); err != nil {
		t.Fatalf("payload is not a valid envelope: %v", err)
	}
	if envelope.Version != 1 {
		t.Fatalf("unexpected envelope version %d", envelope.Version)
	}
	if envelope.EventID == "" {
		t.Fatal("expected event id to be assigned")
	}
	if envelope.Actor == nil || envelope.Actor.UserID != "admin" {
		t.Fatalf("unexpected actor %+v", envelope.Actor)
	}
}

func TestMarkPublishedAndFailed(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	published := models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.EventOrderReconciled,
		AggregateType: enums.AggregateOrder,
		AggregateID:   "DEMO10090",
		Payload:       json.RawMessage(`{}`),
	}
	failed := models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.EventInventoryReserved,
		AggregateType: enums.AggregateInventory,
		AggregateID:   "GZ-2644",
		Payload:       json.RawMessage(`{}`),
	}

	tx := db.Begin()
	for _, event := range []models.OutboxEvent{published, failed} {
		if err := repo.Insert(tx, event); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if err := repo.MarkPublished(published.ID); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}
	if err := repo.MarkFailed(failed.ID, context.DeadlineExceeded); err != nil {
		t.Fatalf("mark failed failed: %v", err)
	}

	rows, err := repo.FetchUnpublished(10)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 unpublished event, got %d", len(rows))
	}
	if rows[0].ID != failed.ID {
		t.Fatalf("expected the failed event to remain unpublished")
	}
	if rows[0].AttemptCount != 1 {
		t.Fatalf("expected attempt count 1, got %d", rows[0].AttemptCount)
	}
	if rows[0].LastError == nil || *rows[0].LastError == "" {
		t.Fatal("expected last error to be recorded")
	}
}

func TestEmitRequiresTransaction(t *testing.T) {
	svc := NewService(NewRepository(nil), nil)
	if err := svc.Emit(context.Background(), nil, DomainEvent{}); err == nil {
		t.Fatal("expected error without transaction")
	}
}
