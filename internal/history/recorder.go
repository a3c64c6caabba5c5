package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

// Recorder appends item-change audit rows. Rows are append-only: nothing in
// the system updates or deletes them outside a full item replacement.
type Recorder struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewRecorder builds a Recorder bound to the provided DB.
func NewRecorder(db *gorm.DB, logg *logger.Logger) *Recorder {
	return &Recorder{db: db, logg: logg}
}

// RecordItemChange persists one audit row, minting the change id and
// timestamp when the caller did not.
func (r *Recorder) RecordItemChange(ctx context.Context, change models.OrderItemChange) error {
	if change.OrderID == "" || change.ItemSeqID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "change record requires order and item ids")
	}
	if change.ChangeID == "" {
		change.ChangeID = uuid.NewString()
	}
	if change.ChangedAt.IsZero() {
		change.ChangedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(&change).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting item change")
	}
	if r.logg != nil {
		r.logg.Info(ctx, "recorded "+change.ChangeType.String()+" for item "+change.ItemSeqID)
	}
	return nil
}
