package reconcile

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/internal/cart"
	"github.com/mateovidal/ordersync-backend/pkg/db/models"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// ShippingEstimator computes the shipping cost for the cart's ship group at
// groupIndex.
type ShippingEstimator interface {
	EstimateShipping(ctx context.Context, c *cart.Cart, groupIndex int) (decimal.Decimal, error)
}

// TaxCalculator appends sales-tax adjustments to the cart.
type TaxCalculator interface {
	CalculateTax(ctx context.Context, c *cart.Cart) error
}

// PromotionEngine recomputes promotion adjustments and uses on the cart from
// its entered codes. Lookup failures leave the cart without promotion state
// instead of failing the reconciliation.
type PromotionEngine interface {
	DiscoverPromotions(ctx context.Context, c *cart.Cart)
}

// PaymentValidator checks the cart's configured payment preferences.
type PaymentValidator interface {
	ValidatePaymentMethods(ctx context.Context, c *cart.Cart) error
}

// Storage is the persistence port for the order aggregate. StoreAll upserts;
// RemoveAll deletes. Each batch is internally consistent but the pair is not
// one transaction at this layer.
type Storage interface {
	FindOrderHeader(ctx context.Context, orderID string) (*models.OrderHeader, error)
	ListForOrder(ctx context.Context, kind enums.EntityKind, orderID string) ([]models.Record, error)
	RemoveAll(ctx context.Context, records []models.Record) error
	StoreAll(ctx context.Context, records []models.Record) error
	NextSeqID(kind enums.EntityKind) string
}

// ChangeRecorder persists one item-change audit record.
type ChangeRecorder interface {
	RecordItemChange(ctx context.Context, change models.OrderItemChange) error
}

// ReservationInput carries everything the inventory reserver needs after
// persistence completed.
type ReservationInput struct {
	OrderID        string
	OrderType      enums.OrderType
	ProductStoreID string
	Associations   []*models.OrderShipGroupAssoc
	DropShipGroups map[string]struct{}
	ItemsBySeqID   map[string]*models.OrderItem
}

// InventoryReserver allocates stock for the stored associations. Soft
// problems (such as insufficient stock) come back as warnings; both warnings
// and a returned error abort the reconciliation.
type InventoryReserver interface {
	Reserve(ctx context.Context, input ReservationInput) (warnings []string, err error)
}

type lockClient interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(scope, id string) string
}

type eventEmitter interface {
	EmitReconciled(ctx context.Context, orderID, userID string, itemChanges int) error
}
