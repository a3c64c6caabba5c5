package models

import "github.com/mateovidal/ordersync-backend/pkg/enums"

// SeqIDNotApplicable is the sentinel item-sequence reference for order-level
// adjustments that are not tied to a single item.
const SeqIDNotApplicable = "_NA_"

// CarrierRoleDefault is assigned to ship groups that arrive without an
// explicit carrier role.
const CarrierRoleDefault = "CARRIER"

// Record is implemented by every persisted order-aggregate entity the
// reconciliation engine stores or removes. The implementing set is closed;
// dispatch sites type-switch exhaustively over it instead of comparing
// string tags.
type Record interface {
	Kind() enums.EntityKind
	SetOrderID(orderID string)
}
