package payloads

// OrderReconciledEvent is published after a cart has been reconciled into
// its stored order records.
type OrderReconciledEvent struct {
	OrderID     string `json:"orderId"`
	ItemChanges int    `json:"itemChanges"`
}

// OrderItemsReplacedEvent reports a destructive reconciliation that removed
// and re-created the order item set.
type OrderItemsReplacedEvent struct {
	OrderID    string   `json:"orderId"`
	ItemSeqIDs []string `json:"itemSeqIds"`
}

// InventoryReservedEvent surfaces the stock allocations made for an order.
type InventoryReservedEvent struct {
	OrderID  string         `json:"orderId"`
	Reserved []ReservedItem `json:"reserved"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ReservedItem is one product-level allocation inside InventoryReservedEvent.
type ReservedItem struct {
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

// NotificationRequestedEvent asks downstream channels to alert an order owner.
type NotificationRequestedEvent struct {
	OrderID string `json:"orderId"`
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}
