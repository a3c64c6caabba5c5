package reconcile

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
)

// reserveInventory rebuilds the reservation inputs from the just-stored
// write set and invokes the reserver. Both raised errors and collected soft
// warnings are fatal: persistence has already happened, but the caller must
// learn reservation did not.
func (s *service) reserveInventory(ctx context.Context, input Input, ws *writeSet) error {
	reservation := ReservationInput{
		OrderID:        input.OrderID,
		OrderType:      input.Cart.OrderType,
		ProductStoreID: input.Cart.ProductStoreID,
		Associations:   ws.storedAssociations(),
		DropShipGroups: ws.dropShipGroups,
		ItemsBySeqID:   ws.storedItemsBySeqID(),
	}

	warnings, err := s.reserver.Reserve(ctx, reservation)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserving inventory")
	}
	if len(warnings) == 0 {
		return nil
	}

	var combined error
	for _, warning := range warnings {
		combined = multierr.Append(combined, errors.New(warning))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "inventory reservation reported errors")
}
