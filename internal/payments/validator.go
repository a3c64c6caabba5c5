package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/internal/cart"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

// Validator checks the cart's payment preferences before they are staged.
type Validator struct {
	logg *logger.Logger
}

// NewValidator builds a payment Validator.
func NewValidator(logg *logger.Logger) *Validator {
	return &Validator{logg: logg}
}

// ValidatePaymentMethods rejects malformed preferences and, for sales
// orders, requires the combined max amounts to cover the grand total.
func (v *Validator) ValidatePaymentMethods(ctx context.Context, crt *cart.Cart) error {
	covered := decimal.Zero
	for i, pref := range crt.PaymentPrefs {
		if !pref.MethodType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("payment preference %d: unknown method type %q", i, pref.MethodType))
		}
		if pref.MaxAmount.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("payment preference %d: negative max amount %s", i, pref.MaxAmount))
		}
		covered = covered.Add(pref.MaxAmount)
	}

	if crt.OrderType != enums.OrderTypeSales {
		return nil
	}
	if len(crt.PaymentPrefs) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "sales order requires at least one payment preference")
	}
	if total := crt.GrandTotal(); covered.LessThan(total) {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("payment preferences cover %s of grand total %s", covered, total))
	}
	return nil
}
