package reconcile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateovidal/ordersync-backend/api/responses"
	"github.com/mateovidal/ordersync-backend/api/validators"
	reconcilesvc "github.com/mateovidal/ordersync-backend/internal/reconcile"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

// Reconcile applies the submitted cart state to the persisted order.
func Reconcile(svc reconcilesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reconcile service unavailable"))
			return
		}

		orderID := chi.URLParam(r, "orderId")
		if orderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id required"))
			return
		}

		var payload ReconcileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := toReconcileInput(orderID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Reconcile(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"orderId": orderID,
			"status":  "reconciled",
		})
	}
}
