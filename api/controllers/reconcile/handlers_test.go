package reconcile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	reconcilesvc "github.com/mateovidal/ordersync-backend/internal/reconcile"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
	"github.com/mateovidal/ordersync-backend/pkg/logger"
)

type stubReconcileService struct {
	input reconcilesvc.Input
	err   error
	calls int
}

func (s *stubReconcileService) Reconcile(ctx context.Context, input reconcilesvc.Input) error {
	s.calls++
	s.input = input
	return s.err
}

func newTestRouter(svc reconcilesvc.Service) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test"})
	r := chi.NewRouter()
	r.Post("/api/v1/orders/{orderId}/reconcile", Reconcile(svc, logg))
	return r
}

const validBody = `{
	"userId": "admin",
	"orderType": "sales_order",
	"productStoreId": "STORE-9000",
	"calcTax": true,
	"items": [
		{"itemSeqId": "00001", "productId": "GZ-2644", "quantity": "3", "unitPrice": "10.00"}
	],
	"shipGroups": [
		{"shipGroupSeqId": "00001", "shipmentMethodTypeId": "GROUND", "carrierPartyId": "UPS",
		 "itemQuantities": {"00001": "3"}}
	],
	"paymentPreferences": [
		{"methodType": "credit_card", "maxAmount": "50.00"}
	],
	"promoCodes": ["SUMMER10"]
}`

func TestReconcileHandlerMapsPayload(t *testing.T) {
	svc := &stubReconcileService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/DEMO10090/reconcile", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.calls != 1 {
		t.Fatalf("expected one service call, got %d", svc.calls)
	}

	input := svc.input
	if input.OrderID != "DEMO10090" || input.UserID != "admin" {
		t.Fatalf("unexpected input identifiers %+v", input)
	}
	if !input.CalcTax || input.DeleteItems {
		t.Fatalf("unexpected flags %+v", input)
	}
	if len(input.Cart.Items) != 1 || input.Cart.Items[0].ProductID != "GZ-2644" {
		t.Fatalf("cart items not mapped: %+v", input.Cart.Items)
	}
	if !input.Cart.Items[0].Quantity.Equal(input.Cart.ShipGroups[0].ItemQuantities["00001"]) {
		t.Fatal("quantities not mapped consistently")
	}
	if len(input.Cart.PromoCodes) != 1 || input.Cart.PromoCodes[0] != "SUMMER10" {
		t.Fatalf("promo codes not mapped: %v", input.Cart.PromoCodes)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data["status"] != "reconciled" {
		t.Fatalf("unexpected response %+v", envelope)
	}
}

func TestReconcileHandlerRejectsBadOrderType(t *testing.T) {
	svc := &stubReconcileService{}
	router := newTestRouter(svc)

	body := strings.Replace(validBody, "sales_order", "mystery_order", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/DEMO10090/reconcile", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.calls != 0 {
		t.Fatal("service must not run on invalid payload")
	}
}

func TestReconcileHandlerRejectsMissingUser(t *testing.T) {
	svc := &stubReconcileService{}
	router := newTestRouter(svc)

	body := strings.Replace(validBody, `"userId": "admin",`, "", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/DEMO10090/reconcile", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReconcileHandlerPropagatesConflict(t *testing.T) {
	svc := &stubReconcileService{err: pkgerrors.New(pkgerrors.CodeConflict, "another reconciliation holds this order")}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/DEMO10090/reconcile", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
