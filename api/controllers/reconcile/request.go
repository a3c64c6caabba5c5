package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/internal/cart"
	reconcilesvc "github.com/mateovidal/ordersync-backend/internal/reconcile"
	"github.com/mateovidal/ordersync-backend/pkg/enums"
	pkgerrors "github.com/mateovidal/ordersync-backend/pkg/errors"
)

// ReconcileRequest is the wire payload describing the desired order state.
type ReconcileRequest struct {
	UserID           string `json:"userId" validate:"required"`
	OrderType        string `json:"orderType" validate:"required"`
	ProductStoreID   string `json:"productStoreId" validate:"required"`
	BillingAccountID string `json:"billingAccountId,omitempty"`
	CalcTax          bool   `json:"calcTax"`
	DeleteItems      bool   `json:"deleteItems"`

	AppendReason  string            `json:"appendReason,omitempty"`
	AppendComment string            `json:"appendComment,omitempty"`
	ItemReasons   map[string]string `json:"itemReasons,omitempty"`

	Items              []ItemPayload              `json:"items" validate:"dive"`
	ShipGroups         []ShipGroupPayload         `json:"shipGroups" validate:"dive"`
	PaymentPreferences []PaymentPreferencePayload `json:"paymentPreferences" validate:"dive"`
	Adjustments        []AdjustmentPayload        `json:"adjustments" validate:"dive"`
	PromoCodes         []string                   `json:"promoCodes,omitempty"`
}

type ItemPayload struct {
	ItemSeqID   string            `json:"itemSeqId" validate:"required"`
	ProductID   string            `json:"productId" validate:"required"`
	Quantity    decimal.Decimal   `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unitPrice"`
	Description string            `json:"description,omitempty"`
	Comments    string            `json:"comments,omitempty"`
	IsPromo     bool              `json:"isPromo"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type ShipGroupPayload struct {
	ShipGroupSeqID       string                     `json:"shipGroupSeqId" validate:"required"`
	ShipmentMethodTypeID string                     `json:"shipmentMethodTypeId"`
	CarrierPartyID       string                     `json:"carrierPartyId,omitempty"`
	CarrierRoleTypeID    string                     `json:"carrierRoleTypeId,omitempty"`
	SupplierPartyID      *string                    `json:"supplierPartyId,omitempty"`
	ContactMechID        string                     `json:"contactMechId,omitempty"`
	ItemQuantities       map[string]decimal.Decimal `json:"itemQuantities,omitempty"`
}

type PaymentPreferencePayload struct {
	PreferenceID string          `json:"preferenceId,omitempty"`
	MethodType   string          `json:"methodType" validate:"required"`
	MaxAmount    decimal.Decimal `json:"maxAmount"`
	StatusID     string          `json:"statusId,omitempty"`
}

type AdjustmentPayload struct {
	AdjustmentID   string          `json:"adjustmentId,omitempty"`
	ItemSeqID      string          `json:"itemSeqId,omitempty"`
	ShipGroupSeqID string          `json:"shipGroupSeqId,omitempty"`
	Type           string          `json:"type" validate:"required"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description,omitempty"`
	IsManual       bool            `json:"isManual"`
	PromoID        *string         `json:"promoId,omitempty"`
}

func toReconcileInput(orderID string, payload ReconcileRequest) (reconcilesvc.Input, error) {
	orderType, err := enums.ParseOrderType(payload.OrderType)
	if err != nil {
		return reconcilesvc.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order type")
	}

	crt := &cart.Cart{
		OrderType:        orderType,
		ProductStoreID:   payload.ProductStoreID,
		BillingAccountID: payload.BillingAccountID,
		PromoCodes:       payload.PromoCodes,
	}

	for _, item := range payload.Items {
		if item.Quantity.IsNegative() {
			return reconcilesvc.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "item "+item.ItemSeqID+" has negative quantity")
		}
		crt.Items = append(crt.Items, cart.Item{
			ItemSeqID:   item.ItemSeqID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Description: item.Description,
			Comments:    item.Comments,
			IsPromo:     item.IsPromo,
			Attributes:  item.Attributes,
		})
	}

	for _, group := range payload.ShipGroups {
		crt.ShipGroups = append(crt.ShipGroups, cart.ShipGroup{
			ShipGroupSeqID:       group.ShipGroupSeqID,
			ShipmentMethodTypeID: group.ShipmentMethodTypeID,
			CarrierPartyID:       group.CarrierPartyID,
			CarrierRoleTypeID:    group.CarrierRoleTypeID,
			SupplierPartyID:      group.SupplierPartyID,
			ContactMechID:        group.ContactMechID,
			ItemQuantities:       group.ItemQuantities,
		})
	}

	for _, pref := range payload.PaymentPreferences {
		methodType, err := enums.ParsePaymentMethodType(pref.MethodType)
		if err != nil {
			return reconcilesvc.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method type")
		}
		var statusID enums.PaymentStatus
		if pref.StatusID != "" {
			statusID, err = enums.ParsePaymentStatus(pref.StatusID)
			if err != nil {
				return reconcilesvc.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status")
			}
		}
		crt.PaymentPrefs = append(crt.PaymentPrefs, cart.PaymentPreference{
			PreferenceID: pref.PreferenceID,
			MethodType:   methodType,
			MaxAmount:    pref.MaxAmount,
			StatusID:     statusID,
		})
	}

	for _, adj := range payload.Adjustments {
		adjType, err := enums.ParseAdjustmentType(adj.Type)
		if err != nil {
			return reconcilesvc.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid adjustment type")
		}
		crt.Adjustments = append(crt.Adjustments, cart.Adjustment{
			AdjustmentID:   adj.AdjustmentID,
			ItemSeqID:      adj.ItemSeqID,
			ShipGroupSeqID: adj.ShipGroupSeqID,
			Type:           adjType,
			Amount:         adj.Amount,
			Description:    adj.Description,
			IsManual:       adj.IsManual,
			PromoID:        adj.PromoID,
		})
	}

	return reconcilesvc.Input{
		OrderID: orderID,
		Cart:    crt,
		UserID:  payload.UserID,
		Changes: reconcilesvc.ChangeContext{
			ItemReasons:   payload.ItemReasons,
			AppendReason:  payload.AppendReason,
			AppendComment: payload.AppendComment,
		},
		CalcTax:     payload.CalcTax,
		DeleteItems: payload.DeleteItems,
	}, nil
}
