package gateway

import (
	"github.com/shopspring/decimal"

	"github.com/shashidharbabu/aerive-client/pkg/enums"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

// LineItem is the normalized cart line sent when opening a checkout session.
type LineItem struct {
	ListingID   string             `json:"listingId"`
	ListingType enums.ListingType  `json:"listingType"`
	Variant     string             `json:"variant,omitempty"`
	Dates       types.VariantDates `json:"dates"`
	Quantity    int                `json:"quantity"`
	UnitPrice   decimal.Decimal    `json:"unitPrice"`
}

// OpenCheckoutRequest is the body for POST /api/checkout.
type OpenCheckoutRequest struct {
	UserID string     `json:"userId"`
	Items  []LineItem `json:"items"`
}

// OpenCheckoutResponse binds the server-issued session handle to the Pending
// bookings it opened.
type OpenCheckoutResponse struct {
	CheckoutID  string          `json:"checkoutId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Bookings    []types.Booking `json:"bookings"`
}

// CardData carries either a raw new card or a saved-card reference. Exactly
// one of the two shapes is populated; the CVV travels on both.
type CardData struct {
	CardNumber     string `json:"cardNumber,omitempty"`
	CardHolderName string `json:"cardHolderName,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
	CardID         string `json:"cardId,omitempty"`
	CVV            string `json:"cvv"`
	ZipCode        string `json:"zipCode"`
}

// PaymentRequest is the body for POST /api/billing/payment.
type PaymentRequest struct {
	CheckoutID    string              `json:"checkoutId"`
	UserID        string              `json:"userId"`
	BookingIDs    []string            `json:"bookingIds"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	CardData      CardData            `json:"cardData"`
}

// PaymentResult is the billing endpoint's response. A declined payment comes
// back with Success=false and a server reason rather than an HTTP error.
type PaymentResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Bills   []types.Bill `json:"bills,omitempty"`
}

type releaseRequest struct {
	BookingIDs []string `json:"bookingIds"`
}

// SaveCardRequest vaults a card. The CVV is deliberately absent: it is never
// persisted server-side.
type SaveCardRequest struct {
	CardNumber     string `json:"cardNumber"`
	CardHolderName string `json:"cardHolderName"`
	ExpiryDate     string `json:"expiryDate"`
	ZipCode        string `json:"zipCode"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
