package types

import (
	"github.com/shopspring/decimal"

	"github.com/shashidharbabu/aerive-client/pkg/enums"
)

// ListingSnapshot is the denormalized listing data embedded in each booking.
// The server owns it; the client treats it as an immutable value attachment.
type ListingSnapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
	Address string `json:"address,omitempty"`
}

// ProviderSnapshot is the denormalized host/provider data embedded in bookings.
type ProviderSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Booking mirrors the server booking entity for display.
type Booking struct {
	BookingID   string              `json:"bookingId"`
	ListingType enums.ListingType   `json:"listingType"`
	Status      enums.BookingStatus `json:"status"`
	Quantity    int                 `json:"quantity"`
	Total       decimal.Decimal     `json:"total"`
	Variant     string              `json:"variant,omitempty"`
	Dates       VariantDates        `json:"dates"`
	BillingID   string              `json:"billingId,omitempty"`
	Listing     ListingSnapshot     `json:"listing"`
	Provider    ProviderSnapshot    `json:"provider"`
}

// CheckoutSession is the server-issued handle binding a set of Pending
// bookings to a single forthcoming payment attempt.
type CheckoutSession struct {
	CheckoutID  string          `json:"checkoutId"`
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Bookings    []Booking       `json:"bookings"`
}

// BookingIDs lists the ids of the session's bookings in received order.
func (s CheckoutSession) BookingIDs() []string {
	ids := make([]string, 0, len(s.Bookings))
	for _, booking := range s.Bookings {
		ids = append(ids, booking.BookingID)
	}
	return ids
}

// Bill is the per-booking settlement record returned on payment success.
type Bill struct {
	BillID    string          `json:"billId"`
	BookingID string          `json:"bookingId"`
	BillingID string          `json:"billingId"`
	Amount    decimal.Decimal `json:"amount"`
}

// SavedCard is a vaulted payment instrument token. The CVV is never stored and
// must be re-entered per attempt.
type SavedCard struct {
	CardID         string `json:"cardId"`
	CardNumber     string `json:"cardNumber"`
	CardHolderName string `json:"cardHolderName"`
	ExpiryDate     string `json:"expiryDate"`
	ZipCode        string `json:"zipCode"`
}

// Review is a traveler review tied to the booking that earned the right to it.
type Review struct {
	ReviewID  string `json:"reviewId,omitempty"`
	BookingID string `json:"bookingId"`
	ListingID string `json:"listingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}
