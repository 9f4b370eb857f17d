package types

import (
	"fmt"
	"strings"

	"github.com/shashidharbabu/aerive-client/pkg/enums"
)

// VariantDates carries the date fields that distinguish one line item from
// another under the same listing. Dates are timezone-naive YYYY-MM-DD strings,
// matching what the date-only pickers submit.
type VariantDates struct {
	TravelDate   string `json:"travelDate,omitempty"`
	CheckInDate  string `json:"checkInDate,omitempty"`
	CheckOutDate string `json:"checkOutDate,omitempty"`
	PickupDate   string `json:"pickupDate,omitempty"`
	ReturnDate   string `json:"returnDate,omitempty"`
}

// Key renders the canonical identity component for composite cart keys.
func (v VariantDates) Key() string {
	return strings.Join([]string{
		v.TravelDate,
		v.CheckInDate,
		v.CheckOutDate,
		v.PickupDate,
		v.ReturnDate,
	}, "|")
}

// IsZero reports whether no date field is populated.
func (v VariantDates) IsZero() bool {
	return v == VariantDates{}
}

// ValidateFor checks that the date fields required by the listing type are set.
func (v VariantDates) ValidateFor(listingType enums.ListingType) error {
	switch listingType {
	case enums.ListingTypeFlight:
		if strings.TrimSpace(v.TravelDate) == "" {
			return fmt.Errorf("travel date is required for flights")
		}
	case enums.ListingTypeHotel:
		if strings.TrimSpace(v.CheckInDate) == "" || strings.TrimSpace(v.CheckOutDate) == "" {
			return fmt.Errorf("check-in and check-out dates are required for hotels")
		}
	case enums.ListingTypeCar:
		if strings.TrimSpace(v.PickupDate) == "" || strings.TrimSpace(v.ReturnDate) == "" {
			return fmt.Errorf("pickup and return dates are required for cars")
		}
	default:
		return fmt.Errorf("invalid listing type %q", listingType)
	}
	return nil
}
