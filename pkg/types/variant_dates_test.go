package types

import (
	"testing"

	"github.com/shashidharbabu/aerive-client/pkg/enums"
)

func TestVariantDatesKey(t *testing.T) {
	t.Parallel()

	flight := VariantDates{TravelDate: "2024-07-01"}
	hotel := VariantDates{CheckInDate: "2024-07-01", CheckOutDate: "2024-07-03"}

	if flight.Key() == hotel.Key() {
		t.Fatal("different date fields must yield different keys")
	}
	// The same calendar date in a different field is a different identity.
	asPickup := VariantDates{PickupDate: "2024-07-01"}
	if flight.Key() == asPickup.Key() {
		t.Fatal("travel date and pickup date must not collide")
	}
	if flight.Key() != (VariantDates{TravelDate: "2024-07-01"}).Key() {
		t.Fatal("equal dates must yield equal keys")
	}
}

func TestVariantDatesValidateFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		listingType enums.ListingType
		dates       VariantDates
		wantErr     bool
	}{
		{"flight ok", enums.ListingTypeFlight, VariantDates{TravelDate: "2024-07-01"}, false},
		{"flight missing travel date", enums.ListingTypeFlight, VariantDates{CheckInDate: "2024-07-01"}, true},
		{"hotel ok", enums.ListingTypeHotel, VariantDates{CheckInDate: "2024-07-01", CheckOutDate: "2024-07-03"}, false},
		{"hotel missing checkout", enums.ListingTypeHotel, VariantDates{CheckInDate: "2024-07-01"}, true},
		{"car ok", enums.ListingTypeCar, VariantDates{PickupDate: "2024-07-01", ReturnDate: "2024-07-05"}, false},
		{"car missing return", enums.ListingTypeCar, VariantDates{PickupDate: "2024-07-01"}, true},
		{"unknown type", enums.ListingType("boat"), VariantDates{TravelDate: "2024-07-01"}, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.dates.ValidateFor(tc.listingType)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateFor(%v) = %v, wantErr %v", tc.listingType, err, tc.wantErr)
			}
		})
	}
}

func TestVariantDatesIsZero(t *testing.T) {
	t.Parallel()

	if !(VariantDates{}).IsZero() {
		t.Fatal("empty dates must be zero")
	}
	if (VariantDates{TravelDate: "2024-07-01"}).IsZero() {
		t.Fatal("populated dates must not be zero")
	}
}
