package bookings

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashidharbabu/aerive-client/internal/storage"
	"github.com/shashidharbabu/aerive-client/pkg/enums"
	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
	"github.com/shashidharbabu/aerive-client/pkg/pagination"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

const tabKey = storage.KeyTabPrefix + "bookings"

type listGateway interface {
	ListBookings(ctx context.Context, userID string) ([]types.Booking, error)
}

// Entry is one display row: either a single booking or a billing group of
// hotel bookings confirmed by the same payment.
type Entry struct {
	IsGroup   bool
	BillingID string
	Booking   *types.Booking
	Children  []types.Booking
}

// ViewModel presents the authoritative booking list grouped for the UI.
type ViewModel struct {
	mu         sync.Mutex
	gatewayAPI listGateway
	durable    storage.Store
	logg       *logger.Logger

	snapshot   []types.Booking
	loaded     bool
	activeType enums.ListingType
	page       int
}

// NewViewModel builds the bookings view model, restoring the last-selected tab
// when a durable store is supplied and defaulting to the flights tab.
func NewViewModel(ctx context.Context, gatewayAPI listGateway, durable storage.Store, logg *logger.Logger) (*ViewModel, error) {
	if gatewayAPI == nil {
		return nil, fmt.Errorf("gateway required")
	}
	vm := &ViewModel{
		gatewayAPI: gatewayAPI,
		durable:    durable,
		logg:       logg,
		activeType: enums.ListingTypeFlight,
		page:       1,
	}
	if durable != nil {
		if raw, ok, err := durable.Get(ctx, tabKey); err == nil && ok {
			if listingType, parseErr := enums.ParseListingType(raw); parseErr == nil {
				vm.activeType = listingType
			}
		}
	}
	return vm, nil
}

// Load fetches the user's bookings. A failed load keeps the last successful
// snapshot and surfaces a retryable error.
func (v *ViewModel) Load(ctx context.Context, userID string) error {
	fetched, err := v.gatewayAPI.ListBookings(ctx, userID)
	if err != nil {
		if v.logg != nil {
			v.logg.Warn(ctx, fmt.Sprintf("bookings load failed, keeping last snapshot: %v", err))
		}
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, "load bookings")
	}

	v.mu.Lock()
	v.snapshot = fetched
	v.loaded = true
	v.mu.Unlock()
	return nil
}

// SetActiveType switches the listing-type filter, resets to page 1, and
// remembers the tab for the next session.
func (v *ViewModel) SetActiveType(ctx context.Context, listingType enums.ListingType) {
	v.mu.Lock()
	changed := v.activeType != listingType
	if changed {
		v.activeType = listingType
		v.page = 1
	}
	durable := v.durable
	v.mu.Unlock()

	if changed && durable != nil {
		if err := durable.Set(ctx, tabKey, listingType.String()); err != nil && v.logg != nil {
			v.logg.Warn(ctx, fmt.Sprintf("persisting bookings tab: %v", err))
		}
	}
}

// SetPage selects the page for the current filter.
func (v *ViewModel) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if page >= 1 {
		v.page = page
	}
}

// CurrentPage returns the display entries for the active filter and page.
func (v *ViewModel) CurrentPage() ([]Entry, pagination.Page) {
	v.mu.Lock()
	snapshot := make([]types.Booking, len(v.snapshot))
	copy(snapshot, v.snapshot)
	activeType := v.activeType
	requested := v.page
	v.mu.Unlock()

	entries := GroupForDisplay(snapshot, activeType)
	page := pagination.NormalizePage(requested, len(entries), pagination.DefaultPageSize)
	start, end := page.Bounds()
	return entries[start:end], page
}

// GroupForDisplay filters by listing type and collapses hotel bookings that
// share a billingId into one group entry. Groups come first, then
// individuals, each in received order.
func GroupForDisplay(bookings []types.Booking, activeType enums.ListingType) []Entry {
	var groups []Entry
	groupIndex := map[string]int{}
	var individuals []Entry

	for idx := range bookings {
		booking := bookings[idx]
		if booking.ListingType != activeType {
			continue
		}

		if booking.ListingType == enums.ListingTypeHotel && booking.BillingID != "" {
			pos, seen := groupIndex[booking.BillingID]
			if !seen {
				groupIndex[booking.BillingID] = len(groups)
				groups = append(groups, Entry{
					IsGroup:   true,
					BillingID: booking.BillingID,
					Children:  []types.Booking{booking},
				})
				continue
			}
			groups[pos].Children = append(groups[pos].Children, booking)
			continue
		}

		individuals = append(individuals, Entry{Booking: &bookings[idx]})
	}

	// Single-booking "groups" stay groups: the billingId is the display key
	// whether one room or three were paid together.
	return append(groups, individuals...)
}

// ReviewIndex records which booking ids already carry a review.
type ReviewIndex map[string]bool

// EligibleForReview gates the review affordance: Confirmed and unreviewed. A
// group is eligible only while none of its children has been reviewed.
func EligibleForReview(entry Entry, reviews ReviewIndex) bool {
	if entry.IsGroup {
		confirmed := false
		for _, child := range entry.Children {
			if reviews[child.BookingID] {
				return false
			}
			if child.Status == enums.BookingStatusConfirmed {
				confirmed = true
			}
		}
		return confirmed
	}
	if entry.Booking == nil {
		return false
	}
	return entry.Booking.Status == enums.BookingStatusConfirmed && !reviews[entry.Booking.BookingID]
}
