package reviews

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashidharbabu/aerive-client/internal/bookings"
	"github.com/shashidharbabu/aerive-client/pkg/enums"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

type reviewGateway interface {
	SubmitReview(ctx context.Context, listingType enums.ListingType, listingID string, review types.Review) error
}

// Service submits reviews and tracks which bookings already carry one so the
// affordance stays disabled once a review exists. The server enforces the
// duplicate rule; the local index just keeps the UI honest between loads.
type Service struct {
	mu         sync.Mutex
	gatewayAPI reviewGateway
	logg       *logger.Logger
	reviewed   bookings.ReviewIndex
}

// NewService builds the review service.
func NewService(gatewayAPI reviewGateway, logg *logger.Logger) (*Service, error) {
	if gatewayAPI == nil {
		return nil, fmt.Errorf("gateway required")
	}
	return &Service{
		gatewayAPI: gatewayAPI,
		logg:       logg,
		reviewed:   bookings.ReviewIndex{},
	}, nil
}

// Submit posts the review and marks the booking reviewed on success.
func (s *Service) Submit(ctx context.Context, listingType enums.ListingType, listingID string, review types.Review) error {
	if err := s.gatewayAPI.SubmitReview(ctx, listingType, listingID, review); err != nil {
		return err
	}
	s.mu.Lock()
	s.reviewed[review.BookingID] = true
	s.mu.Unlock()
	return nil
}

// SeedReviewed primes the index from a fetched review list. Fetch failures
// upstream degrade silently, leaving the index as-is.
func (s *Service) SeedReviewed(bookingIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range bookingIDs {
		s.reviewed[id] = true
	}
}

// Index snapshots the reviewed-booking index for eligibility checks.
func (s *Service) Index() bookings.ReviewIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(bookings.ReviewIndex, len(s.reviewed))
	for id, seen := range s.reviewed {
		snapshot[id] = seen
	}
	return snapshot
}
