package reaper

import (
	"context"
	"fmt"

	"github.com/shashidharbabu/aerive-client/pkg/enums"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
	"github.com/shashidharbabu/aerive-client/pkg/metrics"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

// TeardownSource is what the reaper reads off the payment surface when it
// unmounts: did the payment settle, and which bookings were reserved.
type TeardownSource interface {
	PaymentCompleted() bool
	PendingBookingIDs() []string
}

type bookingGateway interface {
	ListBookings(ctx context.Context, userID string) ([]types.Booking, error)
	ReleaseBookings(ctx context.Context, bookingIDs []string) error
	ReleaseBookingsDetached(bookingIDs []string) <-chan struct{}
}

type sessionJanitor interface {
	StaleCheckoutID(ctx context.Context) (string, bool)
	CloseSession(ctx context.Context)
}

// Reaper bounds the lifetime of stale Pending bookings: once at surface
// teardown, and again when the user re-enters the cart surface.
type Reaper struct {
	gatewayAPI  bookingGateway
	coordinator sessionJanitor
	metrics     *metrics.PaymentMetrics
	logg        *logger.Logger
}

// Params groups the reaper's dependencies.
type Params struct {
	Gateway     bookingGateway
	Coordinator sessionJanitor
	Metrics     *metrics.PaymentMetrics
	Logger      *logger.Logger
}

// New builds the reaper.
func New(params Params) (*Reaper, error) {
	if params.Gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if params.Coordinator == nil {
		return nil, fmt.Errorf("coordinator required")
	}
	return &Reaper{
		gatewayAPI:  params.Gateway,
		coordinator: params.Coordinator,
		metrics:     params.Metrics,
		logg:        params.Logger,
	}, nil
}

// OnTeardown fires the best-effort release when the payment surface goes away
// without a completed payment. The release runs on a detached context that
// outlives the surface; the caller does not wait on the returned channel, it
// exists for observers. Releasing an already settled booking is a server-side
// no-op.
func (r *Reaper) OnTeardown(source TeardownSource) <-chan struct{} {
	if source == nil || source.PaymentCompleted() {
		return closedChan()
	}
	ids := source.PendingBookingIDs()
	if len(ids) == 0 {
		return closedChan()
	}
	r.metrics.IncRelease("teardown")
	return r.gatewayAPI.ReleaseBookingsDetached(ids)
}

// OnEntry reclaims strays when the traveler re-enters the cart surface: any
// persisted checkout id without a live session is dropped, and every booking
// the server still reports as Pending is released. This catches unload-time
// releases that were lost.
func (r *Reaper) OnEntry(ctx context.Context, userID string) error {
	if id, ok := r.coordinator.StaleCheckoutID(ctx); ok {
		if r.logg != nil {
			r.logg.Info(r.logg.WithCheckoutID(ctx, id), "dropping stale checkout session")
		}
		r.coordinator.CloseSession(ctx)
	}

	bookings, err := r.gatewayAPI.ListBookings(ctx, userID)
	if err != nil {
		return fmt.Errorf("listing bookings for reap: %w", err)
	}

	var pending []string
	for _, booking := range bookings {
		if booking.Status == enums.BookingStatusPending {
			pending = append(pending, booking.BookingID)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	r.metrics.IncRelease("reentry")
	if err := r.gatewayAPI.ReleaseBookings(ctx, pending); err != nil {
		return fmt.Errorf("releasing %d pending bookings: %w", len(pending), err)
	}
	if r.logg != nil {
		r.logg.Info(ctx, fmt.Sprintf("released %d stale pending bookings", len(pending)))
	}
	return nil
}

func closedChan() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}
