package reaper

import (
	"context"
	"testing"

	"github.com/shashidharbabu/aerive-client/pkg/enums"
	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

type stubBookingGateway struct {
	bookings []types.Booking
	listErr  error

	releasedAwaited  [][]string
	releasedDetached [][]string
	releaseErr       error
}

func (s *stubBookingGateway) ListBookings(context.Context, string) ([]types.Booking, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.bookings, nil
}

func (s *stubBookingGateway) ReleaseBookings(_ context.Context, bookingIDs []string) error {
	s.releasedAwaited = append(s.releasedAwaited, bookingIDs)
	return s.releaseErr
}

func (s *stubBookingGateway) ReleaseBookingsDetached(bookingIDs []string) <-chan struct{} {
	s.releasedDetached = append(s.releasedDetached, bookingIDs)
	done := make(chan struct{})
	close(done)
	return done
}

type stubJanitor struct {
	staleID string
	closed  int
}

func (s *stubJanitor) StaleCheckoutID(context.Context) (string, bool) {
	return s.staleID, s.staleID != ""
}

func (s *stubJanitor) CloseSession(context.Context) {
	s.closed++
	s.staleID = ""
}

type stubTeardownSource struct {
	completed bool
	ids       []string
}

func (s *stubTeardownSource) PaymentCompleted() bool      { return s.completed }
func (s *stubTeardownSource) PendingBookingIDs() []string { return s.ids }

func newTestReaper(t *testing.T, gw *stubBookingGateway, janitor *stubJanitor) *Reaper {
	t.Helper()
	r, err := New(Params{Gateway: gw, Coordinator: janitor})
	if err != nil {
		t.Fatalf("new reaper: %v", err)
	}
	return r
}

func TestOnTeardownReleasesPendingBookings(t *testing.T) {
	t.Parallel()

	gw := &stubBookingGateway{}
	r := newTestReaper(t, gw, &stubJanitor{})

	<-r.OnTeardown(&stubTeardownSource{ids: []string{"B1", "B2"}})

	if len(gw.releasedDetached) != 1 {
		t.Fatalf("expected one detached release, got %d", len(gw.releasedDetached))
	}
	got := gw.releasedDetached[0]
	if len(got) != 2 || got[0] != "B1" || got[1] != "B2" {
		t.Fatalf("unexpected release set %v", got)
	}
}

func TestOnTeardownSkipsSettledPayment(t *testing.T) {
	t.Parallel()

	gw := &stubBookingGateway{}
	r := newTestReaper(t, gw, &stubJanitor{})

	<-r.OnTeardown(&stubTeardownSource{completed: true, ids: []string{"B1"}})

	if len(gw.releasedDetached) != 0 {
		t.Fatal("settled payment must not be released on teardown")
	}
}

func TestOnTeardownSkipsEmptySet(t *testing.T) {
	t.Parallel()

	gw := &stubBookingGateway{}
	r := newTestReaper(t, gw, &stubJanitor{})

	<-r.OnTeardown(&stubTeardownSource{})
	<-r.OnTeardown(nil)

	if len(gw.releasedDetached) != 0 {
		t.Fatal("nothing to release")
	}
}

func TestOnEntryReleasesServerPendingSubset(t *testing.T) {
	t.Parallel()

	gw := &stubBookingGateway{bookings: []types.Booking{
		{BookingID: "B1", Status: enums.BookingStatusPending},
		{BookingID: "B2", Status: enums.BookingStatusConfirmed},
		{BookingID: "B3", Status: enums.BookingStatusPending},
		{BookingID: "B4", Status: enums.BookingStatusFailed},
	}}
	r := newTestReaper(t, gw, &stubJanitor{})

	if err := r.OnEntry(context.Background(), "U1"); err != nil {
		t.Fatalf("on entry: %v", err)
	}

	if len(gw.releasedAwaited) != 1 {
		t.Fatalf("expected one awaited release, got %d", len(gw.releasedAwaited))
	}
	got := gw.releasedAwaited[0]
	if len(got) != 2 || got[0] != "B1" || got[1] != "B3" {
		t.Fatalf("expected only the pending bookings, got %v", got)
	}
}

func TestOnEntryDropsStaleCheckoutID(t *testing.T) {
	t.Parallel()

	gw := &stubBookingGateway{}
	janitor := &stubJanitor{staleID: "C-crashed"}
	r := newTestReaper(t, gw, janitor)

	if err := r.OnEntry(context.Background(), "U1"); err != nil {
		t.Fatalf("on entry: %v", err)
	}
	if janitor.closed != 1 {
		t.Fatalf("stale session closed %d times", janitor.closed)
	}
}

func TestOnEntryNoPendingIsQuiet(t *testing.T) {
	t.Parallel()

	gw := &stubBookingGateway{bookings: []types.Booking{
		{BookingID: "B1", Status: enums.BookingStatusConfirmed},
	}}
	r := newTestReaper(t, gw, &stubJanitor{})

	if err := r.OnEntry(context.Background(), "U1"); err != nil {
		t.Fatalf("on entry: %v", err)
	}
	if len(gw.releasedAwaited) != 0 {
		t.Fatal("nothing pending, nothing to release")
	}
}

func TestOnEntrySurfacesListFailure(t *testing.T) {
	t.Parallel()

	gw := &stubBookingGateway{listErr: pkgerrors.New(pkgerrors.CodeTransport, "down")}
	r := newTestReaper(t, gw, &stubJanitor{})

	if err := r.OnEntry(context.Background(), "U1"); err == nil {
		t.Fatal("expected error")
	}
}
