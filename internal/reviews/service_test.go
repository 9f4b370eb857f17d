package reviews

import (
	"context"
	"testing"

	"github.com/shashidharbabu/aerive-client/pkg/enums"
	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

type stubReviewGateway struct {
	submitted []types.Review
	err       error
}

func (s *stubReviewGateway) SubmitReview(_ context.Context, _ enums.ListingType, _ string, review types.Review) error {
	if s.err != nil {
		return s.err
	}
	s.submitted = append(s.submitted, review)
	return nil
}

func TestSubmitMarksBookingReviewed(t *testing.T) {
	t.Parallel()

	gw := &stubReviewGateway{}
	svc, err := NewService(gw, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	review := types.Review{BookingID: "B1", Rating: 5, Comment: "great stay"}
	if err := svc.Submit(context.Background(), enums.ListingTypeHotel, "H1", review); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(gw.submitted) != 1 || gw.submitted[0].BookingID != "B1" {
		t.Fatalf("submitted = %v", gw.submitted)
	}
	if !svc.Index()["B1"] {
		t.Fatal("booking must be indexed as reviewed")
	}
}

func TestFailedSubmitLeavesIndexUntouched(t *testing.T) {
	t.Parallel()

	gw := &stubReviewGateway{err: pkgerrors.New(pkgerrors.CodeBookingConflict, "already reviewed")}
	svc, err := NewService(gw, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	submitErr := svc.Submit(context.Background(), enums.ListingTypeHotel, "H1", types.Review{BookingID: "B1", Rating: 4})
	if pkgerrors.CodeOf(submitErr) != pkgerrors.CodeBookingConflict {
		t.Fatalf("expected conflict, got %v", submitErr)
	}
	if svc.Index()["B1"] {
		t.Fatal("failed submit must not mark the booking")
	}
}

func TestSeedReviewed(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubReviewGateway{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	svc.SeedReviewed([]string{"B1", "B2"})
	index := svc.Index()
	if !index["B1"] || !index["B2"] {
		t.Fatalf("index = %v", index)
	}

	// The snapshot is detached from the live index.
	index["B3"] = true
	if svc.Index()["B3"] {
		t.Fatal("snapshot mutation leaked into the service")
	}
}
