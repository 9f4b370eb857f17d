package cards

import (
	"context"
	"testing"

	"github.com/shashidharbabu/aerive-client/internal/gateway"
	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

type stubCardGateway struct {
	cards   []types.SavedCard
	listErr error
	deleted []string
}

func (s *stubCardGateway) ListCards(context.Context, string) ([]types.SavedCard, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.cards, nil
}

func (s *stubCardGateway) SaveCard(_ context.Context, _ string, req gateway.SaveCardRequest) (*types.SavedCard, error) {
	return &types.SavedCard{CardID: "card-new", CardHolderName: req.CardHolderName}, nil
}

func (s *stubCardGateway) UpdateCard(_ context.Context, _, cardID string, req gateway.SaveCardRequest) (*types.SavedCard, error) {
	return &types.SavedCard{CardID: cardID, CardHolderName: req.CardHolderName}, nil
}

func (s *stubCardGateway) DeleteCard(_ context.Context, _, cardID string) error {
	s.deleted = append(s.deleted, cardID)
	return nil
}

func TestListDegradesToEmptyOnFailure(t *testing.T) {
	t.Parallel()

	gw := &stubCardGateway{listErr: pkgerrors.New(pkgerrors.CodeTransport, "down")}
	svc, err := NewService(gw, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if cards := svc.List(context.Background(), "U1"); cards != nil {
		t.Fatalf("expected empty degradation, got %v", cards)
	}
}

func TestListReturnsVaultedCards(t *testing.T) {
	t.Parallel()

	gw := &stubCardGateway{cards: []types.SavedCard{{CardID: "card-1"}, {CardID: "card-2"}}}
	svc, err := NewService(gw, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cards := svc.List(context.Background(), "U1")
	if len(cards) != 2 || cards[0].CardID != "card-1" {
		t.Fatalf("cards = %v", cards)
	}
}

func TestSaveUpdateDeletePassThrough(t *testing.T) {
	t.Parallel()

	gw := &stubCardGateway{}
	svc, err := NewService(gw, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	saved, err := svc.Save(ctx, "U1", gateway.SaveCardRequest{CardHolderName: "Ada Lovelace"})
	if err != nil || saved.CardID != "card-new" {
		t.Fatalf("save: %v %v", saved, err)
	}
	updated, err := svc.Update(ctx, "U1", "card-1", gateway.SaveCardRequest{CardHolderName: "A. Lovelace"})
	if err != nil || updated.CardID != "card-1" || updated.CardHolderName != "A. Lovelace" {
		t.Fatalf("update: %v %v", updated, err)
	}
	if err := svc.Delete(ctx, "U1", "card-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(gw.deleted) != 1 || gw.deleted[0] != "card-1" {
		t.Fatalf("deleted = %v", gw.deleted)
	}
}
