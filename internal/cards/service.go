package cards

import (
	"context"
	"fmt"

	"github.com/shashidharbabu/aerive-client/internal/gateway"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

type cardGateway interface {
	ListCards(ctx context.Context, userID string) ([]types.SavedCard, error)
	SaveCard(ctx context.Context, userID string, req gateway.SaveCardRequest) (*types.SavedCard, error)
	UpdateCard(ctx context.Context, userID, cardID string, req gateway.SaveCardRequest) (*types.SavedCard, error)
	DeleteCard(ctx context.Context, userID, cardID string) error
}

// Service manages the traveler's vaulted cards. CVVs never pass through here.
type Service struct {
	gatewayAPI cardGateway
	logg       *logger.Logger
}

// NewService builds the saved-cards service.
func NewService(gatewayAPI cardGateway, logg *logger.Logger) (*Service, error) {
	if gatewayAPI == nil {
		return nil, fmt.Errorf("gateway required")
	}
	return &Service{gatewayAPI: gatewayAPI, logg: logg}, nil
}

// List returns the user's saved cards. Failures are non-critical: the payment
// surface falls back to the new-card form, so this degrades to an empty list.
func (s *Service) List(ctx context.Context, userID string) []types.SavedCard {
	cards, err := s.gatewayAPI.ListCards(ctx, userID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("saved cards unavailable: %v", err))
		}
		return nil
	}
	return cards
}

// Save vaults a new card.
func (s *Service) Save(ctx context.Context, userID string, req gateway.SaveCardRequest) (*types.SavedCard, error) {
	return s.gatewayAPI.SaveCard(ctx, userID, req)
}

// Update rewrites a stored card's fields.
func (s *Service) Update(ctx context.Context, userID, cardID string, req gateway.SaveCardRequest) (*types.SavedCard, error) {
	return s.gatewayAPI.UpdateCard(ctx, userID, cardID, req)
}

// Delete removes a vaulted card.
func (s *Service) Delete(ctx context.Context, userID, cardID string) error {
	return s.gatewayAPI.DeleteCard(ctx, userID, cardID)
}
