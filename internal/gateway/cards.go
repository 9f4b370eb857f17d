package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

// ListCards fetches the user's vaulted cards. Card numbers arrive masked.
func (c *Client) ListCards(ctx context.Context, userID string) ([]types.SavedCard, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(cardsPath(userID, "")), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cards request")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute cards request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return nil, c.mapStatus(resp)
	}

	var cards []types.SavedCard
	if err := json.NewDecoder(resp.Body).Decode(&cards); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cards response")
	}
	return cards, nil
}

// SaveCard vaults a new card for the user. No CVV crosses this path.
func (c *Client) SaveCard(ctx context.Context, userID string, req SaveCardRequest) (*types.SavedCard, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	var card types.SavedCard
	if err := c.doJSON(ctx, http.MethodPost, cardsPath(userID, ""), req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateCard replaces the stored fields of an existing card.
func (c *Client) UpdateCard(ctx context.Context, userID, cardID string, req SaveCardRequest) (*types.SavedCard, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(cardID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and card id are required")
	}
	var card types.SavedCard
	if err := c.doJSON(ctx, http.MethodPut, cardsPath(userID, cardID), req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteCard removes a vaulted card.
func (c *Client) DeleteCard(ctx context.Context, userID, cardID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(cardID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and card id are required")
	}
	return c.doJSON(ctx, http.MethodDelete, cardsPath(userID, cardID), nil, nil)
}

func cardsPath(userID, cardID string) string {
	path := "/api/users/" + url.PathEscape(userID) + "/cards"
	if cardID != "" {
		path += "/" + url.PathEscape(cardID)
	}
	return path
}
