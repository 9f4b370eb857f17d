package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/shashidharbabu/aerive-client/pkg/enums"
	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

// SubmitReview posts a review for a listing. The bookingId rides along so the
// server can reject duplicates per booking.
func (c *Client) SubmitReview(ctx context.Context, listingType enums.ListingType, listingID string, review types.Review) error {
	if !listingType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid listing type")
	}
	if strings.TrimSpace(listingID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	if strings.TrimSpace(review.BookingID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "booking id is required")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	path := "/api/listings/" + listingType.String() + "s/" + url.PathEscape(listingID) + "/reviews"
	return c.doJSON(ctx, http.MethodPost, path, review, nil)
}

// ListSuggestions performs the provider-name lookup behind the search box.
func (c *Client) ListSuggestions(ctx context.Context, query string) ([]string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}

	path := "/api/providers/suggestions?q=" + url.QueryEscape(trimmed)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build suggestions request")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute suggestions request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return nil, c.mapStatus(resp)
	}

	var parsed suggestionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode suggestions response")
	}
	return parsed.Suggestions, nil
}
