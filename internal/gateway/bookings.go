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

// ListBookings fetches the authoritative booking list for a user, each with
// embedded listing and provider snapshots.
func (c *Client) ListBookings(ctx context.Context, userID string) ([]types.Booking, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	path := "/api/bookings/user/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build bookings request")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, "execute bookings request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return nil, c.mapStatus(resp)
	}

	var bookings []types.Booking
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode bookings response")
	}
	return bookings, nil
}
