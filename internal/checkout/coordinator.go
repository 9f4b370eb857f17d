package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shashidharbabu/aerive-client/internal/cart"
	"github.com/shashidharbabu/aerive-client/internal/gateway"
	"github.com/shashidharbabu/aerive-client/internal/storage"
	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

type sessionOpener interface {
	OpenCheckout(ctx context.Context, req gateway.OpenCheckoutRequest) (*gateway.OpenCheckoutResponse, error)
}

// Coordinator exchanges the cart for a server-side checkout session and owns
// the lifecycle handle: the checkoutId and the Pending booking id set. At most
// one session is active per client.
type Coordinator struct {
	mu      sync.Mutex
	cart    *cart.Store
	opener  sessionOpener
	durable storage.Store
	logg    *logger.Logger
	active  *types.CheckoutSession
	opening bool
}

// CoordinatorParams groups the coordinator's dependencies.
type CoordinatorParams struct {
	Cart    *cart.Store
	Gateway sessionOpener
	Durable storage.Store
	Logger  *logger.Logger
}

// NewCoordinator builds the checkout coordinator.
func NewCoordinator(params CoordinatorParams) (*Coordinator, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if params.Durable == nil {
		return nil, fmt.Errorf("durable store required")
	}
	return &Coordinator{
		cart:    params.Cart,
		opener:  params.Gateway,
		durable: params.Durable,
		logg:    params.Logger,
	}, nil
}

// OpenSession submits the cart and binds the returned checkoutId plus Pending
// bookings. The cart is NOT cleared here; clearing happens only once payment
// confirms. Any failure leaves cart and local state untouched.
func (c *Coordinator) OpenSession(ctx context.Context, userID string) (*types.CheckoutSession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	// The gate covers the awaited open: it is taken before the network call
	// so an overlapping gesture can never reach the server.
	c.mu.Lock()
	if c.active != nil || c.opening {
		c.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeBookingConflict, "a checkout session is already in progress")
	}
	c.opening = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.opening = false
		c.mu.Unlock()
	}()

	items := c.cart.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := make([]gateway.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, gateway.LineItem{
			ListingID:   item.ListingID,
			ListingType: item.ListingType,
			Variant:     item.Variant,
			Dates:       item.Dates,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	resp, err := c.opener.OpenCheckout(ctx, gateway.OpenCheckoutRequest{UserID: userID, Items: lines})
	if err != nil {
		return nil, err
	}

	session := &types.CheckoutSession{
		CheckoutID:  resp.CheckoutID,
		UserID:      userID,
		TotalAmount: resp.TotalAmount,
		Bookings:    resp.Bookings,
	}

	c.mu.Lock()
	c.active = session
	c.mu.Unlock()

	// Durable write is best effort: the in-memory handle drives this session,
	// the persisted id only lets the re-entry reaper see a crashed one.
	if err := c.durable.Set(ctx, storage.KeyCheckoutID, session.CheckoutID); err != nil && c.logg != nil {
		c.logg.Warn(ctx, fmt.Sprintf("persisting checkout id: %v", err))
	}

	return session, nil
}

// ActiveSession returns the live session handle, or nil.
func (c *Coordinator) ActiveSession() *types.CheckoutSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// CloseSession drops the session handle after a terminal transition
// (Succeeded, Failed, or Abandoned) and clears the persisted checkout id.
func (c *Coordinator) CloseSession(ctx context.Context) {
	c.mu.Lock()
	c.active = nil
	c.mu.Unlock()

	if err := c.durable.Delete(ctx, storage.KeyCheckoutID); err != nil && c.logg != nil {
		c.logg.Warn(ctx, fmt.Sprintf("clearing checkout id: %v", err))
	}
}

// StaleCheckoutID reports a persisted checkout id with no live session, as
// left behind by a crash or unload before the payment settled.
func (c *Coordinator) StaleCheckoutID(ctx context.Context) (string, bool) {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()
	if active != nil {
		return "", false
	}

	id, ok, err := c.durable.Get(ctx, storage.KeyCheckoutID)
	if err != nil {
		if c.logg != nil {
			c.logg.Warn(ctx, fmt.Sprintf("reading stale checkout id: %v", err))
		}
		return "", false
	}
	return id, ok && id != ""
}
