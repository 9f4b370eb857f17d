package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shashidharbabu/aerive-client/internal/bookings"
	"github.com/shashidharbabu/aerive-client/internal/cards"
	"github.com/shashidharbabu/aerive-client/internal/cart"
	"github.com/shashidharbabu/aerive-client/internal/checkout"
	"github.com/shashidharbabu/aerive-client/internal/gateway"
	"github.com/shashidharbabu/aerive-client/internal/payment"
	"github.com/shashidharbabu/aerive-client/internal/reviews"
	"github.com/shashidharbabu/aerive-client/internal/suggest"
	"github.com/shashidharbabu/aerive-client/pkg/config"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
	"github.com/shashidharbabu/aerive-client/pkg/metrics"
)

type demoParams struct {
	Config      *config.Config
	Gateway     *gateway.Client
	Cart        *cart.Store
	Coordinator *checkout.Coordinator
	Bookings    *bookings.ViewModel
	Metrics     *metrics.PaymentMetrics
	Logger      *logger.Logger
	UserID      string
}

// runCheckoutDemo walks the client lifecycle once against the live gateway:
// provider suggestions, saved cards, review eligibility over the current
// bookings page, then a checkout session that is opened and abandoned so its
// Pending bookings are released. It never holds real card data.
func runCheckoutDemo(ctx context.Context, params demoParams) {
	logg := params.Logger

	debouncer, err := suggest.NewDebouncer(params.Gateway, logg, params.Config.Payment.SuggestionDebounce)
	if err != nil {
		logg.Warn(ctx, fmt.Sprintf("demo: building suggestion debouncer: %v", err))
		return
	}
	delivered := make(chan []string, 1)
	debouncer.Query(ctx, "grand", func(suggestions []string) { delivered <- suggestions })
	select {
	case suggestions := <-delivered:
		logg.Info(ctx, fmt.Sprintf("demo: %d provider suggestions", len(suggestions)))
	case <-time.After(params.Config.Payment.SuggestionDebounce + 5*time.Second):
		logg.Warn(ctx, "demo: suggestion lookup timed out")
	}
	debouncer.Cancel()

	cardService, err := cards.NewService(params.Gateway, logg)
	if err != nil {
		logg.Warn(ctx, fmt.Sprintf("demo: building card service: %v", err))
		return
	}
	saved := cardService.List(ctx, params.UserID)
	logg.Info(ctx, fmt.Sprintf("demo: %d saved cards on file", len(saved)))

	reviewService, err := reviews.NewService(params.Gateway, logg)
	if err != nil {
		logg.Warn(ctx, fmt.Sprintf("demo: building review service: %v", err))
		return
	}
	entries, page := params.Bookings.CurrentPage()
	eligible := 0
	for _, entry := range entries {
		if bookings.EligibleForReview(entry, reviewService.Index()) {
			eligible++
		}
	}
	logg.Info(ctx, fmt.Sprintf("demo: %d of %d booking rows on page %d are reviewable", eligible, len(entries), page.Number))

	if params.Cart.TotalQuantity() == 0 {
		logg.Info(ctx, "demo: cart is empty, skipping the checkout walk")
		return
	}

	session, err := params.Coordinator.OpenSession(ctx, params.UserID)
	if err != nil {
		logg.Warn(ctx, fmt.Sprintf("demo: opening checkout: %v", err))
		return
	}
	sessionCtx := logg.WithCheckoutID(ctx, session.CheckoutID)
	logg.Info(sessionCtx, fmt.Sprintf("demo: opened checkout with %d pending bookings", len(session.Bookings)))

	controller, err := payment.NewController(payment.ControllerParams{
		Session:            session,
		Gateway:            params.Gateway,
		Cart:               params.Cart,
		Coordinator:        params.Coordinator,
		Router:             demoRouter{logg: logg},
		Metrics:            params.Metrics,
		Logger:             logg,
		FailureReturnDelay: params.Config.Payment.FailureReturnDelay,
	})
	if err != nil {
		logg.Warn(sessionCtx, fmt.Sprintf("demo: building payment controller: %v", err))
		return
	}

	controller.ConfirmBack(sessionCtx)
	logg.Info(sessionCtx, "demo: abandoned the payment surface, bookings released")
}

// demoRouter logs the navigation the real surfaces would perform.
type demoRouter struct {
	logg *logger.Logger
}

func (r demoRouter) ToBookings(paymentSucceeded bool) {
	r.logg.Info(context.Background(), fmt.Sprintf("demo: navigate to bookings (success=%t)", paymentSucceeded))
}

func (r demoRouter) ToCheckout() {
	r.logg.Info(context.Background(), "demo: navigate to checkout")
}
