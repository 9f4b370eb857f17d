package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashidharbabu/aerive-client/internal/cart"
	"github.com/shashidharbabu/aerive-client/internal/gateway"
	"github.com/shashidharbabu/aerive-client/pkg/enums"
	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
	"github.com/shashidharbabu/aerive-client/pkg/metrics"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

const defaultFailureReturnDelay = 3 * time.Second

type paymentSubmitter interface {
	SubmitPayment(ctx context.Context, req gateway.PaymentRequest) (*gateway.PaymentResult, error)
	ReleaseBookingsDetached(bookingIDs []string) <-chan struct{}
}

type sessionCloser interface {
	CloseSession(ctx context.Context)
}

// Router receives the controller's navigation decisions. The bookings route
// carries a one-shot success flag for the arrival surface.
type Router interface {
	ToBookings(paymentSucceeded bool)
	ToCheckout()
}

// Controller owns one payment attempt against one checkout session. It is the
// only writer of paymentCompleted, which the teardown reaper reads.
type Controller struct {
	mu               sync.Mutex
	phase            enums.PaymentPhase
	loading          bool
	paymentCompleted bool
	lastMessage      string

	session     *types.CheckoutSession
	gatewayAPI  paymentSubmitter
	cart        *cart.Store
	coordinator sessionCloser
	router      Router
	metrics     *metrics.PaymentMetrics
	logg        *logger.Logger

	failureReturnDelay time.Duration
	now                func() time.Time
}

// ControllerParams groups the payment controller's dependencies.
type ControllerParams struct {
	Session            *types.CheckoutSession
	Gateway            paymentSubmitter
	Cart               *cart.Store
	Coordinator        sessionCloser
	Router             Router
	Metrics            *metrics.PaymentMetrics
	Logger             *logger.Logger
	FailureReturnDelay time.Duration
}

// NewController binds a controller to one checkout session. Session may be
// nil when the surface was reached without an open session; Submit then
// surfaces the session-expired path without any network traffic.
func NewController(params ControllerParams) (*Controller, error) {
	if params.Gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Coordinator == nil {
		return nil, fmt.Errorf("coordinator required")
	}
	if params.Router == nil {
		return nil, fmt.Errorf("router required")
	}
	delay := params.FailureReturnDelay
	if delay <= 0 {
		delay = defaultFailureReturnDelay
	}
	return &Controller{
		phase:              enums.PaymentPhaseIdle,
		session:            params.Session,
		gatewayAPI:         params.Gateway,
		cart:               params.Cart,
		coordinator:        params.Coordinator,
		router:             params.Router,
		metrics:            params.Metrics,
		logg:               params.Logger,
		failureReturnDelay: delay,
		now:                time.Now,
	}, nil
}

// SubmitNewCard validates and submits the raw-card payment path.
func (c *Controller) SubmitNewCard(ctx context.Context, input NewCardInput) error {
	return c.submit(ctx, enums.PaymentMethodNewCard, func() (gateway.CardData, error) {
		if err := ValidateNewCard(input); err != nil {
			return gateway.CardData{}, err
		}
		return gateway.CardData{
			CardNumber:     NormalizeCardNumber(input.CardNumber),
			CardHolderName: input.CardHolderName,
			ExpiryDate:     input.ExpiryDate,
			CVV:            input.CVV,
			ZipCode:        input.ZipCode,
		}, nil
	})
}

// SubmitSavedCard validates and submits the vaulted-card payment path. The
// zip is always included; whether the server matches it against the stored
// card or the live billing address is server-defined.
func (c *Controller) SubmitSavedCard(ctx context.Context, input SavedCardInput) error {
	return c.submit(ctx, enums.PaymentMethodSavedCard, func() (gateway.CardData, error) {
		if err := ValidateSavedCard(input); err != nil {
			return gateway.CardData{}, err
		}
		return gateway.CardData{
			CardID:  input.CardID,
			CVV:     input.CVV,
			ZipCode: input.ZipCode,
		}, nil
	})
}

// submit runs the single-attempt state machine. The loading gate is taken
// synchronously before any suspension point, so overlapping submits no-op.
func (c *Controller) submit(ctx context.Context, method enums.PaymentMethod, buildCard func() (gateway.CardData, error)) error {
	c.mu.Lock()
	if c.loading || c.phase.IsTerminal() {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.phase = enums.PaymentPhaseSubmitting
	session := c.session
	c.mu.Unlock()

	if session == nil || session.CheckoutID == "" {
		c.mu.Lock()
		c.loading = false
		c.phase = enums.PaymentPhaseIdle
		c.mu.Unlock()
		c.scheduleReturnToCheckout()
		return pkgerrors.New(pkgerrors.CodeSessionExpired, "checkout session expired")
	}

	cardData, err := buildCard()
	if err != nil {
		// Validation rejections happen before the single network attempt and
		// leave the gate open for a corrected resubmit.
		c.mu.Lock()
		c.loading = false
		c.phase = enums.PaymentPhaseIdle
		c.mu.Unlock()
		return err
	}

	started := c.now()
	result, err := c.gatewayAPI.SubmitPayment(ctx, gateway.PaymentRequest{
		CheckoutID:    session.CheckoutID,
		UserID:        session.UserID,
		BookingIDs:    session.BookingIDs(),
		PaymentMethod: method,
		CardData:      cardData,
	})

	if err == nil && result.Success {
		c.succeed(ctx, started)
		return nil
	}

	message := ""
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			message = pkgerrors.MetadataFor(typed.Code()).PublicMessage
		} else {
			message = "Payment failed, please try again."
		}
	} else {
		message = MapDeclineMessage(result.Message)
	}
	c.fail(ctx, session, message, started)
	return pkgerrors.New(pkgerrors.CodePaymentDeclined, message)
}

// succeed marks completion BEFORE navigating so the teardown reaper observes
// paymentCompleted=true and leaves the freshly Confirmed bookings alone.
func (c *Controller) succeed(ctx context.Context, started time.Time) {
	c.mu.Lock()
	c.paymentCompleted = true
	c.phase = enums.PaymentPhaseSucceeded
	c.mu.Unlock()

	c.metrics.ObserveAttempt("succeeded", c.now().Sub(started))

	if err := c.cart.Clear(ctx); err != nil && c.logg != nil {
		c.logg.Warn(ctx, fmt.Sprintf("clearing cart after payment: %v", err))
	}
	c.coordinator.CloseSession(ctx)
	c.router.ToBookings(true)
}

// fail releases the Pending bookings even though the server may already have
// transitioned them; releases are idempotent by booking id and the teardown
// reaper firing again is equally safe.
func (c *Controller) fail(ctx context.Context, session *types.CheckoutSession, message string, started time.Time) {
	c.mu.Lock()
	c.phase = enums.PaymentPhaseFailed
	c.lastMessage = message
	c.mu.Unlock()

	c.metrics.ObserveAttempt("failed", c.now().Sub(started))
	c.metrics.IncRelease("payment_failure")

	c.gatewayAPI.ReleaseBookingsDetached(session.BookingIDs())
	c.coordinator.CloseSession(ctx)
	c.scheduleReturnToCheckout()
}

func (c *Controller) scheduleReturnToCheckout() {
	time.AfterFunc(c.failureReturnDelay, c.router.ToCheckout)
}

// ConfirmBack handles the intercepted back gesture: the surface shows the
// "leaving will cancel your bookings" dialog and calls this on confirmation.
func (c *Controller) ConfirmBack(ctx context.Context) {
	c.mu.Lock()
	if c.paymentCompleted {
		c.mu.Unlock()
		return
	}
	c.phase = enums.PaymentPhaseAbandoned
	session := c.session
	c.mu.Unlock()

	if session != nil && len(session.Bookings) > 0 {
		c.metrics.IncRelease("back_navigation")
		c.gatewayAPI.ReleaseBookingsDetached(session.BookingIDs())
	}
	c.coordinator.CloseSession(ctx)
	c.router.ToCheckout()
}

// PaymentCompleted reports whether the attempt settled successfully. The
// teardown reaper keys off this.
func (c *Controller) PaymentCompleted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paymentCompleted
}

// PendingBookingIDs exposes the session's booking ids for release paths.
func (c *Controller) PendingBookingIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	return c.session.BookingIDs()
}

// Phase returns the controller's lifecycle phase.
func (c *Controller) Phase() enums.PaymentPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// LastMessage returns the user-visible message from the last failure.
func (c *Controller) LastMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastMessage
}

// Loading reports whether a submission is in flight or settled; the surface
// disables the pay button while true.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// MarkAbandoned flips the phase on teardown without a completed payment.
func (c *Controller) MarkAbandoned() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paymentCompleted && c.phase != enums.PaymentPhaseFailed {
		c.phase = enums.PaymentPhaseAbandoned
	}
}
