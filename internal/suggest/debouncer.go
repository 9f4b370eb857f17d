package suggest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashidharbabu/aerive-client/pkg/logger"
)

const defaultDelay = 300 * time.Millisecond

type suggestionGateway interface {
	ListSuggestions(ctx context.Context, query string) ([]string, error)
}

// Debouncer coalesces rapid keystrokes into one provider-suggestion lookup.
// Stale responses are discarded by generation so an older in-flight fetch can
// never overwrite a newer query's results.
type Debouncer struct {
	mu         sync.Mutex
	gatewayAPI suggestionGateway
	logg       *logger.Logger
	delay      time.Duration
	timer      *time.Timer
	generation int
}

// NewDebouncer builds the suggestion debouncer; delay <= 0 uses the default.
func NewDebouncer(gatewayAPI suggestionGateway, logg *logger.Logger, delay time.Duration) (*Debouncer, error) {
	if gatewayAPI == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if delay <= 0 {
		delay = defaultDelay
	}
	return &Debouncer{
		gatewayAPI: gatewayAPI,
		logg:       logg,
		delay:      delay,
	}, nil
}

// Query schedules a lookup for the latest input. deliver receives the
// suggestions on success or nil when the lookup failed or was superseded;
// a nil delivery hides the dropdown.
func (d *Debouncer) Query(ctx context.Context, input string, deliver func([]string)) {
	d.mu.Lock()
	d.generation++
	generation := d.generation
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.run(ctx, generation, input, deliver)
	})
	d.mu.Unlock()
}

// Cancel drops any pending lookup, e.g. when the search surface unmounts.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) run(ctx context.Context, generation int, input string, deliver func([]string)) {
	suggestions, err := d.gatewayAPI.ListSuggestions(ctx, input)
	if err != nil {
		if d.logg != nil {
			d.logg.Debug(ctx, fmt.Sprintf("suggestion lookup failed: %v", err))
		}
		suggestions = nil
	}

	d.mu.Lock()
	current := d.generation == generation
	d.mu.Unlock()
	if !current {
		return
	}
	deliver(suggestions)
}
