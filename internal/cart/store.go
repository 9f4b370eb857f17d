package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashidharbabu/aerive-client/internal/storage"
	"github.com/shashidharbabu/aerive-client/pkg/enums"
	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
	"github.com/shashidharbabu/aerive-client/pkg/logger"
	"github.com/shashidharbabu/aerive-client/pkg/types"
)

// Item is one prospective purchase line in the cart.
type Item struct {
	ListingID   string             `json:"listingId"`
	ListingType enums.ListingType  `json:"listingType"`
	Variant     string             `json:"variant,omitempty"`
	Dates       types.VariantDates `json:"dates"`
	Quantity    int                `json:"quantity"`
	UnitPrice   decimal.Decimal    `json:"unitPrice"`
	Name        string             `json:"name"`
	Image       string             `json:"image,omitempty"`
	Address     string             `json:"address,omitempty"`
	AddedAt     time.Time          `json:"addedAt"`
}

// Identity is the composite key that makes two lines the same purchase: same
// listing, same type, same variant, same dates. Everything else is display.
type Identity struct {
	ListingID   string
	ListingType enums.ListingType
	Variant     string
	DatesKey    string
}

// Identity derives the composite key for the item.
func (i Item) Identity() Identity {
	return Identity{
		ListingID:   i.ListingID,
		ListingType: i.ListingType,
		Variant:     i.Variant,
		DatesKey:    i.Dates.Key(),
	}
}

// Listener receives a snapshot of the cart after each mutation.
type Listener func(items []Item)

// Store is the durable cart state container. In-memory state is authoritative
// for the session; the durable store is written through on every mutation and
// write failures surface to the caller without rolling anything back.
type Store struct {
	mu        sync.Mutex
	items     []Item
	durable   storage.Store
	logg      *logger.Logger
	listeners map[int]Listener
	nextSub   int
}

// NewStore builds the cart container and hydrates it from durable storage.
// A corrupt persisted cart is discarded rather than blocking startup.
func NewStore(ctx context.Context, durable storage.Store, logg *logger.Logger) (*Store, error) {
	if durable == nil {
		return nil, fmt.Errorf("durable store required")
	}
	s := &Store{
		durable:   durable,
		logg:      logg,
		listeners: map[int]Listener{},
	}

	raw, ok, err := durable.Get(ctx, storage.KeyCart)
	if err != nil {
		return nil, fmt.Errorf("hydrating cart: %w", err)
	}
	if ok && raw != "" {
		var items []Item
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			if logg != nil {
				logg.Warn(ctx, "discarding unreadable persisted cart")
			}
		} else {
			s.items = items
		}
	}
	return s, nil
}

// Add merges the item into the cart. A line matching the full composite
// identity has its quantity incremented; otherwise the item is appended with
// its addedAt timestamp. Non-positive quantities coerce to 1.
func (s *Store) Add(ctx context.Context, item Item) error {
	if !item.ListingType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid listing type")
	}
	if item.ListingID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "listing id is required")
	}
	if err := item.Dates.ValidateFor(item.ListingType); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item dates")
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	s.mu.Lock()
	identity := item.Identity()
	merged := false
	for idx := range s.items {
		if s.items[idx].Identity() == identity {
			s.items[idx].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now()
		}
		s.items = append(s.items, item)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return s.persist(ctx, snapshot)
}

// Remove deletes the line matching the full composite identity. Lines sharing
// the listing id but differing in variant or dates stay.
func (s *Store) Remove(ctx context.Context, identity Identity) error {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.Identity() != identity {
			kept = append(kept, item)
		}
	}
	s.items = kept
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return s.persist(ctx, snapshot)
}

// SetQuantity pins the quantity of the identified line; anything at or below
// zero removes it.
func (s *Store) SetQuantity(ctx context.Context, identity Identity, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, identity)
	}

	s.mu.Lock()
	for idx := range s.items {
		if s.items[idx].Identity() == identity {
			s.items[idx].Quantity = quantity
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return s.persist(ctx, snapshot)
}

// Clear empties the cart and drops any cached checkout id: an empty cart can
// no longer back an open session.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)

	if err := s.durable.Delete(ctx, storage.KeyCheckoutID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("dropping cached checkout id: %v", err))
	}
	return s.persist(ctx, snapshot)
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// TotalQuantity sums the line quantities.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums unit price times quantity across all lines.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Subscribe registers a listener for cart snapshots. The returned function
// unsubscribes it.
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotLocked() []Item {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

func (s *Store) notify(snapshot []Item) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
}

func (s *Store) persist(ctx context.Context, snapshot []Item) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serialize cart")
	}
	if err := s.durable.Set(ctx, storage.KeyCart, string(payload)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}
