// Package shell owns the per-visitor UI state: the active tab, the cart and the
// cosmetic header title toggle.
package shell

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// DefaultTitleInterval is how often the header title alternates.
const DefaultTitleInterval = 4 * time.Second

// ErrUnknownProduct is returned when toggling an id that names no product.
var ErrUnknownProduct = errors.New("shell: unknown product")

// ProductSet answers whether a product id exists. *catalog.Registry satisfies it.
type ProductSet interface {
	HasProduct(id string) bool
}

// Ticker is the subset of time.Ticker the title toggle needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker { return timeTicker{t: time.NewTicker(d)} }

// Option configures a Shell.
type Option func(*Shell)

// WithProducts restricts cart toggles to ids known to set.
func WithProducts(set ProductSet) Option {
	return func(s *Shell) { s.products = set }
}

// WithTitleInterval overrides DefaultTitleInterval. Non-positive values are ignored.
func WithTitleInterval(d time.Duration) Option {
	return func(s *Shell) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTicker replaces the ticker factory, primarily for tests.
func WithTicker(fn TickerFunc) Option {
	return func(s *Shell) {
		if fn != nil {
			s.newTicker = fn
		}
	}
}

// Snapshot is a read-only copy of the shell state.
type Snapshot struct {
	Tab       Tab
	CartIDs   []string
	TitleFull bool
}

// CartCount is the number of distinct products in the cart.
func (s Snapshot) CartCount() int { return len(s.CartIDs) }

// InCart reports whether id is in the cart.
func (s Snapshot) InCart(id string) bool { return slices.Contains(s.CartIDs, id) }

// Shell is safe for concurrent use. Every transition is applied atomically.
type Shell struct {
	mu        sync.Mutex
	tab       Tab
	cart      Cart
	titleFull bool

	products  ProductSet
	interval  time.Duration
	newTicker TickerFunc

	changes chan struct{}
	stop    chan struct{}
	done    chan struct{}
	started bool
	closed  bool
}

// New returns a shell on the welcome tab with an empty cart and the full title
// shown. Call Start to run the title timer and Close to release it.
func New(opts ...Option) *Shell {
	s := &Shell{
		tab:       TabWelcome,
		titleFull: true,
		interval:  DefaultTitleInterval,
		newTicker: newTimeTicker,
		changes:   make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectTab makes t the active tab. Values outside the enumeration are ignored
// and reported with false.
func (s *Shell) SelectTab(t Tab) bool {
	if !t.Valid() {
		return false
	}
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()
	return true
}

// Tab returns the active tab.
func (s *Shell) Tab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// ToggleCart flips the cart membership of id and returns the new membership.
func (s *Shell) ToggleCart(id string) (bool, error) {
	if s.products != nil && !s.products.HasProduct(id) {
		return false, fmt.Errorf("%w: %q", ErrUnknownProduct, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Toggle(id), nil
}

// Snapshot copies the current state.
func (s *Shell) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Tab:       s.tab,
		CartIDs:   s.cart.IDs(),
		TitleFull: s.titleFull,
	}
}

// Changes delivers a coalesced notification after every title toggle.
func (s *Shell) Changes() <-chan struct{} { return s.changes }

// Start launches the title timer. It is a no-op when already started or closed.
func (s *Shell) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return
	}
	s.started = true
	t := s.newTicker(s.interval)
	go s.run(t)
}

func (s *Shell) run(t Ticker) {
	defer close(s.done)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C():
			s.toggleTitle()
		}
	}
}

func (s *Shell) toggleTitle() {
	s.mu.Lock()
	s.titleFull = !s.titleFull
	s.mu.Unlock()
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Close stops the title timer and waits for it to exit. Safe to call more than once.
func (s *Shell) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	started := s.started
	s.mu.Unlock()

	close(s.stop)
	if started {
		<-s.done
	}
	return nil
}
