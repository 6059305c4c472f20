package lookup

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-lookup/internal/weather"
)

var (
	// ErrEmptyCity is returned by Search for blank input. No request is issued.
	ErrEmptyCity = errors.New("city is required")
	// ErrSuperseded is returned by Search when a newer search started before
	// this one completed. Its result was discarded.
	ErrSuperseded = errors.New("lookup superseded by a newer search")
)

// DefaultLookupTimeout bounds a single gateway round trip.
const DefaultLookupTimeout = 10 * time.Second

// Response is the raw outcome of one gateway round trip.
type Response struct {
	StatusCode int
	Body       []byte
}

// Gateway fetches current weather for a city. Implementations send the city
// exactly as given (URL-encoded) and report transport faults as errors; HTTP
// status classification is left to the controller.
type Gateway interface {
	Lookup(ctx context.Context, city string) (Response, error)
}

// Observer is notified after every state or unit change. It is called with the
// controller lock held and must not call back into the controller.
type Observer func(state State, unit weather.Unit)

// Option configures a Controller.
type Option func(*Controller)

func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

func WithUnit(u weather.Unit) Option {
	return func(c *Controller) { c.unit = u }
}

// WithLookupTimeout sets the per-lookup deadline. Zero disables it.
func WithLookupTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

func WithNow(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller owns the city input, the unit preference and the lookup
// lifecycle. Only the most recently started search may change the lifecycle.
type Controller struct {
	gateway  Gateway
	observer Observer
	timeout  time.Duration
	now      func() time.Time

	mu         sync.Mutex
	city       string
	unit       weather.Unit
	state      State
	generation uint64
}

// NewController creates an idle Controller backed by gateway.
func NewController(gateway Gateway, opts ...Option) *Controller {
	c := &Controller{
		gateway: gateway,
		timeout: DefaultLookupTimeout,
		now:     time.Now,
		state:   idle(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetCity holds the pending city text for the next search.
func (c *Controller) SetCity(name string) {
	c.mu.Lock()
	c.city = name
	c.mu.Unlock()
}

func (c *Controller) City() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.city
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Unit() weather.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unit
}

// ToggleUnit flips the unit preference and returns the new one. The lifecycle
// is left untouched and no request is made.
func (c *Controller) ToggleUnit() weather.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.unit = c.unit.Toggle()
	c.notify()
	return c.unit
}

// Search looks up city and returns the state it settled in. Blank input
// returns ErrEmptyCity without touching the lifecycle. If another search
// starts before this one completes, the result is dropped and ErrSuperseded is
// returned along with the current state.
func (c *Controller) Search(ctx context.Context, city string) (State, error) {
	if strings.TrimSpace(city) == "" {
		return c.State(), ErrEmptyCity
	}

	c.mu.Lock()
	c.generation++
	token := c.generation
	c.state = loading(c.now())
	c.notify()
	c.mu.Unlock()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	snap, err := c.fetch(ctx, city)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.generation {
		log.Printf("DEBUG: lookup: dropping stale result for %q (request %d, current %d)", city, token, c.generation)
		return c.state, ErrSuperseded
	}

	if err != nil {
		c.state = failed(weather.FailureMessage(err), c.now())
	} else {
		c.state = succeeded(snap, c.now())
	}
	c.notify()
	return c.state, nil
}

// fetch performs one round trip and classifies it. Panics from the gateway
// are turned into errors so nothing escapes the controller.
func (c *Controller) fetch(ctx context.Context, city string) (snap weather.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: lookup: gateway panicked for %q: %v", city, r)
			snap, err = weather.Snapshot{}, errors.New(weather.FallbackMessage)
		}
	}()

	resp, err := c.gateway.Lookup(ctx, city)
	if err != nil {
		return weather.Snapshot{}, err
	}
	return classify(resp)
}

// classify maps a gateway response onto the failure taxonomy.
func classify(resp Response) (weather.Snapshot, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return weather.Snapshot{}, weather.ErrCityNotFound
	}
	return weather.DecodeSnapshot(resp.Body)
}

func (c *Controller) notify() {
	if c.observer != nil {
		c.observer(c.state, c.unit)
	}
}
