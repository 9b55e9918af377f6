package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/top2000/internal/api"
)

// Defaults used when Options leave a field unset.
const (
	DefaultMinQueryLength = 2
	DefaultDebounce       = 300 * time.Millisecond
	DefaultLimit          = 5
	DefaultTimeout        = 5 * time.Second
	DefaultMaxExpand      = 2
)

// State is the lifecycle state of the controller.
type State int

const (
	StateIdle State = iota
	StatePending
	StateResolving
	StateSettled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolving:
		return "resolving"
	case StateSettled:
		return "settled"
	default:
		return "idle"
	}
}

// FetchFunc looks up candidates for a query on one search axis.
type FetchFunc func(ctx context.Context, query string) ([]Candidate, error)

// ExpandFunc returns secondary candidates for an artist that matched by name.
type ExpandFunc func(ctx context.Context, artist api.Artist) ([]Candidate, error)

// Axis is one primary search source.
type Axis struct {
	Name  string
	Fetch FetchFunc
}

// Options configures a Controller.
type Options struct {
	Axes []Axis
	// Expand, when set, is called for artists whose name matches the query
	// exactly or by prefix. Its results are merged after the primary axes.
	Expand    ExpandFunc
	MaxExpand int

	MinQueryLength int
	Debounce       time.Duration
	Limit          int           // <= 0 keeps every result
	Timeout        time.Duration // per resolution

	Scheduler Scheduler
	Logger    *slog.Logger
}

// DefaultOptions returns options with the default policy and no axes.
func DefaultOptions() Options {
	return Options{
		MaxExpand:      DefaultMaxExpand,
		MinQueryLength: DefaultMinQueryLength,
		Debounce:       DefaultDebounce,
		Limit:          DefaultLimit,
		Timeout:        DefaultTimeout,
	}
}

// Snapshot is a read-only view of the controller state.
type Snapshot struct {
	Query      string
	State      State
	Items      []DisplayItem
	Generation uint64
	// Seq increases with every change. Subscribers use it to drop
	// notifications delivered out of order.
	Seq uint64
}

// Resolved reports whether the items reflect a completed lookup.
func (s Snapshot) Resolved() bool {
	return s.State == StateSettled
}

// Target is where a selected result navigates to.
type Target struct {
	Kind Kind
	ID   api.ID
	Path string
}

// Controller turns keystrokes into debounced, ranked lookups. It owns the
// query text, the result set and the pending task.
type Controller struct {
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	query       string
	state       State
	generation  uint64
	seq         uint64
	ranked      []Ranked
	items       []DisplayItem
	task        Task
	inflight    context.CancelFunc
	subscribers map[int]func(Snapshot)
	nextSubID   int
	closed      bool
}

// NewController creates a controller.
func NewController(opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = RealTime
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MinQueryLength < 0 {
		opts.MinQueryLength = 0
	}
	if opts.MaxExpand <= 0 {
		opts.MaxExpand = DefaultMaxExpand
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		opts:        opts,
		ctx:         ctx,
		cancel:      cancel,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription. fn runs outside the controller lock,
// possibly on a timer goroutine.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// MinQueryLength returns the shortest query that triggers a lookup.
func (c *Controller) MinQueryLength() int {
	return c.opts.MinQueryLength
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetQuery records new input text and drops the previous results. Short or
// empty input goes back to idle; anything else (re)starts the debounce delay.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.query = q
	c.supersedeLocked()

	if c.tooShort(q) {
		c.resetLocked()
	} else {
		gen := c.generation
		c.state = StatePending
		c.task = c.opts.Scheduler.AfterFunc(c.opts.Debounce, func() {
			c.fire(gen)
		})
	}
	c.commitLocked()
}

// Submit resolves the current query now, skipping the debounce delay.
// It blocks until the lookup completes and returns the resulting state.
func (c *Controller) Submit(ctx context.Context) Snapshot {
	c.mu.Lock()
	if c.closed {
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}

	c.supersedeLocked()
	if c.tooShort(c.query) {
		c.resetLocked()
		c.commitLocked()
		return c.Snapshot()
	}

	gen, query := c.generation, c.query
	rctx, cancel := c.startLocked(ctx)
	c.commitLocked()

	c.resolve(rctx, gen, query)
	cancel()
	return c.Snapshot()
}

// Select picks the i-th displayed result. The result set is cleared and the
// query text replaced by the result's text. Only settled results can be
// selected.
func (c *Controller) Select(i int) (Target, bool) {
	c.mu.Lock()
	if c.closed || c.state != StateSettled || i < 0 || i >= len(c.ranked) {
		c.mu.Unlock()
		return Target{}, false
	}

	selected := c.ranked[i]
	text := selected.Text()
	if text == "" && i < len(c.items) {
		text = c.items[i].Title
	}
	key := selected.Key()

	c.supersedeLocked()
	c.query = text
	c.resetLocked()
	c.commitLocked()

	return Target{Kind: key.Kind, ID: key.ID, Path: key.Path()}, true
}

// Clear drops the results and any pending lookup, keeping the query text.
func (c *Controller) Clear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.supersedeLocked()
	c.resetLocked()
	c.commitLocked()
}

// Close stops the pending task and cancels in-flight lookups. Subscribers
// are not notified afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.supersedeLocked()
	c.subscribers = nil
	c.cancel()
}

func (c *Controller) tooShort(q string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(q))
	return n == 0 || n < c.opts.MinQueryLength
}

// supersedeLocked invalidates the pending task, any in-flight lookup and
// the results of the previous query.
func (c *Controller) supersedeLocked() {
	c.generation++
	c.ranked = nil
	c.items = nil
	if c.task != nil {
		c.task.Stop()
		c.task = nil
	}
	if c.inflight != nil {
		c.inflight()
		c.inflight = nil
	}
}

func (c *Controller) resetLocked() {
	c.state = StateIdle
	c.ranked = nil
	c.items = nil
}

// startLocked moves to Resolving and returns the lookup context.
func (c *Controller) startLocked(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, c.opts.Timeout)
	stop := context.AfterFunc(c.ctx, cancel)
	c.inflight = cancel
	c.state = StateResolving
	return ctx, func() {
		stop()
		cancel()
	}
}

// commitLocked bumps the sequence, releases the lock and notifies
// subscribers with the new state.
func (c *Controller) commitLocked() {
	c.seq++
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	var items []DisplayItem
	if len(c.items) > 0 {
		items = make([]DisplayItem, len(c.items))
		copy(items, c.items)
	}
	return Snapshot{
		Query:      c.query,
		State:      c.state,
		Items:      items,
		Generation: c.generation,
		Seq:        c.seq,
	}
}

// fire runs on the scheduler when the debounce delay of generation gen ends.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.task = nil
	query := c.query
	ctx, cancel := c.startLocked(context.Background())
	c.commitLocked()

	c.resolve(ctx, gen, query)
	cancel()
}

// resolve looks the query up on every axis and commits the ranked results
// if gen is still current.
func (c *Controller) resolve(ctx context.Context, gen uint64, query string) {
	ranked := Rank(query, c.lookup(ctx, query))
	if c.opts.Limit > 0 && len(ranked) > c.opts.Limit {
		ranked = ranked[:c.opts.Limit]
	}
	items := Present(ranked, c.opts.Limit)

	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		c.opts.Logger.Debug("discarding stale search results", "query", query, "generation", gen)
		return
	}
	c.inflight = nil
	c.ranked = ranked
	c.items = items
	c.state = StateSettled
	c.commitLocked()
}

// lookup queries the primary axes in parallel, then expands matched artists.
// A failing axis contributes no candidates.
func (c *Controller) lookup(ctx context.Context, query string) []Candidate {
	results := make([][]Candidate, len(c.opts.Axes))

	var g errgroup.Group
	for i, axis := range c.opts.Axes {
		g.Go(func() error {
			cands, err := axis.Fetch(ctx, query)
			if err != nil {
				c.logFailure(axis.Name, query, err)
				return nil
			}
			results[i] = cands
			return nil
		})
	}
	_ = g.Wait()

	var merged []Candidate
	for _, r := range results {
		merged = Merge(merged, r)
	}

	if c.opts.Expand == nil {
		return merged
	}
	return Merge(merged, c.expand(ctx, query, merged))
}

func (c *Controller) expand(ctx context.Context, query string, primary []Candidate) []Candidate {
	var artists []api.Artist
	for _, r := range Rank(query, primary) {
		if len(artists) == c.opts.MaxExpand {
			break
		}
		if r.Artist != nil && r.Class <= ClassPrefix {
			artists = append(artists, *r.Artist)
		}
	}
	if len(artists) == 0 {
		return nil
	}

	results := make([][]Candidate, len(artists))
	var g errgroup.Group
	for i, artist := range artists {
		g.Go(func() error {
			cands, err := c.opts.Expand(ctx, artist)
			if err != nil {
				c.logFailure("artist songs", query, err)
				return nil
			}
			results[i] = cands
			return nil
		})
	}
	_ = g.Wait()

	var expanded []Candidate
	for _, r := range results {
		expanded = Merge(expanded, r)
	}
	return expanded
}

func (c *Controller) logFailure(axis, query string, err error) {
	if errors.Is(err, context.Canceled) {
		c.opts.Logger.Debug("search axis cancelled", "axis", axis, "query", query)
		return
	}
	c.opts.Logger.Warn("search axis failed", "axis", axis, "query", query, "error", err)
}
