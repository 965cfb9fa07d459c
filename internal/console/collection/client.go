// Package collection implements the remote-backed paginated table contract
// shared by every list view: it owns the page/pageSize/search/filter state of
// one view, re-fetches on every state change, and reconciles server-reported
// pagination metadata back into local state. One generic client replaces the
// per-view copies such a dashboard tends to accumulate.
package collection

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/ledgerdesk/ledgerdesk/internal/domain"
)

const (
	// DefaultDebounce is the quiet period applied to search input before it
	// affects fetching.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultFetchTimeout bounds one fetch so a lost response surfaces as an
	// error instead of leaving the view loading forever.
	DefaultFetchTimeout = 15 * time.Second
)

// DefaultPageSizes is the allowed page size set.
var DefaultPageSizes = []int{10, 20, 30, 40, 50}

// Query is the local query state of one list view. PageIndex is 0-based.
type Query struct {
	PageIndex int
	PageSize  int
	Search    string
	Filters   map[string]string
}

// Request is the wire form of a query: Page is 1-based, as the backend
// expects.
type Request struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

// Fetcher loads one page of a resource.
type Fetcher[T any] func(ctx context.Context, req Request) (*domain.PageResult[T], error)

// Snapshot is a consistent view of the client's state at one instant.
type Snapshot[T any] struct {
	Items   []T
	Meta    domain.PageMeta
	HasMeta bool
	Loading bool
	Err     error
	Query   Query
}

// Option configures a Client.
type Option[T any] func(*Client[T])

// WithDebounce sets the search quiet period. Zero applies search changes
// immediately, which tests rely on.
func WithDebounce[T any](d time.Duration) Option[T] {
	return func(c *Client[T]) { c.debounceDelay = d }
}

// WithFetchTimeout sets the per-fetch timeout.
func WithFetchTimeout[T any](d time.Duration) Option[T] {
	return func(c *Client[T]) { c.fetchTimeout = d }
}

// WithPageSizes replaces the allowed page size set. The first entry is the
// initial page size.
func WithPageSizes[T any](sizes []int) Option[T] {
	return func(c *Client[T]) { c.pageSizes = sizes }
}

// WithOnChange registers a callback invoked with a fresh snapshot after every
// state change, on whichever goroutine produced the change.
func WithOnChange[T any](fn func(Snapshot[T])) Option[T] {
	return func(c *Client[T]) { c.onChange = fn }
}

// Client owns the query state for one list view and keeps it reconciled with
// the server. All methods are safe for concurrent use.
type Client[T any] struct {
	mu sync.Mutex

	fetch         Fetcher[T]
	debounceDelay time.Duration
	fetchTimeout  time.Duration
	pageSizes     []int
	onChange      func(Snapshot[T])

	debounce *Debouncer

	query   Query
	items   []T
	meta    domain.PageMeta
	hasMeta bool
	loading bool
	err     error

	// gen guards against stale responses: a fetch result only applies while
	// its generation is still the latest one issued.
	gen uint64
}

// New creates a Client around the given fetcher. No fetch is issued until
// Refetch or a state change.
func New[T any](fetch Fetcher[T], opts ...Option[T]) *Client[T] {
	c := &Client[T]{
		fetch:         fetch,
		debounceDelay: DefaultDebounce,
		fetchTimeout:  DefaultFetchTimeout,
		pageSizes:     DefaultPageSizes,
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.pageSizes) == 0 {
		c.pageSizes = DefaultPageSizes
	}
	c.query.PageSize = c.pageSizes[0]
	c.debounce = NewDebouncer(c.debounceDelay)
	return c
}

// Close cancels any pending debounced search. In-flight fetches finish on
// their own and are discarded if superseded.
func (c *Client[T]) Close() {
	c.debounce.Stop()
}

// Snapshot returns the current state.
func (c *Client[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetPageIndex moves to the given 0-based page and fetches it. Once server
// metadata exists the index is clamped to [0, pageCount-1], so a page beyond
// the last one is never requested.
func (c *Client[T]) SetPageIndex(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 {
		i = 0
	}
	if c.hasMeta && c.meta.PageCount > 0 && i > c.meta.PageCount-1 {
		i = c.meta.PageCount - 1
	}
	if i == c.query.PageIndex {
		return
	}
	c.query.PageIndex = i
	c.refetchLocked()
}

// NextPage and PreviousPage move relative to the current page.
func (c *Client[T]) NextPage()     { c.SetPageIndex(c.Snapshot().Query.PageIndex + 1) }
func (c *Client[T]) PreviousPage() { c.SetPageIndex(c.Snapshot().Query.PageIndex - 1) }

// SetPageSize switches to one of the allowed page sizes and fetches. Sizes
// outside the allowed set are ignored. The page index is clamped against the
// page count implied by the last known total, so enlarging the size from a
// deep page never requests past the end of the shrunken result.
func (c *Client[T]) SetPageSize(n int) {
	if !slices.Contains(c.pageSizes, n) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if n == c.query.PageSize {
		return
	}
	c.query.PageSize = n
	if c.hasMeta && c.meta.Total > 0 {
		last := int((c.meta.Total+int64(n)-1)/int64(n)) - 1
		if c.query.PageIndex > last {
			c.query.PageIndex = last
		}
	}
	c.refetchLocked()
}

// SetSearch records a new search term. The term only affects fetching after
// the debounce quiet period; typing within the period collapses to a single
// fetch with the final term. Applying a changed term resets the page index
// to 0 first.
func (c *Client[T]) SetSearch(term string) {
	c.debounce.Arm(func() { c.applySearch(term) })
}

func (c *Client[T]) applySearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if term == c.query.Search {
		return
	}
	c.query.Search = term
	c.query.PageIndex = 0
	c.refetchLocked()
}

// SetFilter sets or clears (empty value) a named discrete filter and fetches.
// A changed filter resets the page index to 0 first.
func (c *Client[T]) SetFilter(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.query.Filters[name]
	if ok && current == value || !ok && value == "" {
		return
	}

	if c.query.Filters == nil {
		c.query.Filters = make(map[string]string)
	}
	if value == "" {
		delete(c.query.Filters, name)
	} else {
		c.query.Filters[name] = value
	}
	c.query.PageIndex = 0
	c.refetchLocked()
}

// ClearFilters drops the search term and every filter, resets to the first
// page, and fetches.
func (c *Client[T]) ClearFilters() {
	c.debounce.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.query.Search == "" && len(c.query.Filters) == 0 {
		return
	}
	c.query.Search = ""
	c.query.Filters = nil
	c.query.PageIndex = 0
	c.refetchLocked()
}

// Refetch re-issues a fetch with the current query, superseding any fetch
// still in flight.
func (c *Client[T]) Refetch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refetchLocked()
}

// refetchLocked starts a new fetch generation. The caller holds c.mu.
func (c *Client[T]) refetchLocked() {
	c.gen++
	gen := c.gen
	req := Request{
		// The backend is 1-based; translate on every request.
		Page:    c.query.PageIndex + 1,
		Limit:   c.query.PageSize,
		Search:  c.query.Search,
		Filters: maps.Clone(c.query.Filters),
	}
	c.loading = true
	go c.run(gen, req)
}

// run performs one fetch and applies its result unless a newer generation
// superseded it while it was in flight.
func (c *Client[T]) run(gen uint64, req Request) {
	ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
	defer cancel()

	page, err := c.fetch(ctx, req)

	c.mu.Lock()
	if gen != c.gen {
		// Superseded; a later request's result is authoritative regardless
		// of arrival order.
		c.mu.Unlock()
		return
	}

	c.loading = false
	if err != nil {
		// Keep the previously displayed items so a transient failure does
		// not flash the view to an empty state.
		c.err = err
	} else {
		c.err = nil
		c.items = page.Items
		c.meta = page.Meta
		c.hasMeta = true
		// The server is authoritative over page and limit, e.g. after
		// clamping.
		if idx := page.Meta.Page - 1; idx >= 0 {
			c.query.PageIndex = idx
		}
		if page.Meta.Limit > 0 {
			c.query.PageSize = page.Meta.Limit
		}
	}

	snap := c.snapshotLocked()
	cb := c.onChange
	c.mu.Unlock()

	if cb != nil {
		cb(snap)
	}
}

// snapshotLocked builds a Snapshot. The caller holds c.mu.
func (c *Client[T]) snapshotLocked() Snapshot[T] {
	q := c.query
	q.Filters = maps.Clone(c.query.Filters)
	return Snapshot[T]{
		Items:   slices.Clone(c.items),
		Meta:    c.meta,
		HasMeta: c.hasMeta,
		Loading: c.loading,
		Err:     c.err,
		Query:   q,
	}
}
