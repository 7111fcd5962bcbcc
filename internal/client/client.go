// Package client implements the query lifecycle: it turns user input into a
// validated search, runs it through a Searcher and exposes one render State.
package client

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/JingYiJun/ClassicIndex/internal/log"
	"github.com/JingYiJun/ClassicIndex/internal/models"
	"github.com/JingYiJun/ClassicIndex/internal/prefs"
)

const (
	MinResultCount     = 1
	MaxResultCount     = 20
	DefaultResultCount = 10

	// ResultCountKey is the preference-store key of the result count.
	ResultCountKey = "classicindex-top-k"
)

// Searcher runs one search request against the proxy.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error)
}

// Pending identifies one issued search. Its outcome is applied only while no
// later search has been issued.
type Pending struct {
	Generation uint64
	Request    models.SearchRequest
}

// Client owns the query text, the result-count preference and the render state.
// It is safe for concurrent use; searches resolving out of order never
// overwrite the outcome of a later search.
type Client struct {
	searcher Searcher
	store    prefs.Store
	onChange func(State)
	logger   *log.Logger

	mu         sync.Mutex
	query      string
	topK       int
	state      State
	searched   bool
	generation uint64
	// staleStore is set while the store holds a value other than topK
	staleStore bool
}

type Option func(*Client)

// WithPreferences loads the result count from store and saves changes to it.
func WithPreferences(store prefs.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithOnChange registers fn to be called after every state transition.
func WithOnChange(fn func(State)) Option {
	return func(c *Client) {
		c.onChange = fn
	}
}

// New creates a client in the Idle state.
func New(searcher Searcher, opts ...Option) (*Client, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	c := &Client{
		searcher: searcher,
		logger:   log.ForService("client"),
		topK:     DefaultResultCount,
		state:    Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.topK, c.staleStore = c.loadResultCount()
	return c, nil
}

// loadResultCount reads the stored preference. An absent, unreadable or
// non-numeric value falls back to the default without surfacing an error.
// stale reports that the stored text differs from the value returned, so the
// next UpdateResultCount rewrites it.
func (c *Client) loadResultCount() (n int, stale bool) {
	if c.store == nil {
		return DefaultResultCount, false
	}

	raw, err := c.store.Get(ResultCountKey)
	if errors.Is(err, prefs.ErrNotFound) {
		return DefaultResultCount, false
	}
	if err != nil {
		c.logger.Warnf("reading result count: %v", err)
		return DefaultResultCount, false
	}

	n, err = strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.logger.Debugf("ignoring stored result count %q", raw)
		return DefaultResultCount, true
	}
	n = ClampResultCount(n)
	return n, raw != strconv.Itoa(n)
}

// ClampResultCount limits n to [MinResultCount, MaxResultCount]
func ClampResultCount(n int) int {
	if n < MinResultCount {
		return MinResultCount
	}
	if n > MaxResultCount {
		return MaxResultCount
	}
	return n
}

// UpdateQuery stores the raw input text. Nothing is validated here.
func (c *Client) UpdateQuery(text string) {
	c.mu.Lock()
	c.query = text
	c.mu.Unlock()
}

// UpdateResultCount clamps n and saves it when it differs from the current
// value or the stored one was sanitized on load. It never touches the network.
// It returns the effective value.
func (c *Client) UpdateResultCount(n int) int {
	n = ClampResultCount(n)

	c.mu.Lock()
	defer c.mu.Unlock()
	if n == c.topK && !c.staleStore {
		return n
	}
	c.topK = n

	if c.store != nil {
		if err := c.store.Set(ResultCountKey, strconv.Itoa(n)); err != nil {
			c.logger.Warnf("saving result count: %v", err)
			c.staleStore = true
			return n
		}
	}
	c.staleStore = false
	return n
}

func (c *Client) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *Client) ResultCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topK
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Searched reports whether a search has ever been issued. It stays true once set.
func (c *Client) Searched() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searched
}

// Begin validates the current query and, when it is usable, moves to Loading
// and returns the request to send. An empty or whitespace-only query moves to
// Warning instead and returns false; no request may be sent then, and any
// search still pending becomes stale.
func (c *Client) Begin() (Pending, bool) {
	c.mu.Lock()

	query := strings.TrimSpace(c.query)
	if query == "" {
		// Supersede any search still in flight so it cannot replace the warning
		c.generation++
		c.state = Warning{Message: EmptyQueryMessage}
		c.mu.Unlock()
		c.notify()
		return Pending{}, false
	}

	c.generation++
	c.searched = true
	c.state = Loading{}
	p := Pending{
		Generation: c.generation,
		Request:    models.SearchRequest{Query: query, TopK: c.topK},
	}
	c.mu.Unlock()

	c.notify()
	return p, true
}

// Resolve applies the outcome of p. It reports false, leaving the state
// untouched, when a later search has been issued since p.
func (c *Client) Resolve(p Pending, resp *models.SearchResponse, err error) bool {
	c.mu.Lock()
	if p.Generation != c.generation {
		c.mu.Unlock()
		c.logger.Debugf("discarding stale result for generation %d (current %d)", p.Generation, c.generation)
		return false
	}

	switch {
	case err != nil:
		c.logger.Debugf("search %q failed: %v", p.Request.Query, err)
		c.state = Error{Message: failureMessage(err)}
	case resp == nil:
		c.state = Error{Message: UnknownErrorMessage}
	default:
		items := resp.Results
		if items == nil {
			items = []models.SearchResult{}
		}
		c.state = Results{Items: items}
	}
	c.mu.Unlock()

	c.notify()
	return true
}

// SubmitSearch runs a full search: Begin, one call to the Searcher, Resolve.
// It returns the state once this search has settled, which is a later search's
// state if this one was superseded.
func (c *Client) SubmitSearch(ctx context.Context) State {
	p, ok := c.Begin()
	if !ok {
		return c.State()
	}

	resp, err := c.searcher.Search(ctx, p.Request)
	c.Resolve(p, resp, err)
	return c.State()
}

// HandleKey submits a search when ev is an activation key.
// It reports whether a submission was attempted.
func (c *Client) HandleKey(ctx context.Context, ev KeyEvent) bool {
	if !IsSubmitKey(ev) {
		return false
	}
	c.SubmitSearch(ctx)
	return true
}

func (c *Client) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.State())
}
