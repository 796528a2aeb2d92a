package feed

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/mediafeed/internal/metrics"
	"github.com/idilsaglam/mediafeed/internal/model"
)

const (
	DefaultRefreshDelay  = 500 * time.Millisecond
	DefaultLoadMoreDelay = 300 * time.Millisecond
	DefaultInitialBatch  = 8
	DefaultPageSize      = 4
)

// RefreshPolicy decides what a Refresh call does while another refresh is
// still pending.
type RefreshPolicy string

const (
	// RefreshRestart drops the pending completion and schedules a new one.
	RefreshRestart RefreshPolicy = "restart"
	// RefreshCoalesce ignores the call, like LoadMore does.
	RefreshCoalesce RefreshPolicy = "coalesce"
)

// ParseRefreshPolicy maps a config string to a policy. Empty means restart.
func ParseRefreshPolicy(s string) (RefreshPolicy, error) {
	switch RefreshPolicy(s) {
	case "", RefreshRestart:
		return RefreshRestart, nil
	case RefreshCoalesce:
		return RefreshCoalesce, nil
	}
	return "", fmt.Errorf("unknown refresh policy %q", s)
}

// Options configure a Controller. Zero values take the defaults above.
type Options struct {
	Generator     *Generator
	RefreshDelay  time.Duration
	LoadMoreDelay time.Duration
	InitialBatch  int
	PageSize      int
	RefreshPolicy RefreshPolicy
	Logger        log.FieldLogger
}

// Controller owns the feed list and the two status flags for one screen
// session. The renderer reads state through the Observe* subjects and
// changes it only through the methods below.
//
// Slices published by the controller are shared with every observer and
// must be treated as read-only.
type Controller struct {
	gen           *Generator
	refreshDelay  time.Duration
	loadMoreDelay time.Duration
	initialBatch  int
	pageSize      int
	policy        RefreshPolicy
	log           log.FieldLogger

	items       *Subject[[]model.FeedItem]
	refreshing  *Subject[bool]
	loadingMore *Subject[bool]

	mu             sync.Mutex // single writer for everything below and for the subjects
	closed         bool
	refreshTimer   *time.Timer
	refreshSeq     uint64
	refreshStarted time.Time
	loadTimer      *time.Timer
	loadStarted    time.Time
}

// NewController builds a controller and generates the initial batch.
func NewController(opts Options) *Controller {
	if opts.Generator == nil {
		opts.Generator = NewGenerator(GeneratorOptions{})
	}
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = DefaultRefreshDelay
	}
	if opts.LoadMoreDelay <= 0 {
		opts.LoadMoreDelay = DefaultLoadMoreDelay
	}
	if opts.InitialBatch <= 0 {
		opts.InitialBatch = DefaultInitialBatch
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.RefreshPolicy == "" {
		opts.RefreshPolicy = RefreshRestart
	}
	if opts.Logger == nil {
		opts.Logger = log.WithField("component", "feed")
	}

	c := &Controller{
		gen:           opts.Generator,
		refreshDelay:  opts.RefreshDelay,
		loadMoreDelay: opts.LoadMoreDelay,
		initialBatch:  opts.InitialBatch,
		pageSize:      opts.PageSize,
		policy:        opts.RefreshPolicy,
		log:           opts.Logger,
		refreshing:    NewSubject("refreshing", false),
		loadingMore:   NewSubject("loading_more", false),
	}
	c.items = NewSubject("items", c.gen.Batch(c.initialBatch))
	return c
}

// ObserveItems is the stream of the ordered item list.
func (c *Controller) ObserveItems() *Subject[[]model.FeedItem] { return c.items }

// ObserveRefreshing is the stream of the refreshing flag.
func (c *Controller) ObserveRefreshing() *Subject[bool] { return c.refreshing }

// ObserveLoadingMore is the stream of the loading-more flag.
func (c *Controller) ObserveLoadingMore() *Subject[bool] { return c.loadingMore }

// Items returns the current list.
func (c *Controller) Items() []model.FeedItem { return c.items.Value() }

// Refreshing reports whether a refresh is pending.
func (c *Controller) Refreshing() bool { return c.refreshing.Value() }

// LoadingMore reports whether a load-more is pending.
func (c *Controller) LoadingMore() bool { return c.loadingMore.Value() }

// ToggleLike flips the like state of the item at index. An index outside the
// current list is ignored: the renderer may still hold an index from a list
// that a refresh has just replaced. It reports whether anything changed.
func (c *Controller) ToggleLike(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.items.Value()
	if index < 0 || index >= len(cur) {
		metrics.LikesIgnored.Inc()
		c.log.WithFields(log.Fields{
			"index": index,
			"len":   len(cur),
		}).Debug("Ignoring like toggle out of range")
		return false
	}

	next := make([]model.FeedItem, len(cur))
	copy(next, cur)
	next[index] = cur[index].ToggledLike()

	direction := "unlike"
	if next[index].IsLiked {
		direction = "like"
	}
	metrics.LikesToggled.WithLabelValues(direction).Inc()
	c.log.WithFields(log.Fields{
		"index":     index,
		"id":        next[index].ID,
		"direction": direction,
		"likes":     next[index].LikeCount,
	}).Debug("Toggled like")

	c.items.Set(next)
	return true
}

// Refresh marks the feed as refreshing right away and replaces the whole
// list with a fresh batch once the refresh delay has passed.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	outcome := "started"
	if c.refreshTimer != nil {
		if c.policy == RefreshCoalesce {
			metrics.Refreshes.WithLabelValues("coalesced").Inc()
			c.log.Debug("Refresh already pending, coalescing")
			return
		}
		c.refreshTimer.Stop()
		outcome = "restarted"
	}

	c.refreshSeq++
	seq := c.refreshSeq
	c.refreshStarted = time.Now()
	c.refreshTimer = time.AfterFunc(c.refreshDelay, func() { c.completeRefresh(seq) })
	metrics.Refreshes.WithLabelValues(outcome).Inc()
	c.log.WithFields(log.Fields{
		"delay":   c.refreshDelay,
		"outcome": outcome,
	}).Info("Refreshing feed")

	// a restart leaves the flag on; observers only hear about changes
	if !c.refreshing.Value() {
		c.refreshing.Set(true)
	}
}

func (c *Controller) completeRefresh(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// A restart bumps refreshSeq; a stopped timer whose callback already
	// started must not publish.
	if c.closed || seq != c.refreshSeq {
		return
	}
	c.refreshTimer = nil

	batch := c.gen.Batch(c.initialBatch)
	metrics.Refreshes.WithLabelValues("completed").Inc()
	metrics.ObserveSince("refresh", c.refreshStarted)
	c.log.WithField("items", len(batch)).Info("Refresh complete")

	c.items.Set(batch)
	c.refreshing.Set(false)
}

// LoadMore appends one page of fresh items after the load-more delay. A call
// made while a load-more is already pending does nothing.
func (c *Controller) LoadMore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.loadingMore.Value() {
		metrics.LoadMore.WithLabelValues("skipped").Inc()
		return
	}

	c.loadStarted = time.Now()
	c.loadTimer = time.AfterFunc(c.loadMoreDelay, c.completeLoadMore)
	metrics.LoadMore.WithLabelValues("started").Inc()
	c.log.WithFields(log.Fields{
		"delay": c.loadMoreDelay,
		"have":  len(c.items.Value()),
	}).Debug("Loading more")

	c.loadingMore.Set(true)
}

func (c *Controller) completeLoadMore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.loadTimer = nil

	cur := c.items.Value()
	page := c.gen.Batch(c.pageSize)
	next := make([]model.FeedItem, 0, len(cur)+len(page))
	next = append(next, cur...)
	next = append(next, page...)

	metrics.LoadMore.WithLabelValues("completed").Inc()
	metrics.ObserveSince("load_more", c.loadStarted)
	c.log.WithField("items", len(next)).Debug("Load more complete")

	c.items.Set(next)
	c.loadingMore.Set(false)
}

// Close cancels pending completions and closes the subjects. The last
// published state stays readable. Close is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		c.refreshTimer = nil
	}
	if c.loadTimer != nil {
		c.loadTimer.Stop()
		c.loadTimer = nil
	}
	c.mu.Unlock()

	c.items.Close()
	c.refreshing.Close()
	c.loadingMore.Close()
	c.log.Debug("Controller closed")
}
