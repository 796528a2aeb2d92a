package feed_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/mediafeed/internal/feed"
	"github.com/idilsaglam/mediafeed/internal/model"
)

const (
	shortDelay = 20 * time.Millisecond
	waitFor    = 2 * time.Second
	tick       = 5 * time.Millisecond
)

func newController(t *testing.T, opts feed.Options) *feed.Controller {
	t.Helper()
	if opts.RefreshDelay == 0 {
		opts.RefreshDelay = shortDelay
	}
	if opts.LoadMoreDelay == 0 {
		opts.LoadMoreDelay = shortDelay
	}
	c := feed.NewController(opts)
	t.Cleanup(c.Close)
	return c
}

// recorder collects emissions from a subject.
type recorder[T any] struct {
	mu  sync.Mutex
	got []T
}

func record[T any](t *testing.T, s *feed.Subject[T]) *recorder[T] {
	r := &recorder[T]{}
	t.Cleanup(s.Subscribe(func(v T) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.got = append(r.got, v)
	}))
	return r
}

func (r *recorder[T]) values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.got))
	copy(out, r.got)
	return out
}

func TestInitialState(t *testing.T) {
	c := newController(t, feed.Options{})

	assert.Len(t, c.Items(), 8)
	assert.False(t, c.Refreshing())
	assert.False(t, c.LoadingMore())
}

func TestToggleLikeTwiceRestoresItem(t *testing.T) {
	c := newController(t, feed.Options{})
	orig := c.Items()

	for i := range orig {
		require.True(t, c.ToggleLike(i))
		liked := c.Items()[i]
		assert.True(t, liked.IsLiked)
		assert.Equal(t, orig[i].LikeCount+1, liked.LikeCount)
		assert.Equal(t, orig[i].ID, liked.ID)

		require.True(t, c.ToggleLike(i))
		assert.Equal(t, orig[i], c.Items()[i])
	}
}

func TestToggleLikeOnlyTouchesOneItem(t *testing.T) {
	c := newController(t, feed.Options{})
	before := c.Items()

	c.ToggleLike(3)
	after := c.Items()

	require.Len(t, after, len(before))
	for i := range before {
		if i == 3 {
			assert.NotEqual(t, before[i], after[i])
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
	// the previously published slice is untouched
	assert.False(t, before[3].IsLiked)
}

func TestToggleLikeOutOfRangeIsSilent(t *testing.T) {
	c := newController(t, feed.Options{})
	items := record(t, c.ObserveItems())
	before := c.Items()

	for _, idx := range []int{-1, 8, 100} {
		assert.False(t, c.ToggleLike(idx))
	}

	assert.Equal(t, before, c.Items())
	assert.Len(t, items.values(), 1, "only the initial value should have been emitted")
}

func TestToggleLikeEmitsOnce(t *testing.T) {
	c := newController(t, feed.Options{})
	items := record(t, c.ObserveItems())

	c.ToggleLike(0)

	got := items.values()
	require.Len(t, got, 2)
	assert.True(t, got[1][0].IsLiked)
}

func TestRefresh(t *testing.T) {
	c := newController(t, feed.Options{})
	flags := record(t, c.ObserveRefreshing())
	before := c.Items()
	c.ToggleLike(0)

	c.Refresh()
	assert.True(t, c.Refreshing(), "refreshing must be visible right after the call")

	require.Eventually(t, func() bool { return len(flags.values()) == 3 }, waitFor, tick)

	after := c.Items()
	assert.False(t, c.Refreshing())
	assert.Len(t, after, 8)
	assert.NotEqual(t, before[0].ID, after[0].ID)
	for _, it := range after {
		assert.False(t, it.IsLiked)
	}
	assert.Equal(t, []bool{false, true, false}, flags.values())
}

func TestRefreshReplacesListBeforeClearingFlag(t *testing.T) {
	c := newController(t, feed.Options{})
	old := c.Items()

	var mu sync.Mutex
	var listWhenCleared []model.FeedItem
	started := false
	t.Cleanup(c.ObserveRefreshing().Subscribe(func(v bool) {
		mu.Lock()
		defer mu.Unlock()
		if v {
			started = true
			return
		}
		if started {
			listWhenCleared = c.Items()
		}
	}))

	c.Refresh()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return listWhenCleared != nil
	}, waitFor, tick)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, listWhenCleared, 8)
	assert.NotEqual(t, old[0].ID, listWhenCleared[0].ID)
}

func TestRefreshRestartCompletesOnce(t *testing.T) {
	c := newController(t, feed.Options{RefreshDelay: 80 * time.Millisecond})
	items := record(t, c.ObserveItems())
	flags := record(t, c.ObserveRefreshing())

	c.Refresh()
	time.Sleep(40 * time.Millisecond)
	c.Refresh()

	require.Eventually(t, func() bool { return !c.Refreshing() }, waitFor, tick)
	time.Sleep(120 * time.Millisecond)

	assert.Len(t, items.values(), 2, "initial list plus exactly one replacement")
	assert.Equal(t, []bool{false, true, false}, flags.values(), "restart must not repeat true")
}

func TestRefreshCoalesce(t *testing.T) {
	c := newController(t, feed.Options{RefreshPolicy: feed.RefreshCoalesce})
	flags := record(t, c.ObserveRefreshing())
	items := record(t, c.ObserveItems())

	c.Refresh()
	c.Refresh()
	c.Refresh()

	require.Eventually(t, func() bool { return !c.Refreshing() }, waitFor, tick)
	time.Sleep(3 * shortDelay)

	assert.Equal(t, []bool{false, true, false}, flags.values())
	assert.Len(t, items.values(), 2)
}

func TestLoadMoreAppendsPage(t *testing.T) {
	c := newController(t, feed.Options{})
	c.ToggleLike(2)
	before := c.Items()

	c.LoadMore()
	assert.True(t, c.LoadingMore())

	require.Eventually(t, func() bool { return !c.LoadingMore() }, waitFor, tick)

	after := c.Items()
	require.Len(t, after, len(before)+4)
	assert.Equal(t, before, after[:len(before)])
	for _, it := range after[len(before):] {
		assert.False(t, it.IsLiked)
	}
}

func TestLoadMoreWhilePendingIsNoop(t *testing.T) {
	c := newController(t, feed.Options{LoadMoreDelay: 150 * time.Millisecond})
	flags := record(t, c.ObserveLoadingMore())
	n := len(c.Items())

	c.LoadMore()
	c.LoadMore()
	assert.True(t, c.LoadingMore())
	assert.Len(t, c.Items(), n)

	require.Eventually(t, func() bool { return !c.LoadingMore() }, waitFor, tick)
	time.Sleep(200 * time.Millisecond)

	assert.Len(t, c.Items(), n+4)
	assert.Equal(t, []bool{false, true, false}, flags.values())
}

func TestLoadMoreCustomPageSize(t *testing.T) {
	c := newController(t, feed.Options{InitialBatch: 3, PageSize: 6})
	require.Len(t, c.Items(), 3)

	c.LoadMore()
	require.Eventually(t, func() bool { return len(c.Items()) == 9 }, waitFor, tick)
}

func TestRefreshAndLoadMoreMayOverlap(t *testing.T) {
	c := newController(t, feed.Options{})

	c.Refresh()
	c.LoadMore()
	assert.True(t, c.Refreshing())
	assert.True(t, c.LoadingMore())

	require.Eventually(t, func() bool { return !c.Refreshing() && !c.LoadingMore() }, waitFor, tick)
	n := len(c.Items())
	assert.True(t, n == 8 || n == 12, "got %d items", n)
}

func TestCloseCancelsPendingWork(t *testing.T) {
	c := feed.NewController(feed.Options{RefreshDelay: shortDelay, LoadMoreDelay: shortDelay})
	before := c.Items()

	c.Refresh()
	c.LoadMore()
	c.Close()
	c.Close()

	time.Sleep(5 * shortDelay)
	assert.Equal(t, before, c.Items())

	// operations after Close are ignored
	c.Refresh()
	c.LoadMore()
	assert.True(t, c.Refreshing())
	assert.True(t, c.LoadingMore())
	time.Sleep(3 * shortDelay)
	assert.Equal(t, before, c.Items())
}

func TestConcurrentOperations(t *testing.T) {
	c := newController(t, feed.Options{RefreshDelay: time.Millisecond, LoadMoreDelay: time.Millisecond})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func(i int) { defer wg.Done(); c.ToggleLike(i % 10) }(i)
		go func() { defer wg.Done(); c.LoadMore() }()
		go func() { defer wg.Done(); c.Refresh() }()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return !c.Refreshing() && !c.LoadingMore() }, waitFor, tick)
	for _, it := range c.Items() {
		assert.GreaterOrEqual(t, it.LikeCount, 0)
	}
}

func TestParseRefreshPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    feed.RefreshPolicy
		wantErr bool
	}{
		{in: "", want: feed.RefreshRestart},
		{in: "restart", want: feed.RefreshRestart},
		{in: "coalesce", want: feed.RefreshCoalesce},
		{in: "drop", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := feed.ParseRefreshPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
