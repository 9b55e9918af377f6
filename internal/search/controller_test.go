package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/search/searchtest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const debounce = 300 * time.Millisecond

func newController(t *testing.T, src *searchtest.Source, modify func(*search.Options)) (*search.Controller, *searchtest.Scheduler) {
	t.Helper()
	clock := &searchtest.Scheduler{}

	opts := search.DefaultOptions()
	opts.Axes = []search.Axis{search.SongAxis(src), search.ArtistAxis(src)}
	opts.Scheduler = clock
	opts.Debounce = debounce
	if modify != nil {
		modify(&opts)
	}

	c := search.NewController(opts)
	t.Cleanup(c.Close)
	return c, clock
}

func ids(items []search.DisplayItem) []api.ID {
	out := make([]api.ID, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func queenFixture() *searchtest.Source {
	return &searchtest.Source{
		Songs: []api.Song{
			{ID: "s1", Title: "Bohemian Rhapsody", Artist: "Queen"},
			{ID: "s2", Title: "Killer Queen", Artist: "Queen"},
			{ID: "s3", Title: "Dancing Queen", Artist: "ABBA"},
		},
		Artists: []api.Artist{
			{ID: "a1", Name: "Queen", Genre: "Rock"},
			{ID: "a2", Name: "Queens of the Stone Age"},
		},
		SongsByArtist: map[api.ID][]api.Song{
			"a1": {
				{ID: "s1", Title: "Bohemian Rhapsody", Artist: "Queen"},
				{ID: "s4", Title: "Radio Ga Ga"},
			},
			"a2": {{ID: "s5", Title: "No One Knows"}},
		},
	}
}

func TestController_BohemianScenario(t *testing.T) {
	src := &searchtest.Source{
		Songs: []api.Song{{ID: "s1", Title: "Bohemian Rhapsody", Artist: "Queen"}},
	}
	c, clock := newController(t, src, nil)

	c.SetQuery("Bohemian")
	assert.Equal(t, search.StatePending, c.Snapshot().State)

	clock.Advance(debounce)

	snap := c.Snapshot()
	assert.Equal(t, search.StateSettled, snap.State)
	require.Len(t, snap.Items, 1)
	item := snap.Items[0]
	assert.Equal(t, search.KindSong, item.Kind)
	assert.Equal(t, api.ID("s1"), item.ID)
	assert.Equal(t, "Bohemian Rhapsody — Queen", item.Display)
	assert.Equal(t, "/song/s1", item.Path)
}

func TestController_Debounces(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, nil)

	c.SetQuery("qu")
	clock.Advance(debounce - time.Millisecond)
	c.SetQuery("que")
	clock.Advance(debounce - time.Millisecond)
	c.SetQuery("quee")

	assert.Empty(t, src.Calls(), "no lookup while typing")
	assert.Equal(t, 1, clock.Pending(), "superseded timers are stopped")

	clock.Advance(debounce)
	assert.ElementsMatch(t, []string{"songs:quee", "artists:quee"}, src.Calls())
	assert.Equal(t, search.StateSettled, c.Snapshot().State)
}

func TestController_ShortQueryClearsImmediately(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, nil)

	c.SetQuery("queen")
	clock.Advance(debounce)
	require.NotEmpty(t, c.Snapshot().Items)

	for _, q := range []string{"q", "", "  "} {
		c.SetQuery("queen")
		c.SetQuery(q)

		snap := c.Snapshot()
		assert.Equal(t, search.StateIdle, snap.State, "query %q", q)
		assert.Empty(t, snap.Items, "query %q", q)
		assert.Zero(t, clock.Pending(), "query %q", q)
	}
}

func TestController_ZeroMinimumStillIgnoresEmpty(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, func(o *search.Options) { o.MinQueryLength = 0 })

	c.SetQuery("q")
	assert.Equal(t, search.StatePending, c.Snapshot().State)

	c.SetQuery("")
	assert.Equal(t, search.StateIdle, c.Snapshot().State)
	assert.Zero(t, clock.Pending())
}

func TestController_RanksAndTruncates(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, func(o *search.Options) {
		o.Limit = 3
		o.Expand = nil
	})

	c.SetQuery("queen")
	clock.Advance(debounce)

	snap := c.Snapshot()
	require.Len(t, snap.Items, 3)
	// Exact matches first, shortest text first: artist "Queen", then
	// "Killer Queen" by Queen, then the prefix match on the other artist.
	assert.Equal(t, []api.ID{"a1", "s2", "a2"}, ids(snap.Items))
	assert.Equal(t, search.ClassExact, snap.Items[0].Class)
}

func TestController_ExpandsMatchedArtists(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, func(o *search.Options) {
		o.Limit = 0
		o.Expand = search.ArtistSongs(src)
		o.MaxExpand = 1
	})

	c.SetQuery("queen")
	clock.Advance(debounce)

	snap := c.Snapshot()
	assert.Contains(t, ids(snap.Items), api.ID("s4"), "songs of the matched artist are pulled in")
	assert.NotContains(t, ids(snap.Items), api.ID("s5"), "only the best artist is expanded")
	assert.Contains(t, src.Calls(), "artist-songs:a1")

	seen := map[api.ID]int{}
	for _, id := range ids(snap.Items) {
		seen[id]++
	}
	assert.Equal(t, 1, seen["s1"], "songs found on both axes appear once")

	for _, item := range snap.Items {
		if item.ID == "s4" {
			assert.Equal(t, "Queen", item.Subtitle, "expanded songs inherit the artist name")
			assert.Equal(t, search.ClassExact, item.Class)
		}
	}
}

func TestController_ExpandSkipsSubstringArtists(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, func(o *search.Options) {
		o.Expand = search.ArtistSongs(src)
	})

	c.SetQuery("ueen")
	clock.Advance(debounce)

	for _, call := range src.Calls() {
		assert.NotContains(t, call, "artist-songs:")
	}
}

func TestController_AxisFailureIsIsolated(t *testing.T) {
	src := &searchtest.Source{
		Songs: []api.Song{
			{ID: "1", Title: "Hotel California", Artist: "Eagles"},
			{ID: "2", Title: "Hotel Yorba", Artist: "The White Stripes"},
			{ID: "3", Title: "Heartbreak Hotel", Artist: "Elvis Presley"},
		},
		ArtistErr: errors.New("connection refused"),
	}
	c, clock := newController(t, src, nil)

	c.SetQuery("hotel")
	clock.Advance(debounce)

	snap := c.Snapshot()
	assert.Equal(t, search.StateSettled, snap.State)
	assert.ElementsMatch(t, []api.ID{"1", "2", "3"}, ids(snap.Items))
}

func TestController_AllAxesFailing(t *testing.T) {
	src := &searchtest.Source{
		SongErr:   &api.StatusError{Code: 500},
		ArtistErr: errors.New("bad json"),
	}
	c, clock := newController(t, src, nil)

	c.SetQuery("anything")
	clock.Advance(debounce)

	snap := c.Snapshot()
	assert.Equal(t, search.StateSettled, snap.State)
	assert.True(t, snap.Resolved())
	assert.Empty(t, snap.Items)
}

func TestController_StaleResponseIsDiscarded(t *testing.T) {
	started := make(chan string, 2)
	release := map[string]chan struct{}{
		"a":  make(chan struct{}),
		"ab": make(chan struct{}),
	}

	src := &searchtest.Source{
		Songs: []api.Song{
			{ID: "1", Title: "ab song"},
			{ID: "2", Title: "a song"},
		},
		// Responses are delivered regardless of cancellation to simulate
		// a slow server whose answer arrives late.
		BeforeSongs: func(_ context.Context, query string) error {
			started <- query
			<-release[query]
			return nil
		},
	}
	c, clock := newController(t, src, func(o *search.Options) {
		o.MinQueryLength = 1
		o.Axes = []search.Axis{search.SongAxis(src)}
	})

	var wg sync.WaitGroup

	c.SetQuery("a")
	wg.Go(func() { clock.Advance(debounce) })
	require.Equal(t, "a", <-started)
	assert.Equal(t, search.StateResolving, c.Snapshot().State)

	c.SetQuery("ab")
	wg.Go(func() { clock.Advance(debounce) })
	require.Equal(t, "ab", <-started)

	close(release["ab"])
	require.Eventually(t, func() bool {
		return c.Snapshot().State == search.StateSettled
	}, time.Second, time.Millisecond)

	close(release["a"])
	wg.Wait()

	snap := c.Snapshot()
	assert.Equal(t, "ab", snap.Query)
	assert.Equal(t, search.StateSettled, snap.State)
	assert.Equal(t, []api.ID{"1"}, ids(snap.Items), "late response for \"a\" must not replace \"ab\"")
}

func TestController_NewQueryCancelsInflightLookup(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})

	src := &searchtest.Source{
		BeforeSongs: func(ctx context.Context, _ string) error {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return ctx.Err()
		},
	}
	c, clock := newController(t, src, func(o *search.Options) {
		o.Axes = []search.Axis{search.SongAxis(src)}
	})

	c.SetQuery("first")
	done := make(chan struct{})
	go func() {
		defer close(done)
		clock.Advance(debounce)
	}()
	<-started

	c.SetQuery("second")
	<-cancelled
	<-done

	assert.Equal(t, search.StatePending, c.Snapshot().State)
}

func TestController_NewQueryDropsPreviousResults(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, nil)

	c.SetQuery("bohemian")
	clock.Advance(debounce)
	require.Equal(t, []api.ID{"s1"}, ids(c.Snapshot().Items))

	c.SetQuery("zebra")
	snap := c.Snapshot()
	assert.Equal(t, search.StatePending, snap.State)
	assert.Empty(t, snap.Items)

	_, ok := c.Select(0)
	assert.False(t, ok, "results of an earlier query cannot be selected")

	clock.Advance(debounce)
	snap = c.Snapshot()
	assert.Equal(t, search.StateSettled, snap.State)
	assert.Equal(t, "zebra", snap.Query)
	assert.Empty(t, snap.Items)
}

func TestController_TimeoutDegradesToEmpty(t *testing.T) {
	src := &searchtest.Source{
		Songs: []api.Song{{ID: "1", Title: "Slow song"}},
		BeforeSongs: func(ctx context.Context, _ string) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}
	c, _ := newController(t, src, func(o *search.Options) {
		o.Timeout = 10 * time.Millisecond
	})

	c.SetQuery("slow")
	snap := c.Submit(context.Background())

	assert.Equal(t, search.StateSettled, snap.State)
	assert.Empty(t, snap.Items)
}

func TestController_SubmitBypassesDebounce(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, nil)

	c.SetQuery("bohemian")
	snap := c.Submit(context.Background())

	assert.Equal(t, search.StateSettled, snap.State)
	assert.Equal(t, []api.ID{"s1"}, ids(snap.Items))
	assert.Zero(t, clock.Pending(), "pending timer is cancelled")

	// The cancelled timer must not trigger a second lookup.
	calls := len(src.Calls())
	clock.Advance(debounce)
	assert.Len(t, src.Calls(), calls)
}

func TestController_SubmitShortQuery(t *testing.T) {
	src := queenFixture()
	c, _ := newController(t, src, nil)

	c.SetQuery("q")
	snap := c.Submit(context.Background())

	assert.Equal(t, search.StateIdle, snap.State)
	assert.Empty(t, src.Calls())
}

func TestController_Select(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, nil)

	c.SetQuery("bohem")
	clock.Advance(debounce)
	require.Len(t, c.Snapshot().Items, 1)

	target, ok := c.Select(0)
	require.True(t, ok)
	assert.Equal(t, search.Target{Kind: search.KindSong, ID: "s1", Path: "/song/s1"}, target)

	snap := c.Snapshot()
	assert.Equal(t, "Bohemian Rhapsody", snap.Query)
	assert.Empty(t, snap.Items)
	assert.Equal(t, search.StateIdle, snap.State)

	_, ok = c.Select(0)
	assert.False(t, ok, "nothing left to select")
	_, ok = c.Select(-1)
	assert.False(t, ok)
}

func TestController_SelectArtist(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, func(o *search.Options) {
		o.Axes = []search.Axis{search.ArtistAxis(src)}
	})

	c.SetQuery("queens")
	clock.Advance(debounce)

	target, ok := c.Select(0)
	require.True(t, ok)
	assert.Equal(t, "/artist/a2", target.Path)
	assert.Equal(t, "Queens of the Stone Age", c.Snapshot().Query)
}

func TestController_Clear(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, nil)

	c.SetQuery("queen")
	clock.Advance(debounce)
	c.SetQuery("queens")
	c.Clear()

	snap := c.Snapshot()
	assert.Equal(t, "queens", snap.Query, "clearing keeps the text")
	assert.Equal(t, search.StateIdle, snap.State)
	assert.Empty(t, snap.Items)
	assert.Zero(t, clock.Pending())
}

func TestController_Subscribe(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, nil)

	var mu sync.Mutex
	var states []search.State
	var lastSeq uint64
	unsubscribe := c.Subscribe(func(s search.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s.State)
		assert.Greater(t, s.Seq, lastSeq)
		lastSeq = s.Seq
	})

	c.SetQuery("queen")
	clock.Advance(debounce)
	c.SetQuery("")

	mu.Lock()
	assert.Equal(t, []search.State{
		search.StatePending,
		search.StateResolving,
		search.StateSettled,
		search.StateIdle,
	}, states)
	mu.Unlock()

	unsubscribe()
	c.SetQuery("queen")

	mu.Lock()
	assert.Len(t, states, 4)
	mu.Unlock()
}

func TestController_Close(t *testing.T) {
	src := queenFixture()
	c, clock := newController(t, src, nil)

	c.SetQuery("queen")
	c.Close()

	assert.Zero(t, clock.Pending())
	clock.Advance(debounce)
	assert.Empty(t, src.Calls())

	c.SetQuery("abba")
	assert.Zero(t, clock.Pending(), "closed controller ignores input")
	c.Close()
}

func TestController_RealTimeScheduler(t *testing.T) {
	src := queenFixture()
	opts := search.DefaultOptions()
	opts.Axes = []search.Axis{search.SongAxis(src)}
	opts.Debounce = 5 * time.Millisecond
	c := search.NewController(opts)
	defer c.Close()

	settled := make(chan search.Snapshot, 4)
	c.Subscribe(func(s search.Snapshot) {
		if s.State == search.StateSettled {
			settled <- s
		}
	})

	c.SetQuery("killer")

	select {
	case snap := <-settled:
		assert.Equal(t, []api.ID{"s2"}, ids(snap.Items))
	case <-time.After(2 * time.Second):
		t.Fatal("search did not settle")
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", search.StateIdle.String())
	assert.Equal(t, "pending", search.StatePending.String())
	assert.Equal(t, "resolving", search.StateResolving.String())
	assert.Equal(t, "settled", search.StateSettled.String())
}
