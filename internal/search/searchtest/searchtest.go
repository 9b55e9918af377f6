// Package searchtest provides a manual clock and an in-memory API source
// for driving a search.Controller in tests.
package searchtest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/search"
)

// Scheduler is a search.Scheduler whose time only moves on Advance.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*task
}

type task struct {
	s       *Scheduler
	at      time.Duration
	f       func()
	done    bool
	stopped bool
}

func (t *task) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.stopped = true
	return true
}

// AfterFunc schedules f to run when the clock passes d from now.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) search.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &task{s: s, at: s.now + d, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward and runs due tasks in order on the
// calling goroutine.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*task
	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		switch {
		case t.done:
		case t.at <= s.now:
			t.done = true
			due = append(due, t)
		default:
			remaining = append(remaining, t)
		}
	}
	s.tasks = remaining
	s.mu.Unlock()

	slices.SortStableFunc(due, func(a, b *task) int { return int(a.at - b.at) })
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of scheduled tasks that have not run or been stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Source is an in-memory search.Source. Lookups match by case-insensitive
// substring. Hooks, when set, run before a lookup and may block or fail it.
type Source struct {
	mu sync.Mutex

	Songs         []api.Song
	Artists       []api.Artist
	SongsByArtist map[api.ID][]api.Song

	SongErr   error
	ArtistErr error

	// BeforeSongs runs before a song lookup; a non-nil error fails it.
	BeforeSongs func(ctx context.Context, query string) error

	calls []string
}

// Calls returns the lookups performed so far, as "songs:q", "artists:q"
// or "artist-songs:id".
func (s *Source) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

func (s *Source) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *Source) SearchSongs(ctx context.Context, query string) ([]api.Song, error) {
	s.record("songs:" + query)
	if s.BeforeSongs != nil {
		if err := s.BeforeSongs(ctx, query); err != nil {
			return nil, err
		}
	}
	if s.SongErr != nil {
		return nil, s.SongErr
	}
	var out []api.Song
	for _, song := range s.Songs {
		if contains(song.Title, query) {
			out = append(out, song)
		}
	}
	return out, nil
}

func (s *Source) SearchArtists(_ context.Context, query string) ([]api.Artist, error) {
	s.record("artists:" + query)
	if s.ArtistErr != nil {
		return nil, s.ArtistErr
	}
	var out []api.Artist
	for _, a := range s.Artists {
		if contains(a.Name, query) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Source) ArtistSongs(_ context.Context, id api.ID) ([]api.Song, error) {
	s.record("artist-songs:" + string(id))
	return slices.Clone(s.SongsByArtist[id]), nil
}

func contains(text, query string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(strings.TrimSpace(query)))
}

var _ search.Source = (*Source)(nil)
