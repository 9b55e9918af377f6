package searchbox

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/top2000/internal/search"
)

// SnapshotMsg carries a controller state change into the bubbletea loop.
type SnapshotMsg struct {
	BoxID    int
	Snapshot search.Snapshot
}

// subscription forwards controller notifications to a one-slot channel.
// Only the newest snapshot is kept; older ones are dropped.
type subscription struct {
	mu      sync.Mutex
	last    uint64
	updates chan search.Snapshot
	done    chan struct{}
	stop    func()
	once    sync.Once
}

func subscribe(c *search.Controller) *subscription {
	s := &subscription{
		updates: make(chan search.Snapshot, 1),
		done:    make(chan struct{}),
	}
	s.stop = c.Subscribe(s.push)
	return s
}

func (s *subscription) push(snap search.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Seq <= s.last {
		return
	}
	s.last = snap.Seq
	select {
	case <-s.updates:
	default:
	}
	s.updates <- snap
}

// wait returns a command that blocks until the next snapshot.
func (s *subscription) wait(boxID int) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-s.updates:
			return SnapshotMsg{BoxID: boxID, Snapshot: snap}
		case <-s.done:
			return nil
		}
	}
}

func (s *subscription) close() {
	s.once.Do(func() {
		s.stop()
		close(s.done)
	})
}
