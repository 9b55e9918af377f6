package navctl

// Manager tracks the active tab and the detail pages opened on top of it.
type Manager struct {
	viewMode ViewMode
	history  []Route
}

// New creates a Manager showing the chart.
func New() *Manager {
	return &Manager{viewMode: ViewChart}
}

// ViewMode returns the active tab.
func (n *Manager) ViewMode() ViewMode {
	return n.viewMode
}

// SetViewMode switches tab and closes any open detail page.
func (n *Manager) SetViewMode(mode ViewMode) {
	n.viewMode = mode
	n.history = nil
}

// Push opens a detail page. Opening the page already shown is a no-op.
func (n *Manager) Push(r Route) {
	if cur, ok := n.Detail(); ok && cur == r {
		return
	}
	n.history = append(n.history, r)
}

// Back closes the top detail page. It returns false when none is open.
func (n *Manager) Back() bool {
	if len(n.history) == 0 {
		return false
	}
	n.history = n.history[:len(n.history)-1]
	return true
}

// Detail returns the detail page on top, if any.
func (n *Manager) Detail() (Route, bool) {
	if len(n.history) == 0 {
		return Route{}, false
	}
	return n.history[len(n.history)-1], true
}

// Depth returns the number of open detail pages.
func (n *Manager) Depth() int {
	return len(n.history)
}

// Current returns the route on screen.
func (n *Manager) Current() Route {
	if r, ok := n.Detail(); ok {
		return r
	}
	return Route{Page: PageTab, Mode: n.viewMode}
}
