// Package app is the root bubbletea model: tabs, detail pages and popups
// on top of the Top 2000 API.
package app

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/app/navctl"
	"github.com/llehouerou/top2000/internal/app/popupctl"
	"github.com/llehouerou/top2000/internal/config"
	"github.com/llehouerou/top2000/internal/keymap"
	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/session"
)

// DefaultRequestTimeout bounds one API call made by a view.
const DefaultRequestTimeout = 15 * time.Second

// statusTimeout is how long a status message stays on screen.
const statusTimeout = 4 * time.Second

// Options configures the application.
type Options struct {
	Client Client
	Search config.SearchConfig
	Chart  config.ChartConfig

	// StartPath is the route opened on start ("" for the chart).
	StartPath      string
	RequestTimeout time.Duration
	// Scheduler drives search debouncing; nil uses the wall clock.
	Scheduler search.Scheduler
	Logger    *slog.Logger
}

// Model is the root application model containing all state.
type Model struct {
	client Client
	opts   Options
	logger *slog.Logger

	Navigation *navctl.Manager
	Popups     *popupctl.Manager
	keys       *keymap.Resolver

	year      int
	chart     chartView
	artists   artistsView
	playlists playlistsView
	stats     statsView
	detail    detailView
	admin     adminView

	// addTo is the playlist receiving the song picked in the search box,
	// empty when the box navigates.
	addTo api.ID

	user          string
	status        string
	statusIsError bool
	statusVersion int

	width, height int
}

// New creates the application model. Zero option fields take their
// configured defaults.
func New(opts Options) Model {
	defaults := &config.Config{}
	if len(opts.Search.Entities) == 0 {
		opts.Search = defaults.GetSearchConfig()
	}
	if opts.Chart.FirstYear == 0 {
		opts.Chart = defaults.GetChartConfig()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.Scheduler == nil {
		opts.Scheduler = search.RealTime
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	m := Model{
		client:     opts.Client,
		opts:       opts,
		logger:     opts.Logger,
		Navigation: navctl.New(),
		Popups:     popupctl.New(),
		keys:       keymap.Default(),
		year:       opts.Chart.DefaultYear,
		chart:      newChartView(),
		artists:    newArtistsView(),
		playlists:  newPlaylistsView(),
		stats:      newStatsView(),
		detail:     newDetailView(),
		admin:      newAdminView(),
	}
	if s, err := opts.Client.Sessions().Load(); err == nil && s.Valid(time.Now()) {
		m.user = s.Email
	} else if err != nil && !errors.Is(err, session.ErrNoSession) {
		m.logger.Warn("loading session", "error", err)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: m.opts.StartPath}
	}
}

// navigateMsg asks the model to open a path.
type navigateMsg struct {
	path string
}

// User returns the logged in account, or "".
func (m Model) User() string {
	return m.user
}
