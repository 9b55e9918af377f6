package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/config"
	"github.com/llehouerou/top2000/internal/errmsg"
	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/session"
)

// searchResult is the JSON form of one suggestion.
type searchResult struct {
	Kind     string `json:"kind"`
	ID       api.ID `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Path     string `json:"path"`
	Match    string `json:"match"`
}

func searchCommand(c *cli.Context, e *env) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("usage: top2000 search <query>")
	}

	cfg := e.cfg.GetSearchConfig()
	if c.Bool("songs-only") {
		cfg.Entities = []string{config.EntitySongs}
		expand := false
		cfg.ExpandArtistSongs = &expand
	}
	opts := search.OptionsFromConfig(cfg, e.client, e.logger)
	if n := c.Int("limit"); n > 0 {
		opts.Limit = n
	}

	ctrl := search.NewController(opts)
	defer ctrl.Close()
	ctrl.SetQuery(query)
	snap := ctrl.Submit(c.Context)
	if snap.State == search.StateIdle {
		return fmt.Errorf("query too short: type at least %d characters", ctrl.MinQueryLength())
	}

	if c.Bool("json") {
		results := make([]searchResult, 0, len(snap.Items))
		for _, item := range snap.Items {
			results = append(results, searchResult{
				Kind:     item.Kind.String(),
				ID:       item.ID,
				Title:    item.Title,
				Subtitle: item.Subtitle,
				Detail:   item.Detail,
				Path:     item.Path,
				Match:    item.Class.String(),
			})
		}
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(snap.Items) == 0 {
		fmt.Fprintf(c.App.Writer, "No results for %q\n", query)
		return nil
	}
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, item := range snap.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Kind, item.Display, item.Detail, item.Path)
	}
	return w.Flush()
}

// year returns the --year flag, or the configured default year.
func year(c *cli.Context, e *env) (int, error) {
	chart := e.cfg.GetChartConfig()
	if !c.IsSet("year") {
		return chart.DefaultYear, nil
	}
	y := c.Int("year")
	if y < chart.FirstYear || y > chart.LastYear {
		return 0, fmt.Errorf("year %d out of range %d-%d", y, chart.FirstYear, chart.LastYear)
	}
	return y, nil
}

func chartCommand(c *cli.Context, e *env) error {
	y, err := year(c, e)
	if err != nil {
		return err
	}
	entries, err := e.client.ChartByYear(c.Context, y)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpChartLoad, err))
	}
	if limit := c.Int("limit"); limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			humanize.Comma(int64(entry.Position)), trend(entry.Trend), entry.Song.Title, entry.Song.Artist)
	}
	return w.Flush()
}

func trend(t *int) string {
	switch {
	case t == nil:
		return "new"
	case *t > 0:
		return fmt.Sprintf("+%d", *t)
	case *t < 0:
		return fmt.Sprintf("%d", *t)
	}
	return "="
}

func artistsCommand(c *cli.Context, e *env) error {
	artists, err := e.client.Artists(c.Context)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpArtistsLoad, err))
	}
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, a := range artists {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.ID, a.Name, a.Genre)
	}
	return w.Flush()
}

func statsCommand(c *cli.Context, e *env) error {
	y, err := year(c, e)
	if err != nil {
		return err
	}
	stats, err := e.client.Stats(c.Context, y)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStatsLoad, err))
	}

	out := c.App.Writer
	fmt.Fprintf(out, "Top 2000 %d\n\n", y)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, row := range []struct {
		label string
		items []api.StatItem
	}{
		{"New entries", stats.New},
		{"Re-entries", stats.ReEntries},
		{"Dropouts", stats.Dropouts},
		{"Rises", stats.Rises},
		{"Drops", stats.Drops},
		{"Unchanged", stats.Unchanged},
		{"Ever present", stats.EverPresent},
		{"One-timers", stats.OneTimers},
	} {
		fmt.Fprintf(w, "%s\t%s\n", row.label, humanize.Comma(int64(len(row.items))))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(stats.TopArtists) > 0 {
		fmt.Fprintln(out, "\nTop artists")
		for i, a := range stats.TopArtists[:min(len(stats.TopArtists), 10)] {
			fmt.Fprintf(out, "%3d. %s (%d songs)\n", i+1, a.Label, a.SongCount)
		}
	}
	return nil
}

func authCommand(register bool) func(c *cli.Context, e *env) error {
	op := errmsg.OpLogin
	if register {
		op = errmsg.OpRegister
	}
	return func(c *cli.Context, e *env) error {
		password := c.String("password")
		if password == "" {
			var err error
			password, err = readPassword(c.App.Reader, c.App.ErrWriter)
			if err != nil {
				return err
			}
		}

		auth := e.client.Login
		if register {
			auth = e.client.Register
		}
		s, err := auth(c.Context, c.String("email"), password)
		if err != nil {
			return errors.New(errmsg.Format(op, err))
		}
		fmt.Fprintf(c.App.Writer, "Logged in as %s\n", s.Email)
		return nil
	}
}

// readPassword reads one line from r after printing a prompt to w.
func readPassword(r io.Reader, w io.Writer) (string, error) {
	if r == nil {
		r = os.Stdin
	}
	if w != nil {
		fmt.Fprint(w, "Password: ")
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}

func logoutCommand(c *cli.Context, e *env) error {
	if err := e.client.Logout(); err != nil {
		return errors.New(errmsg.Format(errmsg.OpLogout, err))
	}
	fmt.Fprintln(c.App.Writer, "Logged out")
	return nil
}

func whoamiCommand(c *cli.Context, e *env) error {
	s, err := e.client.Sessions().Load()
	switch {
	case errors.Is(err, session.ErrNoSession):
		fmt.Fprintln(c.App.Writer, "not logged in")
		return nil
	case err != nil:
		return err
	case !s.Valid(time.Now()):
		fmt.Fprintf(c.App.Writer, "%s (session expired)\n", s.Email)
		return nil
	}
	fmt.Fprintln(c.App.Writer, s.Email)
	return nil
}

func playlistsCommand(c *cli.Context, e *env) error {
	playlists, err := e.client.Playlists(c.Context)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpPlaylistsLoad, err))
	}
	if len(playlists) == 0 {
		fmt.Fprintln(c.App.Writer, "No playlists")
		return nil
	}
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for _, p := range playlists {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, humanize.Comma(int64(len(p.Songs)))+" songs")
	}
	return w.Flush()
}
