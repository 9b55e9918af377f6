package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// topArtistsTake is the number of artists requested for the top artists list.
const topArtistsTake = 10

// Stats fetches every statistics list for a year in parallel.
// Any failing list fails the whole dashboard.
func (c *Client) Stats(ctx context.Context, year int) (*Stats, error) {
	stats := &Stats{Year: year}

	yearQuery := url.Values{"year": {strconv.Itoa(year)}}
	topQuery := url.Values{"year": {strconv.Itoa(year)}, "take": {strconv.Itoa(topArtistsTake)}}

	lists := []struct {
		path  string
		query url.Values
		dest  *[]StatItem
	}{
		{"drops", yearQuery, &stats.Drops},
		{"rises", yearQuery, &stats.Rises},
		{"ever-present", nil, &stats.EverPresent},
		{"new", yearQuery, &stats.New},
		{"dropouts", yearQuery, &stats.Dropouts},
		{"re-entries", yearQuery, &stats.ReEntries},
		{"unchanged", yearQuery, &stats.Unchanged},
		{"consecutive-artist-positions", yearQuery, &stats.ConsecutiveArtistPositions},
		{"one-timers", nil, &stats.OneTimers},
		{"top-artists", topQuery, &stats.TopArtists},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range lists {
		g.Go(func() error {
			path := "/api/Stats/" + l.path
			if len(l.query) > 0 {
				path += "?" + l.query.Encode()
			}
			if err := c.get(gctx, path, l.dest); err != nil {
				return fmt.Errorf("stats %s: %w", l.path, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
