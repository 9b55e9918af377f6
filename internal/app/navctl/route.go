package navctl

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/llehouerou/top2000/internal/api"
)

// ErrUnknownRoute is returned by Parse for paths no page handles.
var ErrUnknownRoute = errors.New("unknown route")

// Page is the kind of page a route shows.
type Page int

const (
	PageTab      Page = iota // one of the tabs, optionally with a year
	PageSong                 // /song/{id}
	PageArtist               // /artist/{id}
	PagePlaylist             // /playlist/{id}
)

// Route is a parsed navigation path.
type Route struct {
	Page Page
	Mode ViewMode // for PageTab
	Year int      // for chart and stats tabs, 0 when unspecified
	ID   api.ID   // for detail pages
}

// Parse turns a path such as "/song/42" or "/chart/1999" into a Route.
func Parse(path string) (Route, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return Route{Page: PageTab, Mode: ViewChart}, nil
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) > 2 {
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}
	head := parts[0]
	var arg string
	if len(parts) == 2 {
		unescaped, err := url.PathUnescape(parts[1])
		if err != nil || unescaped == "" {
			return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
		}
		arg = unescaped
	}

	switch head {
	case "song", "artist", "playlist":
		if arg == "" {
			return Route{}, fmt.Errorf("%w: %s: missing id", ErrUnknownRoute, path)
		}
		page := map[string]Page{"song": PageSong, "artist": PageArtist, "playlist": PagePlaylist}[head]
		return Route{Page: page, ID: api.ID(arg)}, nil

	case string(ViewChart), string(ViewStats):
		r := Route{Page: PageTab, Mode: ViewMode(head)}
		if arg != "" {
			year, err := strconv.Atoi(arg)
			if err != nil {
				return Route{}, fmt.Errorf("%w: %s: bad year", ErrUnknownRoute, path)
			}
			r.Year = year
		}
		return r, nil

	case string(ViewArtists), string(ViewPlaylists), string(ViewAdmin):
		if arg != "" {
			return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
		}
		return Route{Page: PageTab, Mode: ViewMode(head)}, nil
	}
	return Route{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// Path returns the canonical path of r.
func (r Route) Path() string {
	switch r.Page {
	case PageSong:
		return "/song/" + url.PathEscape(string(r.ID))
	case PageArtist:
		return "/artist/" + url.PathEscape(string(r.ID))
	case PagePlaylist:
		return "/playlist/" + url.PathEscape(string(r.ID))
	}
	if r.Year != 0 && r.Mode.HasYear() {
		return "/" + string(r.Mode) + "/" + strconv.Itoa(r.Year)
	}
	return "/" + string(r.Mode)
}
