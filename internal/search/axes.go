package search

import (
	"context"
	"log/slog"
	"slices"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/config"
)

// Source is the part of the API client used by search.
type Source interface {
	SearchSongs(ctx context.Context, query string) ([]api.Song, error)
	SearchArtists(ctx context.Context, query string) ([]api.Artist, error)
	ArtistSongs(ctx context.Context, artistID api.ID) ([]api.Song, error)
}

// SongAxis searches songs by title.
func SongAxis(src Source) Axis {
	return Axis{
		Name: config.EntitySongs,
		Fetch: func(ctx context.Context, query string) ([]Candidate, error) {
			songs, err := src.SearchSongs(ctx, query)
			if err != nil {
				return nil, err
			}
			return Songs(songs), nil
		},
	}
}

// ArtistAxis searches artists by name.
func ArtistAxis(src Source) Axis {
	return Axis{
		Name: config.EntityArtists,
		Fetch: func(ctx context.Context, query string) ([]Candidate, error) {
			artists, err := src.SearchArtists(ctx, query)
			if err != nil {
				return nil, err
			}
			return Artists(artists), nil
		},
	}
}

// ArtistSongs expands an artist into its songs. Songs missing an artist
// name inherit the artist's so they rank on the name that matched.
func ArtistSongs(src Source) ExpandFunc {
	return func(ctx context.Context, artist api.Artist) ([]Candidate, error) {
		songs, err := src.ArtistSongs(ctx, artist.ID)
		if err != nil {
			return nil, err
		}
		songs = slices.Clone(songs)
		for i := range songs {
			if songs[i].Artist == "" {
				songs[i].Artist = artist.Name
			}
			if songs[i].ArtistID == "" {
				songs[i].ArtistID = artist.ID
			}
		}
		return Songs(songs), nil
	}
}

// OptionsFromConfig builds controller options for the configured entities.
func OptionsFromConfig(cfg config.SearchConfig, src Source, logger *slog.Logger) Options {
	opts := DefaultOptions()
	opts.Logger = logger
	opts.Debounce = cfg.Debounce()
	opts.Limit = cfg.Limit
	opts.Timeout = cfg.RequestTimeout()
	opts.MaxExpand = cfg.MaxExpand
	if cfg.MinQueryLength != nil {
		opts.MinQueryLength = *cfg.MinQueryLength
	}

	if cfg.SearchesSongs() {
		opts.Axes = append(opts.Axes, SongAxis(src))
	}
	if cfg.SearchesArtists() {
		opts.Axes = append(opts.Axes, ArtistAxis(src))
		if cfg.ExpandArtistSongs != nil && *cfg.ExpandArtistSongs {
			opts.Expand = ArtistSongs(src)
		}
	}
	return opts
}
