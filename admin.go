package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/errmsg"
	"github.com/llehouerou/top2000/internal/search"
)

// adminAPI is the part of the client the admin commands use.
type adminAPI interface {
	AdminArtists(ctx context.Context) ([]api.Artist, error)
	AdminSongs(ctx context.Context) ([]api.Song, error)
	AdminArtist(ctx context.Context, id api.ID) (*api.Artist, error)
	AdminSong(ctx context.Context, id api.ID) (*api.Song, error)
	UpdateArtist(ctx context.Context, id api.ID, edit api.ArtistEdit) error
	UpdateSong(ctx context.Context, id api.ID, edit api.SongEdit) error
}

// flagValue reports the value of a flag and whether it was given.
type flagValue func(name string) (string, bool)

func cliFlags(c *cli.Context) flagValue {
	return func(name string) (string, bool) {
		return c.String(name), c.IsSet(name)
	}
}

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "edit artists and songs (administrators only)",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "list editable artists or songs",
				ArgsUsage: "artists|songs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Usage: "only names or titles containing this text"},
				},
				Action: withEnv(func(c *cli.Context, e *env) error {
					return adminList(c.Context, e.client, c.App.Writer, c.Args().First(), c.String("filter"))
				}),
			},
			{
				Name:      "show",
				Usage:     "print the editable fields of an artist or song",
				ArgsUsage: "artist|song <id>",
				Action: withEnv(func(c *cli.Context, e *env) error {
					return adminShow(c.Context, e.client, c.App.Writer, c.Args().Get(0), api.ID(c.Args().Get(1)))
				}),
			},
			{
				Name:      "edit-artist",
				Usage:     "change the biography, Wikipedia link or photo of an artist",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "biography"},
					&cli.StringFlag{Name: "wiki", Usage: "Wikipedia URL"},
					&cli.StringFlag{Name: "photo", Usage: "photo URL"},
				},
				Action: withEnv(func(c *cli.Context, e *env) error {
					a, err := editArtist(c.Context, e.client, api.ID(c.Args().First()), cliFlags(c))
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Saved %s\n", a.Name)
					return nil
				}),
			},
			{
				Name:      "edit-song",
				Usage:     "change the lyrics, image or YouTube link of a song",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "lyrics"},
					&cli.StringFlag{Name: "img-url", Usage: "cover image URL"},
					&cli.StringFlag{Name: "youtube", Usage: "YouTube URL"},
				},
				Action: withEnv(func(c *cli.Context, e *env) error {
					s, err := editSong(c.Context, e.client, api.ID(c.Args().First()), cliFlags(c))
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Saved %s\n", s.Title)
					return nil
				}),
			},
		},
	}
}

func adminList(ctx context.Context, client adminAPI, w io.Writer, kind, filter string) error {
	filter = search.Normalize(filter)
	match := func(texts ...string) bool {
		for _, t := range texts {
			if strings.Contains(search.Normalize(t), filter) {
				return true
			}
		}
		return false
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch kind {
	case "artists":
		artists, err := client.AdminArtists(ctx)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpAdminLoad, err))
		}
		for _, a := range artists {
			if match(a.Name) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", a.ID, a.Name, a.Genre)
			}
		}
	case "songs":
		songs, err := client.AdminSongs(ctx)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpAdminLoad, err))
		}
		for _, s := range songs {
			if match(s.Title, s.Artist) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Title, s.Artist)
			}
		}
	default:
		return errors.New("usage: top2000 admin list artists|songs")
	}
	return tw.Flush()
}

func adminShow(ctx context.Context, client adminAPI, w io.Writer, kind string, id api.ID) error {
	if id == "" {
		return errors.New("usage: top2000 admin show artist|song <id>")
	}
	var fields [][2]string
	switch kind {
	case "artist":
		a, err := adminArtist(ctx, client, id)
		if err != nil {
			return err
		}
		e := a.Edit()
		fields = [][2]string{{"Name", a.Name}, {"Wikipedia", e.Wiki}, {"Photo", e.Photo}, {"Biography", e.Biography}}
	case "song":
		s, err := adminSong(ctx, client, id)
		if err != nil {
			return err
		}
		e := s.Edit()
		fields = [][2]string{{"Title", s.Title}, {"Artist", s.Artist}, {"Image", e.ImageURL}, {"YouTube", e.YouTube}, {"Lyrics", e.Lyrics}}
	default:
		return errors.New("usage: top2000 admin show artist|song <id>")
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s: %s\n", f[0], f[1])
	}
	return nil
}

// editArtist saves the given flags over the current record. Fields whose
// flag is not set keep their value.
func editArtist(ctx context.Context, client adminAPI, id api.ID, flags flagValue) (api.Artist, error) {
	if id == "" {
		return api.Artist{}, errors.New("usage: top2000 admin edit-artist <id>")
	}
	a, err := adminArtist(ctx, client, id)
	if err != nil {
		return api.Artist{}, err
	}
	edit := a.Edit()
	override(flags, "biography", &edit.Biography)
	override(flags, "wiki", &edit.Wiki)
	override(flags, "photo", &edit.Photo)
	if err := client.UpdateArtist(ctx, id, edit); err != nil {
		return api.Artist{}, errors.New(errmsg.Format(errmsg.OpAdminSave, err))
	}
	return a.WithEdit(edit), nil
}

// editSong is editArtist for songs.
func editSong(ctx context.Context, client adminAPI, id api.ID, flags flagValue) (api.Song, error) {
	if id == "" {
		return api.Song{}, errors.New("usage: top2000 admin edit-song <id>")
	}
	s, err := adminSong(ctx, client, id)
	if err != nil {
		return api.Song{}, err
	}
	edit := s.Edit()
	override(flags, "lyrics", &edit.Lyrics)
	override(flags, "img-url", &edit.ImageURL)
	override(flags, "youtube", &edit.YouTube)
	if err := client.UpdateSong(ctx, id, edit); err != nil {
		return api.Song{}, errors.New(errmsg.Format(errmsg.OpAdminSave, err))
	}
	return s.WithEdit(edit), nil
}

func override(flags flagValue, name string, field *string) {
	if v, ok := flags(name); ok {
		*field = v
	}
}

// adminArtist loads one artist, looking it up in the full list when the
// detail endpoint does not know it.
func adminArtist(ctx context.Context, client adminAPI, id api.ID) (api.Artist, error) {
	a, err := client.AdminArtist(ctx, id)
	if err == nil {
		return *a, nil
	}
	if !notFound(err) {
		return api.Artist{}, errors.New(errmsg.Format(errmsg.OpAdminLoad, err))
	}
	artists, err := client.AdminArtists(ctx)
	if err != nil {
		return api.Artist{}, errors.New(errmsg.Format(errmsg.OpAdminLoad, err))
	}
	for _, a := range artists {
		if a.ID == id {
			return a, nil
		}
	}
	return api.Artist{}, fmt.Errorf("artist %s not found", id)
}

func adminSong(ctx context.Context, client adminAPI, id api.ID) (api.Song, error) {
	s, err := client.AdminSong(ctx, id)
	if err == nil {
		return *s, nil
	}
	if !notFound(err) {
		return api.Song{}, errors.New(errmsg.Format(errmsg.OpAdminLoad, err))
	}
	songs, err := client.AdminSongs(ctx)
	if err != nil {
		return api.Song{}, errors.New(errmsg.Format(errmsg.OpAdminLoad, err))
	}
	for _, s := range songs {
		if s.ID == id {
			return s, nil
		}
	}
	return api.Song{}, fmt.Errorf("song %s not found", id)
}

func notFound(err error) bool {
	var se *api.StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}
