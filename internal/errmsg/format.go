// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"context"
	"errors"
	"fmt"

	"github.com/llehouerou/top2000/internal/api"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog
	OpChartLoad   Op = "load chart"
	OpArtistsLoad Op = "load artists"
	OpArtistLoad  Op = "load artist"
	OpSongLoad    Op = "load song"
	OpStatsLoad   Op = "load statistics"
	OpSearch      Op = "search"

	// Account
	OpLogin    Op = "log in"
	OpRegister Op = "register"
	OpLogout   Op = "log out"

	// Playlists
	OpPlaylistsLoad  Op = "load playlists"
	OpPlaylistLoad   Op = "load playlist"
	OpPlaylistCreate Op = "create playlist"
	OpPlaylistAdd    Op = "add song to playlist"
	OpPlaylistRemove Op = "remove song from playlist"

	// Admin
	OpAdminLoad Op = "load admin content"
	OpAdminSave Op = "save changes"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return fmt.Sprintf("Failed to %s: session expired, log in again (L)", op)
	case errors.Is(err, api.ErrForbidden):
		return fmt.Sprintf("Failed to %s: this account is not an administrator", op)
	case errors.Is(err, api.ErrNotAuthenticated):
		return fmt.Sprintf("Failed to %s: log in first (L)", op)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Failed to %s: the server took too long to answer", op)
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
