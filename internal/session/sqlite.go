package session

import (
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/llehouerou/top2000/internal/db"
)

const (
	appName    = "top2000"
	dbFileName = "top2000.db"
)

// SQLite is a Store backed by a single-row SQLite table.
type SQLite struct {
	db *sql.DB
}

// Verify SQLite implements Store at compile time.
var _ Store = (*SQLite)(nil)

// OpenDefault opens the store at $XDG_DATA_HOME/top2000/top2000.db.
func OpenDefault() (*SQLite, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Open opens (and creates if needed) the store at path.
// ":memory:" gives a throwaway database.
func Open(path string) (*SQLite, error) {
	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &SQLite{db: conn}, nil
}

func initSchema(conn *sql.DB) error {
	return db.WithTx(conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS session (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				access_token TEXT NOT NULL,
				refresh_token TEXT,
				expires_at INTEGER,
				email TEXT,
				saved_at INTEGER NOT NULL
			);
		`); err != nil {
			return err
		}
		_, err := tx.Exec(`PRAGMA user_version = 1`)
		return err
	})
}

func (s *SQLite) Load() (Session, error) {
	var (
		access    string
		refresh   sql.NullString
		expiresAt sql.NullInt64
		email     sql.NullString
	)

	err := s.db.QueryRow(`
		SELECT access_token, refresh_token, expires_at, email FROM session WHERE id = 1
	`).Scan(&access, &refresh, &expiresAt, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}

	return Session{
		AccessToken:  access,
		RefreshToken: db.NullStringValue(refresh),
		ExpiresAt:    db.NullUnixTime(expiresAt),
		Email:        db.NullStringValue(email),
	}, nil
}

func (s *SQLite) Save(sess Session) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, access_token, refresh_token, expires_at, email, saved_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			email = excluded.email,
			saved_at = excluded.saved_at
	`, sess.AccessToken, sess.RefreshToken, db.UnixOrNull(sess.ExpiresAt), sess.Email, time.Now().Unix())
	return err
}

func (s *SQLite) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE id = 1`)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
