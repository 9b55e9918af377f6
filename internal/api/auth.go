package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/llehouerou/top2000/internal/session"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	return c.authenticate(ctx, "/api/auth/login", email, password)
}

// Register creates an account and stores the resulting session.
func (c *Client) Register(ctx context.Context, email, password string) (session.Session, error) {
	return c.authenticate(ctx, "/api/auth/register", email, password)
}

// Logout forgets the stored session.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (session.Session, error) {
	if email == "" || password == "" {
		return session.Session{}, errors.New("email and password are required")
	}

	var result AuthResult
	err := c.do(ctx, http.MethodPost, path, credentials{Email: email, Password: password}, accessPublic, &result)
	if err != nil {
		return session.Session{}, err
	}
	if result.Token == "" {
		return session.Session{}, errors.New("API returned no token")
	}

	sess := session.Session{
		AccessToken:  result.Token,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    result.Expiry(),
		Email:        email,
	}
	if err := c.sessions.Save(sess); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}
