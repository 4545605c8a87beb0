// Package identity resolves the acting user. The core packages do no work
// without a user id; how that id is obtained is this package's concern.
package identity

import (
	"context"
	"errors"
	"os"
)

// ErrUnauthorized is returned when no user can be resolved.
var ErrUnauthorized = errors.New("identity: no authenticated user")

// Sessions resolves the current user for an operation.
type Sessions interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// Static always resolves to a fixed user id. The CLI uses it with the id
// from configuration.
type Static struct {
	UserID string
}

func (s Static) CurrentUserID(context.Context) (string, error) {
	if s.UserID == "" {
		return "", ErrUnauthorized
	}
	return s.UserID, nil
}

// FromEnv resolves the user from the STUDIQ_USER environment variable.
func FromEnv() Sessions {
	return Static{UserID: os.Getenv("STUDIQ_USER")}
}
