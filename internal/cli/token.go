package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/selene/internal/security"
)

// RunTokenCommand prints a bearer token for userID to out.
func RunTokenCommand(out io.Writer, secretKey string, userID uint, ttl time.Duration, now time.Time) error {
	if userID == 0 {
		return errors.New("user id is required")
	}

	token, err := security.IssueToken([]byte(secretKey), userID, ttl, now)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	if ttl <= 0 {
		ttl = security.DefaultTokenTTL
	}
	fmt.Fprintln(out, token)
	fmt.Fprintf(out, "# user %d, expires %s\n", userID, now.Add(ttl).UTC().Format(time.RFC3339))
	return nil
}
