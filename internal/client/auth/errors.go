package auth

import "errors"

var (
	// ErrNotAuthenticated indicates that an operation needs a logged-in session
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoRefreshToken indicates that the session has nothing to renew with
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrPassphraseRequired indicates sealed tokens were found but no passphrase is configured
	ErrPassphraseRequired = errors.New("stored tokens are sealed, passphrase required")
)
