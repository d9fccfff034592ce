package wpauth

import (
	"errors"
	"strings"
)

// ErrMissingCredentials means the username or password was empty; no network
// call is attempted for these.
var ErrMissingCredentials = errors.New("missing credentials")

// ErrInvalidCredentials is the verifier's failure for a non-2xx response from
// the token endpoint.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrProfileFetchFailed is the fetcher's failure for a non-2xx response from
// the current-user endpoint.
var ErrProfileFetchFailed = errors.New("profile fetch failed")

// ErrTransport wraps timeouts, DNS failures, connection resets and context
// cancellation on either outbound call.
var ErrTransport = errors.New("identity service unreachable")

// ErrSignInFailed is the only failure the HTTP boundary exposes: the
// internal failure kind stays in the logs so a caller cannot probe which
// stage rejected the login.
var ErrSignInFailed = errors.New("sign-in failed")

// ErrSessionDecode means the session token's signature was invalid or its
// claims were malformed; callers treat it as "no user".
var ErrSessionDecode = errors.New("unable to decode session")

// ErrUnableToFindSession is the error when a request carries no session token
var ErrUnableToFindSession = errors.New("unable to find session")

// ErrUnableToMapClaims unable to get claims from token
var ErrUnableToMapClaims = errors.New("unable to map claims")

// ErrTokenExpired is returned when a session token's exp claim has passed.
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenMalformed is returned for tokens that fail to parse or whose
// signature does not verify.
var ErrTokenMalformed = errors.New("token is malformed")

// IsAuthFailure reports whether err belongs to the authentication failure
// taxonomy. The distinction between kinds is for logs only; callers at the
// external boundary see a single failed login.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrProfileFetchFailed) ||
		errors.Is(err, ErrTransport)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
