// Package wordpress implements wpauth.IdentityProvider against a remote
// WordPress-style identity service: credentials are exchanged for a bearer
// token at the token endpoint, and the token is resolved into a profile at
// the current-user endpoint.
//
// The HTTP client is injected so callers own timeout and retry policy; the
// provider itself never retries.
package wordpress
