// Package wpauth bridges username/password logins against a remote
// WordPress-style identity service into stateless, signed session tokens.
//
// The pipeline:
//   - A CredentialVerifier exchanges the credentials for an opaque bearer
//     token at the service's token endpoint.
//   - A ProfileFetcher presents that token to the current-user endpoint and
//     normalizes the response into a Principal.
//   - The Auther sequences the two calls and projects the Principal into the
//     claims of an HS256-signed JWT. No server-side session state is kept;
//     every protected request decodes the token back into a SessionUser.
//   - A Gate decides allow/deny per request from the decoded SessionUser and
//     the request path alone.
//
// Failures at any stage collapse to a single "sign-in failed" outcome at the
// HTTP boundary; the internal failure kind is retained only in logs.
package wpauth
