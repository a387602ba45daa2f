// Package tidal resolves playback info from the streaming service's HTTP API.
//
// Requests are authorized with a bearer token from an oauth2.TokenSource.
// JWTSource wraps the token the host player already holds and reads its
// expiry from the JWT claims, so expired tokens are refreshed before use.
package tidal
