// Package youtube implements driven.VideoClient on the YouTube Data API v3.
//
// Requests are authenticated with bearer tokens taken from a
// driving.TokenService, so the token cache decides when to refresh. A 401
// drops the cached token; a 429 opens a back-off window in the rate limiter.
package youtube
