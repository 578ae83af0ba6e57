// Package domain defines the core entities of ytpicker.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines the fundamental types:
//
//   - OAuthToken: a short-lived access token and its cache lifetime
//   - VideoSummary / SearchResult: ordered channel search hits
//   - VideoDetail: the cached, embeddable view of a video
//   - YouTubeSettings: credentials and channel configuration
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
