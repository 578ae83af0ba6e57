package search

import "errors"

// ErrNoVideoGateway indicates that no video gateway was provided.
var ErrNoVideoGateway = errors.New("video gateway is required")
