package tui

import "errors"

// ErrMissingVideoGateway is returned when the video gateway is not provided.
var ErrMissingVideoGateway = errors.New("tui: video gateway is required")
