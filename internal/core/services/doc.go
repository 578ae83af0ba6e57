// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven ports
// (adapters): the token cache, the video gateway and the settings and
// refresh-token setup flows.
package services
