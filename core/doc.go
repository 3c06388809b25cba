// Package core contains app-wide contracts and state orchestration.
//
// Allowed here:
// - module routing, panel lifecycle, message contracts, command and key registries
// - shared state machines used by panels (actions, secret toggles, flashes, the picker)
// - header, sidebar, status bar and footer chrome
//
// Not allowed here:
// - concrete panel or modal implementations
// - low-level widget rendering primitives
package core
