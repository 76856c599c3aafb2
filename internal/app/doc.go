// Package app provides the orchestration layer for pulse.
//
// # Overview
//
// This package wires configuration, logging, the state file, the transit
// poller and a frontend together. It is the composition root: Run builds
// every dependency and blocks until the frontend exits.
//
// # Components
//
//   - app.go: Run, LoadConfig and InitLogging
//   - controller.go: the refresh loop that owns AppState
//   - oneshot.go: Render, Toggle and SetTarget for the non-interactive commands
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/pulse/config.toml
//	       ├─────> logging.Init()       Rotated log file
//	       ├─────> transit.NewPoller()  Idle until bus status is enabled
//	       ├─────> watch.New()          State file change notifications
//	       ├─────> Controller.Run()     Background goroutine
//	       └─────> ui / tray            Frontend (blocks)
//
//	Controller loop (single goroutine, owns AppState):
//	┌─────────────────────────────────────────────┐
//	│ select                                      │
//	│  ├─ ticker      → Compose, expire, publish  │
//	│  ├─ Dispatch    → command.Apply, save       │
//	│  ├─ transit     → replace last_bus_check    │
//	│  ├─ file change → reload, sync poller       │
//	│  └─ ctx.Done    → return                    │
//	└──────────────────┬──────────────────────────┘
//	                   └─> status.Store  ← frontends read Snapshot()
//
// # Error Handling
//
// Only startup problems are returned from Run: an unreadable or invalid
// config file, a malformed transit endpoint, or a frontend that cannot start.
// Everything after that is logged and the loop continues: a state file that
// fails to save keeps the in-memory state, a failed transit fetch keeps the
// cached arrival, and a partially corrupt state file falls back per field.
package app
