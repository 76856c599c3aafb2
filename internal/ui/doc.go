// Package ui provides the terminal frontend for pulse.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never touches AppState; it reads the
// latest status.Snapshot published by the controller and sends commands back
// through a dispatch function.
//
//   - app.go: Model, messages, commands and the Program wrapper
//   - view.go: header, segment chips, toggle list, log pane and footer
//   - prompt.go: the target-date text input
//   - keys.go: key bindings and help groups
//   - help.go: help overlay
//   - theme.go: color themes (Nightfox, Kanagawa, Slate)
//
// # Event Flow
//
//  1. Init fetches the current snapshot and arms a watcher on status.Store
//  2. Each controller publish closes the store's Changed channel and the
//     watcher delivers a fresh snapshotMsg, then re-arms
//  3. A fixed tick refreshes the log pane and relative times
//  4. Toggle keys dispatch commands off the update goroutine
//  5. Enabling date comparison makes the controller call Program.PromptDate,
//     which arrives here as a promptMsg and opens the input
//
// # Key Bindings
//
//	s d p y b f   toggle stopwatch, date, day, year, bus; cycle date format
//	t             set target date without toggling
//	L             toggle log pane
//	T             cycle theme
//	?             help
//	q / ctrl+c    quit
//
// Theme and log pane visibility are saved to prefs on every change.
package ui
