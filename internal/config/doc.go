// Package config handles loading and parsing the pulse configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pulse/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty/non-positive, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/pulse/config.toml
//   - State file: ~/.stopwatch_state.json
//   - Display refresh: 1 second
//   - Transit poll: 30 seconds, 5 second request timeout, query key "stop_id"
//   - Log file: ~/.local/share/pulse/pulse.log (info, text, 5 MB x 2 backups)
//
// Transit lookups stay inert until both endpoint and stop_id are set; the bus
// toggle still flips and persists so the setting survives a later config fix.
//
// # TOML Format
//
//	state_path = "~/.stopwatch_state.json"
//	refresh_seconds = 1
//
//	[transit]
//	endpoint = "https://transit.example/api/arrivals"
//	stop_param = "stop_id"
//	stop_id = "1234"
//	poll_seconds = 30
//
//	[log]
//	file = "~/.local/share/pulse/pulse.log"
//	level = "debug"
//	format = "json"
//
// # Path Expansion
//
// Paths starting with ~ are expanded to the user's home directory and made
// absolute (see fsutil.ExpandPath).
//
// # Error Handling
//
// Load returns an error only for an unreadable file or invalid TOML. A missing
// file is not an error. Startup aborts on these errors; everything after
// startup degrades instead of failing.
package config
