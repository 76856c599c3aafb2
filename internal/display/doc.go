// Package display turns an AppState and a wall-clock instant into the status
// line. Everything here is pure: no I/O, no clocks, no mutation of the input.
// The one side effect the line implies, an expired stopwatch, is reported in
// Result for the caller to persist.
package display
