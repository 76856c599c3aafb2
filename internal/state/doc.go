// Package state defines the persisted record behind the pulse status line and
// its on-disk JSON form.
//
// # Data Model
//
// AppState is a flat record: one enable flag per segment, the stopwatch
// epoch, the target date, the two date-format flags and the cached transit
// arrival. Elapsed and progress values are always derived at render time and
// never stored.
//
// The date format is a three-state value (DaysOnly, YMD, Full) stored as two
// booleans for compatibility with existing files. SetDateFormat keeps them
// mutually exclusive; Decode normalizes a file that has both set.
//
// # File Format
//
// One JSON object, written in full on every mutation:
//
//	{"stopwatch_enabled": true, "stopwatch_epoch": "2026-10-17T09:30:00.000000",
//	 "date_comparison_enabled": false, "target_date": null, ...}
//
// Timestamps are naive local time with microseconds. On read, RFC 3339 with an
// offset is accepted as well.
//
// # Error Handling
//
// Loading never fails hard:
//
//   - missing or empty file: zero state, nil error
//   - not a JSON object: zero state, *LoadError
//   - individual field of the wrong type or unparseable timestamp: that field
//     defaults, the rest loads, *LoadError lists every bad key
//
// Extra keys are ignored. Save writes to a temp file and renames it into place.
package state
