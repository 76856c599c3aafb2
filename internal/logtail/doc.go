// Package logtail reads the end of pulse's own log file for the terminal UI's
// log pane.
//
// Read seeks from the end of the file in fixed-size chunks, so cost scales
// with the number of lines requested rather than the file size. Lines are
// returned oldest first; a partial line at the chunk boundary is dropped.
// A missing file is not an error because logging may be disabled.
//
// Level recognises both slog handlers pulse can be configured with:
//
//	time=2024-05-01T10:00:00.000+02:00 level=WARN msg="transit fetch failed"
//	{"time":"2024-05-01T10:00:00+02:00","level":"ERROR","msg":"save state"}
//
// The UI uses it to pick a colour per line.
package logtail
