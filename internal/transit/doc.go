// Package transit fetches the next bus arrival for a single stop and polls it
// on a fixed cadence.
//
// # API Contract
//
// One GET to the configured endpoint with one query parameter naming the stop:
//
//	GET https://transit.example/api/arrivals?stop_id=1234
//	Accept: application/json
//
// The body must be a JSON array of objects. The first element's btime2 field
// is returned verbatim as the display string:
//
//	[{"btime2": "14:12", ...}, {"btime2": "14:27", ...}]
//
// Anything else is an error: transport failure, a status other than 200, a
// body that is not an array of objects, an empty array, or a missing or blank
// btime2 (ErrNoData).
//
// # Polling
//
// Poller wraps a gocron scheduler with a single duration job. States:
//
//	Idle ──Enable──▶ Polling (fetch now, then every interval)
//	 ▲                 │
//	 └────Disable──────┘
//
// Singleton mode reschedules instead of overlapping a slow fetch, and nothing
// retries outside the cadence. Results go to a channel; the consumer decides
// what to keep. Errors are expected to be logged and otherwise ignored so the
// previous arrival stays on screen.
package transit
