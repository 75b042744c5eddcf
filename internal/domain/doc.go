// Package domain models daily weather observations and the queries served
// over them.
//
// # Data Source
//
// Observations come from a fixed CSV export of daily Seattle weather data
// (one row per calendar day) with the columns:
//
//	date,precipitation,temp_max,temp_min,wind,weather
//
// The dataset is loaded once at startup and never mutated afterward; every
// structure downstream of the loader holds read-only views into the same
// backing records.
//
// # Conditions
//
// The "weather" column is a discrete condition label (drizzle, rain, snow,
// sun, fog). The label set is treated as open: future exports may introduce
// new labels, so nothing in this module switches exhaustively over
// [Condition] values. Conditions compare and hash as their canonical
// lowercase token.
//
// # Dates
//
// A dataset contains at most one observation per calendar day. Dates are
// represented as time.Time values pinned to midnight UTC so they are usable
// as map keys; [Day] constructs them in that canonical form.
package domain
