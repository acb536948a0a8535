// Package divsim reconstructs an investor's position and cash-flow
// history for a security from raw daily price bars, dividend events and
// split events, and derives capital-gain, dividend and total-return
// figures from it.
//
// The pipeline is a pure, single-pass computation over immutable input
// sequences: raw rows are normalized onto one canonical daily timeline,
// prices are rewritten to a split-adjusted basis, dividends are matched
// to holding periods, and contributions are converted into shares as the
// simulator walks the timeline. Data fetching and persistence live in
// the yahoo and store subpackages; the engine itself performs no I/O.
package divsim
