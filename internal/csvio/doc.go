// Package csvio implements the engine's input and output collaborators.
//
// The Reader decodes the input CSV (header: type, client, tx, amount, in
// any column order) into typed events, trimming surrounding whitespace and
// rejecting unknown headers, bad field counts and unparseable values. The
// Writer renders the final snapshot as CSV with amounts at four fractional
// digits, sorted by client id for stable output.
package csvio
