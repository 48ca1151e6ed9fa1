// Package amount implements the fixed-point monetary value used everywhere
// in the engine.
//
// An Amount is an int64 count of ticks, where one tick is 0.0001 currency
// units. Parsing is strict: at most four fractional digits, no leading bare
// decimal point, no negative input values. Addition and subtraction are
// checked and fail rather than wrap on overflow.
package amount
