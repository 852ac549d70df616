// Package reputation provides the per-carrier rating aggregate. Rating points
// and counts only ever grow; the average is reported scaled by 100 so two
// decimal digits survive without fractional types.
package reputation
