// Package discovery narrows, orders and pages a set of already-fetched listings.
//
// Every function here is pure: no I/O, no clock reads (callers pass now), no mutation of
// the input slice except where noted. The pipeline is Filter -> Sort -> Paginate -> Present.
package discovery
