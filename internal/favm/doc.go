// Package favm implements the filtered aggregation view model shared by all
// record modules.
//
// A ViewModel owns a Store loaded from a backend, and every render passes the
// snapshot through a Pipeline: the table period filter and the fuzzy Matcher
// produce the visible rows and their totals, while an independent summary
// period filter produces the headline totals. Writes go through a two-phase
// commit: the backend call first, then an upsert of the authoritative
// response into the store.
package favm
