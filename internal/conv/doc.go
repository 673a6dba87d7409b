// Package conv narrows integers read from CSIM headers.
//
// Counts and offsets in a saved matrix come from disk and cannot be trusted,
// and int is 32 bits on some targets. Each helper returns an error instead of
// silently wrapping. Plain casts remain fine where the value is already bounded,
// such as a loop index below an item count.
package conv
