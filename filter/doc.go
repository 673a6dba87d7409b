// Package filter removes administrative and structural categories that carry
// no semantic similarity (disambiguation markers, stubs, birth/death years,
// "by decade"/"by nationality" indexes and similar).
//
// The rule table lives in rules.yaml, embedded at build time. It is data, not
// code: callers may load their own table with Load and pass the resulting
// Filter wherever Default is used.
//
//	f := filter.Default()
//	f.Keep("Living people")      // false
//	f.Keep("Rivers of Germany")  // true
//
// Labels that are not strings are coerced with Label before matching, so a
// Filter never fails on odd input.
package filter
