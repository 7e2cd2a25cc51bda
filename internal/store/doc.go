// Package store embeds the complex type into a real host engine: SQLite.
//
// The driver's connect hook installs the type's comparator as the
// COMPLEX_MAG collation and a handful of its functions as SQL functions,
// then the schema declares a value column and index under that collation.
// From that point SQLite's own B-tree does the ordering, which makes this
// package the live proof of the index contract: if the comparator's sign
// ever disagreed with the boolean operators, range scans here would return
// wrong rows, and the package tests would catch it against the real index
// rather than a simulation.
//
// Values are stored twice per row on purpose: the canonical text form
// (collated, indexed, scanned) and the 16-byte wire image (verified
// bit-for-bit on read).
package store
