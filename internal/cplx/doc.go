// Package cplx implements the complex-number scalar type: its fixed
// 16-byte binary layout, text and wire codecs, addition, the
// magnitude-based total order, and the sum aggregate.
//
// This package contains the type's logic only. All other internal packages
// import cplx; cplx imports nothing internal. This keeps the value layer
// foundational with no circular dependencies.
//
// Key design constraints:
//   - A Value is always exactly two IEEE-754 doubles, real part first
//   - Every function here is pure and stateless; safe under any concurrency
//   - Ordering is by magnitude ONLY - no phase tie-break. Values of equal
//     magnitude are one equivalence class for index purposes, and tightening
//     the order would change which rows a range scan returns
//   - Malformed input is rejected at the codec boundary; a malformed byte
//     sequence is never materialized as a Value
package cplx
