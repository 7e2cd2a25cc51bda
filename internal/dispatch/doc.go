// Package dispatch is the host-side call layer that consumes the catalog's
// function flags. It is what turns the declarative STRICT and IMMUTABLE
// attributes into behavior:
//
//   - STRICT: if any argument is null, the implementation is never invoked
//     and a null datum is substituted.
//   - IMMUTABLE: results are memoized by function name and canonical
//     argument encoding, the in-process analog of plan-time constant
//     folding.
//
// Every invocation is recorded in a trace with a time-ordered UUID token,
// so a host embedding the dispatcher can replay or audit exactly which
// implementations ran and which calls were short-circuited or served from
// cache.
package dispatch
