// Package catalog models the registration metadata a host engine consumes
// when the complex type is installed: the type record, function records
// with their strictness and purity flags, operator records with commutator,
// negator, and selectivity-estimator references, the sum aggregate record,
// and the operator class binding the ordering operators and comparator to a
// tree access method.
//
// Everything here is data, not behavior. Commutator/negator/estimator
// references are relational facts keyed by symbol, never dispatched
// methods; the strategy table is a fixed five-entry map checked for
// completeness when the registry is validated. The one piece of executable
// logic is Registry.Validate, which probes every boolean operator against
// the comparator's sign over a value grid at registration time, because an
// inconsistency between them would corrupt index-assisted scans silently.
package catalog
