// Package simple holds the output model: a small tree of typed values that
// encodes to JSON or YAML with a fixed key order.
//
// Every node has a TYPE. Most have a VALUE, which is a scalar, a nested
// node, a list of nodes or a Map. Named properties follow in the order
// they were added.
package simple
