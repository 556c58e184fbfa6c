// Package roomview defines the public types, interfaces, and sentinel
// errors shared across the roomview tool.
//
// roomview manages SQL view and function definitions for columnar
// warehouses whose DROP ... CASCADE destroys dependent objects. It parses
// definitions out of .sql source files, infers a dependency graph from
// textual references between statement bodies, and drops/recreates objects
// in an order that never references a missing dependency.
package roomview
