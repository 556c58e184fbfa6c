// Package files groups the SQL source discovery sub-packages.
//
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: recursive .sql file discovery and reading
package files
