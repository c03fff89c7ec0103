// Package format holds the static capability table: which file extensions the
// converter accepts, which media category each belongs to, and which target
// formats that category may convert to. The table is read-only for the
// lifetime of the process.
package format
