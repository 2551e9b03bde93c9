// Package scanner walks search directories for base set metadata
// documents and feeds them to a registry as candidates.
//
// Each scan gets a unique ID for the catalog history. Scans across CLI
// invocations are serialized with a file lock on the state directory so
// two concurrent scans cannot interleave their catalog writes.
package scanner
