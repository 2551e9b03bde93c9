// Package registry keeps the catalog of discovered base asset sets for one
// set kind.
//
// A Registry accepts candidate metadata files, resolves duplicates between
// sets claiming the same name or identity code, and tracks the active
// selection. Duplicate resolution is deterministic: the more complete set
// (more files with matching checksums) always wins; the declared version
// only breaks ties between equally complete sets, and on a full tie the
// incumbent stays.
//
// Displaced sets are retained in a separate duplicates list rather than
// discarded, so references handed out before a rescan stay valid, and so
// content-signature lookups can still match sets that lost a duplicate
// contest. When a replacement displaces the currently selected set, the
// selection silently moves to the winner.
package registry
