// Package baseset parses base asset-set metadata documents into validated
// set descriptors.
//
// A base set is a bundle of required data files (a graphics pack, a sound
// pack) described by a metadata document: identity, version, translated
// descriptions, and one entry per required file slot carrying a filename,
// a checksum, and a warning to show when the file is absent. Parsing is
// fail-fast: a document missing any required field or checksum entry is
// rejected whole, so no partial descriptor ever reaches a registry.
//
// File validation is delegated to a checksum.Verifier and recorded as a
// three-way outcome per file. A found-but-corrupt file still counts toward
// the found total; only an absent file makes a set unusable.
package baseset
