// Package metadoc reads set metadata documents and exposes them as flat
// sections of string key/value pairs.
//
// Documents are TOML files. Nested tables and dotted keys inside a section
// are flattened with dot-joined key names, so a translation written as
// description.de and a checksum keyed by a filename such as "base.dat"
// resolve through the same lookup. Non-string scalars are rendered to their
// canonical text form so consumers only ever deal with strings.
//
// Consumers should depend on the Document and Section interfaces rather
// than the concrete File type so tests can substitute in-memory documents.
package metadoc
