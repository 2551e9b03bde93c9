// Package catalogdb persists scan history, last-known sets, and the
// active selection per set kind in a SQLite database.
//
// The store is advisory: the in-memory registry is always rebuilt from
// disk by scanning, and a store failure never invalidates a scan's
// result. What the database buys is continuity between CLI invocations,
// the selection made with `basecat select` survives until the next scan
// applies it again, and `basecat history` can show how the catalog
// evolved.
package catalogdb
