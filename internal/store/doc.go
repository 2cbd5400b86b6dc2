// Package store implements the in-memory alarm collection.
//
// The Store is an explicitly owned object shared by the interactive menu and
// the background monitor, guarded by a single mutex. Records are kept in
// insertion order, identified by sequential ids that are never reused, and
// handed out as clones so callers cannot mutate the collection from outside.
// Alarm records do not survive process restarts.
package store
