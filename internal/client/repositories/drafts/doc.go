// Package drafts provides the client-side persistence layer for post drafts.
//
// # Overview
//
// The package defines a Repository interface for the durable draft store and
// a SQLite-backed implementation. A draft row and its attachment rows are
// written together inside one transaction, so a crash can never leave the
// attachment list inconsistent with its parent record.
//
// # Data Model
//
// The drafts table uses an AUTOINCREMENT primary key as the temporary id:
// monotonic, unique, never reused. Attachments are keyed by (temporary_id,
// idx) and carry the local file reference, the remote location once uploaded,
// and byte-range progress.
//
// # State transitions
//
// TransitionState is a compare-and-swap on the state column. Duplicate or
// late lifecycle events therefore degrade to no-ops instead of corrupting
// the record.
package drafts
