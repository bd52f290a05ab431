// Package repositories implements SQLite persistence for the local movie cache.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [MovieRepository] : Catalog caching with title and remote-id lookups
//
// Sequence numbers provide stable, human-readable ordering (e.g., movie #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
//
// The cache is deliberately separate from the API client, which never caches:
// it is only written by `flix cache sync` and read by `flix cache list`.
package repositories
