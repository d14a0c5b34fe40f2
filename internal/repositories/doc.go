// Package repositories implements the storage behind the fixture collection service.
//
// Two backends satisfy [Store]:
//   - [SQLStore] : SQLite through database/sql, schema from the embedded migrations in shared
//   - [BoltStore] : bbolt, one bucket per entity with JSON values
//
// Ids are integers handed out by a per-table sequence: [NextSequence] for SQLite, the bucket sequence for bbolt.
// Deleting a party deletes its attendees in both backends (foreign key cascade, explicit sweep respectively).
//
// Key Implementations:
//   - [PartyRepository] : party rows
//   - [AttendeeRepository] : people rows, checked against their party
package repositories
