// Package models defines the entities exchanged with the party/person collection service.
//
//   - [Party] : an event with a name and a client-stamped date
//   - [Attendee] : a person scoped to exactly one party, carrying attendance flags
//   - [Draft] : the modal editing session for one attendee, either new or existing
//
// A [Draft] is a tagged variant rather than an attendee with an optional id, so the create-or-update
// decision is made by [Draft.IsNew] and never by inspecting a zero id.
package models
