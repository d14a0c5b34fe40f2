// Package panels holds the client-side state of the party and attendee views.
//
// # Party Panel
//
// [PartyPanel] owns the party list, the selection, the new-party name draft and the inline edit draft.
// The list is fetched on mount and after every successful mutation, never in reaction to its own changes.
//
// # Attendee Panel
//
// [AttendeePanel] owns the attendees of the active party and the modal [models.Draft]. Saving re-fetches the
// active party's list; deleting filters the in-memory list by id.
//
// Every attendee fetch captures a generation token. Changing the active party bumps it, so a response that
// arrives for a party that is no longer active is dropped. Saves capture the modal session in the same way
// and never close a modal opened after the request left.
//
// # Dashboard
//
// [Dashboard] couples both panels: selecting a party activates it on the attendee panel, and any party
// mutation that clears the selection hides the attendee panel.
//
// # Errors
//
// Failed requests record an alert ("failed to add party", "failed to save attendee", ...) and return an
// [*OpError] wrapping the service error. Blank names are rejected before any request is sent, silently.
//
// Panels are safe for concurrent use. No lock is held while a request is in flight.
package panels
