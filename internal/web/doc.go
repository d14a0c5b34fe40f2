// Package web serves the party dashboard as server-rendered HTML.
//
// The page is a single html/template rendered from the [panels.Dashboard] snapshots.
// Every form posts to a handler that runs one panel operation and redirects back to /
// (POST-redirect-GET), so reloading never repeats a mutation.
//
// Routes
//
//	GET  /                          → Render the dashboard (reloads the party list)
//	POST /parties                   → Create a party from the new-party form
//	POST /parties/:id/select        → Select a party and load its attendees
//	POST /parties/:id/edit          → Open the inline rename form
//	POST /parties/:id/delete        → Delete a party
//	POST /party-edit                → Commit the rename
//	POST /party-edit/cancel         → Discard the rename
//	POST /selection/clear           → Clear the selection
//	POST /attendees/new             → Open the modal with a new draft
//	POST /attendees/:id/edit        → Open the modal on an existing attendee
//	POST /attendees/:id/delete      → Delete an attendee
//	POST /draft                     → Save the modal draft
//	POST /draft/cancel              → Close the modal
//	POST /alert/dismiss             → Dismiss the pending alert
//	GET  /healthz                   → Liveness probe
//
// Request logging goes through samber/slog-gin on top of the charmbracelet logger.
package web
