// Package server provides the HTTP side of the fixture collection service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method-qualified patterns.
//
// # Collection Handler
//
// [CollectionHandler] serves the contract the festa client speaks:
//
//	GET    /parties                 200 array of parties
//	POST   /parties                 201 created party
//	PATCH  /parties/{id}            200 updated party
//	DELETE /parties/{id}            204
//	GET    /people/party/{partyId}  200 array of attendees
//	POST   /people                  201 created attendee
//	PUT    /people/{id}             200 updated attendee
//	DELETE /people/{id}             204
//
// Unknown ids answer 404, malformed JSON and blank party names answer 400. Error bodies are {"error": "..."}.
//
// # Middleware
//
//   - [Recover] : 500 instead of a dropped connection on panic
//   - [RequestID] : keeps or generates X-Request-ID
//   - [Logging] : one charmbracelet/log line per request
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
