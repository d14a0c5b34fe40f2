// Package services defines the [Service] interface for the party/person collection service and implements it over HTTP.
//
// # Collection Service
//
// [CollectionService] speaks the collection contract:
//
//	GET    /parties                 list parties
//	POST   /parties                 create party {name, date}
//	PATCH  /parties/{id}            update party {name, date}
//	DELETE /parties/{id}            delete party
//	GET    /people/party/{partyId}  list attendees of one party
//	POST   /people                  create attendee (no id)
//	PUT    /people/{id}             update attendee (full record)
//	DELETE /people/{id}             delete attendee
//
// Success is decided by the status code alone (2xx). Mutation responses are decoded when they carry a body
// and ignored otherwise. Every request carries an X-Request-ID header and runs inside an OpenTelemetry span.
// An optional [rate.Limiter] throttles outgoing requests.
//
// # Raw API
//
// [APIService] sends arbitrary requests and returns the raw response; the CLI uses it for debugging the service.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrNotFound] : 404 from the service, alongside ErrAPIRequest
package services
