// Package services defines the [Service] interface for the MyFlix catalog API and implements it over HTTP.
//
// # Service Interface
//
// One method per remote operation: register, login, movie and detail lookups,
// profile reads and writes, and favorite add/remove. All methods take a
// [context.Context] and return typed payloads decoded at this boundary, so
// downstream components never handle untyped JSON.
//
// # Authentication
//
// Authenticated calls attach an Authorization: Bearer header sourced from an
// [oauth2.TokenSource] (provided by the session store). When no session
// exists the request still fires without the header; rejection is left to the
// server rather than pre-validated client-side.
//
// # Error Handling
//
// Transport failures and HTTP error statuses are both normalized into
// [shared.ErrAPIRequest], a single generic failure with a static user-facing
// message. The original status and body are logged for diagnostics, never
// surfaced to the user. There are no retries and no caching; every call
// reaches the network.
//
// # Raw Access
//
// [RawService] exposes unprocessed GET/POST calls for debugging via
// `flix api get` and `flix api post`.
package services
