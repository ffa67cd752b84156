// Package client contains the Remote Data Gateway of the request desk.
//
// # Overview
//
// Client is the transport-agnostic contract: login, settings, orders and
// IT tickets. HTTPClient implements it over the JSON REST API; every call
// serializes its body as JSON, reads the response completely as text, and
// only then tries to decode it.
//
// # Error Handling
//
// Every failure is a *RequestError carrying a user-facing Message, the HTTP
// status and the raw body. Its Kind separates three situations that need
// different operator reactions:
//
//   - KindTransport: the request never completed (ErrUnavailable).
//   - KindHTTP: non-success status; the message prefers the server's
//     {"error"} field (ErrUnauthorized, ErrNotFound, ErrRequestFailed).
//   - KindMalformed: success status but an undecodable body, for example an
//     HTML page from a misconfigured base URL (ErrMalformedResponse).
//
// The gateway never retries; polling screens decide that on their own.
package client
