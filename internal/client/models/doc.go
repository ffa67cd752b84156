// Package models defines the client-side domain types: the authenticated
// Identity and its Role, the requester Profile, and the Order and Ticket
// records with their shared Status lifecycle.
//
// Roles and statuses have canonical wire values; decoding also accepts the
// spellings used by the legacy backend.
package models
