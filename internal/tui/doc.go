// Package tui is the interactive TicketBoard client: a Bubble Tea shell
// that routes between the login, register, ticket list, ticket form and
// profile views and keeps a backend/database health indicator in its
// header.
//
// Views hold form state only. Every action goes through the state
// containers, which own the data and the network calls. Authenticated
// routes redirect to login whenever the session is anonymous, including
// right after any request is answered with 401.
package tui
