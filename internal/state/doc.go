// Package state holds the client-side containers views read from: the
// ticket list, the session manager and the health poll. Each container
// owns its fields behind a mutex and hands out copies. Mutators never
// return errors to the view; failures become a display message.
package state
