// Package session defines the warehouse session capability the connector
// drives, and provides a database/sql backed implementation of it.
//
// A Session is a single live connection bound to one workspace. It accepts
// SQL text and returns fully materialized tabular results. Sessions are
// created by an Opener from Options describing the endpoint, credentials and
// compute resources.
package session

import "context"

// Session is a live connection to the warehouse service.
type Session interface {
	// SQL executes query and materializes its result set.
	// Statements that produce no rows return an empty Table.
	SQL(ctx context.Context, query string) (*Table, error)

	// Close releases the session.
	Close() error
}

// Opener creates sessions.
type Opener interface {
	Open(ctx context.Context, opts Options) (Session, error)
}

// Prober is implemented by openers that can report whether the library
// backing them is loaded into the process.
type Prober interface {
	Available() error
}

// Options carries everything needed to build a session.
type Options struct {
	Service   string
	Username  string
	Password  string
	Instance  string
	Workspace string
	Schema    string
	VCluster  string
	Secure    *bool

	// Hints are passed to the service as per-session job settings.
	Hints map[string]any

	// Extra holds additional driver parameters.
	Extra map[string]any

	// DSN, when set, is used verbatim instead of one synthesized from the
	// fields above.
	DSN string
}
