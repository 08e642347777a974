// Package clickzetta provides the ClickZetta Lakehouse adapter.
//
// A Connector owns one warehouse session bound to a single workspace. It
// runs SQL and reports outcomes as core.ExecuteResult values, lists tables,
// views and schemas, switches the active schema, lists volume and stage
// files, and renders CREATE TABLE and CREATE VIEW statements.
//
// The adapter is made available to a host by registering it explicitly:
//
//	reg := adapter.NewRegistry()
//	clickzetta.Register(reg)
//
// Sessions are opened through the database/sql driver named in the
// configuration ("clickzetta" by default), which the host must import.
package clickzetta
