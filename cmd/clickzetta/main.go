// Package main provides the clickzetta CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/clickzetta/internal/cli"
	"github.com/leapstack-labs/clickzetta/pkg/adapter"
	"github.com/leapstack-labs/clickzetta/pkg/adapters/clickzetta"

	// database/sql drivers selectable with --driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

func main() {
	if err := cli.Execute(newRegistry()); err != nil {
		os.Exit(1)
	}
}

// newRegistry returns the registry with every adapter this binary ships.
func newRegistry() *adapter.Registry {
	reg := adapter.NewRegistry()
	clickzetta.Register(reg)
	return reg
}
