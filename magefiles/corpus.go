//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Import loads ps.csv into the SQLite corpus at data/ps.db.
func Import() error {
	mg.Deps(Build)
	return sh.RunV("bin/ps-search", "corpus", "import", "--csv", "ps.csv", "--db", "data/ps.db")
}

// Serve builds the binary and serves ps.csv on :5000.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV("bin/ps-search", "serve", "--csv", "ps.csv", "--log-level", "debug")
}
