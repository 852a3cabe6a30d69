// Package migrations contains the schema migrations. Each file registers
// itself with migration.Register from init(); importing this package is
// enough to make them visible to the runner.
package migrations
