// Command catalog serves the product catalogue API and manages its
// database.
//
//	catalog serve             # HTTP (+ gRPC health when GRPC_PORT is set)
//	catalog migrate           # run pending migrations
//	catalog migrate:rollback  # undo the last batch
//	catalog migrate:status
//	catalog seed              # demo user and products
//	catalog route:list
//	catalog user:create --email ada@example.com --password s3cret
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/app/routes"
	_ "github.com/shashiranjanraj/catalog/database/migrations"
	_ "github.com/shashiranjanraj/catalog/database/seeders"
	_ "github.com/shashiranjanraj/catalog/docs"
	"github.com/shashiranjanraj/catalog/pkg/app"
)

//	@title						Catalog API
//	@version					1.0
//	@description				Product CRUD guarded by bearer tokens issued at POST /auth/token.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApplication() *app.Application {
	return app.New().Routes(routes.API)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Product catalogue API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Server
	root.AddCommand(newServeCmd())
	root.AddCommand(newRouteListCmd())

	// Database
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newMigrateRollbackCmd())
	root.AddCommand(newMigrateStatusCmd())
	root.AddCommand(newSeedCmd())

	// Users
	root.AddCommand(newUserCreateCmd())

	return root
}
