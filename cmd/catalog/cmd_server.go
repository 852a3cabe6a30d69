package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/internal/server"
)

// catalog serve
func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run"},
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application := newApplication()
			if err := application.Boot(ctx); err != nil {
				return err
			}
			defer func() {
				if err := application.Close(context.Background()); err != nil {
					application.Log.Error("shutdown cleanup failed", "error", err)
				}
			}()

			if port == "" {
				port = config.AppPort()
			}
			return server.Run(ctx, server.Options{
				Addr:     ":" + port,
				Handler:  application.Handler(),
				GRPCPort: config.GRPCPort(),
				Probe:    application.Ping,
				Log:      application.Log,
			})
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port (default APP_PORT)")
	return cmd
}

// catalog route:list
func newRouteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List all registered named routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := newApplication().Router().Routes()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			fmt.Fprintln(w, "------\t----\t----")
			for _, ri := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
			}
			return w.Flush()
		},
	}
}
